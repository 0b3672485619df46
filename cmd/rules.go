package cmd

import (
	"github.com/spf13/cobra"
)

// rulesCmd represents the rules command.
var rulesCmd = newRulesCmd()

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the active detection rules",
		Long: `List the rules the scanner applies: the built-in Rails checks, or the
rules file set with --rules or scan.rules_file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules, err := loadRules()
			if err != nil {
				return err
			}

			return newUI(cmd).DisplayRules(cmd.Context(), rules)
		},
	}
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
