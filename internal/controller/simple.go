package controller

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "warden.dev/pkg/warden/internal/model"
)

// SimpleUI implements UI with plain tables written to the command output.
type SimpleUI struct {
	cmd *cobra.Command
}

var _ UI = (*SimpleUI)(nil)

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayFindings prints findings ordered by file and line, paths relative to root.
func (s *SimpleUI) DisplayFindings(ctx context.Context, root m.Path, findings []m.Finding) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(findings) == 0 {
		s.printf("No findings.\n")
		return nil
	}

	sorted := make([]m.Finding, len(findings))
	copy(sorted, findings)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].File != sorted[j].File {
			return sorted[i].File < sorted[j].File
		}

		return sorted[i].Line < sorted[j].Line
	})

	s.printf("\n%s", renderFindingsTable(root, sorted))

	return nil
}

func renderFindingsTable(root m.Path, findings []m.Finding) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Location", "Confidence", "Category", "Message"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	files := map[m.Path]bool{}

	for _, finding := range findings {
		files[finding.File] = true

		message := finding.Message
		if finding.Input != "" {
			message += " (" + finding.Input + ")"
		}

		table.Append([]string{
			fmt.Sprintf("%s:%d", relativeTo(root, finding.File), finding.Line),
			finding.Confidence.String(),
			finding.Category,
			message,
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Files %d", len(files)),
		"",
		"",
		fmt.Sprintf("Findings %d", len(findings)),
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayRules prints the rule set in evaluation order.
func (s *SimpleUI) DisplayRules(ctx context.Context, rules []m.Rule) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"ID", "Confidence", "Category", "Files"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, rule := range rules {
		confidence := rule.Confidence
		if confidence == "" {
			confidence = m.ConfidenceMedium.String()
		}

		table.Append([]string{rule.ID, confidence, rule.Category, strings.Join(rule.Files, " ")})
	}

	table.SetFooter([]string{fmt.Sprintf("Rules %d", len(rules)), "", "", ""})
	table.Render()

	s.printf("\n%s", tableBuffer.String())

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func relativeTo(root m.Path, file m.Path) string {
	if root == "" {
		return string(file)
	}

	rel, err := filepath.Rel(string(root), string(file))
	if err != nil || strings.HasPrefix(rel, "..") {
		return string(file)
	}

	return rel
}
