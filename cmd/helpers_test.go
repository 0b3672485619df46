package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

const vulnerableController = "class UsersController < ApplicationController\n  def show\n    ActiveRecord::Base.where(\"id = #{params[:id]}\")\n  end\nend\n"

// setConfig overrides a viper key for the duration of the test.
func setConfig(t *testing.T, key string, value interface{}) {
	t.Helper()

	previous := viper.Get(key)
	viper.Set(key, value)
	t.Cleanup(func() { viper.Set(key, previous) })
}

// writeProject creates a Rails-like project with one vulnerable controller.
func writeProject(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Gemfile"), []byte("source \"https://rubygems.org\"\n"), 0o644))

	controller := filepath.Join(root, "app", "controllers", "users_controller.rb")
	require.NoError(t, os.MkdirAll(filepath.Dir(controller), 0o755))
	require.NoError(t, os.WriteFile(controller, []byte(vulnerableController), 0o644))

	return root
}

// executeCommand runs sub under a fresh root command and returns its output.
func executeCommand(t *testing.T, sub *cobra.Command, in io.Reader, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	cmd.AddCommand(sub)

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	if in != nil {
		cmd.SetIn(in)
	}

	cmd.SetArgs(append(args, "--log", filepath.Join(t.TempDir(), "warden.log")))

	err := cmd.Execute()

	return out.String(), err
}
