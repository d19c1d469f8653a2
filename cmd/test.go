package cmd

import (
	"github.com/spf13/cobra"
)

// testCmd represents the test command.
var testCmd = newTestCmd()

func newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "test",
		Aliases: []string{"t"},
		Short:   "Run the project tests",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := loadConfig(cmd); err != nil {
				return err
			}

			return workflow.Test(cmd.Context())
		},
	}
}

func init() {
	rootCmd.AddCommand(testCmd)
}
