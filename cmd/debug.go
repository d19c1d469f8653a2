package cmd

import (
	"github.com/spf13/cobra"
)

// debugCmd represents the debug command.
var debugCmd = newDebugCmd()

func newDebugCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "debug",
		Aliases: []string{"d"},
		Short:   "Build the project and start a debugger",
		Args:    cobra.NoArgs,
		PreRun:  bindBuildFlags,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if err := workflow.Build(cmd.Context(), buildArgs(cfg)); err != nil {
				return err
			}

			return workflow.Debug(cmd.Context())
		},
	}

	configureBuildFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(debugCmd)
}
