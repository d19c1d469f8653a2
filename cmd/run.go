package cmd

import (
	"github.com/spf13/cobra"
)

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run",
		Aliases: []string{"r"},
		Short:   "Build the project and run the binary",
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

			return workflow.Run(cmd.Context())
		},
	}

	configureBuildFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}
