package cmd

import (
	"github.com/spf13/cobra"
)

// cleanCmd represents the clean command.
var cleanCmd = newCleanCmd()

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "clean",
		Aliases: []string{"c"},
		Short:   "Delete object files and the binary",
		Long: `Ask before removing OBJECT_DIR (default yes) and before removing
BINARY_NAME (default no).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			return workflow.Clean(cmd.Context(), cfg)
		},
	}
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
