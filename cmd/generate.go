package cmd

import (
	"github.com/spf13/cobra"

	"liu.dev/pkg/liu/internal/domain"
)

// generateCmd represents the generate command.
var generateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "generate",
		Aliases: []string{"g"},
		Short:   "Generate a starter .liu file",
		Long: `Ask for the output binary name and write a .liu file that builds it with
gcc and strict warnings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Generate(cmd.Context(), domain.GenerateArgs{ConfigPath: configPath()})
		},
	}
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
