package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"liu.dev/pkg/liu/internal/config"
	"liu.dev/pkg/liu/internal/domain"
	m "liu.dev/pkg/liu/internal/model"
)

// buildCmd represents the build command.
var buildCmd = newBuildCmd()

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "build",
		Aliases: []string{"b"},
		Short:   "Compile and link the project",
		Long: `Compile every .c and .cpp file under SOURCE_DIR into OBJECT_DIR, link the
objects into BINARY_NAME and run the tests.`,
		Args:   cobra.NoArgs,
		PreRun: bindBuildFlags,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if err := workflow.Build(cmd.Context(), buildArgs(cfg)); err != nil {
				return err
			}

			return workflow.Test(cmd.Context())
		},
	}

	configureBuildFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

// configureBuildFlags adds the flags shared by every command that builds.
// They are bound to viper in PreRun so only the running command feeds the keys.
func configureBuildFlags(cmd *cobra.Command) {
	cmd.Flags().IntP(jobsFlagName, "j", defaultBuildJobs, "number of concurrent compiler processes")
	cmd.Flags().Int(ledgerLimitFlagName, defaultLedgerSize, "maximum size in bytes of the object list (0 is unbounded)")
	cmd.Flags().String(reportFlagName, "", "write a YAML build report to this file")
}

func bindBuildFlags(cmd *cobra.Command, _ []string) {
	bindFlagToConfig(cmd.Flags().Lookup(jobsFlagName), buildJobsKey)
	bindFlagToConfig(cmd.Flags().Lookup(ledgerLimitFlagName), buildLedgerKey)
	bindFlagToConfig(cmd.Flags().Lookup(reportFlagName), buildReportKey)
}

func buildArgs(cfg *config.Config) domain.BuildArgs {
	return domain.BuildArgs{
		Config:      cfg,
		Jobs:        viper.GetInt(buildJobsKey),
		LedgerLimit: viper.GetInt(buildLedgerKey),
		Report:      m.Path(viper.GetString(buildReportKey)),
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return workflow.LoadConfig(cmd.Context(), configPath())
}
