// Package cmd provides the root command and CLI setup for liu.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"liu.dev/pkg/liu/internal/adapter"
	"liu.dev/pkg/liu/internal/controller"
	"liu.dev/pkg/liu/internal/domain"
	m "liu.dev/pkg/liu/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var commandRunner adapter.CommandRunner
var workflow domain.Workflow
var ui controller.UI

var configPathFlag string
var verboseFlag bool
var logFileFlag string

func init() {
	// Initialize shared dependencies.
	ui = controller.NewSimpleUI(rootCmd)
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore()
	commandRunner = adapter.NewLocalCommandRunner(rootCmd.OutOrStdout())
	workflow = domain.NewWorkflow(
		fsAdapter,
		reportStore,
		commandRunner,
		ui,
	)
}

const rootLongDescription = `liu is a minimal build tool for C and C++ projects.

It reads a .liu file from the working directory, compiles every .c and .cpp
file under SOURCE_DIR into a mirrored OBJECT_DIR and links the objects into
BINARY_NAME. Run "liu generate" to create a starter .liu file.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "liu",
		Short:         "Minimal C/C++ build orchestrator",
		Long:          rootLongDescription,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No liu command")
			_, _ = fmt.Fprintln(cmd.OutOrStdout())

			return cmd.Help()
		},
	}

	cmd.SetHelpCommand(newHelpCmd())
	configureRootFlags(cmd)

	return cmd
}

func newHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "help [command]",
		Aliases: []string{"h"},
		Short:   "Help about any command",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _, err := cmd.Root().Find(args)
			if target == nil || err != nil {
				return fmt.Errorf("unknown help topic %q", strings.Join(args, " "))
			}

			return target.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&configPathFlag, configFlagName, defaultConfigPath, "path of the project file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(configFlagName), configPathKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, defaultLogFilename, "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		ui.DisplayFatal(err)
		os.Exit(1)
	}
}

func configPath() m.Path {
	return m.Path(viper.GetString(configPathKey))
}
