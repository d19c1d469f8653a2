package cmd

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"liu.dev/pkg/liu/internal/config"
)

const (
	envPrefix = "LIU"

	configFlagName      = "config"
	verboseFlagName     = "verbose"
	logFileFlagName     = "log-file"
	jobsFlagName        = "jobs"
	ledgerLimitFlagName = "ledger-limit"
	reportFlagName      = "report"

	configPathKey     = "config"
	buildJobsKey      = "build.jobs"
	buildLedgerKey    = "build.ledger_limit"
	buildReportKey    = "build.report"
	defaultConfigPath = config.FileName
	defaultBuildJobs  = 1
	defaultLedgerSize = 0

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".liu.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configPathKey, defaultConfigPath)
	viper.SetDefault(buildJobsKey, defaultBuildJobs)
	viper.SetDefault(buildLedgerKey, defaultLedgerSize)
	viper.SetDefault(buildReportKey, "")

	// Logging defaults (used by env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
