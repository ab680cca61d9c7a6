package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
	m "podify.dev/pkg/podify/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "podify"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	dirFlagName            = "dir"
	podFlagName            = "pod"
	skipComponentsFlagName = "skip-components"
	forceFlagName          = "force"
	excludeFlagName        = "exclude"
	runParallelFlagName    = "parallel"
	metricsFileFlagName    = "metrics-file"
	formatFlagName         = "format"
	verboseFlagName        = "verbose"
	logFileFlagName        = "log-file"

	runParallelConfigKey  = "run.parallel"
	excludeConfigKey      = "paths.exclude"
	scriptExtensionsKey   = "extensions.script"
	templateExtensionsKey = "extensions.template"
	metricsFileKey        = "metrics.file"

	defaultDir         = "."
	defaultRunParallel = 8

	envPrefix = "PODIFY"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".podify.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(dirFlagName, defaultDir)
	viper.SetDefault(podFlagName, m.DefaultPodPrefix)
	viper.SetDefault(skipComponentsFlagName, false)
	viper.SetDefault(forceFlagName, false)
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(scriptExtensionsKey, []string{".js"})
	viper.SetDefault(templateExtensionsKey, []string{".hbs"})
	viper.SetDefault(metricsFileKey, "")

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	_ = readConfigFile(viper.GetViper())
}

// readConfigFile loads podify.yaml into v. A missing file keeps the defaults;
// an unreadable or malformed one is logged and returned.
func readConfigFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	slog.Warn("ignoring config file", "file", v.ConfigFileUsed(), "error", err)

	return fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
}

// loadRunConfig assembles the run configuration from flags, environment and
// podify.yaml, in viper's precedence order.
func loadRunConfig() (m.RunConfig, error) {
	dir := strings.TrimSpace(viper.GetString(dirFlagName))
	if dir == "" {
		dir = defaultDir
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return m.RunConfig{}, fmt.Errorf("resolve project directory %q: %w", dir, err)
	}

	cfg := m.DefaultRunConfig(m.Path(root))
	cfg.PodPrefix = strings.TrimSpace(viper.GetString(podFlagName))
	cfg.SkipComponents = viper.GetBool(skipComponentsFlagName)
	cfg.AutoConfirm = viper.GetBool(forceFlagName)
	cfg.Parallel = viper.GetInt(runParallelConfigKey)
	cfg.Exclude = viper.GetStringSlice(excludeConfigKey)

	if exts := viper.GetStringSlice(scriptExtensionsKey); len(exts) > 0 {
		cfg.ScriptExtensions = exts
	}

	if exts := viper.GetStringSlice(templateExtensionsKey); len(exts) > 0 {
		cfg.TemplateExtensions = exts
	}

	if err := cfg.Validate(); err != nil {
		return m.RunConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
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

	// Numeric slog levels, e.g. -4 for debug.
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
