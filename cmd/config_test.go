package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "podify", configBaseName)
	assert.Equal(t, "podify.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "dir", dirFlagName)
	assert.Equal(t, "pod", podFlagName)
	assert.Equal(t, "exclude", excludeFlagName)
	assert.Equal(t, "parallel", runParallelFlagName)
	assert.Equal(t, "run.parallel", runParallelConfigKey)
	assert.Equal(t, "paths.exclude", excludeConfigKey)
	assert.Equal(t, "metrics.file", metricsFileKey)
	assert.Equal(t, 8, defaultRunParallel)
	assert.Equal(t, ".podify.log", defaultLogFilename)
	assert.Equal(t, "PODIFY", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"chatty", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelInfo))
		})
	}
}

func TestReadConfigFile(t *testing.T) {
	newViper := func(t *testing.T, contents string) *viper.Viper {
		t.Helper()

		path := filepath.Join(t.TempDir(), configFileName)
		if contents != "" {
			require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
		}

		v := viper.New()
		v.SetConfigType("yaml")
		v.SetConfigFile(path)
		v.SetDefault(podFlagName, "pods")

		return v
	}

	t.Run("missing file keeps defaults", func(t *testing.T) {
		v := newViper(t, "")
		require.NoError(t, readConfigFile(v))
		assert.Equal(t, "pods", v.GetString(podFlagName))
	})

	t.Run("valid file overrides defaults", func(t *testing.T) {
		v := newViper(t, "pod: features\n")
		require.NoError(t, readConfigFile(v))
		assert.Equal(t, "features", v.GetString(podFlagName))
	})

	t.Run("malformed file is reported", func(t *testing.T) {
		v := newViper(t, "pod: [features\n")
		err := readConfigFile(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), configFileName)
		assert.Equal(t, "pods", v.GetString(podFlagName))
	})
}
