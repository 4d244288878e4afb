package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Neev4n/imgshell/internal/config"
)

func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), config.FileName))

	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
	require.Equal(t, "settings.txt", cfg.SettingsFile)
	require.Equal(t, "history.txt", cfg.HistoryFile)
	require.Equal(t, 100, cfg.HistoryLimit)
	require.Equal(t, "output.jpg", cfg.DefaultSaveName)
	require.Equal(t, "> ", cfg.Prompt)
	require.Empty(t, cfg.LogFile)
}

func TestLoad_FullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	content := `
settings_file = "state/settings.txt"
history_file = "state/history.txt"
history_limit = 25
default_save_name = "result.png"
prompt = "img> "
log_file = "imgshell.log"
color = "NEVER"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, config.Config{
		SettingsFile:    "state/settings.txt",
		HistoryFile:     "state/history.txt",
		HistoryLimit:    25,
		DefaultSaveName: "result.png",
		Prompt:          "img> ",
		LogFile:         "imgshell.log",
		Color:           config.ColorNever,
	}, cfg)
}

func TestParse_InvalidValuesFallBack(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, cfg config.Config)
	}{
		{
			name:  "zero history limit",
			input: "history_limit = 0",
			check: func(t *testing.T, cfg config.Config) {
				require.Equal(t, 100, cfg.HistoryLimit)
			},
		},
		{
			name:  "negative history limit",
			input: "history_limit = -4",
			check: func(t *testing.T, cfg config.Config) {
				require.Equal(t, 100, cfg.HistoryLimit)
			},
		},
		{
			name:  "blank paths",
			input: "settings_file = \"  \"\nhistory_file = \"\"",
			check: func(t *testing.T, cfg config.Config) {
				require.Equal(t, "settings.txt", cfg.SettingsFile)
				require.Equal(t, "history.txt", cfg.HistoryFile)
			},
		},
		{
			name:  "unknown colour mode",
			input: `color = "sometimes"`,
			check: func(t *testing.T, cfg config.Config) {
				require.Equal(t, config.ColorAuto, cfg.Color)
			},
		},
		{
			name:  "unknown keys ignored",
			input: "theme = \"dark\"\nprompt = \"$ \"",
			check: func(t *testing.T, cfg config.Config) {
				require.Equal(t, "$ ", cfg.Prompt)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Parse([]byte(tt.input))
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_Malformed_ReturnsDefaultsAndError(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("history_limit = [oops"), 0o644))

	cfg, err := config.Load(path)

	require.Error(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestLoad_Directory_ReturnsDefaultsAndError(t *testing.T) {
	cfg, err := config.Load(t.TempDir())

	require.Error(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestUseColor(t *testing.T) {
	require.True(t, config.Config{Color: config.ColorAlways}.UseColor(false))
	require.False(t, config.Config{Color: config.ColorNever}.UseColor(true))
	require.True(t, config.Config{Color: config.ColorAuto}.UseColor(true))
	require.False(t, config.Config{Color: config.ColorAuto}.UseColor(false))
}
