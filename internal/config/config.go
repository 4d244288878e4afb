// Package config loads the optional imgshell.toml file from the working
// directory. Every key has a default, so a missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/Neev4n/imgshell/pkg/shell"
	"github.com/Neev4n/imgshell/pkg/store"
)

const FileName = "imgshell.toml"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Config struct {
	SettingsFile    string `toml:"settings_file"`
	HistoryFile     string `toml:"history_file"`
	HistoryLimit    int    `toml:"history_limit"`
	DefaultSaveName string `toml:"default_save_name"`
	Prompt          string `toml:"prompt"`
	LogFile         string `toml:"log_file"`
	Color           string `toml:"color"`
}

func Default() Config {
	return Config{
		SettingsFile:    store.DefaultSettingsFile,
		HistoryFile:     store.DefaultHistoryFile,
		HistoryLimit:    store.DefaultHistoryLimit,
		DefaultSaveName: shell.DefaultSaveName,
		Prompt:          shell.DefaultPrompt,
		Color:           ColorAuto,
	}
}

// Load reads path over the defaults. A missing file yields Default() and no
// error; an unreadable or malformed one yields Default() and the error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize replaces unusable values with their defaults.
func (c *Config) normalize() {
	def := Default()

	if strings.TrimSpace(c.SettingsFile) == "" {
		c.SettingsFile = def.SettingsFile
	}
	if strings.TrimSpace(c.HistoryFile) == "" {
		c.HistoryFile = def.HistoryFile
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = def.HistoryLimit
	}
	if strings.TrimSpace(c.DefaultSaveName) == "" {
		c.DefaultSaveName = def.DefaultSaveName
	}
	if c.Prompt == "" {
		c.Prompt = def.Prompt
	}

	switch strings.ToLower(c.Color) {
	case ColorAlways, ColorNever:
		c.Color = strings.ToLower(c.Color)
	default:
		c.Color = ColorAuto
	}
}

// UseColor resolves the colour mode; isTerminal is consulted only for auto.
func (c Config) UseColor(isTerminal bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal
	}
}
