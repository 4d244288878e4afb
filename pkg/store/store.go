// Package store persists the shell's settings and command history as flat
// text records.
//
// Persistence is best-effort: loads fall back to defaults and saves report
// failures through a returned error that callers are free to ignore. Every
// failure is logged.
package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	DefaultWidth        = 800
	DefaultHeight       = 600
	DefaultHistoryLimit = 100

	DefaultSettingsFile = "settings.txt"
	DefaultHistoryFile  = "history.txt"
)

const (
	widthKey  = "Width"
	heightKey = "Height"
)

var ErrNotPositive = errors.New("value must be positive")

// Settings holds the persisted image dimensions.
type Settings struct {
	Width  int
	Height int
}

func DefaultSettings() Settings {
	return Settings{Width: DefaultWidth, Height: DefaultHeight}
}

// ParseDimension parses a signed 32-bit decimal integer and requires it to be
// greater than zero. Syntax and range failures come back as *strconv.NumError,
// a parsed value <= 0 as ErrNotPositive.
func ParseDimension(s string) (int, error) {
	n, err := parseInt(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return n, ErrNotPositive
	}
	return n, nil
}

// parseInt accepts an optional sign and surrounding whitespace, bounded to
// 32 bits.
func parseInt(s string) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

type Store struct {
	fs           FileSystem
	settingsPath string
	historyPath  string
	historyLimit int
	logger       *zap.Logger
}

func New(settingsPath, historyPath string, historyLimit int, logger *zap.Logger) *Store {
	return NewWithFS(OSFileSystem{}, settingsPath, historyPath, historyLimit, logger)
}

// NewWithFS creates a store that performs its I/O through fsys.
func NewWithFS(fsys FileSystem, settingsPath, historyPath string, historyLimit int, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}

	s := &Store{
		fs:           fsys,
		settingsPath: settingsPath,
		historyPath:  historyPath,
		historyLimit: historyLimit,
		logger:       logger.Named("store"),
	}

	return s
}

// LoadSettings reads the settings record. Lines without '=', unknown keys and
// non-integer values are skipped; the record is trusted for sign, so a stored
// zero or negative value is loaded as is. A missing or unreadable record
// yields DefaultSettings.
func (s *Store) LoadSettings() Settings {
	settings := DefaultSettings()

	lines, err := s.readLines(s.settingsPath)
	if err != nil {
		s.logReadError("settings", s.settingsPath, err)
		return settings
	}

	for _, line := range lines {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		n, err := parseInt(value)
		if err != nil {
			s.logger.Debug("skipping settings line", zap.String("line", line), zap.Error(err))
			continue
		}

		switch key {
		case widthKey:
			settings.Width = n
		case heightKey:
			settings.Height = n
		}
	}

	return settings
}

// SaveSettings overwrites the settings record with a Width line followed by a
// Height line.
func (s *Store) SaveSettings(settings Settings) error {
	lines := []string{
		fmt.Sprintf("%s=%d", widthKey, settings.Width),
		fmt.Sprintf("%s=%d", heightKey, settings.Height),
	}

	if err := s.writeLines(s.settingsPath, lines); err != nil {
		s.logger.Warn("failed to save settings", zap.String("path", s.settingsPath), zap.Error(err))
		return err
	}

	return nil
}

// LoadHistory returns the history record line by line, or an empty slice.
func (s *Store) LoadHistory() []string {
	lines, err := s.readLines(s.historyPath)
	if err != nil {
		s.logReadError("history", s.historyPath, err)
		return []string{}
	}

	return lines
}

// SaveHistory overwrites the history record with the most recent entries,
// dropping the oldest ones beyond the store's limit.
func (s *Store) SaveHistory(history []string) error {
	if len(history) > s.historyLimit {
		history = history[len(history)-s.historyLimit:]
	}

	if err := s.writeLines(s.historyPath, history); err != nil {
		s.logger.Warn("failed to save history", zap.String("path", s.historyPath), zap.Error(err))
		return err
	}

	return nil
}

func (s *Store) logReadError(record, path string, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("record not found", zap.String("record", record), zap.String("path", path))
		return
	}

	s.logger.Warn("failed to load record", zap.String("record", record), zap.String("path", path), zap.Error(err))
}

func (s *Store) readLines(path string) ([]string, error) {
	file, err := s.fs.OpenRead(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	lines := []string{}
	r := bufio.NewReader(file)

	for {
		line, err := r.ReadString('\n')

		if err != nil {
			if errors.Is(err, io.EOF) {
				// a final line without a newline still counts
				if line != "" {
					lines = append(lines, strings.TrimRight(line, "\r\n"))
				}
				return lines, nil
			}
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		lines = append(lines, strings.TrimRight(line, "\r\n"))
	}
}

func (s *Store) writeLines(path string, lines []string) error {
	file, err := s.fs.OpenWrite(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	w := bufio.NewWriter(file)
	for _, line := range lines {
		w.WriteString(line)
		w.WriteByte('\n')
	}

	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return file.Close()
}
