package shell

import "github.com/Neev4n/imgshell/pkg/store"

type Parser interface {
	Parse(line string) []string
}

// LineReader blocks until one line of input is available. The returned line
// has no trailing newline.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Persistence is the durable side of a session. Save errors are advisory.
type Persistence interface {
	LoadSettings() store.Settings
	SaveSettings(settings store.Settings) error
	LoadHistory() []string
	SaveHistory(history []string) error
}
