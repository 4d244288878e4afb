// Package console provides the line readers the shell prompts with: readline
// editing for interactive terminals and a plain buffered reader for pipes and
// files.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Open picks a Terminal when in is a terminal and a Reader otherwise. history
// seeds the terminal's arrow-key recall, most recent last.
func Open(in *os.File, out io.Writer, history []string, historyLimit int) (LineReader, error) {
	if !IsTerminal(in) {
		return NewReader(in, out), nil
	}

	t, err := NewTerminal(in, out, history, historyLimit)
	if err != nil {
		return nil, err
	}

	return t, nil
}

// Reader prints the prompt itself and reads up to the next newline.
type Reader struct {
	in     *bufio.Reader
	out    io.Writer
	closer io.Closer
	once   sync.Once
}

func NewReader(in io.Reader, out io.Writer) *Reader {
	r := &Reader{
		in:  bufio.NewReader(in),
		out: out,
	}

	if c, ok := in.(io.Closer); ok {
		r.closer = c
	}

	return r
}

func (r *Reader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)

	line, err := r.in.ReadString('\n')

	if err != nil {
		// a final line without a newline still counts
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// Close closes the underlying input, unblocking a pending ReadLine where the
// platform allows it. Safe to call more than once.
func (r *Reader) Close() error {
	var err error
	r.once.Do(func() {
		if r.closer != nil {
			err = r.closer.Close()
		}
	})
	return err
}

// Terminal wraps a readline instance. Ctrl-C clears the current line.
type Terminal struct {
	rl   *readline.Instance
	once sync.Once
}

func NewTerminal(in io.ReadCloser, out io.Writer, history []string, historyLimit int) (*Terminal, error) {
	rl, err := readline.NewEx(&readline.Config{
		Stdin:                  in,
		Stdout:                 out,
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		HistoryLimit:           historyLimit,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing readline: %w", err)
	}

	t := &Terminal{rl: rl}
	for _, line := range history {
		t.rl.SaveHistory(line)
	}

	return t, nil
}

func (t *Terminal) ReadLine(prompt string) (string, error) {
	t.rl.SetPrompt(prompt)

	for {
		line, err := t.rl.Readline()

		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}

		if err != nil {
			return "", err
		}

		if trimmed := strings.TrimSpace(line); trimmed != "" {
			t.rl.SaveHistory(trimmed)
		}

		return line, nil
	}
}

func (t *Terminal) Close() error {
	var err error
	t.once.Do(func() {
		err = t.rl.Close()
	})
	return err
}
