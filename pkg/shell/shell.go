package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/Neev4n/imgshell/pkg/store"
)

const (
	DefaultPrompt   = "> "
	DefaultSaveName = "output.jpg"
)

// exit error
var ErrExit = errors.New("exit")

// Builtin handles one command. Validation failures are printed by the
// handler itself; the only error it returns is ErrExit.
type Builtin func(args []string, s *Shell) error

// Session is the state owned by one run of the shell.
type Session struct {
	Settings store.Settings
	History  []string
	running  bool
}

type Options struct {
	Prompt          string
	DefaultSaveName string
	Color           bool
	Logger          *zap.Logger
}

type Shell struct {
	in       LineReader
	Out      io.Writer
	Err      io.Writer
	store    Persistence
	parser   Parser
	builtins map[string]Builtin
	session  *Session
	prompt   string
	saveName string
	theme    theme
	logger   *zap.Logger
}

func New(reader LineReader, out, errw io.Writer, persistence Persistence, opts Options) *Shell {
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	if opts.DefaultSaveName == "" {
		opts.DefaultSaveName = DefaultSaveName
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s := &Shell{
		in:       reader,
		Out:      out,
		Err:      errw,
		store:    persistence,
		parser:   NewFieldsParser(),
		builtins: make(map[string]Builtin),
		prompt:   opts.Prompt,
		saveName: opts.DefaultSaveName,
		theme:    theme{color: opts.Color},
		logger:   opts.Logger.Named("shell"),
	}

	s.registerBuiltins()
	return s
}

// Run loads the session from the store and processes lines until exit/quit,
// end of input or cancellation of ctx. Settings are persisted once more on the
// way out. Only a read failure other than EOF is returned.
func (s *Shell) Run(ctx context.Context) error {
	s.session = &Session{
		Settings: s.store.LoadSettings(),
		History:  s.store.LoadHistory(),
		running:  true,
	}
	s.logger.Debug("session started",
		zap.Int("width", s.session.Settings.Width),
		zap.Int("height", s.session.Settings.Height),
		zap.Int("history", len(s.session.History)))

	fmt.Fprintln(s.Out, s.theme.render(titleStyle, "=== Image Management System ==="))
	s.printHelp()

	var readErr error
	for s.session.running {
		if err := ctx.Err(); err != nil {
			s.logger.Debug("session cancelled", zap.Error(err))
			break
		}

		fmt.Fprintln(s.Out)
		line, err := s.readLine(ctx)

		if err != nil {
			if ctx.Err() != nil {
				s.logger.Debug("session cancelled while reading", zap.Error(err))
				break
			}
			if !errors.Is(err, io.EOF) {
				fmt.Fprintln(s.Err, "error reading input:", err)
				readErr = err
			}
			s.logger.Debug("input closed", zap.Error(err))
			break
		}

		// a line that raced with cancellation is dropped
		if ctx.Err() != nil {
			s.logger.Debug("session cancelled", zap.String("dropped", line))
			break
		}

		s.execute(line)
	}

	s.session.running = false
	s.saveSettings()
	fmt.Fprintln(s.Out, "Goodbye!")

	return readErr
}

type readResult struct {
	line string
	err  error
}

// readLine waits for the next line or for ctx to end, whichever comes first.
// The read itself runs on its own goroutine; one abandoned on cancellation
// finishes into a buffered channel nobody drains.
func (s *Shell) readLine(ctx context.Context) (string, error) {
	results := make(chan readResult, 1)

	go func() {
		line, err := s.in.ReadLine(s.prompt)
		results <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-results:
		return r.line, r.err
	}
}

// execute records one input line in the history and dispatches it.
func (s *Shell) execute(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	s.session.History = append(s.session.History, line)
	_ = s.store.SaveHistory(s.session.History)

	fields := s.parser.Parse(line)
	if len(fields) == 0 {
		return
	}

	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	fn, ok := s.builtins[cmd]
	if !ok {
		s.logger.Debug("unknown command", zap.String("command", cmd))
		fmt.Fprintln(s.Out, "Unknown command. Type 'help' for help.")
		return
	}

	s.logger.Debug("dispatch", zap.String("command", cmd), zap.Strings("args", args))

	if err := fn(args, s); errors.Is(err, ErrExit) {
		s.session.running = false
	}
}

func (s *Shell) saveSettings() {
	// failures are logged by the store
	_ = s.store.SaveSettings(s.session.Settings)
}

func (s *Shell) printSuccess(format string, a ...any) {
	fmt.Fprintln(s.Out, s.theme.render(successStyle, "✓ "+fmt.Sprintf(format, a...)))
}

func (s *Shell) printFailure(format string, a ...any) {
	fmt.Fprintln(s.Out, s.theme.render(failureStyle, "✗ "+fmt.Sprintf(format, a...)))
}

func (s *Shell) printError(format string, a ...any) {
	fmt.Fprintln(s.Out, s.theme.render(errorStyle, "Error: "+fmt.Sprintf(format, a...)))
}
