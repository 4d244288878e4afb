package shell

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Neev4n/imgshell/pkg/store"
)

var helpLines = []string{
	"  load <path>        - Load an image",
	"  info               - Show image information",
	"  resize <w> <h>     - Resize the image",
	"  save [path]        - Save the image",
	"  settings           - Show current settings",
	"  settings <p> <v>   - Change a setting",
	"  history            - Show command history",
	"  help               - Show this help",
	"  exit/quit          - Exit the program",
}

func (s *Shell) registerBuiltins() {

	s.builtins["load"] = func(args []string, s *Shell) error {
		if len(args) == 0 {
			fmt.Fprintln(s.Out, "Usage: load <path>")
			return nil
		}

		path := args[0]

		// existence check only, nothing is decoded
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			s.printSuccess("File '%s' loaded", path)
		} else {
			s.printFailure("File '%s' not found", path)
		}

		return nil
	}

	s.builtins["info"] = func(args []string, s *Shell) error {
		settings := s.session.Settings

		fmt.Fprintln(s.Out, "Image info:")
		fmt.Fprintf(s.Out, "  Size: %dx%d\n", settings.Width, settings.Height)
		fmt.Fprintln(s.Out, "  Format: JPEG")
		fmt.Fprintln(s.Out, "  File size: 3 MB")
		return nil
	}

	s.builtins["resize"] = func(args []string, s *Shell) error {
		if len(args) < 2 {
			fmt.Fprintln(s.Out, "Usage: resize <width> <height>")
			return nil
		}

		width, werr := store.ParseDimension(args[0])
		height, herr := store.ParseDimension(args[1])

		switch {
		case isFormatError(werr) || isFormatError(herr):
			s.printError("invalid number format")

		case werr != nil || herr != nil:
			s.printError("width and height must be positive numbers")

		default:
			s.session.Settings = store.Settings{Width: width, Height: height}
			s.saveSettings()
			s.printSuccess("Size changed to %dx%d", width, height)
		}

		return nil
	}

	s.builtins["save"] = func(args []string, s *Shell) error {
		path := s.saveName
		if len(args) > 0 {
			path = args[0]
		}

		s.printSuccess("Image saved as '%s'", path)
		return nil
	}

	s.builtins["settings"] = func(args []string, s *Shell) error {

		if len(args) == 0 {
			settings := s.session.Settings
			fmt.Fprintln(s.Out, "Current settings:")
			fmt.Fprintf(s.Out, "  Size: %dx%d\n", settings.Width, settings.Height)
			return nil
		}

		if len(args) < 2 {
			fmt.Fprintln(s.Out, "Usage: settings <parameter> <value>")
			fmt.Fprintln(s.Out, "Available parameters: width, height")
			return nil
		}

		param := strings.ToLower(args[0])

		switch param {
		case "width":
			s.setDimension("Width", args[1], func(settings *store.Settings, n int) { settings.Width = n })
		case "height":
			s.setDimension("Height", args[1], func(settings *store.Settings, n int) { settings.Height = n })
		default:
			fmt.Fprintf(s.Out, "Unknown parameter: %s\n", param)
		}

		return nil
	}

	s.builtins["history"] = func(args []string, s *Shell) error {
		fmt.Fprintln(s.Out, "Command history:")

		if len(s.session.History) == 0 {
			fmt.Fprintln(s.Out, s.theme.render(dimStyle, "  History is empty"))
			return nil
		}

		for i, line := range s.session.History {
			fmt.Fprintf(s.Out, "  %d. %s\n", i+1, line)
		}

		return nil
	}

	s.builtins["help"] = func(args []string, s *Shell) error {
		s.printHelp()
		return nil
	}

	exit := func(args []string, s *Shell) error {
		return ErrExit
	}
	s.builtins["exit"] = exit
	s.builtins["quit"] = exit
}

// setDimension validates value and, when it is a positive integer, applies it
// to the session settings and persists them.
func (s *Shell) setDimension(name, value string, apply func(*store.Settings, int)) {
	n, err := store.ParseDimension(value)
	if err != nil {
		s.logger.Debug("rejected setting", zap.String("name", name), zap.String("value", value), zap.Error(err))
		s.printError("%s must be a positive number", strings.ToLower(name))
		return
	}

	apply(&s.session.Settings, n)
	s.saveSettings()
	s.printSuccess("%s changed to: %d", name, n)
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.Out)
	fmt.Fprintln(s.Out, "Available commands:")
	for _, line := range helpLines {
		fmt.Fprintln(s.Out, line)
	}
}

func isFormatError(err error) bool {
	return err != nil && !errors.Is(err, store.ErrNotPositive)
}
