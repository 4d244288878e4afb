package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Neev4n/imgshell/internal/config"
	"github.com/Neev4n/imgshell/internal/console"
	"github.com/Neev4n/imgshell/internal/logging"
	"github.com/Neev4n/imgshell/pkg/shell"
	"github.com/Neev4n/imgshell/pkg/store"
)

func main() {

	cfg, cfgErr := config.Load(config.FileName)

	logger, err := logging.New(cfg.LogFile, uuid.NewString())
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: logging disabled:", err)
		logger = zap.NewNop()
	}
	defer logger.Sync()

	if cfgErr != nil {
		logger.Warn("ignoring config file", zap.String("path", config.FileName), zap.Error(cfgErr))
	}

	st := store.New(cfg.SettingsFile, cfg.HistoryFile, cfg.HistoryLimit, logger)

	reader, err := console.Open(os.Stdin, os.Stdout, st.LoadHistory(), cfg.HistoryLimit)
	if err != nil {
		logger.Warn("falling back to plain input", zap.Error(err))
		reader = console.NewReader(os.Stdin, os.Stdout)
	}
	defer reader.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Run stops waiting on the pending read once ctx is done. Stopping the
	// notifier hands a second Ctrl-C back to the default handler.
	go func() {
		<-ctx.Done()
		reader.Close()
		cancel()
	}()

	s := shell.New(reader, os.Stdout, os.Stderr, st, shell.Options{
		Prompt:          cfg.Prompt,
		DefaultSaveName: cfg.DefaultSaveName,
		Color:           cfg.UseColor(console.IsTerminal(os.Stdout)),
		Logger:          logger,
	})

	if err := s.Run(ctx); err != nil {
		logger.Error("session ended on input error", zap.Error(err))
	}

}
