package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/idilsaglam/worktravel/internal/cli"
	"github.com/idilsaglam/worktravel/internal/config"
	"github.com/idilsaglam/worktravel/internal/logging"
	"github.com/idilsaglam/worktravel/internal/store"
	"github.com/idilsaglam/worktravel/internal/todos"
	"github.com/idilsaglam/worktravel/internal/tui"
	"github.com/idilsaglam/worktravel/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("worktravel", flag.ContinueOnError)
	fs.Usage = func() { cli.PrintHelp(os.Stderr) }
	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		ui.Fail(os.Stderr, "config: "+err.Error())
		return 2
	}

	// Hand the remaining args to the CLI runner.
	args := fs.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stderr)
		return 2
	}

	ui.SetColorForcing(false, os.Getenv("NO_COLOR") != "")
	ui.SetTheme(cfg.Theme)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.FromConfig(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	backend, err := store.Open(cfg.Backend, cfg.DataDir, logger)
	if err != nil {
		ui.Fail(os.Stderr, "open storage: "+err.Error())
		return 1
	}
	defer backend.Close()
	logger.Debug("storage opened", "backend", cfg.Backend, "dir", cfg.DataDir)

	opts := []todos.Option{
		todos.WithLogger(logger),
		todos.WithIDGenerator(todos.NewIDGenerator(cfg.IDScheme)),
	}
	s := todos.New(backend, opts...)
	modes := todos.NewModeStore(backend, opts...)
	if _, err := s.Load(ctx); err != nil {
		ui.Fail(os.Stderr, "load: "+err.Error())
		return 1
	}
	if _, err := modes.LoadMode(ctx); err != nil {
		ui.Fail(os.Stderr, "load: "+err.Error())
		return 1
	}

	app := &cli.App{
		Todos:  s,
		Modes:  modes,
		Logger: logger,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Interactive: func(ctx context.Context) error {
			return tui.Run(ctx, s, modes, logger)
		},
	}
	code := app.Run(ctx, args, cli.Options{Group: cfg.Group})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}
