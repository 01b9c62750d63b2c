package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/five82/cliprename/internal/app"
	"github.com/five82/cliprename/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("cliprename", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "override config path (optional, defaults to ~/.config/cliprename/config.toml)")
	clipsDir := fs.String("dir", "", "directory holding the clips (optional, defaults to clips_dir)")
	dryRun := fs.Bool("dry-run", false, "print the planned renames without touching any file")
	history := fs.Int("history", 0, "print the newest N batches of the rename log and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return 2
	}

	// A missing .env is fine; values already in the environment win.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	interactive := ui.IsTerminal(os.Stdin)
	opts := app.Options{
		ConfigPath:  *configPath,
		ClipsDir:    *clipsDir,
		DryRun:      *dryRun,
		In:          os.Stdin,
		Out:         os.Stdout,
		Err:         os.Stderr,
		Interactive: interactive,
		Color:       ui.ColorEnabled(os.Stdout),
	}

	var err error
	if *history > 0 {
		err = app.History(opts, *history)
	} else {
		err = app.Run(ctx, opts)
	}
	if err != nil {
		return 1
	}
	return 0
}
