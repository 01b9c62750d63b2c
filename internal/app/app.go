package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/five82/cliprename/internal/auditlog"
	"github.com/five82/cliprename/internal/config"
	"github.com/five82/cliprename/internal/credentials"
	"github.com/five82/cliprename/internal/rename"
	"github.com/five82/cliprename/internal/scan"
	"github.com/five82/cliprename/internal/twitch"
	"github.com/five82/cliprename/internal/ui"
)

// Options configure a cliprename run.
type Options struct {
	ConfigPath string
	ClipsDir   string // overrides clips_dir when set
	DryRun     bool   // forces dry-run when true

	In          io.Reader
	Out         io.Writer
	Err         io.Writer
	Interactive bool // stdin is a terminal
	Color       bool

	Prompter ui.Prompter        // nil picks a terminal or line prompter
	Fetcher  twitch.ClipFetcher // nil builds a client from config
}

// Run executes the rename pipeline once and reports its outcome on the
// console. The returned error has already been printed.
func Run(ctx context.Context, opts Options) error {
	opts = withDefaults(opts)

	cfg, cfgErr := loadConfig(opts)
	console := ui.NewConsole(opts.Out, opts.Err, cfg.Theme, opts.Color)
	prompter := pickPrompter(opts, console)
	if cfgErr != nil {
		report(console, cfgErr)
		return cfgErr
	}

	if cfg.PauseOnExit && opts.Interactive {
		defer func() { _ = prompter.Pause("Press enter to exit") }()
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		client, err := twitch.NewClient(cfg.TokenURL, cfg.ClipsURL, cfg.RequestTimeout)
		if err != nil {
			err = &ConfigError{Err: err}
			report(console, err)
			return err
		}
		fetcher = client
	}

	session := &Session{Config: cfg}
	if err := runPipeline(ctx, session, console, prompter, fetcher); err != nil {
		report(console, err)
		return err
	}
	return nil
}

// History prints the newest n batches of the rename log.
func History(opts Options, n int) error {
	opts = withDefaults(opts)
	cfg, err := loadConfig(opts)
	console := ui.NewConsole(opts.Out, opts.Err, cfg.Theme, opts.Color)
	if err != nil {
		report(console, err)
		return err
	}

	batches, err := auditlog.Recent(cfg.RenameLog, n)
	if err != nil {
		report(console, err)
		return err
	}
	if len(batches) == 0 {
		console.Infof("no renames logged in %s", cfg.RenameLog)
		return nil
	}
	for _, batch := range batches {
		for _, line := range batch {
			console.Plain(line)
		}
	}
	return nil
}

func runPipeline(ctx context.Context, s *Session, console *ui.Console, prompter ui.Prompter, fetcher twitch.ClipFetcher) error {
	cfg := s.Config
	console.Title("cliprename: " + cfg.ClipsDir)
	if cfg.DryRun {
		console.Warnf("dry run: no files will be renamed")
	}

	store := s.credentialStore()
	res, err := credentials.Resolve(store, prompter)
	if err != nil {
		return err
	}
	switch res.Source {
	case credentials.SourceFile:
		console.Infof("loaded credentials from %s", store.Dir)
	case credentials.SourceEnv:
		console.Infof("using credentials from %s/%s", credentials.EnvClientID, credentials.EnvClientSecret)
	}
	if res.SaveErr != nil {
		if cfg.StrictSave {
			return res.SaveErr
		}
		console.Warnf("%v; continuing with the entered credentials", res.SaveErr)
	}
	if res.Saved {
		console.Successf("saved credentials to %s", store.Dir)
	}
	s.Credentials = res.Credentials

	console.Infof("requesting access token")
	token, err := fetcher.FetchToken(ctx, s.Credentials.ID, s.Credentials.Secret)
	if err != nil {
		return fmt.Errorf("acquire token: %w", err)
	}
	s.Token = token
	console.Successf("access token acquired (expires in %ds)", token.ExpiresIn)

	refs, err := scan.Dir(cfg.ClipsDir, cfg.Extension, console)
	if err != nil {
		return err
	}

	clips, err := fetcher.FetchClips(ctx, s.Credentials.ID, s.Token, scan.IDs(refs))
	if err != nil {
		return fmt.Errorf("fetch clip metadata: %w", err)
	}
	if len(refs) > 0 {
		console.Infof("received metadata for %d clip(s)", len(clips))
	}

	auditLog := auditlog.New(cfg.RenameLog)
	renamer := rename.New(rename.OptionsFrom(cfg), auditLog, console)
	ops, err := renamer.Run(refs, clips)
	if err != nil {
		return err
	}

	if cfg.DryRun {
		console.Successf("dry run complete: %d file(s) would be renamed", len(ops))
		return nil
	}
	console.Successf("renamed %d file(s), log: %s", len(ops), auditLog.Path())
	return nil
}

func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return cfg, &ConfigError{Err: err}
	}
	if opts.ClipsDir != "" {
		dir, err := filepath.Abs(opts.ClipsDir)
		if err != nil {
			return cfg, &ConfigError{Err: fmt.Errorf("clips dir: %w", err)}
		}
		cfg.SetClipsDir(dir)
	}
	if opts.DryRun {
		cfg.DryRun = true
	}
	if !slices.Contains(ui.ThemeNames(), cfg.Theme) {
		return cfg, &ConfigError{Err: fmt.Errorf("unknown theme %q (available: %s)",
			cfg.Theme, strings.Join(ui.ThemeNames(), ", "))}
	}
	return cfg, nil
}

func withDefaults(opts Options) Options {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	return opts
}

func pickPrompter(opts Options, console *ui.Console) ui.Prompter {
	if opts.Prompter != nil {
		return opts.Prompter
	}
	if opts.Interactive {
		return ui.NewTerminalPrompter(opts.In, opts.Out, console.Styles())
	}
	return ui.NewLinePrompter(opts.In, opts.Out)
}

func report(console *ui.Console, err error) {
	console.Errorf("%s: %v", Kind(err), err)
}
