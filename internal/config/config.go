package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Day field policies for generated file names.
const (
	DayOfMonth = "month"
	DayOfWeek  = "weekday"
)

// Config captures everything a rename run needs to know up front.
type Config struct {
	ClipsDir         string
	Extension        string
	CredentialsDir   string
	ClientIDFile     string
	ClientSecretFile string
	RenameLog        string
	DebugLog         string
	TokenURL         string
	ClipsURL         string
	DayField         string
	Location         *time.Location
	Theme            string
	RequestTimeout   time.Duration
	PauseOnExit      bool
	StrictSave       bool
	DryRun           bool

	// Configured log paths before resolution; relative ones follow ClipsDir.
	renameLogRaw string
	debugLogRaw  string
}

const (
	defaultConfigPath     = "~/.config/cliprename/config.toml"
	defaultExtension      = ".mp4"
	defaultClientIDFile   = "client_id.txt"
	defaultClientSecret   = "client_secret.txt"
	defaultRenameLog      = "renames.log"
	defaultDebugLog       = "debug.log"
	defaultTokenURL       = "https://id.twitch.tv/oauth2/token"
	defaultClipsURL       = "https://api.twitch.tv/helix/clips"
	defaultTheme          = "Nightfox"
	defaultRequestTimeout = 30 * time.Second
)

// Environment variables that override file values.
const (
	EnvClipsDir = "CLIPRENAME_CLIPS_DIR"
	EnvDayField = "CLIPRENAME_DAY_FIELD"
	EnvDryRun   = "CLIPRENAME_DRY_RUN"
)

type rawConfig struct {
	ClipsDir         string `toml:"clips_dir"`
	Extension        string `toml:"extension"`
	CredentialsDir   string `toml:"credentials_dir"`
	ClientIDFile     string `toml:"client_id_file"`
	ClientSecretFile string `toml:"client_secret_file"`
	RenameLog        string `toml:"rename_log"`
	DebugLog         string `toml:"debug_log"`
	TokenURL         string `toml:"token_url"`
	ClipsURL         string `toml:"clips_url"`
	DayField         string `toml:"day_field"`
	Timezone         string `toml:"timezone"`
	Theme            string `toml:"theme"`
	RequestTimeout   string `toml:"request_timeout"`
	PauseOnExit      *bool  `toml:"pause_on_exit"`
	StrictSave       bool   `toml:"strict_save"`
	DryRun           bool   `toml:"dry_run"`
}

// Load locates and parses the config file, falling back to defaults when missing.
// Environment overrides are applied after the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw rawConfig
	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// defaults
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	applyEnv(&raw)
	return build(raw)
}

func applyEnv(raw *rawConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvClipsDir)); v != "" {
		raw.ClipsDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDayField)); v != "" {
		raw.DayField = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDryRun)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			raw.DryRun = b
		}
	}
}

func build(raw rawConfig) (Config, error) {
	cfg := Config{
		Extension:        orDefault(raw.Extension, defaultExtension),
		ClientIDFile:     orDefault(raw.ClientIDFile, defaultClientIDFile),
		ClientSecretFile: orDefault(raw.ClientSecretFile, defaultClientSecret),
		TokenURL:         orDefault(raw.TokenURL, defaultTokenURL),
		ClipsURL:         orDefault(raw.ClipsURL, defaultClipsURL),
		DayField:         strings.ToLower(orDefault(raw.DayField, DayOfMonth)),
		Theme:            orDefault(raw.Theme, defaultTheme),
		RequestTimeout:   defaultRequestTimeout,
		PauseOnExit:      true,
		StrictSave:       raw.StrictSave,
		DryRun:           raw.DryRun,
	}
	if !strings.HasPrefix(cfg.Extension, ".") {
		cfg.Extension = "." + cfg.Extension
	}
	if raw.PauseOnExit != nil {
		cfg.PauseOnExit = *raw.PauseOnExit
	}

	switch cfg.DayField {
	case DayOfMonth, DayOfWeek:
	default:
		return Config{}, fmt.Errorf("day_field must be %q or %q, got %q", DayOfMonth, DayOfWeek, raw.DayField)
	}

	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("request_timeout %q is not a positive duration", v)
		}
		cfg.RequestTimeout = d
	}

	cfg.Location = time.Local
	if tz := strings.TrimSpace(raw.Timezone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return Config{}, fmt.Errorf("load timezone %q: %w", tz, err)
		}
		cfg.Location = loc
	}

	clipsDir := strings.TrimSpace(raw.ClipsDir)
	if clipsDir == "" {
		dir, err := executableDir()
		if err != nil {
			return Config{}, err
		}
		clipsDir = dir
	}
	expanded, err := expandPath(clipsDir)
	if err != nil {
		return Config{}, fmt.Errorf("clips_dir: %w", err)
	}
	cfg.renameLogRaw = orDefault(raw.RenameLog, defaultRenameLog)
	cfg.debugLogRaw = orDefault(raw.DebugLog, defaultDebugLog)
	cfg.SetClipsDir(expanded)

	if dir := strings.TrimSpace(raw.CredentialsDir); dir != "" {
		if cfg.CredentialsDir, err = expandPath(dir); err != nil {
			return Config{}, fmt.Errorf("credentials_dir: %w", err)
		}
	}
	return cfg, nil
}

// SetClipsDir points the config at dir and re-derives the paths that live
// next to the clips: relative log paths and a credentials dir that was not
// set explicitly.
func (c *Config) SetClipsDir(dir string) {
	prevCreds := c.ClipsDir
	c.ClipsDir = dir
	c.RenameLog = c.resolveInClips(orDefault(c.renameLogRaw, defaultRenameLog))
	c.DebugLog = c.resolveInClips(orDefault(c.debugLogRaw, defaultDebugLog))
	if c.CredentialsDir == "" || c.CredentialsDir == prevCreds {
		c.CredentialsDir = dir
	}
}

func (c Config) resolveInClips(path string) string {
	if strings.HasPrefix(path, "~") || filepath.IsAbs(path) {
		return mustExpand(path)
	}
	return filepath.Join(c.ClipsDir, path)
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	return filepath.Dir(exe), nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
