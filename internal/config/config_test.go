package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvClipsDir, "")
	t.Setenv(EnvDayField, "")
	t.Setenv(EnvDryRun, "")
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	exeDir, err := executableDir()
	if err != nil {
		t.Fatalf("executableDir returned error: %v", err)
	}
	wantDir, _ := filepath.Abs(exeDir)
	if cfg.ClipsDir != wantDir {
		t.Fatalf("ClipsDir = %q, want %q", cfg.ClipsDir, wantDir)
	}
	if cfg.Extension != defaultExtension {
		t.Fatalf("Extension = %q, want %q", cfg.Extension, defaultExtension)
	}
	if cfg.TokenURL != defaultTokenURL || cfg.ClipsURL != defaultClipsURL {
		t.Fatalf("endpoints = %q %q, want defaults", cfg.TokenURL, cfg.ClipsURL)
	}
	if cfg.DayField != DayOfMonth {
		t.Fatalf("DayField = %q, want %q", cfg.DayField, DayOfMonth)
	}
	if cfg.RenameLog != filepath.Join(wantDir, defaultRenameLog) {
		t.Fatalf("RenameLog = %q, want it in clips dir", cfg.RenameLog)
	}
	if cfg.CredentialsDir != wantDir {
		t.Fatalf("CredentialsDir = %q, want %q", cfg.CredentialsDir, wantDir)
	}
	if cfg.RequestTimeout != defaultRequestTimeout {
		t.Fatalf("RequestTimeout = %v, want %v", cfg.RequestTimeout, defaultRequestTimeout)
	}
	if !cfg.PauseOnExit {
		t.Fatalf("PauseOnExit = false, want true")
	}
	if cfg.Location != time.Local {
		t.Fatalf("Location = %v, want Local", cfg.Location)
	}
}

func TestLoad_ParsesAndResolvesPaths(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
clips_dir = "  ~/clips  "
extension = "mkv"
credentials_dir = "~/.secrets"
rename_log = "audit/renames.log"
debug_log = "/tmp/cliprename-debug.log"
day_field = "WEEKDAY"
timezone = "UTC"
request_timeout = "5s"
pause_on_exit = false
strict_save = true
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	clips := filepath.Join(home, "clips")
	if cfg.ClipsDir != clips {
		t.Fatalf("ClipsDir = %q, want %q", cfg.ClipsDir, clips)
	}
	if cfg.Extension != ".mkv" {
		t.Fatalf("Extension = %q, want %q", cfg.Extension, ".mkv")
	}
	if cfg.CredentialsDir != filepath.Join(home, ".secrets") {
		t.Fatalf("CredentialsDir = %q, want under HOME", cfg.CredentialsDir)
	}
	if cfg.RenameLog != filepath.Join(clips, "audit", "renames.log") {
		t.Fatalf("RenameLog = %q, want it relative to clips dir", cfg.RenameLog)
	}
	if cfg.DebugLog != "/tmp/cliprename-debug.log" {
		t.Fatalf("DebugLog = %q, want absolute path kept", cfg.DebugLog)
	}
	if cfg.DayField != DayOfWeek {
		t.Fatalf("DayField = %q, want %q", cfg.DayField, DayOfWeek)
	}
	if cfg.Location.String() != "UTC" {
		t.Fatalf("Location = %v, want UTC", cfg.Location)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
	if cfg.PauseOnExit || !cfg.StrictSave {
		t.Fatalf("PauseOnExit=%v StrictSave=%v, want false/true", cfg.PauseOnExit, cfg.StrictSave)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`clips_dir = "/nowhere"`+"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv(EnvClipsDir, dir)
	t.Setenv(EnvDayField, "weekday")
	t.Setenv(EnvDryRun, "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ClipsDir != dir {
		t.Fatalf("ClipsDir = %q, want %q", cfg.ClipsDir, dir)
	}
	if cfg.DayField != DayOfWeek || !cfg.DryRun {
		t.Fatalf("DayField=%q DryRun=%v, want weekday/true", cfg.DayField, cfg.DryRun)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		body string
		want string
	}{
		{"invalid toml", `clips_dir = [`, "parse config"},
		{"bad day field", `day_field = "fortnight"`, "day_field"},
		{"bad timeout", `request_timeout = "soon"`, "request_timeout"},
		{"bad timezone", `timezone = "Mars/Olympus"`, "timezone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte("clips_dir = \"/tmp\"\n"+tt.body+"\n"), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load returned nil error, want %s error", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %q, want it to mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestSetClipsDir_MovesDerivedPaths(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("clips_dir = \""+filepath.ToSlash(dir)+"\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	other := t.TempDir()
	cfg.SetClipsDir(other)
	if cfg.RenameLog != filepath.Join(other, defaultRenameLog) {
		t.Fatalf("RenameLog = %q, want it to follow the clips dir", cfg.RenameLog)
	}
	if cfg.DebugLog != filepath.Join(other, defaultDebugLog) {
		t.Fatalf("DebugLog = %q, want it to follow the clips dir", cfg.DebugLog)
	}
	if cfg.CredentialsDir != other {
		t.Fatalf("CredentialsDir = %q, want %q", cfg.CredentialsDir, other)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestSetClipsDir_KeepsCustomLogPathsRelative(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	debug := filepath.Join(t.TempDir(), "debug.log")
	path := filepath.Join(dir, "config.toml")
	body := "clips_dir = \"" + filepath.ToSlash(dir) + "\"\n" +
		"rename_log = \"audit/renames.log\"\n" +
		"debug_log = \"" + filepath.ToSlash(debug) + "\"\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RenameLog != filepath.Join(dir, "audit", "renames.log") {
		t.Fatalf("RenameLog = %q, want it under the configured clips dir", cfg.RenameLog)
	}

	other := t.TempDir()
	cfg.SetClipsDir(other)
	if cfg.RenameLog != filepath.Join(other, "audit", "renames.log") {
		t.Fatalf("RenameLog = %q, want it to follow the new clips dir", cfg.RenameLog)
	}
	if cfg.DebugLog != debug {
		t.Fatalf("DebugLog = %q, want absolute %q kept", cfg.DebugLog, debug)
	}
}
