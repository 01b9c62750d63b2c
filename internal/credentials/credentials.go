// Package credentials resolves the Twitch application identifier and secret.
// They are stored as two raw text files, by default next to the clips.
package credentials

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// Credentials identify the Twitch application.
type Credentials struct {
	ID     string
	Secret string
}

// Store locates the two credential files.
type Store struct {
	Dir        string
	IDFile     string
	SecretFile string
}

// Environment variables consulted when the files are absent.
const (
	EnvClientID     = "CLIPRENAME_CLIENT_ID"
	EnvClientSecret = "CLIPRENAME_CLIENT_SECRET"
)

// ReadError reports a credential file that exists but could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read credential file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a failure to persist credentials.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write credential file %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// IDPath returns the full path of the identifier file.
func (s Store) IDPath() string {
	return filepath.Join(s.Dir, s.IDFile)
}

// SecretPath returns the full path of the secret file.
func (s Store) SecretPath() string {
	return filepath.Join(s.Dir, s.SecretFile)
}

// Exists reports whether both credential files are present.
func (s Store) Exists() bool {
	return fileExists(s.IDPath()) && fileExists(s.SecretPath())
}

// Load returns the stored credentials verbatim. Contents are not trimmed, so
// a trailing newline in either file ends up in the value.
func (s Store) Load() (Credentials, error) {
	id, err := os.ReadFile(s.IDPath())
	if err != nil {
		return Credentials{}, &ReadError{Path: s.IDPath(), Err: err}
	}
	secret, err := os.ReadFile(s.SecretPath())
	if err != nil {
		return Credentials{}, &ReadError{Path: s.SecretPath(), Err: err}
	}
	return Credentials{ID: string(id), Secret: string(secret)}, nil
}

// Save writes both files, creating the directory as needed.
func (s Store) Save(c Credentials) error {
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return &WriteError{Path: s.Dir, Err: err}
	}
	if err := os.WriteFile(s.IDPath(), []byte(c.ID), 0o600); err != nil {
		return &WriteError{Path: s.IDPath(), Err: err}
	}
	if err := os.WriteFile(s.SecretPath(), []byte(c.Secret), 0o600); err != nil {
		return &WriteError{Path: s.SecretPath(), Err: err}
	}
	return nil
}

// FromEnv returns credentials from the environment when both variables are set.
func FromEnv() (Credentials, bool) {
	id := strings.TrimSpace(os.Getenv(EnvClientID))
	secret := strings.TrimSpace(os.Getenv(EnvClientSecret))
	if id == "" || secret == "" {
		return Credentials{}, false
	}
	return Credentials{ID: id, Secret: secret}, true
}

// fileExists reports false only when path is known to be absent. Other stat
// failures count as present so Load can surface them as read errors.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	if err == nil {
		return true
	}
	return !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, syscall.ENOTDIR)
}
