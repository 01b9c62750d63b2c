package app

import (
	"errors"

	"github.com/five82/cliprename/internal/credentials"
	"github.com/five82/cliprename/internal/rename"
	"github.com/five82/cliprename/internal/twitch"
)

// ConfigError wraps a failure to load or apply configuration.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return "config: " + e.Err.Error() }

func (e *ConfigError) Unwrap() error { return e.Err }

// Error kinds reported by Kind.
const (
	KindCredentialRead  = "credential_read"
	KindCredentialWrite = "credential_write"
	KindTokenRequest    = "token_request"
	KindMetadataRequest = "metadata_request"
	KindConsistency     = "consistency"
	KindFileRename      = "file_rename"
	KindTimestamp       = "timestamp"
	KindConfig          = "config"
	KindUnknown         = "unknown"
)

// Kind classifies err for reporting. A nil error has no kind.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	var (
		readErr  *credentials.ReadError
		writeErr *credentials.WriteError
		reqErr   *twitch.RequestError
		consErr  *rename.ConsistencyError
		fileErr  *rename.FileError
		tsErr    *rename.TimestampError
		cfgErr   *ConfigError
	)
	switch {
	case errors.As(err, &readErr):
		return KindCredentialRead
	case errors.As(err, &writeErr):
		return KindCredentialWrite
	case errors.As(err, &reqErr):
		if reqErr.Op == "token" {
			return KindTokenRequest
		}
		return KindMetadataRequest
	case errors.As(err, &consErr):
		return KindConsistency
	case errors.As(err, &fileErr):
		return KindFileRename
	case errors.As(err, &tsErr):
		return KindTimestamp
	case errors.As(err, &cfgErr):
		return KindConfig
	}
	return KindUnknown
}
