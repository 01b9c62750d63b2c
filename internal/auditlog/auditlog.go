// Package auditlog appends rename records and debug dumps to plain text files.
// Every write opens the file in append mode and closes it again, so no handle
// outlives a single record.
package auditlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const timestampLayout = time.RFC3339

// Log is an append-only rename log.
type Log struct {
	path string
	now  func() time.Time
}

// New returns a Log writing to path.
func New(path string) *Log {
	return &Log{path: path, now: time.Now}
}

// Path returns the log file path.
func (l *Log) Path() string {
	return l.path
}

// Batch brackets the records of one run.
type Batch struct {
	log     *Log
	ID      string
	Started time.Time
}

// Begin writes the start marker of a new batch.
func (l *Log) Begin() (*Batch, error) {
	b := &Batch{log: l, ID: uuid.NewString(), Started: l.now()}
	line := fmt.Sprintf("[%s] batch %s started\n", b.Started.Format(timestampLayout), b.ID)
	if err := appendFile(l.path, line); err != nil {
		return nil, err
	}
	return b, nil
}

// Record appends one old-name to new-name mapping.
func (b *Batch) Record(oldName, newName string) error {
	return appendFile(b.log.path, fmt.Sprintf("- %s\n  => %s\n", oldName, newName))
}

// End writes the closing marker. cause, when non-nil, marks the batch as aborted.
func (b *Batch) End(renamed int, cause error) error {
	ts := b.log.now().Format(timestampLayout)
	line := fmt.Sprintf("[%s] batch %s finished (%d renamed)\n", ts, b.ID, renamed)
	if cause != nil {
		line = fmt.Sprintf("[%s] batch %s aborted after %d renamed: %v\n", ts, b.ID, renamed, cause)
	}
	return appendFile(b.log.path, line)
}

// Dump appends a timestamped JSON rendering of sections to the debug log at path.
func Dump(path, reason string, sections map[string]any) error {
	body, err := json.MarshalIndent(sections, "", "  ")
	if err != nil {
		return fmt.Errorf("encode debug dump: %w", err)
	}
	text := fmt.Sprintf("[%s] %s\n%s\n", time.Now().Format(timestampLayout), reason, body)
	return appendFile(path, text)
}

func appendFile(path, text string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	if _, err := f.WriteString(text); err != nil {
		_ = f.Close()
		return fmt.Errorf("write log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close log: %w", err)
	}
	return nil
}
