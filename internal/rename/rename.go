// Package rename joins scanned clip files to their metadata and renames them.
package rename

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/five82/cliprename/internal/auditlog"
	"github.com/five82/cliprename/internal/config"
	"github.com/five82/cliprename/internal/scan"
	"github.com/five82/cliprename/internal/twitch"
)

var renameFunc = os.Rename

// ConsistencyError reports a scanned file without a metadata record.
type ConsistencyError struct {
	ID   string
	Path string
}

func (e *ConsistencyError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("no clip id in %s, cannot match metadata", filepath.Base(e.Path))
	}
	return fmt.Sprintf("no metadata returned for clip %q (%s)", e.ID, filepath.Base(e.Path))
}

// FileError wraps an OS failure renaming a single file.
type FileError struct {
	From string
	To   string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("rename %s to %s: %v", e.From, e.To, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Reporter receives one line per rename.
type Reporter interface {
	Infof(format string, args ...any)
}

// Options control how destination names are built and whether files move.
type Options struct {
	DayField string
	Location *time.Location
	DryRun   bool
	DebugLog string
}

// OptionsFrom derives Options from the loaded config.
func OptionsFrom(cfg config.Config) Options {
	return Options{
		DayField: cfg.DayField,
		Location: cfg.Location,
		DryRun:   cfg.DryRun,
		DebugLog: cfg.DebugLog,
	}
}

// Op is one planned or performed rename.
type Op struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Renamer performs a batch of renames against an audit log.
type Renamer struct {
	opts     Options
	log      *auditlog.Log
	reporter Reporter
}

// New returns a Renamer. reporter may be nil.
func New(opts Options, log *auditlog.Log, reporter Reporter) *Renamer {
	return &Renamer{opts: opts, log: log, reporter: reporter}
}

// Run renames every ref in order using the clip with the same ID. The first
// ref without a clip aborts the batch with *ConsistencyError after a
// best-effort debug dump; earlier renames are kept. In dry-run mode the
// returned ops are only planned.
func (r *Renamer) Run(refs []scan.ClipFileRef, clips []twitch.Clip) ([]Op, error) {
	byID := make(map[string]twitch.Clip, len(clips))
	for _, c := range clips {
		if _, seen := byID[c.ID]; !seen {
			byID[c.ID] = c
		}
	}

	if r.opts.DryRun {
		return r.plan(refs, byID)
	}

	batch, err := r.log.Begin()
	if err != nil {
		return nil, fmt.Errorf("start rename log: %w", err)
	}

	ops := make([]Op, 0, len(refs))
	runErr := func() error {
		for _, ref := range refs {
			clip, ok := byID[ref.ID]
			if !ok || ref.ID == "" {
				r.dump(refs, clips)
				return &ConsistencyError{ID: ref.ID, Path: ref.Path}
			}
			op, err := r.target(ref, clip)
			if err != nil {
				return err
			}
			if err := move(ref.Path, filepath.Join(filepath.Dir(ref.Path), op.To)); err != nil {
				return err
			}
			ops = append(ops, op)
			if err := batch.Record(op.From, op.To); err != nil {
				return fmt.Errorf("record rename: %w", err)
			}
			r.report(op)
		}
		return nil
	}()

	if err := batch.End(len(ops), runErr); err != nil && runErr == nil {
		return ops, fmt.Errorf("close rename log: %w", err)
	}
	return ops, runErr
}

func (r *Renamer) plan(refs []scan.ClipFileRef, byID map[string]twitch.Clip) ([]Op, error) {
	ops := make([]Op, 0, len(refs))
	for _, ref := range refs {
		clip, ok := byID[ref.ID]
		if !ok || ref.ID == "" {
			return ops, &ConsistencyError{ID: ref.ID, Path: ref.Path}
		}
		op, err := r.target(ref, clip)
		if err != nil {
			return ops, err
		}
		ops = append(ops, op)
		r.report(op)
	}
	return ops, nil
}

func (r *Renamer) target(ref scan.ClipFileRef, clip twitch.Clip) (Op, error) {
	name, err := FileName(clip, filepath.Ext(ref.Path), r.opts.DayField, r.opts.Location)
	if err != nil {
		return Op{}, err
	}
	return Op{From: ref.Name(), To: name}, nil
}

func (r *Renamer) report(op Op) {
	if r.reporter != nil {
		r.reporter.Infof("%s => %s", op.From, op.To)
	}
}

// dump writes both lists to the debug log. Failures are ignored so they
// never replace the consistency error.
func (r *Renamer) dump(refs []scan.ClipFileRef, clips []twitch.Clip) {
	if r.opts.DebugLog == "" {
		return
	}
	_ = auditlog.Dump(r.opts.DebugLog, "consistency check failed", map[string]any{
		"files": refs,
		"clips": clips,
	})
}

// move renames src to dst without replacing an existing file.
func move(src, dst string) error {
	if src == dst {
		return nil
	}
	if _, err := os.Lstat(dst); err == nil {
		return &FileError{From: src, To: dst, Err: os.ErrExist}
	} else if !errors.Is(err, os.ErrNotExist) {
		return &FileError{From: src, To: dst, Err: err}
	}
	if err := renameFunc(src, dst); err != nil {
		return &FileError{From: src, To: dst, Err: err}
	}
	return nil
}
