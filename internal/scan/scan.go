// Package scan discovers clip files and extracts their identifiers.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Names look like <8-digit date><anything>_<id>_source<anything>.
var clipNameRE = regexp.MustCompile(`^\d{8}.*_(.*?)_source.*$`)

// ClipFileRef ties a local file to the clip identifier in its name.
type ClipFileRef struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// Name returns the base file name.
func (r ClipFileRef) Name() string {
	return filepath.Base(r.Path)
}

// Reporter receives scan diagnostics.
type Reporter interface {
	Errorf(format string, args ...any)
	Infof(format string, args ...any)
}

// ExtractID returns the clip identifier embedded in name. ok is false when
// the name does not have the clip shape at all; a shaped name with an empty
// identifier returns ("", true).
func ExtractID(name string) (id string, ok bool) {
	m := clipNameRE.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Dir lists dir (non-recursively) and returns a ref for every regular file
// with extension ext whose name has the clip shape. Entries keep directory
// listing order. Names with an empty identifier are reported and still
// returned with an empty ID.
func Dir(dir, ext string, rep Reporter) ([]ClipFileRef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read clips dir: %w", err)
	}

	refs := make([]ClipFileRef, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ext) {
			continue
		}
		id, ok := ExtractID(name)
		if !ok {
			continue
		}
		if id == "" && rep != nil {
			rep.Errorf("could not extract clip id from %q", name)
		}
		refs = append(refs, ClipFileRef{ID: id, Path: filepath.Join(dir, name)})
	}

	if rep != nil {
		rep.Infof("found %d clip file(s) in %s", len(refs), dir)
	}
	return refs, nil
}

// IDs returns the identifiers of refs in order, duplicates included.
func IDs(refs []ClipFileRef) []string {
	ids := make([]string, len(refs))
	for i, r := range refs {
		ids[i] = r.ID
	}
	return ids
}
