package rename

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/five82/cliprename/internal/config"
	"github.com/five82/cliprename/internal/twitch"
)

// TimestampError reports a clip whose created_at could not be parsed.
type TimestampError struct {
	ID    string
	Value string
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("clip %q has unparseable created_at %q", e.ID, e.Value)
}

// safeRune maps characters rejected in file names on at least one common
// platform, and control characters that would split a log record, to '_'.
func safeRune(r rune) rune {
	if r < 0x20 || r == 0x7f {
		return '_'
	}
	switch r {
	case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
		return '_'
	}
	return r
}

// FileName builds "<YYYY>-<MM>-<DD> <hh>.<mm> - <Title><ext>" for clip, with
// ext including its leading dot. dayField selects day of month or the legacy
// day-of-week digit (0 = Sunday).
func FileName(clip twitch.Clip, ext, dayField string, loc *time.Location) (string, error) {
	created := clip.ParsedCreatedAt()
	if created.IsZero() {
		return "", &TimestampError{ID: clip.ID, Value: clip.CreatedAt}
	}
	if loc == nil {
		loc = time.Local
	}
	t := created.In(loc)

	day := fmt.Sprintf("%02d", t.Day())
	if dayField == config.DayOfWeek {
		day = strconv.Itoa(int(t.Weekday()))
	}

	title := strings.Map(safeRune, strings.TrimSpace(clip.Title))
	if title == "" {
		title = clip.ID
	}
	return fmt.Sprintf("%04d-%02d-%s %02d.%02d - %s%s",
		t.Year(), int(t.Month()), day, t.Hour(), t.Minute(), title, ext), nil
}
