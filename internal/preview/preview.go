// Package preview derives the list-row fields of a note from its text and
// modification time.
package preview

import (
	"strconv"
	"strings"
	"time"
)

// NoSubtitle is shown when a note has nothing after its first line.
const NoSubtitle = "No additional text"

const (
	timeLayout    = "3:04 PM"
	weekdayLayout = "Monday"
	dateLayout    = "2006-01-02"
)

const week = 7 * 24 * time.Hour

// Fields holds the derived values for one list row.
type Fields struct {
	Title       string
	Subtitle    string
	DisplayDate string
}

// Derive computes all list-row fields. A zero modified time yields an empty
// DisplayDate.
func Derive(content string, modified, now time.Time) Fields {
	f := Fields{
		Title:    Title(content),
		Subtitle: Subtitle(content),
	}
	if !modified.IsZero() {
		f.DisplayDate = DisplayDate(modified, now)
	}
	return f
}

// Title returns the first line of content.
func Title(content string) string {
	first, _, _ := strings.Cut(content, "\n")
	return strings.TrimSuffix(first, "\r")
}

// Subtitle returns the first line after the title that is not blank, or
// NoSubtitle.
func Subtitle(content string) string {
	_, rest, found := strings.Cut(content, "\n")
	if !found {
		return NoSubtitle
	}
	for _, line := range strings.Split(rest, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return NoSubtitle
}

// DisplayDate formats modified relative to now: the time of day when both
// fall on the same calendar day, the weekday name within the last week, and
// an ISO date otherwise. modified is interpreted in now's location.
func DisplayDate(modified, now time.Time) string {
	modified = modified.In(now.Location())
	if sameDay(modified, now) {
		return modified.Format(timeLayout)
	}
	if now.Sub(modified) < week {
		return modified.Format(weekdayLayout)
	}
	return modified.Format(dateLayout)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// CountLabel returns the toolbar caption for n notes, e.g. "1 Note" or
// "3 Notes".
func CountLabel(n int) string {
	if n == 1 {
		return "1 Note"
	}
	return strconv.Itoa(n) + " Notes"
}
