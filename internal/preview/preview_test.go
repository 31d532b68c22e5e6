package preview

import (
	"testing"
	"time"
)

func TestSubtitle(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"title only", "Title only", NoSubtitle},
		{"blank lines skipped", "Title\n\n\nBody", "Body"},
		{"first non-empty wins", "Title\nBody1\nBody2", "Body1"},
		{"whitespace lines skipped", "Title\n   \n\t\nBody", "Body"},
		{"trailing blanks only", "Title\n\n  \n", NoSubtitle},
		{"trailing newline", "Title\n", NoSubtitle},
		{"crlf", "Title\r\nBody\r\n", "Body"},
		{"empty", "", NoSubtitle},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Subtitle(tc.content); got != tc.want {
				t.Errorf("Subtitle(%q) = %q, want %q", tc.content, got, tc.want)
			}
		})
	}
}

func TestTitle(t *testing.T) {
	cases := map[string]string{
		"Title only":       "Title only",
		"Title\nBody":      "Title",
		"Title\r\nBody":    "Title",
		"\nSecond line":    "",
		"":                 "",
		"  padded  \nnext": "  padded  ",
	}
	for in, want := range cases {
		if got := Title(in); got != want {
			t.Errorf("Title(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDisplayDate(t *testing.T) {
	// Friday.
	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

	cases := []struct {
		name     string
		modified time.Time
		want     string
	}{
		{"same day morning", time.Date(2024, 3, 15, 9, 41, 0, 0, time.UTC), "9:41 AM"},
		{"same day evening", time.Date(2024, 3, 15, 17, 5, 0, 0, time.UTC), "5:05 PM"},
		{"yesterday", time.Date(2024, 3, 14, 23, 0, 0, 0, time.UTC), "Thursday"},
		{"six days ago", time.Date(2024, 3, 9, 19, 0, 0, 0, time.UTC), "Saturday"},
		{"exactly a week", now.Add(-7 * 24 * time.Hour), "2024-03-08"},
		{"long ago", time.Date(2023, 12, 1, 12, 0, 0, 0, time.UTC), "2023-12-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DisplayDate(tc.modified, now); got != tc.want {
				t.Errorf("DisplayDate = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDisplayDate_UsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	now := time.Date(2024, 3, 15, 8, 0, 0, 0, loc)
	// 22:00 UTC on the 14th is 08:00 on the 15th in UTC+10, so same day.
	modified := time.Date(2024, 3, 14, 22, 0, 0, 0, time.UTC)
	if got := DisplayDate(modified, now); got != "8:00 AM" {
		t.Errorf("DisplayDate = %q, want %q", got, "8:00 AM")
	}
}

func TestDerive_ZeroModified(t *testing.T) {
	f := Derive("A\nB", time.Time{}, time.Now())
	if f.Title != "A" || f.Subtitle != "B" {
		t.Errorf("fields = %+v", f)
	}
	if f.DisplayDate != "" {
		t.Errorf("DisplayDate = %q, want empty", f.DisplayDate)
	}
}

func TestCountLabel(t *testing.T) {
	for n, want := range map[int]string{0: "0 Notes", 1: "1 Note", 2: "2 Notes", 12: "12 Notes"} {
		if got := CountLabel(n); got != want {
			t.Errorf("CountLabel(%d) = %q, want %q", n, got, want)
		}
	}
}
