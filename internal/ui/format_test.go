package ui

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/starford/pocketnotes/internal/models"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestFormatNoteList(t *testing.T) {
	notes := []models.NoteSummary{
		{Filename: "A.txt", Title: "Groceries", Subtitle: "Eggs", DisplayDate: "Monday"},
		{Filename: "B.txt", Title: "Ideas", Subtitle: "No additional text", DisplayDate: "2024-01-02"},
	}

	out := FormatNoteList(notes)

	for _, want := range []string{"2 Notes", "Groceries", "Eggs", "Monday", "A.txt", "Ideas", "2024-01-02"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Groceries") > strings.Index(out, "Ideas") {
		t.Error("notes should keep list order")
	}
}

func TestFormatNoteList_Empty(t *testing.T) {
	if out := FormatNoteList(nil); out != "0 Notes\n" {
		t.Errorf("output = %q", out)
	}
}

func TestFormatNoteHeader(t *testing.T) {
	out := FormatNoteHeader("A.txt", "Title line\nbody")
	if !strings.HasPrefix(out, "Title line\n") {
		t.Errorf("header should start with the title: %q", out)
	}
	if !strings.Contains(out, "A.txt") {
		t.Error("header should name the file")
	}
}

func TestSuccess(t *testing.T) {
	if got := Success("saved"); got != "✓ saved" {
		t.Errorf("Success = %q", got)
	}
}
