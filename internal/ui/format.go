// Package ui formats notes for the terminal commands.
package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/starford/pocketnotes/internal/models"
	"github.com/starford/pocketnotes/internal/preview"
)

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

// FormatNoteList renders the list view: a count header followed by one
// block per note with its title, date and subtitle.
func FormatNoteList(notes []models.NoteSummary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n", bold(preview.CountLabel(len(notes))))
	for _, n := range notes {
		fmt.Fprintf(&sb, "  %s  %s\n", bold(n.Title), cyan(n.DisplayDate))
		fmt.Fprintf(&sb, "  %s\n", faint(n.Subtitle))
		fmt.Fprintf(&sb, "  %s\n", faint(n.Filename))
	}
	return sb.String()
}

// FormatNoteHeader renders the header printed above a note body.
func FormatNoteHeader(filename, content string) string {
	return fmt.Sprintf("%s\n%s %s\n%s",
		bold(preview.Title(content)),
		faint("File:"), faint(filename),
		Separator())
}

// Separator is a horizontal rule.
func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

// Success marks a completed action.
func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

// Warning marks an action that completed with a problem.
func Warning(msg string) string {
	return color.New(color.FgYellow).Sprint("! ") + msg
}
