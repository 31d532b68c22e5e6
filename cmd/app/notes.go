package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/starford/pocketnotes/internal"
	"github.com/starford/pocketnotes/internal/ui"
)

// withNotes opens the note service for a single terminal command. Logs go
// to stderr so command output stays clean.
func withNotes(fn func(ctx context.Context, cmd *cli.Command, notes *internal.Notes) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		notes, err := internal.Open(internal.WithConfig(cfg), internal.WithLogOutput(os.Stderr))
		if err != nil {
			return err
		}
		defer notes.Close()
		return fn(ctx, cmd, notes)
	}
}

func filenameArg(cmd *cli.Command) (string, error) {
	name := cmd.Args().First()
	if name == "" {
		return "", errors.New("filename argument is required")
	}
	return name, nil
}

func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:    "ls",
		Aliases: []string{"list"},
		Usage:   "List notes, newest first",
		Action: withNotes(func(ctx context.Context, _ *cli.Command, notes *internal.Notes) error {
			fmt.Print(ui.FormatNoteList(notes.Service.List(ctx)))
			return nil
		}),
	}
}

func catCommand() *cli.Command {
	return &cli.Command{
		Name:      "cat",
		Usage:     "Print a note",
		ArgsUsage: "<filename>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "raw", Usage: "Print only the note text"},
		},
		Action: withNotes(func(ctx context.Context, cmd *cli.Command, notes *internal.Notes) error {
			name, err := filenameArg(cmd)
			if err != nil {
				return err
			}
			text, err := notes.Service.Read(ctx, name)
			if err != nil {
				return err
			}
			if !cmd.Bool("raw") {
				fmt.Print(ui.FormatNoteHeader(name, text))
			}
			fmt.Println(text)
			return nil
		}),
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "new",
		Usage: "Create a note from stdin and print its filename",
		Action: withNotes(func(ctx context.Context, _ *cli.Command, notes *internal.Notes) error {
			text, err := readStdin()
			if err != nil {
				return err
			}
			if text == "" {
				return errors.New("nothing to save: stdin was empty")
			}
			name, _, err := notes.Service.Create(ctx, text)
			if err != nil {
				return err
			}
			fmt.Println(ui.Success(name))
			return nil
		}),
	}
}

func editCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Replace a note's text with stdin; empty input deletes it",
		ArgsUsage: "<filename>",
		Action: withNotes(func(ctx context.Context, cmd *cli.Command, notes *internal.Notes) error {
			name, err := filenameArg(cmd)
			if err != nil {
				return err
			}
			text, err := readStdin()
			if err != nil {
				return err
			}
			if _, err := notes.Service.Save(ctx, name, text); err != nil {
				return err
			}
			if text == "" {
				fmt.Println(ui.Warning("empty text, deleted " + name))
				return nil
			}
			fmt.Println(ui.Success("saved " + name))
			return nil
		}),
	}
}

func removeCommand() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Delete a note",
		ArgsUsage: "<filename>",
		Action: withNotes(func(ctx context.Context, cmd *cli.Command, notes *internal.Notes) error {
			name, err := filenameArg(cmd)
			if err != nil {
				return err
			}
			if _, err := notes.Service.Delete(ctx, name); err != nil {
				return err
			}
			fmt.Println(ui.Success("deleted " + name))
			return nil
		}),
	}
}
