// Package storage defines the note directory file-system abstraction.
package storage

import "time"

// Entry is a regular file found in the note directory.
type Entry struct {
	Name string
	Size int64
}

// Times holds the file-system timestamps of a note file.
// Created falls back to the modification time when the file system does not
// record a birth time.
type Times struct {
	Created  time.Time
	Modified time.Time
}

// Provider is the interface for note file operations. Names are base names
// relative to the note directory.
type Provider interface {
	// Root returns the absolute path of the note directory.
	Root() string
	// Entries lists the visible regular files in the directory.
	Entries() ([]Entry, error)
	// Read returns the raw bytes of the named file.
	Read(name string) ([]byte, error)
	// Write atomically replaces the named file with content.
	Write(name string, content []byte) error
	// Delete removes the named file.
	Delete(name string) error
	// Stat returns the creation and modification times of the named file.
	Stat(name string) (Times, error)
}
