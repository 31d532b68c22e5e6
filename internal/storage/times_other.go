//go:build !linux

package storage

import "os"

// fileTimes has no portable birth time to read; creation order falls back to
// the modification time, which an atomic rewrite also refreshes.
func fileTimes(path string) (Times, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Times{}, err
	}
	return Times{Created: info.ModTime(), Modified: info.ModTime()}, nil
}
