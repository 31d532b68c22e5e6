//go:build linux

package storage

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// fileTimes reads birth and modification time with statx. File systems that
// do not report a birth time fall back to the modification time.
func fileTimes(path string) (Times, error) {
	var st unix.Statx_t
	mask := unix.STATX_BTIME | unix.STATX_MTIME
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, mask, &st)
	if errors.Is(err, unix.ENOSYS) || errors.Is(err, unix.EPERM) {
		// statx blocked or unavailable (old kernels, some sandboxes).
		info, statErr := os.Stat(path)
		if statErr != nil {
			return Times{}, statErr
		}
		return Times{Created: info.ModTime(), Modified: info.ModTime()}, nil
	}
	if err != nil {
		return Times{}, &os.PathError{Op: "statx", Path: path, Err: err}
	}
	modified := time.Unix(st.Mtime.Sec, int64(st.Mtime.Nsec))
	created := modified
	if st.Mask&unix.STATX_BTIME != 0 {
		created = time.Unix(st.Btime.Sec, int64(st.Btime.Nsec))
	}
	return Times{Created: created, Modified: modified}, nil
}
