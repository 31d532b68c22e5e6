package apperr

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestIs_MatchesKind(t *testing.T) {
	err := New(KindFileWriteFailed, "save", "A.txt", os.ErrPermission)

	if !errors.Is(err, ErrFileWriteFailed) {
		t.Error("should match its kind sentinel")
	}
	if errors.Is(err, ErrFileReadFailed) {
		t.Error("should not match another kind")
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Error("should unwrap to the cause")
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", New(KindInvalidFilename, "read", "../x", nil))
	if got := KindOf(wrapped); got != KindInvalidFilename {
		t.Errorf("KindOf = %q", got)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{New(KindDirectoryUnavailable, "", "", nil), "directory_unavailable"},
		{New(KindFileReadFailed, "read", "A.txt", nil), `read: file_read_failed "A.txt"`},
		{New(KindFileDeleteFailed, "delete", "A.txt", errors.New("busy")), `delete: file_delete_failed "A.txt": busy`},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
