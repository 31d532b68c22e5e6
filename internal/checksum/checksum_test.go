package checksum

import "testing"

func TestSum(t *testing.T) {
	// SHA-256 of the empty string.
	const empty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Sum(""); got != empty {
		t.Errorf("Sum(\"\") = %s", got)
	}
	if Sum("a") == Sum("b") {
		t.Error("different content should differ")
	}
}

func TestNoneMatch(t *testing.T) {
	tag := ETag("hello")
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{tag, true},
		{"W/" + tag, true},
		{`"other", ` + tag, true},
		{"*", true},
		{`"other"`, false},
		{ETag("hello!"), false},
	}
	for _, tt := range tests {
		if got := NoneMatch(tt.header, "hello"); got != tt.want {
			t.Errorf("NoneMatch(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}
