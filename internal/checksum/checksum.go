// Package checksum derives entity tags for note content.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Sum returns the hex-encoded SHA-256 digest of content.
func Sum(content string) string {
	h := sha256.Sum256([]byte(content))
	return hex.EncodeToString(h[:])
}

// ETag returns the strong entity tag for content.
func ETag(content string) string {
	return strconv.Quote(Sum(content))
}

// NoneMatch reports whether an If-None-Match header value matches content,
// i.e. whether the client's copy is current. Weak tags compare by value.
func NoneMatch(header, content string) bool {
	if header == "" {
		return false
	}
	tag := ETag(content)
	for _, v := range strings.Split(header, ",") {
		v = strings.TrimSpace(v)
		if v == "*" || strings.TrimPrefix(v, "W/") == tag {
			return true
		}
	}
	return false
}
