package s3

import (
	"fmt"
	"strings"
)

// Scheme is the URI scheme accepted by ParseURI.
const Scheme = "s3://"

// IsURI reports whether s looks like an s3:// URI.
func IsURI(s string) bool {
	return strings.HasPrefix(s, Scheme)
}

// ParseURI splits "s3://bucket/key" into bucket and key.
func ParseURI(s string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(s, Scheme)
	if !ok {
		return "", "", fmt.Errorf("s3: %q does not start with %s", s, Scheme)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3: %q needs both a bucket and a key", s)
	}
	return bucket, key, nil
}
