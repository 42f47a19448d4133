package storage

import (
	"fmt"
	"strings"
)

// ErrInvalidURI indicates a bucket URI that does not use the s3:// scheme.
var ErrInvalidURI = fmt.Errorf("invalid S3 URI")

const uriScheme = "s3://"

// ParseURI splits an s3://bucket/prefix URI into its bucket and prefix parts.
// Trailing slashes are stripped from the prefix; a URI with no path segment
// yields an empty prefix.
//
//	s3://bucket/prefix -> ("bucket", "prefix")
//	s3://bucket        -> ("bucket", "")
func ParseURI(uri string) (bucket string, prefix string, err error) {
	if !strings.HasPrefix(uri, uriScheme) {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	rest := strings.TrimPrefix(uri, uriScheme)
	if i := strings.Index(rest, "/"); i >= 0 {
		bucket, prefix = rest[:i], rest[i+1:]
	} else {
		bucket = rest
	}
	if bucket == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	return bucket, strings.TrimRight(prefix, "/"), nil
}
