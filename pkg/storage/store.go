package storage

import "context"

// NoSignRequestFlag is the flag string that selects anonymous access. It
// mirrors the aws-cli option of the same name so existing job configs keep
// working unchanged.
const NoSignRequestFlag = "--no-sign-request"

// ObjectStore is the minimal capability surface the synchronizer needs from
// an object storage backend. Implementations handle pagination internally so
// that callers always see one logical, complete listing.
type ObjectStore interface {
	// FetchObject reads the full content of a single object into memory.
	FetchObject(ctx context.Context, bucket, key string) ([]byte, error)

	// ListObjects returns the keys of all objects under the given prefix,
	// in the order the backend reports them.
	ListObjects(ctx context.Context, bucket, prefix string) ([]string, error)

	// DownloadObject copies one object's content to a local file,
	// overwriting any existing file at that path.
	DownloadObject(ctx context.Context, bucket, key, localPath string) error
}

// AnonymousFromFlags reports whether the flag list requests unauthenticated
// access. NoSignRequestFlag is the only recognized value; anything else in
// the list is ignored.
func AnonymousFromFlags(flags []string) bool {
	for _, f := range flags {
		if f == NoSignRequestFlag {
			return true
		}
	}
	return false
}
