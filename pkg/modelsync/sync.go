// Package modelsync copies model checkpoints from an object store into a
// local hub-style cache and resolves the mutable "main" ref to an immutable
// commit hash.
package modelsync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/modelops/hubsync/pkg/hubcache"
	"github.com/modelops/hubsync/pkg/observability/logging"
	"github.com/modelops/hubsync/pkg/storage"
)

// ErrInvalidEncoding indicates a ref object whose body is not valid UTF-8.
var ErrInvalidEncoding = fmt.Errorf("ref content is not valid UTF-8")

// DefaultRefFile is the historical name of the local file the resolved
// commit hash is written to.
const DefaultRefFile = "main"

// mirrorBucket is the default bucket holding mirrored model weights.
const mirrorBucket = "llama-2-weights"

// Syncer performs model synchronization against one object store and one
// local cache root. All operations are synchronous and stop at the first
// failure; there is no retry and no cleanup of partially written files.
type Syncer struct {
	store     storage.ObjectStore
	cacheRoot string
	refFile   string
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithRefFile overrides the local file the resolved hash is written to.
func WithRefFile(path string) Option {
	return func(s *Syncer) {
		if path != "" {
			s.refFile = path
		}
	}
}

// New creates a Syncer over the given store and cache root.
func New(store storage.ObjectStore, cacheRoot string, opts ...Option) *Syncer {
	s := &Syncer{
		store:     store,
		cacheRoot: cacheRoot,
		refFile:   DefaultRefFile,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveRef fetches <prefix>/refs/main from the bucket URI, trims it, and
// returns the contained commit hash. The hash is also written to the local
// ref file, overwriting any previous content.
func (s *Syncer) ResolveRef(ctx context.Context, bucketURI string) (string, error) {
	bucket, prefix, err := storage.ParseURI(bucketURI)
	if err != nil {
		return "", err
	}

	key := "refs/main"
	if prefix != "" {
		key = prefix + "/refs/main"
	}

	body, err := s.store.FetchObject(ctx, bucket, key)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(body) {
		return "", fmt.Errorf("%w: s3://%s/%s", ErrInvalidEncoding, bucket, key)
	}

	hash := strings.TrimSpace(string(body))
	if err := os.WriteFile(s.refFile, []byte(hash), 0o644); err != nil {
		return "", fmt.Errorf("failed to write ref file %s: %w", s.refFile, err)
	}
	return hash, nil
}

// DownloadPath returns the local cache directory for a model id. No store
// interaction.
func (s *Syncer) DownloadPath(modelID string) string {
	return hubcache.DownloadPath(s.cacheRoot, modelID)
}

// CheckpointAndRefsDir resolves the bucket's main ref and returns the
// snapshot directory for that hash along with the refs directory. When mkdir
// is true both directories are created, idempotently, with any missing
// parents.
func (s *Syncer) CheckpointAndRefsDir(ctx context.Context, modelID, bucketURI string, mkdir bool) (checkpointDir, refsDir string, err error) {
	hash, err := s.ResolveRef(ctx, bucketURI)
	if err != nil {
		return "", "", err
	}

	refsDir = hubcache.RefsDir(s.cacheRoot, modelID)
	checkpointDir = hubcache.SnapshotDir(s.cacheRoot, modelID, hash)

	if mkdir {
		if err := hubcache.EnsureDir(refsDir); err != nil {
			return "", "", err
		}
		if err := hubcache.EnsureDir(checkpointDir); err != nil {
			return "", "", err
		}
	}

	return checkpointDir, refsDir, nil
}

// DownloadModel copies every object under the bucket URI's prefix into the
// model's cache directory, preserving relative paths. Directory placeholder
// keys (trailing "/") are skipped. With tokenizerOnly set, only objects
// whose relative path contains "token" (case-insensitive) are copied.
// Objects are processed in listing order; the first failure aborts the
// whole download.
func (s *Syncer) DownloadModel(ctx context.Context, modelID, bucketURI string, tokenizerOnly bool) error {
	root := s.DownloadPath(modelID)
	if err := hubcache.EnsureDir(root); err != nil {
		return err
	}

	bucket, prefix, err := storage.ParseURI(bucketURI)
	if err != nil {
		return err
	}

	listPrefix := prefix
	if prefix != "" {
		listPrefix = prefix + "/"
	}
	keys, err := s.store.ListObjects(ctx, bucket, listPrefix)
	if err != nil {
		return err
	}

	for _, key := range keys {
		// Directory placeholders carry no content
		if strings.HasSuffix(key, "/") {
			continue
		}

		rel := key
		if prefix != "" {
			rel = strings.TrimPrefix(key, prefix+"/")
		}
		if tokenizerOnly && !strings.Contains(strings.ToLower(rel), "token") {
			continue
		}

		dest := filepath.Join(root, rel)
		if err := hubcache.EnsureParentDir(dest); err != nil {
			return err
		}
		if err := s.store.DownloadObject(ctx, bucket, key, dest); err != nil {
			return err
		}
	}

	logging.Infof("Model downloaded to %s", root)
	return nil
}

// MirrorLink returns the default mirror bucket URI for a model id. Pure;
// callers may override it with an explicit bucket URI.
func MirrorLink(modelID string) string {
	return fmt.Sprintf("s3://%s/models--%s", mirrorBucket, hubcache.FlattenModelID(modelID))
}
