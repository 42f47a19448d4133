// Package hubcache derives local cache paths that mirror the Hugging Face
// hub cache layout, so downloaded checkpoints can be loaded by model id
// without any remote access.
//
// The layout under the cache root is:
//
//	models--<org>--<name>/
//	    refs/            named refs (e.g. "main") pointing at commit hashes
//	    snapshots/<hash>/ files for one resolved revision
package hubcache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultRequiredFiles are the files a model directory needs to be
// considered complete.
var DefaultRequiredFiles = []string{
	"config.json",
}

// FlattenModelID turns a model id like "org/model" into the flattened
// directory form "org--model".
func FlattenModelID(modelID string) string {
	return strings.ReplaceAll(modelID, "/", "--")
}

// DownloadPath returns the cache directory for a model id under cacheRoot,
// e.g. <cacheRoot>/models--org--model. No filesystem access.
func DownloadPath(cacheRoot, modelID string) string {
	return filepath.Join(cacheRoot, "models--"+FlattenModelID(modelID))
}

// RefsDir returns the refs directory for a model id under cacheRoot.
func RefsDir(cacheRoot, modelID string) string {
	return filepath.Join(DownloadPath(cacheRoot, modelID), "refs")
}

// SnapshotDir returns the snapshot directory for one resolved revision of a
// model id under cacheRoot.
func SnapshotDir(cacheRoot, modelID, hash string) string {
	return filepath.Join(DownloadPath(cacheRoot, modelID), "snapshots", hash)
}

// EnsureDir creates dir and any missing parents. It is idempotent: an
// existing directory is not an error.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// EnsureParentDir creates the parent directory of path and any missing
// ancestors.
func EnsureParentDir(path string) error {
	return EnsureDir(filepath.Dir(path))
}

// IsModelComplete checks whether a model directory already holds the
// required files. A missing directory or missing file is not an error, just
// an incomplete model.
func IsModelComplete(dir string, requiredFiles []string) (bool, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat model directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return false, fmt.Errorf("model path %s is not a directory", dir)
	}

	if len(requiredFiles) == 0 {
		requiredFiles = DefaultRequiredFiles
	}

	for _, file := range requiredFiles {
		filePath := filepath.Join(dir, file)
		if _, err := os.Stat(filePath); err != nil {
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, fmt.Errorf("failed to check file %s: %w", filePath, err)
		}
	}

	return true, nil
}
