package modelsync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelops/hubsync/pkg/storage"
)

// fakeStore is an in-memory ObjectStore holding one bucket's objects. Keys
// are listed in insertion order to make listing-order assertions stable.
type fakeStore struct {
	bucket  string
	order   []string
	objects map[string][]byte

	failKey string // DownloadObject on this key fails
}

var _ storage.ObjectStore = (*fakeStore)(nil)

func newFakeStore(bucket string) *fakeStore {
	return &fakeStore{bucket: bucket, objects: map[string][]byte{}}
}

func (f *fakeStore) put(key string, content []byte) {
	if _, ok := f.objects[key]; !ok {
		f.order = append(f.order, key)
	}
	f.objects[key] = content
}

func (f *fakeStore) FetchObject(_ context.Context, bucket, key string) ([]byte, error) {
	if bucket != f.bucket {
		return nil, fmt.Errorf("no such bucket: %s", bucket)
	}
	content, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("no such key: %s", key)
	}
	return content, nil
}

func (f *fakeStore) ListObjects(_ context.Context, bucket, prefix string) ([]string, error) {
	if bucket != f.bucket {
		return nil, fmt.Errorf("no such bucket: %s", bucket)
	}
	var keys []string
	for _, key := range f.order {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (f *fakeStore) DownloadObject(_ context.Context, bucket, key, localPath string) error {
	if key == f.failKey {
		return fmt.Errorf("download failed: %s", key)
	}
	content, err := f.FetchObject(context.Background(), bucket, key)
	if err != nil {
		return err
	}
	return os.WriteFile(localPath, content, 0o644)
}

func TestResolveRef(t *testing.T) {
	store := newFakeStore("my-bucket")
	store.put("models/llama/refs/main", []byte(" abc123\n"))

	refFile := filepath.Join(t.TempDir(), "main")
	s := New(store, t.TempDir(), WithRefFile(refFile))

	hash, err := s.ResolveRef(context.Background(), "s3://my-bucket/models/llama")
	require.NoError(t, err)
	assert.Equal(t, "abc123", hash)

	written, err := os.ReadFile(refFile)
	require.NoError(t, err)
	assert.Equal(t, "abc123", string(written))
}

func TestResolveRefOverwritesRefFile(t *testing.T) {
	store := newFakeStore("b")
	store.put("refs/main", []byte("new-hash"))

	refFile := filepath.Join(t.TempDir(), "main")
	require.NoError(t, os.WriteFile(refFile, []byte("stale-and-longer-hash"), 0o644))

	s := New(store, t.TempDir(), WithRefFile(refFile))
	_, err := s.ResolveRef(context.Background(), "s3://b")
	require.NoError(t, err)

	written, err := os.ReadFile(refFile)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", string(written))
}

func TestResolveRefNoPrefix(t *testing.T) {
	store := newFakeStore("weights")
	store.put("refs/main", []byte("deadbeef"))

	s := New(store, t.TempDir(), WithRefFile(filepath.Join(t.TempDir(), "main")))
	hash, err := s.ResolveRef(context.Background(), "s3://weights")
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", hash)
}

func TestResolveRefInvalidURI(t *testing.T) {
	s := New(newFakeStore("b"), t.TempDir())
	_, err := s.ResolveRef(context.Background(), "http://x/y")
	require.ErrorIs(t, err, storage.ErrInvalidURI)
}

func TestResolveRefMissingObject(t *testing.T) {
	s := New(newFakeStore("b"), t.TempDir(), WithRefFile(filepath.Join(t.TempDir(), "main")))
	_, err := s.ResolveRef(context.Background(), "s3://b/models/llama")
	require.Error(t, err)
}

func TestResolveRefInvalidEncoding(t *testing.T) {
	store := newFakeStore("b")
	store.put("refs/main", []byte{0xff, 0xfe, 0xfd})

	s := New(store, t.TempDir(), WithRefFile(filepath.Join(t.TempDir(), "main")))
	_, err := s.ResolveRef(context.Background(), "s3://b")
	require.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestCheckpointAndRefsDir(t *testing.T) {
	store := newFakeStore("my-bucket")
	store.put("models/llama/refs/main", []byte("abc123"))

	cacheRoot := t.TempDir()
	s := New(store, cacheRoot, WithRefFile(filepath.Join(t.TempDir(), "main")))

	checkpointDir, refsDir, err := s.CheckpointAndRefsDir(context.Background(), "org/model-a", "s3://my-bucket/models/llama", true)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cacheRoot, "models--org--model-a", "snapshots", "abc123"), checkpointDir)
	assert.Equal(t, filepath.Join(cacheRoot, "models--org--model-a", "refs"), refsDir)

	for _, dir := range []string{checkpointDir, refsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// Repeated calls must not fail
	_, _, err = s.CheckpointAndRefsDir(context.Background(), "org/model-a", "s3://my-bucket/models/llama", true)
	require.NoError(t, err)
}

func TestCheckpointAndRefsDirNoMkdir(t *testing.T) {
	store := newFakeStore("b")
	store.put("refs/main", []byte("abc"))

	cacheRoot := t.TempDir()
	s := New(store, cacheRoot, WithRefFile(filepath.Join(t.TempDir(), "main")))

	checkpointDir, _, err := s.CheckpointAndRefsDir(context.Background(), "m", "s3://b", false)
	require.NoError(t, err)

	_, err = os.Stat(checkpointDir)
	assert.True(t, os.IsNotExist(err))
}

func TestDownloadModel(t *testing.T) {
	store := newFakeStore("my-bucket")
	store.put("models/llama/config.json", []byte(`{"model_type":"llama"}`))
	store.put("models/llama/tokenizer/vocab.txt", []byte("vocab"))
	store.put("models/llama/dir/", nil)

	cacheRoot := t.TempDir()
	s := New(store, cacheRoot)

	err := s.DownloadModel(context.Background(), "org/llama", "s3://my-bucket/models/llama", false)
	require.NoError(t, err)

	root := filepath.Join(cacheRoot, "models--org--llama")

	content, err := os.ReadFile(filepath.Join(root, "config.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"model_type":"llama"}`, string(content))

	content, err = os.ReadFile(filepath.Join(root, "tokenizer", "vocab.txt"))
	require.NoError(t, err)
	assert.Equal(t, "vocab", string(content))

	// The directory placeholder must not produce a file
	_, err = os.Stat(filepath.Join(root, "dir"))
	assert.True(t, os.IsNotExist(err))
}

func TestDownloadModelTokenizerOnly(t *testing.T) {
	store := newFakeStore("my-bucket")
	store.put("models/llama/config.json", []byte("{}"))
	store.put("models/llama/tokenizer/vocab.txt", []byte("vocab"))
	store.put("models/llama/Tokenizer_config.json", []byte("{}"))

	cacheRoot := t.TempDir()
	s := New(store, cacheRoot)

	err := s.DownloadModel(context.Background(), "org/llama", "s3://my-bucket/models/llama", true)
	require.NoError(t, err)

	root := filepath.Join(cacheRoot, "models--org--llama")

	_, err = os.Stat(filepath.Join(root, "config.json"))
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(root, "tokenizer", "vocab.txt"))
	assert.NoError(t, err)

	// Case-insensitive substring match
	_, err = os.Stat(filepath.Join(root, "Tokenizer_config.json"))
	assert.NoError(t, err)
}

func TestDownloadModelEmptyPrefix(t *testing.T) {
	store := newFakeStore("weights")
	store.put("config.json", []byte("{}"))

	cacheRoot := t.TempDir()
	s := New(store, cacheRoot)

	err := s.DownloadModel(context.Background(), "m", "s3://weights", false)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(cacheRoot, "models--m", "config.json"))
	assert.NoError(t, err)
}

func TestDownloadModelAbortsOnFirstFailure(t *testing.T) {
	store := newFakeStore("b")
	store.put("m/a.bin", []byte("a"))
	store.put("m/b.bin", []byte("b"))
	store.put("m/c.bin", []byte("c"))
	store.failKey = "m/b.bin"

	cacheRoot := t.TempDir()
	s := New(store, cacheRoot)

	err := s.DownloadModel(context.Background(), "m", "s3://b/m", false)
	require.Error(t, err)

	root := filepath.Join(cacheRoot, "models--m")

	// a.bin was written before the failure, c.bin was never reached
	_, err = os.Stat(filepath.Join(root, "a.bin"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "c.bin"))
	assert.True(t, os.IsNotExist(err))
}

func TestDownloadModelInvalidURI(t *testing.T) {
	s := New(newFakeStore("b"), t.TempDir())
	err := s.DownloadModel(context.Background(), "m", "not-a-uri", false)
	require.ErrorIs(t, err, storage.ErrInvalidURI)
}

func TestMirrorLink(t *testing.T) {
	assert.Equal(t, "s3://llama-2-weights/models--org--model", MirrorLink("org/model"))
	// Pure: repeated calls give the identical string
	assert.Equal(t, MirrorLink("org/model"), MirrorLink("org/model"))
	assert.Equal(t, "s3://llama-2-weights/models--plain", MirrorLink("plain"))
}
