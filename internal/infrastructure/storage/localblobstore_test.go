package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reque-io/reque/internal/shared/errors"
)

func newTestStore(t *testing.T) *LocalBlobStore {
	t.Helper()
	store, err := NewLocalBlobStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestLocalBlobStore_PutAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	content := "design document draft"
	size, checksum, err := store.Put(ctx, "a1b2c3d4", strings.NewReader(content), 1024)
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), size)

	sum := sha256.Sum256([]byte(content))
	assert.Equal(t, hex.EncodeToString(sum[:]), checksum)

	rc, err := store.Get(ctx, "a1b2c3d4")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestLocalBlobStore_PutShardsByKeyPrefix(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalBlobStore(dir)
	require.NoError(t, err)

	_, _, err = store.Put(context.Background(), "ffab", strings.NewReader("x"), 10)
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "ff", "ffab"))
	assert.NoError(t, statErr)
}

func TestLocalBlobStore_PutAtExactLimit(t *testing.T) {
	store := newTestStore(t)

	size, _, err := store.Put(context.Background(), "exact", strings.NewReader("12345"), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
}

func TestLocalBlobStore_PutOverLimit(t *testing.T) {
	store := newTestStore(t)

	_, _, err := store.Put(context.Background(), "oversized", strings.NewReader("123456"), 5)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	// The rejected blob must not be readable afterwards.
	_, err = store.Get(context.Background(), "oversized")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestLocalBlobStore_GetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestLocalBlobStore_DeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, _, err := store.Put(ctx, "gone", strings.NewReader("bye"), 10)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "gone"))
	require.NoError(t, store.Delete(ctx, "gone"))

	_, err = store.Get(ctx, "gone")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestLocalBlobStore_RejectsTraversalKeys(t *testing.T) {
	store := newTestStore(t)

	for _, key := range []string{"", "../escape", "a/b", `a\b`} {
		_, _, err := store.Put(context.Background(), key, strings.NewReader("x"), 10)
		assert.Error(t, err, "key %q", key)
	}
}
