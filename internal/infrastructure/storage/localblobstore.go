// Package storage holds the attachment blob store. Content lives on the
// local filesystem; only opaque keys are recorded in the database.
package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/reque-io/reque/internal/shared/errors"
)

// LocalBlobStore writes blobs under baseDir, sharded by the first two key
// characters so no single directory grows unbounded. Writes go through a
// temp file and a rename, so a crash never leaves a half-written blob under
// its final name.
type LocalBlobStore struct {
	baseDir string
}

func NewLocalBlobStore(baseDir string) (*LocalBlobStore, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("blob store directory cannot be empty")
	}
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create blob store directory: %w", err)
	}
	return &LocalBlobStore{baseDir: baseDir}, nil
}

// Put streams r to disk under key, enforcing maxBytes, and returns the byte
// count and hex SHA-256 checksum of what was written.
func (s *LocalBlobStore) Put(ctx context.Context, key string, r io.Reader, maxBytes int64) (int64, string, error) {
	path, err := s.blobPath(key)
	if err != nil {
		return 0, "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return 0, "", fmt.Errorf("failed to create blob directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return 0, "", fmt.Errorf("failed to create temp blob: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	hasher := sha256.New()
	// Read one byte past the limit so an exactly-at-limit blob is accepted
	// and anything larger is rejected without buffering it all.
	limited := io.LimitReader(r, maxBytes+1)
	written, err := io.Copy(io.MultiWriter(tmp, hasher), limited)
	if err != nil {
		cleanup()
		return 0, "", fmt.Errorf("failed to write blob: %w", err)
	}
	if written > maxBytes {
		cleanup()
		return 0, "", errors.NewValidationError(
			fmt.Sprintf("attachment exceeds the size limit of %d bytes", maxBytes))
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, "", fmt.Errorf("failed to close temp blob: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return 0, "", fmt.Errorf("failed to finalize blob: %w", err)
	}

	return written, hex.EncodeToString(hasher.Sum(nil)), nil
}

// Get opens the blob for reading. The caller closes it.
func (s *LocalBlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := s.blobPath(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("attachment content not found")
		}
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}
	return f, nil
}

// Delete removes the blob. A missing blob is not an error so deletes stay
// idempotent.
func (s *LocalBlobStore) Delete(ctx context.Context, key string) error {
	path, err := s.blobPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

// blobPath maps a key to its on-disk location. Keys are generated UUIDs, so
// anything with path separators or relative elements is rejected outright.
func (s *LocalBlobStore) blobPath(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("blob key cannot be empty")
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid blob key: %s", key)
	}
	shard := "00"
	if len(key) >= 2 {
		shard = key[:2]
	}
	return filepath.Join(s.baseDir, shard, key), nil
}
