package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Upload describes a resume file stored on disk
type Upload struct {
	Filename   string `json:"filename"`    // name sent by the client
	StoredName string `json:"stored_name"` // uuid-based name on disk
	Path       string `json:"path"`
	Size       int64  `json:"size"`
	Hash       string `json:"hash"` // SHA256 hex digest
	Timestamp  string `json:"timestamp"`
}

// SaveUpload copies r into dir under a fresh uuid name that keeps the
// original extension. Client path components are never used. A positive
// maxBytes bounds the stored size.
func SaveUpload(dir, filename string, r io.Reader, maxBytes int64) (*Upload, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	stored := uuid.NewString() + extension(filename)
	path := filepath.Join(dir, stored)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}

	src := r
	if maxBytes > 0 {
		src = io.LimitReader(r, maxBytes+1)
	}

	hash := sha256.New()
	size, copyErr := io.Copy(io.MultiWriter(f, hash), src)
	closeErr := f.Close()

	switch {
	case copyErr != nil:
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to save upload: %w", copyErr)
	case closeErr != nil:
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to save upload: %w", closeErr)
	case maxBytes > 0 && size > maxBytes:
		_ = os.Remove(path)
		return nil, &UploadTooLargeError{Limit: maxBytes}
	}

	return &Upload{
		Filename:   filepath.Base(filename),
		StoredName: stored,
		Path:       path,
		Size:       size,
		Hash:       hex.EncodeToString(hash.Sum(nil)),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// ReadAll returns the stored upload's bytes.
func (u *Upload) ReadAll() ([]byte, error) {
	data, err := os.ReadFile(u.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return data, nil
}

// Remove deletes the stored upload. A file that is already gone is not an error.
func (u *Upload) Remove() error {
	if err := os.Remove(u.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove upload: %w", err)
	}
	return nil
}
