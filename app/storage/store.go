// Package storage persists uploaded files under a public directory and
// hands back the relative path stored on the owning row.
package storage

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type FileStore interface {
	// Save writes the reader's content into the named bucket under a
	// generated file name, keeping the original extension. It returns the
	// relative path ("bucket/name.ext") to reference from the database.
	Save(bucket, originalName string, r io.Reader) (string, error)

	// Delete removes a previously saved file. A missing file is not an error.
	Delete(relPath string) error

	// Exists reports whether a saved file is still present.
	Exists(relPath string) bool
}

type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) Save(bucket, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.New().String() + ext
	relPath := path.Join(bucket, name)

	dir := filepath.Join(s.root, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(dst.Name())
		return "", err
	}

	return relPath, nil
}

func (s *LocalStore) Delete(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(relPath)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStore) Exists(relPath string) bool {
	if relPath == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(relPath)))
	return err == nil
}
