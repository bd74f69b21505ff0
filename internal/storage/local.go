package storage

import (
	"io"
	"os"
	"path/filepath"
)

// Store persists an uploaded file and returns the public path or URL
// the client should use to reference it.
type Store interface {
	Save(key, contentType string, r io.Reader) (string, error)
}

// DiskStore writes uploads under a local directory served at /uploads.
type DiskStore struct {
	Dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &DiskStore{Dir: dir}, nil
}

func (s *DiskStore) Save(key, _ string, r io.Reader) (string, error) {
	full := filepath.Join(s.Dir, filepath.Base(key))
	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return "/uploads/" + filepath.Base(key), nil
}
