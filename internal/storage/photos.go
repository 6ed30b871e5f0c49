// ABOUTME: Profile photo storage on the local filesystem.
// ABOUTME: Photos live under <data_dir>/profile-photos and are addressed by file URL.
package storage

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// PhotoBucket is the folder name photos are stored under in every PhotoStore.
const PhotoBucket = "profile-photos"

// PhotoStore saves profile photos and returns a URL for the profile record.
type PhotoStore interface {
	SavePhoto(name string, r io.Reader) (string, error)
}

// LocalPhotoStore keeps photos on disk next to the rest of the data.
type LocalPhotoStore struct {
	dir string
}

// NewLocalPhotoStore creates a photo store under dataDir/profile-photos.
func NewLocalPhotoStore(dataDir string) *LocalPhotoStore {
	return &LocalPhotoStore{dir: filepath.Join(dataDir, PhotoBucket)}
}

// SavePhoto copies r to the bucket under name and returns a file:// URL.
func (l *LocalPhotoStore) SavePhoto(name string, r io.Reader) (string, error) {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("save photo: empty file name")
	}
	if err := os.MkdirAll(l.dir, 0750); err != nil {
		return "", fmt.Errorf("create photo directory: %w", err)
	}

	path := filepath.Join(l.dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return "", fmt.Errorf("create photo: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write photo: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close photo: %w", err)
	}

	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String(), nil
}
