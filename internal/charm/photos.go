// ABOUTME: Profile photo storage on Charm FS.
// ABOUTME: Photos are written under profile-photos/ in the user's encrypted file store.
package charm

import (
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	charmfs "github.com/charmbracelet/charm/fs"
	"github.com/harperreed/agewell/internal/storage"
)

// fileWriter is the subset of *charmfs.FS the photo store uses.
type fileWriter interface {
	WriteFile(name string, src iofs.File) error
	ReadFile(name string) ([]byte, error)
	Remove(name string) error
}

// PhotoStore saves profile photos to Charm FS.
type PhotoStore struct {
	fs fileWriter
}

// Compile-time check that PhotoStore implements storage.PhotoStore.
var _ storage.PhotoStore = (*PhotoStore)(nil)

// NewPhotoStore opens Charm FS with the default client settings.
func NewPhotoStore() (*PhotoStore, error) {
	if os.Getenv("CHARM_HOST") == "" {
		if err := os.Setenv("CHARM_HOST", defaultCharmHost); err != nil {
			return nil, err
		}
	}
	cfs, err := charmfs.NewFS()
	if err != nil {
		return nil, fmt.Errorf("open charm fs: %w", err)
	}
	return &PhotoStore{fs: cfs}, nil
}

// SavePhoto uploads r as profile-photos/<name> and returns a charm: URL.
func (p *PhotoStore) SavePhoto(name string, r io.Reader) (string, error) {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("save photo: empty file name")
	}
	remote := path.Join(storage.PhotoBucket, name)

	// Charm FS reads size and mode from a real file.
	f, ok := r.(*os.File)
	if !ok {
		tmp, err := os.CreateTemp("", "agewell-photo-*")
		if err != nil {
			return "", fmt.Errorf("buffer photo: %w", err)
		}
		defer func() {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}()
		if _, err := io.Copy(tmp, r); err != nil {
			return "", fmt.Errorf("buffer photo: %w", err)
		}
		if _, err := tmp.Seek(0, io.SeekStart); err != nil {
			return "", fmt.Errorf("buffer photo: %w", err)
		}
		f = tmp
	}

	if err := p.fs.WriteFile(remote, f); err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}
	return "charm:" + remote, nil
}

// ReadPhoto downloads a photo previously saved under name.
func (p *PhotoStore) ReadPhoto(name string) ([]byte, error) {
	data, err := p.fs.ReadFile(path.Join(storage.PhotoBucket, filepath.Base(name)))
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	return data, nil
}

// RemovePhoto deletes a photo by name.
func (p *PhotoStore) RemovePhoto(name string) error {
	if err := p.fs.Remove(path.Join(storage.PhotoBucket, filepath.Base(name))); err != nil {
		return fmt.Errorf("remove photo: %w", err)
	}
	return nil
}
