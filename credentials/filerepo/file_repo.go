// Package filerepo stores the refresh token in a mode-0600 slot file, the
// closest analogue a CLI client has to a browser cookie.
package filerepo

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/jrsteele09/go-reviews-client/credentials"
	"github.com/pkg/errors"
)

var _ credentials.Repo = (*FileRepo)(nil)

// FileRepo holds the refresh token in a single file.
type FileRepo struct {
	path string
}

// New creates a file-backed carrier at path. The file and its parent
// directory are created lazily on the first Save.
func New(path string) *FileRepo {
	return &FileRepo{path: path}
}

func (fr *FileRepo) Load(_ context.Context) (string, error) {
	data, err := os.ReadFile(fr.path)
	if os.IsNotExist(err) {
		return "", credentials.ErrNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "[FileRepo.Load] ReadFile")
	}

	refreshToken := strings.TrimSpace(string(data))
	if refreshToken == "" {
		return "", credentials.ErrNotFound
	}
	return refreshToken, nil
}

func (fr *FileRepo) Save(_ context.Context, refreshToken string) error {
	if err := os.MkdirAll(filepath.Dir(fr.path), 0o700); err != nil {
		return errors.Wrap(err, "[FileRepo.Save] MkdirAll")
	}
	if err := os.WriteFile(fr.path, []byte(refreshToken+"\n"), 0o600); err != nil {
		return errors.Wrap(err, "[FileRepo.Save] WriteFile")
	}
	return nil
}

func (fr *FileRepo) Clear(_ context.Context) error {
	err := os.Remove(fr.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileRepo.Clear] Remove")
	}
	return nil
}
