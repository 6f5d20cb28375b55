// Package storage persists uploaded files on the local filesystem.
// Stored paths are relative to the uploads root so records stay valid
// when the root moves.
package storage

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	SubdirDocuments = "documents"
	SubdirLogos     = "logos"
	SubdirProfile   = "profile"
)

var ErrEmptyFile = errors.New("empty upload")

type Local struct {
	root string
}

func NewLocal(root string) (*Local, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "uploads"
	}
	for _, sub := range []string{SubdirDocuments, SubdirLogos, SubdirProfile} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, err
		}
	}
	return &Local{root: root}, nil
}

func (l *Local) Root() string {
	return l.root
}

// Save writes the multipart file under subdir with a uuid-prefixed name
// and returns the path relative to the uploads root.
func (l *Local) Save(fh *multipart.FileHeader, subdir string) (string, error) {
	if fh == nil || fh.Size == 0 {
		return "", ErrEmptyFile
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.NewString() + sanitizedExt(fh.Filename)
	rel := filepath.Join(subdir, name)

	dst, err := os.Create(filepath.Join(l.root, rel))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dst.Name())
		return "", err
	}

	return filepath.ToSlash(rel), nil
}

// Remove deletes a previously saved file. Missing files are fine, this
// backs compensation paths that may run twice.
func (l *Local) Remove(rel string) error {
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(l.root, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func sanitizedExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\`) {
		return ""
	}
	return ext
}
