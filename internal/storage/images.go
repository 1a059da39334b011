package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"time"
)

var dataURLPrefix = regexp.MustCompile(`^data:image/(png|jpg|jpeg);base64,`)

// ImageStore writes blog photos to local disk and hands back the
// public URL that gets persisted on the blog row.
type ImageStore struct {
	Dir     string // e.g. public/images
	BaseURL string // e.g. http://localhost:5000
}

// Save decodes a base64 data URL and writes it as
// <unix-ms>-<authorID>.png under Dir.
func (s *ImageStore) Save(photo string, authorID uint) (string, error) {
	stripped := dataURLPrefix.ReplaceAllString(photo, "")
	buf, err := base64.StdEncoding.DecodeString(stripped)
	if err != nil {
		return "", fmt.Errorf("decode photo: %w", err)
	}

	name := fmt.Sprintf("%d-%d.png", time.Now().UnixMilli(), authorID)
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("save photo: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir, name), buf, 0o644); err != nil {
		return "", fmt.Errorf("save photo: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.BaseURL, filepath.ToSlash(s.Dir), name), nil
}

// Delete removes the file behind a previously returned URL. A missing
// file is not an error.
func (s *ImageStore) Delete(url string) error {
	name := path.Base(url)
	if name == "." || name == "/" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}
