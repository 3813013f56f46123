package service

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"gorm.io/gorm"
)

// RemoteSource describes an FTP or SFTP server to pull a batch of
// images from. Credentials come from the admin request and are never
// persisted.
type RemoteSource struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Path     string `json:"path"`

	// Category to file every pulled asset under
	Category string `json:"category"`
}

func (s *RemoteSource) Validate() error {
	if s.Host == "" {
		return errors.New("no host provided")
	}
	if s.Username == "" {
		return errors.New("no username provided")
	}
	if s.Path == "" {
		s.Path = "."
	}
	return nil
}

var imageExts = []string{".png", ".jpg", ".jpeg", ".webp", ".svg"}

func isImageName(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range imageExts {
		if ext == e {
			return true
		}
	}
	return false
}

// titleFromName turns "red-panda_01.png" into "red panda 01"
func titleFromName(name string) string {
	base := strings.TrimSuffix(name, path.Ext(name))
	base = strings.ReplaceAll(base, "-", " ")
	base = strings.ReplaceAll(base, "_", " ")
	return strings.Join(strings.Fields(base), " ")
}

// ingestOne pushes a single remote file through the upload pipeline
// and persists the resulting asset row.
func (u *Uploader) ingestOne(ctx context.Context, db *gorm.DB, r io.Reader, name, category string) error {
	file, err := u.Do(ctx, r, name)
	if err != nil {
		return err
	}

	file.Category = category
	file.Title = titleFromName(name)

	return db.Create(file).Error
}
