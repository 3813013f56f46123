package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/jlaffaye/ftp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IngestFTP pulls every image file from a directory on an FTP server
// through the upload pipeline. One failing file is logged and skipped,
// the batch continues.
func (u *Uploader) IngestFTP(ctx context.Context, db *gorm.DB, src *RemoteSource) (*BatchResult, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	if src.Port == 0 {
		src.Port = 21
	}

	conn, err := ftp.Dial(
		fmt.Sprintf("%s:%d", src.Host, src.Port),
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to FTP server, %w", err)
	}
	defer conn.Quit()

	if err := conn.Login(src.Username, src.Password); err != nil {
		return nil, fmt.Errorf("FTP login failed, %w", err)
	}

	entries, err := conn.List(src.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to list remote directory, %w", err)
	}

	res := &BatchResult{}

	for _, entry := range entries {
		if entry.Type != ftp.EntryTypeFile || !isImageName(entry.Name) {
			continue
		}

		remote := path.Join(src.Path, entry.Name)

		r, err := conn.Retr(remote)
		if err != nil {
			res.Skipped++
			zap.L().Warn("Failed to retrieve FTP file", zap.String("file", remote), zap.Error(err))
			continue
		}

		err = u.ingestOne(ctx, db, r, entry.Name, src.Category)
		r.Close()
		if err != nil {
			res.Skipped++
			zap.L().Warn("Failed to ingest FTP file", zap.String("file", remote), zap.Error(err))
			continue
		}

		res.Created++
	}

	return res, nil
}
