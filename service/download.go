package service

import (
	"errors"
	"stockpix/gallery-api/model"

	"gorm.io/gorm"
)

var ErrAssetNotFound = errors.New("asset not found")

// RecordDownload marks one completed download: exactly one
// DownloadEvent row and exactly one counter increment, all-or-nothing.
// An unknown asset id fails the whole transaction before anything is
// written. Retries count as new downloads, there is no de-duplication.
func RecordDownload(db *gorm.DB, fileID uint) (*model.File, error) {
	var file model.File

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(model.File{}).
			Where("id = ?", fileID).
			UpdateColumn("downloads", gorm.Expr("downloads + ?", 1))
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return ErrAssetNotFound
		}

		if err := tx.Create(&model.DownloadEvent{FileID: fileID}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", fileID).First(&file).Error
	})
	if err != nil {
		return nil, err
	}

	return &file, nil
}
