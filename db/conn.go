// Package db opens the process-wide database handle
package db

import (
	"errors"
	"fmt"
	"stockpix/gallery-api/model"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New() (*gorm.DB, error) {
	var dial gorm.Dialector

	switch viper.GetString("database.driver") {
	case "postgres":
		dial = postgres.Open(viper.GetString("database.dsn"))
	case "sqlite":
		dsn := viper.GetString("database.dsn")
		if dsn == "" {
			dsn = "gallery.db"
		}
		dial = sqlite.Open(dsn)
	default:
		return nil, errors.New("invalid database driver")
	}

	db, err := gorm.Open(dial)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	err = db.AutoMigrate(
		model.User{},
		model.File{},
		model.Category{},
		model.DownloadEvent{},
		model.VerificationToken{},
		model.NewsletterSubscriber{},
		model.ContactMessage{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
