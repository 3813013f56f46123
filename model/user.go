package model

import "time"

type User struct {
	ID           string `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string // Empty for Google-only accounts
	Name         string
	Verified     bool `gorm:"default:false"`
	Admin        bool `gorm:"default:false"`

	// Google subject id, set after the first OAuth sign-in
	GoogleID *string `gorm:"uniqueIndex"`

	VerificationTokens []VerificationToken `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
}
