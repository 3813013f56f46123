package model

import "time"

type NewsletterSubscriber struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}
