package model

type Category struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"uniqueIndex;not null" json:"name"`
	Kind      string `json:"file_type"`
	Active    bool   `gorm:"default:true" json:"active"`
	ShowInNav bool   `json:"show_in_nav"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}
