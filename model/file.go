// Package model defines database models
package model

// Allowed asset kinds. Categories use the same set.
const (
	KindPNG    = "png"
	KindVector = "vector"
	KindImage  = "image"
)

type File struct {
	ID uint `gorm:"primaryKey;autoIncrement;index" json:"id"`

	// Since uploaded files may share names the S3 objects are kept
	// under a generated key
	FileKey  string `gorm:"uniqueIndex" json:"file_key"`
	ThumbKey string `json:"thumb_key"`

	// Original file name before turning it into a special S3 key
	OriginalName string `json:"name"`

	Kind        string      `gorm:"index" json:"file_type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `gorm:"index" json:"category"`
	Keywords    StringSlice `json:"keywords"`

	Width  int   `json:"width"`
	Height int   `json:"height"`
	Size   int64 `json:"size"`

	// Monotonically non-decreasing. Changed only inside the download
	// transaction, never written directly by handlers.
	Downloads int64 `gorm:"default:0" json:"downloads"`

	// Unix timestamps
	CreatedAt int64 `gorm:"not null" json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}
