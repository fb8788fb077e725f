package video

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Video is an Upload Record: one successfully processed upload.
type Video struct {
	ID             string    `gorm:"column:id;primaryKey"`
	Title          string    `gorm:"column:title;not null"`
	Description    string    `gorm:"column:description;not null"`
	PublicID       string    `gorm:"column:public_id;uniqueIndex;not null"`
	OriginalSize   int64     `gorm:"column:original_size;not null;default:0"`
	CompressedSize int64     `gorm:"column:compressed_size;not null;default:0"`
	Duration       float64   `gorm:"column:duration;not null;default:0"`
	UserID         string    `gorm:"column:user_id;index;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;index"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (Video) TableName() string { return "videos" }

// BeforeCreate assigns the record id when the caller left it empty.
func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
