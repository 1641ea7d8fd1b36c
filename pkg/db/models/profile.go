package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile carries the public-facing identity for a user. Rows are created
// lazily on the first profile read, so a user without one is not an error.
type Profile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Username    string    `gorm:"column:username;type:text;not null"`
	DisplayName *string   `gorm:"column:display_name"`
	AvatarURL   *string   `gorm:"column:avatar_url"`
	Bio         *string   `gorm:"column:bio"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Profile) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
