package types

import (
	"time"

	"github.com/google/uuid"
)

// UserArtwork records that an artwork belongs to a user's collection.
type UserArtwork struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	ArtworkID uuid.UUID `gorm:"type:uuid;primaryKey" json:"artwork_id"`
	SavedAt   time.Time `gorm:"not null" json:"saved_at"`
}

func (UserArtwork) TableName() string { return "user_artwork" }
