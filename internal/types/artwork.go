package types

import (
	"time"

	"github.com/google/uuid"
)

// Artwork pairs an original image or name with its generated explanation.
// Rows are immutable after creation.
type Artwork struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"artwork_id"`
	ExplanationXML string     `gorm:"column:explanation_xml;type:text;not null" json:"explanation_xml,omitempty"`
	ImagePath      *string    `gorm:"column:image_path" json:"image_path,omitempty"`
	ArtworkName    *string    `gorm:"column:artwork_name" json:"artwork_name,omitempty"`
	CreatorUserID  *uuid.UUID `gorm:"type:uuid;column:creator_user_id;index" json:"creator_user_id,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`

	// ImageURL is resolved from ImagePath at read time, never persisted.
	ImageURL string `gorm:"-" json:"image_url,omitempty"`
}

func (Artwork) TableName() string { return "artwork" }
