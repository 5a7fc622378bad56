package types

import (
	"time"

	"github.com/google/uuid"
)

// SubjectExpansion is a deeper explanation of one term mentioned in an
// artwork's explanation, or in another expansion. Expansions form a forest
// per artwork, rooted at rows with a nil parent.
//
// SubjectHash is the server-computed cache key: at most one row exists per
// (artwork_id, subject_hash), enforced by the composite unique index so that
// concurrent duplicate requests resolve to a single winner.
type SubjectExpansion struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"expansion_id"`
	ArtworkID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_expansion_artwork_cache" json:"artwork_id"`
	Subject           string     `gorm:"column:subject;not null" json:"subject"`
	SubjectHash       string     `gorm:"column:subject_hash;size:64;not null;uniqueIndex:idx_expansion_artwork_cache" json:"subject_hash"`
	ExpansionXML      string     `gorm:"column:expansion_xml;type:text;not null" json:"expansion_xml"`
	ParentExpansionID *uuid.UUID `gorm:"type:uuid;column:parent_expansion_id;index" json:"parent_expansion_id,omitempty"`
	CreatedAt         time.Time  `gorm:"not null" json:"created_at"`
}

func (SubjectExpansion) TableName() string { return "subject_expansion" }
