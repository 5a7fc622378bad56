package types

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile mirrors an externally authenticated user. Rows are created
// lazily, the first time a user authors an artwork, because artwork rows
// carry a foreign key to this table.
type UserProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (UserProfile) TableName() string { return "user_profile" }
