package models

import (
	"time"

	"github.com/google/uuid"
)

// Blog categories accepted by the API.
const (
	CategoryCareer     = "Career"
	CategoryFinance    = "Finance"
	CategoryTravel     = "Travel"
	CategoryTechnology = "Technology"
	CategoryLifestyle  = "Lifestyle"
	CategoryOther      = "Other"
)

// Categories lists every accepted blog category.
var Categories = []string{
	CategoryCareer,
	CategoryFinance,
	CategoryTravel,
	CategoryTechnology,
	CategoryLifestyle,
	CategoryOther,
}

// ValidCategory reports whether c is one of the accepted categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Blog represents a published blog post. Author is the creator's display
// name copied at creation time; it is not re-synced if the user later
// renames. UserID is the owning user and never changes.
type Blog struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title     string    `json:"title" db:"title" gorm:"type:text;not null"`
	Category  string    `json:"category" db:"category" gorm:"type:text;not null"`
	Author    string    `json:"author" db:"author" gorm:"type:text;not null"`
	Content   string    `json:"content" db:"content" gorm:"type:text;not null"`
	Image     *string   `json:"image" db:"image" gorm:"type:text"`
	UserID    uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
