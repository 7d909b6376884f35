package models

import (
	"time"

	"github.com/pradipta/banksoal/internal/pkg/helpers"
)

// QuestionSet represents a question set owned by a user
type QuestionSet struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	OwnerID     *int64     `json:"ownerId,omitempty" db:"owner_id"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt   *time.Time `json:"-" db:"deleted_at"`
}

// QuestionSetSummary is the minimal projection needed for bundling
type QuestionSetSummary struct {
	ID    int64  `json:"id" db:"id"`
	Title string `json:"title" db:"title"`
}

// SanitizedTitle returns the filesystem-safe form of the title, used in
// bundle entry and folder names.
func (s QuestionSetSummary) SanitizedTitle() string {
	return helpers.SanitizeTitle(s.Title)
}
