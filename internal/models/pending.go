package models

import (
	"time"

	"github.com/google/uuid"
)

// PendingFlashcardUpdate is a locally applied scheduling change that has not
// yet been confirmed by the remote store.
type PendingFlashcardUpdate struct {
	ID             uuid.UUID `json:"id"`
	EaseFactor     float64   `json:"ease_factor"`
	Interval       int       `json:"interval"`
	Repetitions    int       `json:"repetitions"`
	NextReviewDate time.Time `json:"next_review_date"`
}

// Equal reports whether two deltas carry the same fields. Timestamps are
// compared as instants, not structurally.
func (u PendingFlashcardUpdate) Equal(o PendingFlashcardUpdate) bool {
	return u.ID == o.ID &&
		u.EaseFactor == o.EaseFactor &&
		u.Interval == o.Interval &&
		u.Repetitions == o.Repetitions &&
		u.NextReviewDate.Equal(o.NextReviewDate)
}

// PendingUpdates is the serialized shape of the pending-mutation queue. At
// most one flashcard entry per card id and at most one progress snapshot are
// retained.
type PendingUpdates struct {
	Flashcards []PendingFlashcardUpdate `json:"flashcards"`
	Progress   *UserProgress            `json:"progress"`
}
