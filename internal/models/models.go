package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// CalendarDaysBetween returns the whole calendar days from a to b. Both
// instants are evaluated in a's location before truncating to midnight, so a
// pair straddling midnight in different zones is counted consistently
// wherever the caller got its timestamps.
func CalendarDaysBetween(a, b time.Time) int {
	loc := a.Location()
	b = b.In(loc)
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, loc)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, loc)
	return int(math.Round(b.Sub(a).Hours() / 24))
}

type Deck struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Flashcard struct {
	ID             uuid.UUID `json:"id"`
	DeckID         uuid.UUID `json:"deck_id"`
	Front          string    `json:"front"`
	Back           string    `json:"back"`
	EaseFactor     float64   `json:"ease_factor"`
	Interval       int       `json:"interval"`
	Repetitions    int       `json:"repetitions"`
	NextReviewDate time.Time `json:"next_review_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewFlashcard returns a card that is immediately due for review.
func NewFlashcard(deckID uuid.UUID, front, back string, now time.Time) Flashcard {
	return Flashcard{
		ID:             uuid.New(),
		DeckID:         deckID,
		Front:          front,
		Back:           back,
		EaseFactor:     2.5,
		Interval:       0,
		Repetitions:    0,
		NextReviewDate: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

type UserProgress struct {
	TotalCardsReviewed int        `json:"total_cards_reviewed"`
	CurrentStreak      int        `json:"current_streak"`
	LastPracticeDate   *time.Time `json:"last_practice_date"`
}

// Equal reports whether two snapshots carry the same counters and practice
// date.
func (p UserProgress) Equal(o UserProgress) bool {
	if p.TotalCardsReviewed != o.TotalCardsReviewed || p.CurrentStreak != o.CurrentStreak {
		return false
	}
	if p.LastPracticeDate == nil || o.LastPracticeDate == nil {
		return p.LastPracticeDate == o.LastPracticeDate
	}
	return p.LastPracticeDate.Equal(*o.LastPracticeDate)
}

type CreateDeckInput struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

type UpdateDeckInput struct {
	Name *string `json:"name"`
}

type CreateFlashcardInput struct {
	DeckID uuid.UUID `json:"deck_id"`
	Front  string    `json:"front"`
	Back   string    `json:"back"`
}

type UpdateFlashcardInput struct {
	Front *string `json:"front"`
	Back  *string `json:"back"`
}
