package srs

import (
	"math"
	"time"

	"github.com/pcosta/flashdeck/internal/models"
)

// Difficulty is the grade a user assigns to a recall. The set is closed:
// every value maps to a quality score, so Review is total over its inputs.
type Difficulty string

const (
	Hard Difficulty = "hard"
	Good Difficulty = "good"
	Easy Difficulty = "easy"
)

// Quality maps a difficulty onto the SM-2 0-5 scale. "hard" sits below the
// quality-3 success threshold, so it counts as a failed recall.
func (d Difficulty) Quality() int {
	switch d {
	case Hard:
		return 2
	case Easy:
		return 5
	default:
		return 4
	}
}

// Valid reports whether d is one of the three recognized grades.
func (d Difficulty) Valid() bool {
	return d == Hard || d == Good || d == Easy
}

const minEaseFactor = 1.3

// Review applies the SM-2 state transition for a graded recall and returns
// the card with its scheduling fields replaced. Pure: no I/O, no randomness;
// the caller supplies the review time.
func Review(card models.Flashcard, difficulty Difficulty, now time.Time) models.Flashcard {
	quality := difficulty.Quality()

	ef := card.EaseFactor
	interval := card.Interval
	repetitions := card.Repetitions

	if quality < 3 {
		// Failed recall: progress resets, ease factor is untouched.
		repetitions = 0
		interval = 1
	} else {
		q := float64(5 - quality)
		ef = math.Max(minEaseFactor, ef+(0.1-q*(0.08+q*0.02)))

		switch repetitions {
		case 0:
			interval = 1
		case 1:
			interval = 6
		default:
			interval = int(math.Round(float64(interval) * ef))
		}
		repetitions++
	}

	card.EaseFactor = math.Round(ef*100) / 100
	card.Interval = interval
	card.Repetitions = repetitions
	card.NextReviewDate = now.AddDate(0, 0, interval)
	card.UpdatedAt = now
	return card
}
