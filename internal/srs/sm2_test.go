package srs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcosta/flashdeck/internal/models"
	"github.com/pcosta/flashdeck/internal/srs"
)

var reviewTime = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newCard(ease float64, interval, repetitions int) models.Flashcard {
	return models.Flashcard{
		EaseFactor:  ease,
		Interval:    interval,
		Repetitions: repetitions,
	}
}

func TestQualityMapping(t *testing.T) {
	assert.Equal(t, 2, srs.Hard.Quality())
	assert.Equal(t, 4, srs.Good.Quality())
	assert.Equal(t, 5, srs.Easy.Quality())
}

func TestReview_HardResetsProgress(t *testing.T) {
	card := newCard(2.5, 15, 4)

	updated := srs.Review(card, srs.Hard, reviewTime)

	assert.Equal(t, 0, updated.Repetitions, "failed recall should reset repetitions")
	assert.Equal(t, 1, updated.Interval, "failed recall should reset interval to 1")
	assert.Equal(t, 2.5, updated.EaseFactor, "ease factor should be unchanged on failure")
	assert.Equal(t, reviewTime.AddDate(0, 0, 1), updated.NextReviewDate)
}

func TestReview_FirstGood(t *testing.T) {
	card := newCard(2.5, 0, 0)

	updated := srs.Review(card, srs.Good, reviewTime)

	assert.Equal(t, 1, updated.Interval)
	assert.Equal(t, 1, updated.Repetitions)
	assert.Equal(t, 2.5, updated.EaseFactor, "good keeps ease factor flat at 2.5")
}

func TestReview_EasyRaisesEaseFactor(t *testing.T) {
	card := newCard(2.5, 10, 3)

	updated := srs.Review(card, srs.Easy, reviewTime)

	assert.Equal(t, 2.6, updated.EaseFactor)
	assert.Equal(t, 26, updated.Interval, "10 * 2.6 = 26")
	assert.Equal(t, 4, updated.Repetitions)
}

func TestReview_SustainedGoodProgression(t *testing.T) {
	card := newCard(2.5, 0, 0)

	card = srs.Review(card, srs.Good, reviewTime)
	require.Equal(t, 1, card.Interval)

	card = srs.Review(card, srs.Good, reviewTime)
	require.Equal(t, 6, card.Interval)

	card = srs.Review(card, srs.Good, reviewTime)
	assert.Equal(t, 15, card.Interval, "third review should multiply by ease factor")
	assert.Equal(t, 3, card.Repetitions)
}

func TestReview_EaseFactorFloor(t *testing.T) {
	card := newCard(1.3, 1, 0)

	// Alternating grades never pull the ease factor below 1.3.
	grades := []srs.Difficulty{srs.Good, srs.Hard, srs.Good, srs.Good, srs.Hard, srs.Good}
	for _, g := range grades {
		card = srs.Review(card, g, reviewTime)
		assert.GreaterOrEqual(t, card.EaseFactor, 1.3)
	}
}

func TestReview_EaseFactorRounding(t *testing.T) {
	tests := []struct {
		name       string
		ease       float64
		difficulty srs.Difficulty
		expected   float64
	}{
		{"good keeps two decimals", 2.36, srs.Good, 2.36},
		{"easy adds a tenth", 2.36, srs.Easy, 2.46},
		{"floor applies before rounding", 1.3, srs.Good, 1.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := newCard(tt.ease, 6, 2)
			updated := srs.Review(card, tt.difficulty, reviewTime)
			assert.Equal(t, tt.expected, updated.EaseFactor)
		})
	}
}

func TestReview_IntervalCalculation(t *testing.T) {
	tests := []struct {
		name        string
		interval    int
		repetitions int
		ease        float64
		difficulty  srs.Difficulty
		expected    int
	}{
		{"first success", 0, 0, 2.5, srs.Good, 1},
		{"second success", 1, 1, 2.5, srs.Good, 6},
		{"third success multiplies", 6, 2, 2.5, srs.Good, 15},
		{"failure resets long interval", 120, 9, 2.8, srs.Hard, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := newCard(tt.ease, tt.interval, tt.repetitions)
			updated := srs.Review(card, tt.difficulty, reviewTime)
			assert.Equal(t, tt.expected, updated.Interval)
		})
	}
}
