package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcosta/flashdeck/internal/models"
	"github.com/pcosta/flashdeck/internal/services"
	"github.com/pcosta/flashdeck/internal/testutil"
)

func TestProgressService_OverviewReportsStaleStreakAsZero(t *testing.T) {
	store := testutil.NewTestStore(t)
	svc := services.NewProgressService(store)

	stale := time.Now().AddDate(0, 0, -3)
	store.SetProgress(models.UserProgress{
		TotalCardsReviewed: 42,
		CurrentStreak:      9,
		LastPracticeDate:   &stale,
	})

	p := svc.Overview(context.Background())

	assert.Equal(t, 42, p.TotalCardsReviewed)
	assert.Equal(t, 0, p.CurrentStreak)
}

func TestProgressService_OverviewKeepsFreshStreak(t *testing.T) {
	store := testutil.NewTestStore(t)
	svc := services.NewProgressService(store)

	yesterday := time.Now().AddDate(0, 0, -1)
	store.SetProgress(models.UserProgress{CurrentStreak: 5, LastPracticeDate: &yesterday})

	assert.Equal(t, 5, svc.Overview(context.Background()).CurrentStreak)
}

func TestProgressService_OverallMastery(t *testing.T) {
	store := testutil.NewTestStore(t)
	svc := services.NewProgressService(store)
	deckID := uuid.New()
	now := time.Now()

	assert.Zero(t, svc.OverallMastery(context.Background()))

	mastered := models.NewFlashcard(deckID, "m", "m", now)
	mastered.Interval = 7
	learning := models.NewFlashcard(deckID, "l", "l", now)
	learning.Interval = 3
	fresh := models.NewFlashcard(deckID, "f", "f", now)
	other := models.NewFlashcard(deckID, "o", "o", now)
	other.Interval = 21
	store.AddFlashcards(mastered, learning, fresh, other)

	assert.InDelta(t, 0.5, svc.OverallMastery(context.Background()), 1e-9)
}

func TestProgressService_DeckBreakdown(t *testing.T) {
	store := testutil.NewTestStore(t)
	svc := services.NewProgressService(store)
	now := time.Now()

	deck := models.Deck{ID: uuid.New(), Name: "Breakdown"}
	empty := models.Deck{ID: uuid.New(), Name: "Empty"}
	store.SetDecks([]models.Deck{deck, empty})

	mastered := models.NewFlashcard(deck.ID, "m", "m", now)
	mastered.Interval = 10
	mastered.Repetitions = 4
	learning := models.NewFlashcard(deck.ID, "l", "l", now)
	learning.Interval = 2
	learning.Repetitions = 1
	fresh := models.NewFlashcard(deck.ID, "f", "f", now)
	store.AddFlashcards(mastered, learning, fresh)

	breakdown := svc.DeckBreakdown(context.Background())
	require.Len(t, breakdown, 2)

	assert.Equal(t, "Breakdown", breakdown[0].Name)
	assert.Equal(t, 1, breakdown[0].MasteredCount)
	assert.Equal(t, 1, breakdown[0].LearningCount)
	assert.Equal(t, 1, breakdown[0].NewCount)
	assert.Equal(t, 3, breakdown[0].TotalCount)
	assert.Equal(t, 33, breakdown[0].Progress)

	assert.Equal(t, "Empty", breakdown[1].Name)
	assert.Zero(t, breakdown[1].TotalCount)
	assert.Zero(t, breakdown[1].Progress)
}
