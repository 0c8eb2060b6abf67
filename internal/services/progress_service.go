package services

import (
	"context"
	"time"

	"github.com/pcosta/flashdeck/internal/cache"
	"github.com/pcosta/flashdeck/internal/models"
)

// A card counts as mastered once its review interval reaches a week.
const masteredIntervalDays = 7

// ProgressService reports aggregate practice state derived from the cache.
type ProgressService interface {
	Overview(ctx context.Context) models.UserProgress
	OverallMastery(ctx context.Context) float64
	DeckBreakdown(ctx context.Context) []models.DeckProgress
}

type progressService struct {
	cache *cache.Store
}

func NewProgressService(cacheStore *cache.Store) ProgressService {
	return &progressService{cache: cacheStore}
}

// Overview returns the progress snapshot with the streak zeroed when the last
// practice is more than a day in the past. The stored streak is left alone;
// it is only re-evaluated when the next card is graded.
func (s *progressService) Overview(ctx context.Context) models.UserProgress {
	p := s.cache.Progress()
	if p.LastPracticeDate != nil && models.CalendarDaysBetween(*p.LastPracticeDate, time.Now()) > 1 {
		p.CurrentStreak = 0
	}
	return p
}

// OverallMastery returns the fraction of all cards whose interval has reached
// the mastered threshold, in [0, 1]. An empty collection reports 0.
func (s *progressService) OverallMastery(ctx context.Context) float64 {
	cards := s.cache.Flashcards()
	if len(cards) == 0 {
		return 0
	}
	mastered := 0
	for _, c := range cards {
		if c.Interval >= masteredIntervalDays {
			mastered++
		}
	}
	return float64(mastered) / float64(len(cards))
}

func (s *progressService) DeckBreakdown(ctx context.Context) []models.DeckProgress {
	decks := s.cache.Decks()
	out := make([]models.DeckProgress, 0, len(decks))
	for _, d := range decks {
		dp := models.DeckProgress{ID: d.ID, Name: d.Name}
		for _, c := range s.cache.FlashcardsForDeck(d.ID) {
			dp.TotalCount++
			switch {
			case c.Interval >= masteredIntervalDays:
				dp.MasteredCount++
			case c.Repetitions > 0:
				dp.LearningCount++
			default:
				dp.NewCount++
			}
		}
		if dp.TotalCount > 0 {
			dp.Progress = dp.MasteredCount * 100 / dp.TotalCount
		}
		out = append(out, dp)
	}
	return out
}
