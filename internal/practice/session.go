package practice

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pcosta/flashdeck/internal/cache"
	"github.com/pcosta/flashdeck/internal/errors"
	"github.com/pcosta/flashdeck/internal/logger"
	"github.com/pcosta/flashdeck/internal/models"
	"github.com/pcosta/flashdeck/internal/srs"
)

// State is the lifecycle of a practice session.
type State string

const (
	NotStarted State = "not_started"
	InProgress State = "in_progress"
	Completed  State = "completed"
)

// Flusher pushes the pending-mutation queue to the remote store. Satisfied by
// the sync engine.
type Flusher interface {
	Push(ctx context.Context) bool
}

// Options control which cards enter a session.
type Options struct {
	// DueOnly restricts the session to cards whose next review date has
	// passed. Otherwise every card in the deck is practiced.
	DueOnly bool

	// Now overrides the session clock. Tests use this to pin the review
	// time; the zero value means time.Now.
	Now func() time.Time
}

// Session walks a deck's cards in oldest-due-first order and applies the
// scheduler's output to the cache after each answer. New cards default their
// next review date to creation time, so they naturally interleave with
// overdue cards.
//
// All cache writes inside Grade are synchronous; nothing yields between the
// scheduler call and the progress write, so each answer is atomic from the
// caller's point of view. A session may be shared across request handlers, so
// its methods serialize on an internal mutex.
type Session struct {
	DeckID uuid.UUID

	mu      sync.Mutex
	store   *cache.Store
	flusher Flusher
	cards   []models.Flashcard
	cursor  int
	state   State
	now     func() time.Time
	log     *logger.Logger
}

// NewSession builds a session over the cached cards of a deck. A deck that is
// not in the cache is a lookup failure; a deck with no matching cards yields a
// session that is already Completed.
func NewSession(store *cache.Store, flusher Flusher, deckID uuid.UUID, opts Options) (*Session, error) {
	if _, ok := store.Deck(deckID); !ok {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	clock := opts.Now
	if clock == nil {
		clock = time.Now
	}

	cards := store.FlashcardsForDeck(deckID)
	now := clock()
	if opts.DueOnly {
		due := cards[:0]
		for _, c := range cards {
			if !c.NextReviewDate.After(now) {
				due = append(due, c)
			}
		}
		cards = due
	}
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].NextReviewDate.Before(cards[j].NextReviewDate)
	})

	s := &Session{
		DeckID:  deckID,
		store:   store,
		flusher: flusher,
		cards:   cards,
		state:   NotStarted,
		now:     clock,
		log:     logger.Default().WithPrefix("practice"),
	}
	if len(cards) == 0 {
		s.state = Completed
	}
	return s, nil
}

// Start moves the session into progress. Starting an empty (already
// completed) session is a no-op.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == NotStarted {
		s.state = InProgress
		s.log.Debug("session started: deck_id=%s, cards=%d", s.DeckID, len(s.cards))
	}
}

// State returns the session's lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the card under the cursor.
func (s *Session) Current() (models.Flashcard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != InProgress || s.cursor >= len(s.cards) {
		return models.Flashcard{}, false
	}
	return s.cards[s.cursor], true
}

// Total returns the number of cards in the session.
func (s *Session) Total() int {
	return len(s.cards)
}

// Remaining returns the number of unanswered cards.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cards) - s.cursor
}

// Grade records the answer for the current card: the scheduler computes the
// new SM-2 fields, the cache is updated, the delta and a fresh progress
// snapshot are queued for sync, and the cursor advances. When the last card
// is answered the session completes and the pending queue is flushed in the
// background; completion never waits on the network.
func (s *Session) Grade(ctx context.Context, difficulty srs.Difficulty) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != InProgress {
		return errors.NewBadRequestError("session is not in progress")
	}
	if !difficulty.Valid() {
		return errors.NewValidationError("difficulty", "must be one of hard, good, easy")
	}

	now := s.now()
	card := s.cards[s.cursor]
	updated := srs.Review(card, difficulty, now)

	s.log.Debug("card graded: card_id=%s, difficulty=%s, interval=%d, ease=%.2f",
		card.ID, difficulty, updated.Interval, updated.EaseFactor)

	s.store.UpdateFlashcard(card.ID, func(c *models.Flashcard) {
		c.EaseFactor = updated.EaseFactor
		c.Interval = updated.Interval
		c.Repetitions = updated.Repetitions
		c.NextReviewDate = updated.NextReviewDate
		c.UpdatedAt = updated.UpdatedAt
	})
	s.store.QueueFlashcardUpdate(models.PendingFlashcardUpdate{
		ID:             card.ID,
		EaseFactor:     updated.EaseFactor,
		Interval:       updated.Interval,
		Repetitions:    updated.Repetitions,
		NextReviewDate: updated.NextReviewDate,
	})

	s.recordProgress(now)

	s.cursor++
	if s.cursor >= len(s.cards) {
		s.state = Completed
		s.log.Info("session completed: deck_id=%s, cards=%d", s.DeckID, len(s.cards))
		if s.flusher != nil {
			// Fire-and-forget: practice never blocks on the network.
			go s.flusher.Push(context.WithoutCancel(ctx))
		}
	}
	return nil
}

// recordProgress bumps the review counter, applies the streak rule, and
// persists plus queues the snapshot.
func (s *Session) recordProgress(now time.Time) {
	progress := s.store.Progress()
	progress.TotalCardsReviewed++

	switch daysSince(progress.LastPracticeDate, now) {
	case 0:
		// Already practiced today; the streak is untouched.
	case 1:
		progress.CurrentStreak++
		progress.LastPracticeDate = &now
	default:
		progress.CurrentStreak = 1
		progress.LastPracticeDate = &now
	}

	s.store.SetProgress(progress)
	s.store.QueueProgressUpdate(progress)
}

// daysSince returns the number of calendar days between last and now, or -1
// when there is no previous practice date.
func daysSince(last *time.Time, now time.Time) int {
	if last == nil {
		return -1
	}
	return models.CalendarDaysBetween(*last, now)
}
