package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pcosta/flashdeck/internal/auth"
	"github.com/pcosta/flashdeck/internal/cache"
	"github.com/pcosta/flashdeck/internal/errors"
	"github.com/pcosta/flashdeck/internal/logger"
	"github.com/pcosta/flashdeck/internal/models"
	"github.com/pcosta/flashdeck/internal/remote"
)

// DeckService manages decks and the tag registry. Mutations are applied to
// the local cache first so they take effect immediately, then mirrored to the
// remote store. A remote failure on plain CRUD is logged and tolerated (the
// next pull reconciles); tag registration is the exception and rolls back.
type DeckService interface {
	List(ctx context.Context) []models.Deck
	ListWithStats(ctx context.Context) []models.DeckWithStats
	Get(ctx context.Context, id uuid.UUID) (models.Deck, error)
	Create(ctx context.Context, input models.CreateDeckInput) (models.Deck, error)
	Update(ctx context.Context, id uuid.UUID, input models.UpdateDeckInput) (models.Deck, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetTags(ctx context.Context, id uuid.UUID, tags []string) (models.Deck, error)

	RegisterTag(ctx context.Context, tag string) error
	ListTags(ctx context.Context) []string
}

type deckService struct {
	cache  *cache.Store
	remote remote.Store
	auth   auth.Provider
}

func NewDeckService(cacheStore *cache.Store, remoteStore remote.Store, authProvider auth.Provider) DeckService {
	return &deckService{
		cache:  cacheStore,
		remote: remoteStore,
		auth:   authProvider,
	}
}

func (s *deckService) List(ctx context.Context) []models.Deck {
	return s.cache.Decks()
}

func (s *deckService) ListWithStats(ctx context.Context) []models.DeckWithStats {
	now := time.Now()
	decks := s.cache.Decks()
	out := make([]models.DeckWithStats, 0, len(decks))
	for _, d := range decks {
		cards := s.cache.FlashcardsForDeck(d.ID)
		mastered, due := 0, 0
		for _, c := range cards {
			if c.Interval >= masteredIntervalDays {
				mastered++
			}
			if !c.NextReviewDate.After(now) {
				due++
			}
		}
		stats := models.DeckWithStats{
			Deck:         d,
			CardCount:    len(cards),
			DueCardCount: due,
		}
		if len(cards) > 0 {
			stats.Mastery = mastered * 100 / len(cards)
		}
		out = append(out, stats)
	}
	return out
}

func (s *deckService) Get(ctx context.Context, id uuid.UUID) (models.Deck, error) {
	deck, ok := s.cache.Deck(id)
	if !ok {
		return models.Deck{}, errors.NewNotFoundError("deck", id)
	}
	return deck, nil
}

func (s *deckService) Create(ctx context.Context, input models.CreateDeckInput) (models.Deck, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Deck{}, errors.NewValidationError("name", "deck name required")
	}

	now := time.Now()
	deck := models.Deck{
		ID:        uuid.New(),
		Name:      name,
		Tags:      normalizeTags(input.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.cache.AddDeck(deck)

	s.mirror(ctx, "create deck", func(userID uuid.UUID) error {
		return s.remote.CreateDeck(ctx, userID, deck)
	})
	return deck, nil
}

func (s *deckService) Update(ctx context.Context, id uuid.UUID, input models.UpdateDeckInput) (models.Deck, error) {
	if input.Name == nil {
		return models.Deck{}, errors.NewBadRequestError("no fields to update")
	}
	name := strings.TrimSpace(*input.Name)
	if name == "" {
		return models.Deck{}, errors.NewValidationError("name", "deck name required")
	}

	now := time.Now()
	ok := s.cache.UpdateDeck(id, func(d *models.Deck) {
		d.Name = name
		d.UpdatedAt = now
	})
	if !ok {
		return models.Deck{}, errors.NewNotFoundError("deck", id)
	}

	s.mirror(ctx, "rename deck", func(userID uuid.UUID) error {
		return s.remote.UpdateDeckName(ctx, id, userID, name, now)
	})
	deck, _ := s.cache.Deck(id)
	return deck, nil
}

func (s *deckService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.cache.Deck(id); !ok {
		return errors.NewNotFoundError("deck", id)
	}
	s.cache.DeleteDeck(id)

	s.mirror(ctx, "delete deck", func(userID uuid.UUID) error {
		return s.remote.DeleteDeck(ctx, id, userID)
	})
	return nil
}

func (s *deckService) SetTags(ctx context.Context, id uuid.UUID, tags []string) (models.Deck, error) {
	tags = normalizeTags(tags)
	now := time.Now()
	ok := s.cache.UpdateDeck(id, func(d *models.Deck) {
		d.Tags = tags
		d.UpdatedAt = now
	})
	if !ok {
		return models.Deck{}, errors.NewNotFoundError("deck", id)
	}

	s.mirror(ctx, "set deck tags", func(userID uuid.UUID) error {
		return s.remote.SetDeckTags(ctx, id, userID, tags)
	})
	deck, _ := s.cache.Deck(id)
	return deck, nil
}

// RegisterTag adds a tag to the registry. Unlike the other mutations the
// local insert is rolled back when the remote rejects it, so the registry
// never advertises a tag the remote refused to record.
func (s *deckService) RegisterTag(ctx context.Context, tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return errors.NewValidationError("tag", "tag required")
	}
	for _, existing := range s.cache.Tags() {
		if existing == tag {
			return nil
		}
	}

	userID, signedIn := s.auth.CurrentUserID(ctx)
	if !signedIn {
		s.cache.AddTag(tag)
		return nil
	}

	txn := optimisticTxn{
		name: "register tag",
		applyLocal: func() {
			s.cache.AddTag(tag)
		},
		attemptRemote: func(ctx context.Context) error {
			return s.remote.UpdateTags(ctx, userID, s.cache.Tags())
		},
		rollbackLocal: func() {
			s.cache.RemoveTag(tag)
		},
	}
	return txn.run(ctx)
}

func (s *deckService) ListTags(ctx context.Context) []string {
	return s.cache.Tags()
}

// mirror runs a remote write for the signed-in user and logs failures without
// surfacing them. The cache already holds the change; the remote catches up
// on the next successful sync.
func (s *deckService) mirror(ctx context.Context, op string, write func(userID uuid.UUID) error) {
	userID, signedIn := s.auth.CurrentUserID(ctx)
	if !signedIn {
		return
	}
	if err := write(userID); err != nil {
		logger.FromContext(ctx).WithPrefix("services").Warn("%s not mirrored remotely: %v", op, err)
	}
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
