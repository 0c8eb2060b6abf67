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

// FlashcardService manages card content. Scheduling state is owned by the
// practice flow; this service only touches front/back text and membership.
type FlashcardService interface {
	ListForDeck(ctx context.Context, deckID uuid.UUID) ([]models.Flashcard, error)
	Get(ctx context.Context, id uuid.UUID) (models.Flashcard, error)
	Create(ctx context.Context, input models.CreateFlashcardInput) (models.Flashcard, error)
	CreateBatch(ctx context.Context, deckID uuid.UUID, inputs []models.CreateFlashcardInput) ([]models.Flashcard, error)
	Update(ctx context.Context, id uuid.UUID, input models.UpdateFlashcardInput) (models.Flashcard, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type flashcardService struct {
	cache  *cache.Store
	remote remote.Store
	auth   auth.Provider
}

func NewFlashcardService(cacheStore *cache.Store, remoteStore remote.Store, authProvider auth.Provider) FlashcardService {
	return &flashcardService{
		cache:  cacheStore,
		remote: remoteStore,
		auth:   authProvider,
	}
}

func (s *flashcardService) ListForDeck(ctx context.Context, deckID uuid.UUID) ([]models.Flashcard, error) {
	if _, ok := s.cache.Deck(deckID); !ok {
		return nil, errors.NewNotFoundError("deck", deckID)
	}
	return s.cache.FlashcardsForDeck(deckID), nil
}

func (s *flashcardService) Get(ctx context.Context, id uuid.UUID) (models.Flashcard, error) {
	card, ok := s.cache.Flashcard(id)
	if !ok {
		return models.Flashcard{}, errors.NewNotFoundError("flashcard", id)
	}
	return card, nil
}

func (s *flashcardService) Create(ctx context.Context, input models.CreateFlashcardInput) (models.Flashcard, error) {
	cards, err := s.CreateBatch(ctx, input.DeckID, []models.CreateFlashcardInput{input})
	if err != nil {
		return models.Flashcard{}, err
	}
	return cards[0], nil
}

func (s *flashcardService) CreateBatch(ctx context.Context, deckID uuid.UUID, inputs []models.CreateFlashcardInput) ([]models.Flashcard, error) {
	if len(inputs) == 0 {
		return nil, errors.NewBadRequestError("no cards to create")
	}
	if _, ok := s.cache.Deck(deckID); !ok {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	now := time.Now()
	cards := make([]models.Flashcard, 0, len(inputs))
	for _, in := range inputs {
		front := strings.TrimSpace(in.Front)
		back := strings.TrimSpace(in.Back)
		if front == "" {
			return nil, errors.NewValidationError("front", "card front required")
		}
		if back == "" {
			return nil, errors.NewValidationError("back", "card back required")
		}
		cards = append(cards, models.NewFlashcard(deckID, front, back, now))
	}

	s.cache.AddFlashcards(cards...)
	s.mirror(ctx, "create flashcards", func(userID uuid.UUID) error {
		return s.remote.CreateFlashcards(ctx, userID, cards)
	})
	return cards, nil
}

func (s *flashcardService) Update(ctx context.Context, id uuid.UUID, input models.UpdateFlashcardInput) (models.Flashcard, error) {
	if input.Front == nil && input.Back == nil {
		return models.Flashcard{}, errors.NewBadRequestError("no fields to update")
	}

	current, ok := s.cache.Flashcard(id)
	if !ok {
		return models.Flashcard{}, errors.NewNotFoundError("flashcard", id)
	}
	front, back := current.Front, current.Back
	if input.Front != nil {
		front = strings.TrimSpace(*input.Front)
	}
	if input.Back != nil {
		back = strings.TrimSpace(*input.Back)
	}
	if front == "" {
		return models.Flashcard{}, errors.NewValidationError("front", "card front required")
	}
	if back == "" {
		return models.Flashcard{}, errors.NewValidationError("back", "card back required")
	}

	now := time.Now()
	s.cache.UpdateFlashcard(id, func(c *models.Flashcard) {
		c.Front = front
		c.Back = back
		c.UpdatedAt = now
	})

	s.mirror(ctx, "update flashcard", func(userID uuid.UUID) error {
		return s.remote.UpdateFlashcardContent(ctx, id, userID, front, back, now)
	})
	card, _ := s.cache.Flashcard(id)
	return card, nil
}

func (s *flashcardService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.cache.Flashcard(id); !ok {
		return errors.NewNotFoundError("flashcard", id)
	}
	s.cache.DeleteFlashcard(id)

	s.mirror(ctx, "delete flashcard", func(userID uuid.UUID) error {
		return s.remote.DeleteFlashcard(ctx, id, userID)
	})
	return nil
}

func (s *flashcardService) mirror(ctx context.Context, op string, write func(userID uuid.UUID) error) {
	userID, signedIn := s.auth.CurrentUserID(ctx)
	if !signedIn {
		return
	}
	if err := write(userID); err != nil {
		logger.FromContext(ctx).WithPrefix("services").Warn("%s not mirrored remotely: %v", op, err)
	}
}
