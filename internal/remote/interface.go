package remote

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pcosta/flashdeck/internal/models"
)

// Store is the durable store of record across sessions and devices. Every
// method takes the owning user id as an explicit authorization predicate:
// fetches return only rows owned by the user, and updates no-op on rows that
// are not.
type Store interface {
	FetchDecks(ctx context.Context, userID uuid.UUID) ([]models.Deck, error)
	FetchFlashcards(ctx context.Context, userID uuid.UUID) ([]models.Flashcard, error)
	FetchProgress(ctx context.Context, userID uuid.UUID) (models.UserProgress, error)
	FetchTags(ctx context.Context, userID uuid.UUID) ([]string, error)

	// UpdateFlashcardFields overwrites the scheduling fields of one card.
	// Full-field overwrite keyed by id, so retries are idempotent.
	UpdateFlashcardFields(ctx context.Context, cardID, userID uuid.UUID, fields models.PendingFlashcardUpdate) error

	// UpdateProgress overwrites the user's progress snapshot.
	UpdateProgress(ctx context.Context, userID uuid.UUID, progress models.UserProgress) error

	// UpdateTags replaces the user's tag registry.
	UpdateTags(ctx context.Context, userID uuid.UUID, tags []string) error

	// Entity CRUD, used by the deck-editing flows. Each operation is scoped
	// to the owning user.
	CreateDeck(ctx context.Context, userID uuid.UUID, deck models.Deck) error
	UpdateDeckName(ctx context.Context, deckID, userID uuid.UUID, name string, updatedAt time.Time) error
	DeleteDeck(ctx context.Context, deckID, userID uuid.UUID) error
	SetDeckTags(ctx context.Context, deckID, userID uuid.UUID, tags []string) error
	CreateFlashcards(ctx context.Context, userID uuid.UUID, cards []models.Flashcard) error
	UpdateFlashcardContent(ctx context.Context, cardID, userID uuid.UUID, front, back string, updatedAt time.Time) error
	DeleteFlashcard(ctx context.Context, cardID, userID uuid.UUID) error
}
