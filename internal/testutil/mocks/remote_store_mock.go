package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pcosta/flashdeck/internal/models"
)

// MockRemoteStore is a mock implementation of remote.Store
type MockRemoteStore struct {
	mock.Mock
}

func (m *MockRemoteStore) FetchDecks(ctx context.Context, userID uuid.UUID) ([]models.Deck, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Deck), args.Error(1)
}

func (m *MockRemoteStore) FetchFlashcards(ctx context.Context, userID uuid.UUID) ([]models.Flashcard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flashcard), args.Error(1)
}

func (m *MockRemoteStore) FetchProgress(ctx context.Context, userID uuid.UUID) (models.UserProgress, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.UserProgress), args.Error(1)
}

func (m *MockRemoteStore) FetchTags(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRemoteStore) UpdateFlashcardFields(ctx context.Context, cardID, userID uuid.UUID, fields models.PendingFlashcardUpdate) error {
	args := m.Called(ctx, cardID, userID, fields)
	return args.Error(0)
}

func (m *MockRemoteStore) UpdateProgress(ctx context.Context, userID uuid.UUID, progress models.UserProgress) error {
	args := m.Called(ctx, userID, progress)
	return args.Error(0)
}

func (m *MockRemoteStore) UpdateTags(ctx context.Context, userID uuid.UUID, tags []string) error {
	args := m.Called(ctx, userID, tags)
	return args.Error(0)
}

func (m *MockRemoteStore) CreateDeck(ctx context.Context, userID uuid.UUID, deck models.Deck) error {
	args := m.Called(ctx, userID, deck)
	return args.Error(0)
}

func (m *MockRemoteStore) UpdateDeckName(ctx context.Context, deckID, userID uuid.UUID, name string, updatedAt time.Time) error {
	args := m.Called(ctx, deckID, userID, name, updatedAt)
	return args.Error(0)
}

func (m *MockRemoteStore) DeleteDeck(ctx context.Context, deckID, userID uuid.UUID) error {
	args := m.Called(ctx, deckID, userID)
	return args.Error(0)
}

func (m *MockRemoteStore) SetDeckTags(ctx context.Context, deckID, userID uuid.UUID, tags []string) error {
	args := m.Called(ctx, deckID, userID, tags)
	return args.Error(0)
}

func (m *MockRemoteStore) CreateFlashcards(ctx context.Context, userID uuid.UUID, cards []models.Flashcard) error {
	args := m.Called(ctx, userID, cards)
	return args.Error(0)
}

func (m *MockRemoteStore) UpdateFlashcardContent(ctx context.Context, cardID, userID uuid.UUID, front, back string, updatedAt time.Time) error {
	args := m.Called(ctx, cardID, userID, front, back, updatedAt)
	return args.Error(0)
}

func (m *MockRemoteStore) DeleteFlashcard(ctx context.Context, cardID, userID uuid.UUID) error {
	args := m.Called(ctx, cardID, userID)
	return args.Error(0)
}
