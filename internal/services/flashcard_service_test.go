package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pcosta/flashdeck/internal/auth"
	"github.com/pcosta/flashdeck/internal/cache"
	apperrors "github.com/pcosta/flashdeck/internal/errors"
	"github.com/pcosta/flashdeck/internal/models"
	"github.com/pcosta/flashdeck/internal/services"
	"github.com/pcosta/flashdeck/internal/testutil"
	"github.com/pcosta/flashdeck/internal/testutil/mocks"
)

func newFlashcardService(t *testing.T, signedIn bool) (services.FlashcardService, *cache.Store, *mocks.MockRemoteStore) {
	t.Helper()

	store := testutil.NewTestStore(t)
	remoteStore := new(mocks.MockRemoteStore)
	session := auth.NewSession()
	if signedIn {
		session.SignIn(uuid.New())
	}
	return services.NewFlashcardService(store, remoteStore, session), store, remoteStore
}

func seedServiceDeck(t *testing.T, store *cache.Store) models.Deck {
	t.Helper()

	deck := models.Deck{ID: uuid.New(), Name: "Seeded"}
	store.AddDeck(deck)
	return deck
}

func TestFlashcardService_CreateSeedsSchedulingState(t *testing.T) {
	svc, store, _ := newFlashcardService(t, false)
	deck := seedServiceDeck(t, store)

	card, err := svc.Create(context.Background(), models.CreateFlashcardInput{
		DeckID: deck.ID,
		Front:  "  capital of France  ",
		Back:   "Paris",
	})
	require.NoError(t, err)

	assert.Equal(t, "capital of France", card.Front)
	assert.Equal(t, 2.5, card.EaseFactor)
	assert.Equal(t, 0, card.Interval)
	assert.Equal(t, 0, card.Repetitions)
	cached, ok := store.Flashcard(card.ID)
	require.True(t, ok)
	assert.Equal(t, deck.ID, cached.DeckID)
}

func TestFlashcardService_CreateUnknownDeck(t *testing.T) {
	svc, _, _ := newFlashcardService(t, false)

	_, err := svc.Create(context.Background(), models.CreateFlashcardInput{
		DeckID: uuid.New(), Front: "q", Back: "a",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestFlashcardService_CreateBatchValidatesEveryCard(t *testing.T) {
	svc, store, _ := newFlashcardService(t, false)
	deck := seedServiceDeck(t, store)

	_, err := svc.CreateBatch(context.Background(), deck.ID, []models.CreateFlashcardInput{
		{Front: "ok", Back: "ok"},
		{Front: "", Back: "missing front"},
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
	assert.Empty(t, store.FlashcardsForDeck(deck.ID), "batch must be all or nothing locally")
}

func TestFlashcardService_CreateBatchMirrorsOnce(t *testing.T) {
	svc, store, remoteStore := newFlashcardService(t, true)
	deck := seedServiceDeck(t, store)
	remoteStore.On("CreateFlashcards", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	cards, err := svc.CreateBatch(context.Background(), deck.ID, []models.CreateFlashcardInput{
		{Front: "1", Back: "1"},
		{Front: "2", Back: "2"},
	})
	require.NoError(t, err)

	assert.Len(t, cards, 2)
	remoteStore.AssertExpectations(t)
}

func TestFlashcardService_UpdateKeepsSchedulingState(t *testing.T) {
	svc, store, _ := newFlashcardService(t, false)
	deck := seedServiceDeck(t, store)
	card, err := svc.Create(context.Background(), models.CreateFlashcardInput{
		DeckID: deck.ID, Front: "old front", Back: "old back",
	})
	require.NoError(t, err)
	store.UpdateFlashcard(card.ID, func(c *models.Flashcard) {
		c.EaseFactor = 2.7
		c.Interval = 12
		c.Repetitions = 4
	})

	front := "new front"
	updated, err := svc.Update(context.Background(), card.ID, models.UpdateFlashcardInput{Front: &front})
	require.NoError(t, err)

	assert.Equal(t, "new front", updated.Front)
	assert.Equal(t, "old back", updated.Back)
	assert.Equal(t, 2.7, updated.EaseFactor)
	assert.Equal(t, 12, updated.Interval)
	assert.Equal(t, 4, updated.Repetitions)
}

func TestFlashcardService_UpdateRejectsEmptyContent(t *testing.T) {
	svc, store, _ := newFlashcardService(t, false)
	deck := seedServiceDeck(t, store)
	card, err := svc.Create(context.Background(), models.CreateFlashcardInput{
		DeckID: deck.ID, Front: "front", Back: "back",
	})
	require.NoError(t, err)

	empty := "  "
	_, err = svc.Update(context.Background(), card.ID, models.UpdateFlashcardInput{Back: &empty})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestFlashcardService_UpdateNoFields(t *testing.T) {
	svc, _, _ := newFlashcardService(t, false)

	_, err := svc.Update(context.Background(), uuid.New(), models.UpdateFlashcardInput{})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeBadRequest, appErr.Code)
}

func TestFlashcardService_DeleteSurvivesRemoteFailure(t *testing.T) {
	svc, store, remoteStore := newFlashcardService(t, true)
	deck := seedServiceDeck(t, store)
	remoteStore.On("CreateFlashcards", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	remoteStore.On("DeleteFlashcard", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("timeout"))

	card, err := svc.Create(context.Background(), models.CreateFlashcardInput{
		DeckID: deck.ID, Front: "q", Back: "a",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), card.ID))
	_, ok := store.Flashcard(card.ID)
	assert.False(t, ok, "local delete should survive a remote failure")
}

func TestFlashcardService_ListForDeck(t *testing.T) {
	svc, store, _ := newFlashcardService(t, false)
	deck := seedServiceDeck(t, store)
	other := seedServiceDeck(t, store)
	_, err := svc.Create(context.Background(), models.CreateFlashcardInput{DeckID: deck.ID, Front: "q", Back: "a"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), models.CreateFlashcardInput{DeckID: other.ID, Front: "x", Back: "y"})
	require.NoError(t, err)

	cards, err := svc.ListForDeck(context.Background(), deck.ID)
	require.NoError(t, err)

	require.Len(t, cards, 1)
	assert.Equal(t, deck.ID, cards[0].DeckID)
}
