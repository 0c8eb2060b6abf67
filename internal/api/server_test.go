package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcosta/flashdeck/internal/api"
	"github.com/pcosta/flashdeck/internal/auth"
	"github.com/pcosta/flashdeck/internal/cache"
	"github.com/pcosta/flashdeck/internal/models"
	"github.com/pcosta/flashdeck/internal/services"
	syncengine "github.com/pcosta/flashdeck/internal/sync"
	"github.com/pcosta/flashdeck/internal/testutil"
	"github.com/pcosta/flashdeck/internal/testutil/mocks"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (*httptest.Server, *cache.Store, *auth.Session) {
	t.Helper()

	store := testutil.NewTestStore(t)
	remoteStore := new(mocks.MockRemoteStore)
	session := auth.NewSession()
	engine := syncengine.New(store, remoteStore, session, 5*time.Second)

	srv := &api.Server{
		Decks:      services.NewDeckService(store, remoteStore, session),
		Flashcards: services.NewFlashcardService(store, remoteStore, session),
		Progress:   services.NewProgressService(store),
		Cache:      store,
		Session:    session,
		Verifier:   auth.NewJWTVerifier(testSecret),
		Sync:       engine,
	}
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts, store, session
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealthAndReady(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/ready")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDeckLifecycle(t *testing.T) {
	ts, _, _ := newTestServer(t)

	var deck models.Deck
	resp := doJSON(t, http.MethodPost, ts.URL+"/decks", models.CreateDeckInput{Name: "Biology"}, &deck)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Biology", deck.Name)

	var fetched models.Deck
	resp = doJSON(t, http.MethodGet, ts.URL+"/decks/"+deck.ID.String(), nil, &fetched)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, deck.ID, fetched.ID)

	var renamed models.Deck
	resp = doJSON(t, http.MethodPut, ts.URL+"/decks/"+deck.ID.String(),
		map[string]string{"name": "Cell Biology"}, &renamed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Cell Biology", renamed.Name)

	var decks []models.Deck
	resp = doJSON(t, http.MethodGet, ts.URL+"/decks", nil, &decks)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decks, 1)

	resp = doJSON(t, http.MethodDelete, ts.URL+"/decks/"+deck.ID.String(), nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, ts.URL+"/decks/"+deck.ID.String(), nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateDeckRejectsEmptyName(t *testing.T) {
	ts, _, _ := newTestServer(t)

	var body map[string]map[string]string
	resp := doJSON(t, http.MethodPost, ts.URL+"/decks", models.CreateDeckInput{Name: " "}, &body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["error"]["code"])
}

func TestCardBatchCreate(t *testing.T) {
	ts, _, _ := newTestServer(t)

	var deck models.Deck
	doJSON(t, http.MethodPost, ts.URL+"/decks", models.CreateDeckInput{Name: "Vocab"}, &deck)

	var cards []models.Flashcard
	resp := doJSON(t, http.MethodPost, ts.URL+"/decks/"+deck.ID.String()+"/cards", map[string]any{
		"cards": []map[string]string{
			{"front": "hola", "back": "hello"},
			{"front": "adios", "back": "goodbye"},
		},
	}, &cards)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, cards, 2)

	var listed []models.Flashcard
	resp = doJSON(t, http.MethodGet, ts.URL+"/decks/"+deck.ID.String()+"/cards", nil, &listed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, listed, 2)
}

func TestPracticeFlow(t *testing.T) {
	ts, store, _ := newTestServer(t)

	var deck models.Deck
	doJSON(t, http.MethodPost, ts.URL+"/decks", models.CreateDeckInput{Name: "Practice"}, &deck)
	var cards []models.Flashcard
	doJSON(t, http.MethodPost, ts.URL+"/decks/"+deck.ID.String()+"/cards", map[string]any{
		"cards": []map[string]string{
			{"front": "1", "back": "one"},
			{"front": "2", "back": "two"},
		},
	}, &cards)

	var view struct {
		ID        uuid.UUID         `json:"id"`
		State     string            `json:"state"`
		Total     int               `json:"total"`
		Remaining int               `json:"remaining"`
		Card      *models.Flashcard `json:"card"`
	}
	resp := doJSON(t, http.MethodPost, ts.URL+"/practice", map[string]any{"deck_id": deck.ID}, &view)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "in_progress", view.State)
	assert.Equal(t, 2, view.Total)
	require.NotNil(t, view.Card)

	gradeURL := ts.URL + "/practice/" + view.ID.String() + "/grade"
	resp = doJSON(t, http.MethodPost, gradeURL, map[string]string{"difficulty": "good"}, &view)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "in_progress", view.State)
	assert.Equal(t, 1, view.Remaining)

	view.Card = nil // the completed view omits "card", which leaves a reused decode target untouched
	resp = doJSON(t, http.MethodPost, gradeURL, map[string]string{"difficulty": "easy"}, &view)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", view.State)
	assert.Nil(t, view.Card)

	progress := store.Progress()
	assert.Equal(t, 2, progress.TotalCardsReviewed)
	assert.Equal(t, 1, progress.CurrentStreak)

	// The completed session is discarded.
	resp = doJSON(t, http.MethodGet, ts.URL+"/practice/"+view.ID.String(), nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGradeRejectsUnknownDifficulty(t *testing.T) {
	ts, _, _ := newTestServer(t)

	var deck models.Deck
	doJSON(t, http.MethodPost, ts.URL+"/decks", models.CreateDeckInput{Name: "D"}, &deck)
	doJSON(t, http.MethodPost, ts.URL+"/decks/"+deck.ID.String()+"/cards",
		map[string]any{"front": "q", "back": "a"}, nil)

	var view struct {
		ID uuid.UUID `json:"id"`
	}
	doJSON(t, http.MethodPost, ts.URL+"/practice", map[string]any{"deck_id": deck.ID}, &view)

	resp := doJSON(t, http.MethodPost, ts.URL+"/practice/"+view.ID.String()+"/grade",
		map[string]string{"difficulty": "impossible"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSignInVerifiesToken(t *testing.T) {
	ts, _, session := newTestServer(t)
	verifier := auth.NewJWTVerifier(testSecret)
	userID := uuid.New()
	token, err := verifier.GenerateToken(userID, time.Hour)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/auth/signin", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	current, signedIn := session.CurrentUserID(req.Context())
	require.True(t, signedIn)
	assert.Equal(t, userID, current)
}

func TestSignInRejectsBadToken(t *testing.T) {
	ts, _, session := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/auth/signin", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_, signedIn := session.CurrentUserID(req.Context())
	assert.False(t, signedIn)
}

func TestSignOutFlushesBeforeClosing(t *testing.T) {
	ts, _, session := newTestServer(t)
	session.SignIn(uuid.New())

	var body map[string]bool
	resp := doJSON(t, http.MethodPost, ts.URL+"/auth/signout", nil, &body)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body["pushed"], "empty queue flush should succeed")
	_, signedIn := session.CurrentUserID(resp.Request.Context())
	assert.False(t, signedIn)
}

func TestSyncStatus(t *testing.T) {
	ts, store, _ := newTestServer(t)
	store.QueueFlashcardUpdate(models.PendingFlashcardUpdate{ID: uuid.New()})

	var status map[string]any
	resp := doJSON(t, http.MethodGet, ts.URL+"/sync/status", nil, &status)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), status["pending_flashcards"])
	assert.Equal(t, false, status["pending_progress"])
	_, hasLastSync := status["last_sync"]
	assert.False(t, hasLastSync, "no pull has happened yet")
}
