package api

import (
	"encoding/json"
	"net/http"
	stdsync "sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pcosta/flashdeck/internal/auth"
	"github.com/pcosta/flashdeck/internal/cache"
	"github.com/pcosta/flashdeck/internal/errors"
	"github.com/pcosta/flashdeck/internal/practice"
	"github.com/pcosta/flashdeck/internal/services"
	"github.com/pcosta/flashdeck/internal/sync"
)

type Server struct {
	Decks      services.DeckService
	Flashcards services.FlashcardService
	Progress   services.ProgressService
	Cache      *cache.Store
	Session    *auth.Session
	Verifier   *auth.JWTVerifier
	Sync       *sync.Engine

	mu       stdsync.Mutex
	sessions map[uuid.UUID]*practice.Session
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.NewBadRequestError("invalid JSON body")
	}
	return nil
}

func urlUUID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, errors.NewBadRequestError("invalid " + param)
	}
	return id, nil
}
