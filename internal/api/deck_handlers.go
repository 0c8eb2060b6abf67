package api

import (
	"net/http"

	"github.com/pcosta/flashdeck/internal/logger"
	"github.com/pcosta/flashdeck/internal/models"
)

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("stats") == "true" {
		writeJSON(w, http.StatusOK, s.Decks.ListWithStats(r.Context()))
		return
	}
	writeJSON(w, http.StatusOK, s.Decks.List(r.Context()))
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.Decks.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deck)
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var input models.CreateDeckInput
	if err := decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.Decks.Create(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("deck created: %s", deck.ID)
	writeJSON(w, http.StatusCreated, deck)
}

func (s *Server) handleUpdateDeck(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var input models.UpdateDeckInput
	if err := decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.Decks.Update(r.Context(), id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deck)
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Decks.Delete(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("deck deleted: %s", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetDeckTags(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var body struct {
		Tags []string `json:"tags"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.Decks.SetTags(r.Context(), id, body.Tags)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deck)
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tags": s.Decks.ListTags(r.Context())})
}

func (s *Server) handleRegisterTag(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Tag string `json:"tag"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Decks.RegisterTag(r.Context(), body.Tag); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"tags": s.Decks.ListTags(r.Context())})
}
