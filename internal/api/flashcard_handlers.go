package api

import (
	"net/http"

	"github.com/pcosta/flashdeck/internal/logger"
	"github.com/pcosta/flashdeck/internal/models"
)

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	deckID, err := urlUUID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	cards, err := s.Flashcards.ListForDeck(r.Context(), deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Flashcards.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// handleCreateCards accepts either a single card body or a batch under
// "cards". The deck id always comes from the URL.
func (s *Server) handleCreateCards(w http.ResponseWriter, r *http.Request) {
	deckID, err := urlUUID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var body struct {
		Front string                        `json:"front"`
		Back  string                        `json:"back"`
		Cards []models.CreateFlashcardInput `json:"cards"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	inputs := body.Cards
	if len(inputs) == 0 {
		inputs = []models.CreateFlashcardInput{{Front: body.Front, Back: body.Back}}
	}

	cards, err := s.Flashcards.CreateBatch(r.Context(), deckID, inputs)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("created %d cards in deck %s", len(cards), deckID)
	writeJSON(w, http.StatusCreated, cards)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var input models.UpdateFlashcardInput
	if err := decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Flashcards.Update(r.Context(), id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Flashcards.Delete(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
