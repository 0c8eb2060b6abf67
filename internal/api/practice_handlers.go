package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pcosta/flashdeck/internal/errors"
	"github.com/pcosta/flashdeck/internal/logger"
	"github.com/pcosta/flashdeck/internal/models"
	"github.com/pcosta/flashdeck/internal/practice"
	"github.com/pcosta/flashdeck/internal/srs"
)

type practiceView struct {
	ID        uuid.UUID         `json:"id"`
	DeckID    uuid.UUID         `json:"deck_id"`
	State     practice.State    `json:"state"`
	Total     int               `json:"total"`
	Remaining int               `json:"remaining"`
	Card      *models.Flashcard `json:"card,omitempty"`
}

func viewOf(id uuid.UUID, session *practice.Session) practiceView {
	v := practiceView{
		ID:        id,
		DeckID:    session.DeckID,
		State:     session.State(),
		Total:     session.Total(),
		Remaining: session.Remaining(),
	}
	if card, ok := session.Current(); ok {
		v.Card = &card
	}
	return v
}

func (s *Server) handleStartPractice(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DeckID  uuid.UUID `json:"deck_id"`
		DueOnly bool      `json:"due_only"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	session, err := practice.NewSession(s.Cache, s.Sync, body.DeckID, practice.Options{DueOnly: body.DueOnly})
	if err != nil {
		handleError(w, r, err)
		return
	}
	session.Start()

	id := uuid.New()
	s.mu.Lock()
	if s.sessions == nil {
		s.sessions = make(map[uuid.UUID]*practice.Session)
	}
	s.sessions[id] = session
	s.mu.Unlock()

	logger.FromContext(r.Context()).Info("practice session %s started: deck %s, %d cards", id, body.DeckID, session.Total())
	writeJSON(w, http.StatusCreated, viewOf(id, session))
}

func (s *Server) handlePracticeState(w http.ResponseWriter, r *http.Request) {
	id, session, err := s.practiceSession(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(id, session))
}

func (s *Server) handleGradeCard(w http.ResponseWriter, r *http.Request) {
	id, session, err := s.practiceSession(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var body struct {
		Difficulty srs.Difficulty `json:"difficulty"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	if err := session.Grade(r.Context(), body.Difficulty); err != nil {
		handleError(w, r, err)
		return
	}

	view := viewOf(id, session)
	if view.State == practice.Completed {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) practiceSession(r *http.Request) (uuid.UUID, *practice.Session, error) {
	id, err := urlUUID(r, "id")
	if err != nil {
		return uuid.Nil, nil, err
	}

	s.mu.Lock()
	session, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return uuid.Nil, nil, errors.NewNotFoundError("practice session", id)
	}
	return id, session, nil
}
