package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Post("/auth/signin", s.handleSignIn)
	r.Post("/auth/signout", s.handleSignOut)

	r.Get("/decks", s.handleListDecks)
	r.Post("/decks", s.handleCreateDeck)
	r.Get("/decks/{id}", s.handleGetDeck)
	r.Put("/decks/{id}", s.handleUpdateDeck)
	r.Delete("/decks/{id}", s.handleDeleteDeck)
	r.Put("/decks/{id}/tags", s.handleSetDeckTags)
	r.Get("/decks/{id}/cards", s.handleListCards)
	r.Post("/decks/{id}/cards", s.handleCreateCards)

	r.Get("/cards/{id}", s.handleGetCard)
	r.Put("/cards/{id}", s.handleUpdateCard)
	r.Delete("/cards/{id}", s.handleDeleteCard)

	r.Get("/tags", s.handleListTags)
	r.Post("/tags", s.handleRegisterTag)

	r.Get("/progress", s.handleProgress)

	r.Post("/practice", s.handleStartPractice)
	r.Get("/practice/{id}", s.handlePracticeState)
	r.Post("/practice/{id}/grade", s.handleGradeCard)

	r.Get("/sync/status", s.handleSyncStatus)
	r.Post("/sync/pull", s.handlePull)
	r.Post("/sync/push", s.handlePush)

	return r
}
