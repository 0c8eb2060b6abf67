package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/pcosta/flashdeck/internal/logger"
)

// Provider reports the currently authenticated user, if any.
type Provider interface {
	CurrentUserID(ctx context.Context) (uuid.UUID, bool)
}

// Session tracks the signed-in user for this process and notifies subscribers
// of lifecycle changes. The sync engine subscribes to trigger a pull on
// sign-in and a cache wipe on sign-out.
type Session struct {
	mu        sync.RWMutex
	userID    uuid.UUID
	signedIn  bool
	onSignIn  []func(uuid.UUID)
	onSignOut []func()
	log       *logger.Logger
}

// NewSession creates an unauthenticated session.
func NewSession() *Session {
	return &Session{log: logger.Default().WithPrefix("auth")}
}

// CurrentUserID implements Provider.
func (s *Session) CurrentUserID(_ context.Context) (uuid.UUID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID, s.signedIn
}

// OnSignedIn registers a handler invoked after a successful sign-in.
func (s *Session) OnSignedIn(fn func(uuid.UUID)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSignIn = append(s.onSignIn, fn)
}

// OnSignedOut registers a handler invoked after sign-out.
func (s *Session) OnSignedOut(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSignOut = append(s.onSignOut, fn)
}

// SignIn marks the user as authenticated and fires the sign-in handlers.
func (s *Session) SignIn(userID uuid.UUID) {
	s.mu.Lock()
	s.userID = userID
	s.signedIn = true
	handlers := append([]func(uuid.UUID){}, s.onSignIn...)
	s.mu.Unlock()

	s.log.Info("signed in: user_id=%s", userID)
	for _, fn := range handlers {
		fn(userID)
	}
}

// SignOut clears the session and fires the sign-out handlers.
func (s *Session) SignOut() {
	s.mu.Lock()
	wasSignedIn := s.signedIn
	s.userID = uuid.Nil
	s.signedIn = false
	handlers := append([]func(){}, s.onSignOut...)
	s.mu.Unlock()

	if !wasSignedIn {
		return
	}
	s.log.Info("signed out")
	for _, fn := range handlers {
		fn()
	}
}
