package dispatch

import (
	"github.com/dkurose/kotoba/internal/common"
	"github.com/dkurose/kotoba/internal/server/models"
)

// Session is per-connection authentication state. It holds at most one
// authenticated user and is bound once: a connection never switches to a
// different account. Sessions are not persisted and die with the socket.
//
// A session is only touched by its connection's own goroutine (one
// outstanding request at a time), so no locking is needed.
type Session struct {
	user *models.User
}

// NewSession returns an unauthenticated session.
func NewSession() *Session {
	return &Session{}
}

// User returns the bound user, or nil before authentication.
func (s *Session) User() *models.User {
	return s.user
}

// Authenticated reports whether a user is bound.
func (s *Session) Authenticated() bool {
	return s.user != nil
}

// Bind attaches user to the session. Re-binding the same account is a no-op;
// binding a different account is refused.
func (s *Session) Bind(user *models.User) error {
	if s.user != nil && s.user.ID != user.ID {
		return common.ErrSessionBound
	}
	s.user = user
	return nil
}
