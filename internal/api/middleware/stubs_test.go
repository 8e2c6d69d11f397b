package middleware

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// stubDirectory answers Resolve from a map keyed by email.
type stubDirectory struct {
	mu         sync.Mutex
	identities map[string]*domain.Identity
	err        error
	calls      int
}

func (d *stubDirectory) Resolve(_ context.Context, email string) (*domain.Identity, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	id, ok := d.identities[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *id
	return &cp, nil
}

// stubSessions treats the token string as a key into a map of sessions.
type stubSessions struct {
	sessions map[string]*ports.Session
}

func (s *stubSessions) Issue(*domain.User) (*ports.Session, error) {
	return nil, errors.New("not implemented")
}

func (s *stubSessions) Decode(token string) (*ports.Session, error) {
	if sess, ok := s.sessions[token]; ok {
		return sess, nil
	}
	return nil, domain.ErrUnauthorized
}

func (s *stubSessions) Refresh(context.Context, string) (*ports.Session, error) {
	return nil, errors.New("not implemented")
}

func tokenIdentity(id, email, role string) *domain.Identity {
	return &domain.Identity{SubjectID: id, Email: email, Role: role}
}
