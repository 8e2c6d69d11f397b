package ports

import (
	"context"
	"time"

	"github.com/numerologyhub/site-api/internal/core/domain"
)

// SignupInput is the public registration payload. There is deliberately no role.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// Directory is the authoritative identity source for access decisions.
// Resolve returns ErrUserNotFound when the account no longer exists.
type Directory interface {
	Resolve(ctx context.Context, email string) (*domain.Identity, error)
}

type AuthService interface {
	Directory
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*Session, *domain.User, error)
}

// Session is a decoded session token.
type Session struct {
	Token     string
	Identity  *domain.Identity
	ExpiresAt time.Time
}

// SessionService issues and re-syncs session tokens.
type SessionService interface {
	Issue(user *domain.User) (*Session, error)
	Decode(token string) (*Session, error)
	// Refresh re-reads the directory and reissues the token with the same expiry.
	Refresh(ctx context.Context, token string) (*Session, error)
}

type PasswordChange struct {
	CurrentPassword string
	NewPassword     string
}

type ProfileService interface {
	Get(ctx context.Context, identity *domain.Identity) (*domain.User, error)
	Update(ctx context.Context, identity *domain.Identity, in ProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, identity *domain.Identity, in PasswordChange) error
}

// ProfileInput is a profile edit. ProfileImage may be a data URI or an URL.
type ProfileInput struct {
	Name         *string
	Phone        *string
	ProfileImage *string
}
