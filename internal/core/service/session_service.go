package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

// DefaultSessionTTL is the absolute lifetime of a session token.
const DefaultSessionTTL = 30 * 24 * time.Hour

type sessionClaims struct {
	Email           string `json:"email"`
	Role            string `json:"role"`
	Name            string `json:"name"`
	Phone           string `json:"phone,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
	jwt.RegisteredClaims
}

// SessionService signs HS256 session tokens that cache a user's profile.
type SessionService struct {
	users  ports.UserRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionService(users ports.UserRepository, jwtSecret string, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{users: users, secret: []byte(jwtSecret), ttl: ttl, now: time.Now}
}

func (s *SessionService) Issue(user *domain.User) (*ports.Session, error) {
	return s.issueUntil(user, s.now().Add(s.ttl))
}

// Decode parses and verifies a token. Every failure is reported as
// ErrUnauthorized so callers can treat it as "no identity".
func (s *SessionService) Decode(token string) (*ports.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthorized
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, domain.ErrUnauthorized
	}

	return &ports.Session{
		Token: token,
		Identity: &domain.Identity{
			SubjectID:       claims.Subject,
			Email:           claims.Email,
			Role:            claims.Role,
			Name:            claims.Name,
			Phone:           claims.Phone,
			ProfileImageURL: claims.ProfileImageURL,
		},
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Refresh re-reads the user behind token and reissues it with the current
// role and profile. The original expiry is kept.
func (s *SessionService) Refresh(ctx context.Context, token string) (*ports.Session, error) {
	sess, err := s.Decode(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, sess.Identity.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("refresh session: %w", err)
	}

	return s.issueUntil(user, sess.ExpiresAt)
}

func (s *SessionService) issueUntil(user *domain.User, expiresAt time.Time) (*ports.Session, error) {
	now := s.now()
	claims := sessionClaims{
		Email:           user.Email,
		Role:            user.Role,
		Name:            user.Name,
		Phone:           user.Phone,
		ProfileImageURL: user.ProfileImageURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}

	return &ports.Session{
		Token:     signed,
		Identity:  domain.IdentityFromUser(user),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
