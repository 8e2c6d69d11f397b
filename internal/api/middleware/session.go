package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

const (
	sessionKey  = "session"
	identityKey = "identity"
)

// Session decodes the session token from the cookie or a Bearer header and
// stores it on the context. It never rejects: a missing, invalid or expired
// token simply means no session.
func Session(sessions ports.SessionService, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := TokenFrom(c, cookieName); token != "" {
				if s, err := sessions.Decode(token); err == nil {
					c.Set(sessionKey, s)
				}
			}
			return next(c)
		}
	}
}

// TokenFrom returns the raw session token. The Authorization header wins over
// the cookie.
func TokenFrom(c echo.Context, cookieName string) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "bearer") {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// SessionFrom returns the decoded session, or nil.
func SessionFrom(c echo.Context) *ports.Session {
	s, _ := c.Get(sessionKey).(*ports.Session)
	return s
}

// IdentityFrom returns the identity resolved from the directory by Require,
// or nil for anonymous callers.
func IdentityFrom(c echo.Context) *domain.Identity {
	id, _ := c.Get(identityKey).(*domain.Identity)
	return id
}

// SetIdentity records the directory-resolved identity for the handlers.
func SetIdentity(c echo.Context, id *domain.Identity) {
	c.Set(identityKey, id)
}
