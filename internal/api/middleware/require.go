package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/numerologyhub/site-api/internal/core/authz"
	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

// Require guards an API route with authz.Authorize. The identity it checks is
// re-read from the directory on every request; the token only supplies the
// email. Denials and directory failures answer 401 JSON.
func Require(dir ports.Directory, log zerolog.Logger, resource authz.Resource, action authz.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := resolve(c, dir)
			if err != nil {
				log.Warn().Err(err).
					Str("resource", string(resource)).
					Str("action", string(action)).
					Msg("directory lookup failed, denying")
				return unauthorized(c)
			}

			if !authz.Authorize(identity, resource, action).Allowed() {
				return unauthorized(c)
			}

			if identity != nil {
				SetIdentity(c, identity)
			}
			return next(c)
		}
	}
}

// resolve returns the fresh identity behind the session, nil when there is
// no session or the account is gone.
func resolve(c echo.Context, dir ports.Directory) (*domain.Identity, error) {
	s := SessionFrom(c)
	if s == nil || s.Identity == nil || s.Identity.Email == "" {
		return nil, nil
	}

	identity, err := dir.Resolve(c.Request().Context(), s.Identity.Email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return identity, nil
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
}
