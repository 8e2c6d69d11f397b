package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/numerologyhub/site-api/internal/api/middleware"
	"github.com/numerologyhub/site-api/internal/core/domain"
)

// ctxIdentity returns the identity resolved by middleware.Require. The role
// on it comes from the directory, not from the token.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	id := middleware.IdentityFrom(c)
	if id == nil || id.SubjectID == "" {
		return nil, domain.ErrUnauthorized
	}
	return id, nil
}
