package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/numerologyhub/site-api/internal/api/metrics"
	"github.com/numerologyhub/site-api/internal/core/authz"
	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

const (
	loginPath = "/login"
	homePath  = "/"
)

// Decision is the outcome of a page access check. An empty RedirectTo means allow.
type Decision struct {
	RedirectTo string
}

func (d Decision) Allowed() bool { return d.RedirectTo == "" }

func (d Decision) label() string {
	switch d.RedirectTo {
	case "":
		return "allow"
	case loginPath:
		return "redirect_login"
	default:
		return "redirect_home"
	}
}

// Gate decides page access for the browser routes.
type Gate struct {
	dir ports.Directory
	log zerolog.Logger
}

func NewGate(dir ports.Directory, log zerolog.Logger) *Gate {
	return &Gate{dir: dir, log: log}
}

// Decide applies the page rules in order. identity is the decoded session
// token and may be nil. Admin pages are checked against a fresh directory
// read; a lookup failure redirects home.
func (g *Gate) Decide(ctx context.Context, path string, identity *domain.Identity) Decision {
	if identity != nil && (path == "/login" || path == "/signup") {
		return Decision{RedirectTo: homePath}
	}

	if hasPrefix(path, "/admin") {
		if identity == nil {
			return Decision{RedirectTo: loginPath}
		}
		current, err := g.dir.Resolve(ctx, identity.Email)
		if err != nil {
			if !errors.Is(err, domain.ErrUserNotFound) {
				g.log.Warn().Err(err).Str("path", path).Msg("directory lookup failed, denying admin page")
			}
			return Decision{RedirectTo: homePath}
		}
		if !authz.Authorize(current, authz.Admin, authz.Access).Allowed() {
			return Decision{RedirectTo: homePath}
		}
		return Decision{}
	}

	if hasPrefix(path, "/profile") {
		if !authz.Authorize(identity, authz.Profile, authz.Access).Allowed() {
			return Decision{RedirectTo: loginPath}
		}
	}

	return Decision{}
}

// Middleware redirects browser requests the gate denies. API, health, metrics
// and docs paths are guarded by their own middleware and skipped here.
func (g *Gate) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if skipGate(path) {
				return next(c)
			}

			var identity *domain.Identity
			if s := SessionFrom(c); s != nil {
				identity = s.Identity
			}

			d := g.Decide(c.Request().Context(), path, identity)
			metrics.GateDecisionsTotal.WithLabelValues(d.label()).Inc()
			if !d.Allowed() {
				return c.Redirect(http.StatusFound, d.RedirectTo)
			}
			return next(c)
		}
	}
}

// hasPrefix matches whole path segments, so "/administer" is not "/admin".
func hasPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func skipGate(path string) bool {
	for _, p := range []string{"/api", "/health", "/metrics", "/swagger"} {
		if hasPrefix(path, p) {
			return true
		}
	}
	return false
}
