package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numerologyhub/site-api/internal/api/handler"
	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

// routerDirectory serves both the directory and the token decoder. Tokens are
// the account email; roles come from the roles map.
type routerDirectory struct {
	roles map[string]string
}

func (d *routerDirectory) Resolve(_ context.Context, email string) (*domain.Identity, error) {
	role, ok := d.roles[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.Identity{SubjectID: "id-" + email, Email: email, Role: role}, nil
}

func (d *routerDirectory) Signup(context.Context, ports.SignupInput) (*domain.User, error) {
	return nil, domain.ErrUserExists
}

func (d *routerDirectory) Login(context.Context, string, string) (*ports.Session, *domain.User, error) {
	return nil, nil, domain.ErrInvalidCredentials
}

func (d *routerDirectory) Issue(*domain.User) (*ports.Session, error) {
	return nil, domain.ErrUnauthorized
}

// Decode trusts the token's original role, which may have gone stale.
func (d *routerDirectory) Decode(token string) (*ports.Session, error) {
	return &ports.Session{Token: token, Identity: &domain.Identity{Email: token, Role: domain.RoleAdmin}}, nil
}

func (d *routerDirectory) Refresh(_ context.Context, token string) (*ports.Session, error) {
	return nil, domain.ErrUnauthorized
}

type emptyStats struct{}

func (emptyStats) Stats(context.Context, *domain.Identity) (*ports.DashboardSnapshot, error) {
	return &ports.DashboardSnapshot{}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<html>app</html>"), 0o644))

	dir := &routerDirectory{roles: map[string]string{
		"admin@example.com":  domain.RoleAdmin,
		"demoted@example.com": domain.RoleUser,
	}}
	return NewRouter(Dependencies{
		Log:        zerolog.Nop(),
		Cookie:     handler.CookieConfig{Name: "session_token"},
		StaticDir:  static,
		Registerer: prometheus.NewRegistry(),
		Auth:       dir,
		Sessions:   dir,
		Admin:      emptyStats{},
	})
}

func get(h http.Handler, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Operations(t *testing.T) {
	r := newTestRouter(t)

	rec := get(r, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = get(r, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AdminAPIUsesDirectoryRole(t *testing.T) {
	r := newTestRouter(t)

	rec := get(r, "/api/admin/stats", "admin@example.com")
	assert.Equal(t, http.StatusOK, rec.Code)

	for name, token := range map[string]string{
		"no session":      "",
		"demoted admin":   "demoted@example.com",
		"deleted account": "gone@example.com",
	} {
		t.Run(name, func(t *testing.T) {
			rec := get(r, "/api/admin/stats", token)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
		})
	}
}

func TestRouter_PagesBehindGate(t *testing.T) {
	r := newTestRouter(t)

	rec := get(r, "/admin/orders", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = get(r, "/admin", "demoted@example.com")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = get(r, "/admin", "admin@example.com")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "app")

	rec = get(r, "/login", "admin@example.com")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = get(r, "/services", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_UnknownAPIRouteIsNotThePage(t *testing.T) {
	r := newTestRouter(t)

	rec := get(r, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<html>")
}
