package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/numerologyhub/site-api/internal/api/middleware"
	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

var (
	adminIdentity = &domain.Identity{SubjectID: "admin-1", Email: "admin@example.com", Role: domain.RoleAdmin, Name: "Admin"}
	ashaIdentity  = &domain.Identity{SubjectID: "user-asha", Email: "asha@example.com", Role: domain.RoleUser, Name: "Asha"}
)

// newTestEcho returns an echo instance wired the way the router wires it,
// minus the routes.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		var he *echo.HTTPError
		switch {
		case errors.As(err, &he):
			code = he.Code
		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUserExists):
			code = http.StatusBadRequest
		case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidCredentials):
			code = http.StatusUnauthorized
		case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, domain.ErrReportNotFound):
			code = http.StatusNotFound
		}
		_ = c.JSON(code, map[string]string{"error": err.Error()})
	}
	return e
}

// newContext builds a request context. identity, when set, is what
// middleware.Require would have put on the context.
func newContext(e *echo.Echo, method, target, body string, identity *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		middleware.SetIdentity(c, identity)
	}
	return c, rec
}

// --- Services ---

type stubAuthService struct {
	signupFn  func(ctx context.Context, in ports.SignupInput) (*domain.User, error)
	loginFn   func(ctx context.Context, email, password string) (*ports.Session, *domain.User, error)
	resolveFn func(ctx context.Context, email string) (*domain.Identity, error)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.Session, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Resolve(ctx context.Context, email string) (*domain.Identity, error) {
	return s.resolveFn(ctx, email)
}

type stubSessionService struct {
	tokens    map[string]*domain.Identity
	refreshFn func(ctx context.Context, token string) (*ports.Session, error)
}

func (s *stubSessionService) Issue(*domain.User) (*ports.Session, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubSessionService) Decode(token string) (*ports.Session, error) {
	id, ok := s.tokens[token]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return &ports.Session{Token: token, Identity: id}, nil
}

func (s *stubSessionService) Refresh(ctx context.Context, token string) (*ports.Session, error) {
	return s.refreshFn(ctx, token)
}

type stubOrderService struct {
	queryFn    func(ctx context.Context, identity *domain.Identity, q ports.OrderQuery) (*ports.OrderPage, error)
	queryAllFn func(ctx context.Context, identity *domain.Identity, q ports.OrderQuery) (*ports.OrderPage, error)
	getFn      func(ctx context.Context, identity *domain.Identity, orderID string) (*ports.OrderView, error)
	lookupFn   func(ctx context.Context, email, phone string) ([]ports.OrderView, error)
	checkoutFn func(ctx context.Context, in ports.CheckoutInput) (*ports.CheckoutResult, error)
	cancelFn   func(ctx context.Context, identity *domain.Identity, orderID string) (*ports.OrderView, error)
}

func (s *stubOrderService) Query(ctx context.Context, identity *domain.Identity, q ports.OrderQuery) (*ports.OrderPage, error) {
	return s.queryFn(ctx, identity, q)
}

func (s *stubOrderService) QueryAll(ctx context.Context, identity *domain.Identity, q ports.OrderQuery) (*ports.OrderPage, error) {
	return s.queryAllFn(ctx, identity, q)
}

func (s *stubOrderService) Get(ctx context.Context, identity *domain.Identity, orderID string) (*ports.OrderView, error) {
	return s.getFn(ctx, identity, orderID)
}

func (s *stubOrderService) Lookup(ctx context.Context, email, phone string) ([]ports.OrderView, error) {
	return s.lookupFn(ctx, email, phone)
}

func (s *stubOrderService) Checkout(ctx context.Context, in ports.CheckoutInput) (*ports.CheckoutResult, error) {
	return s.checkoutFn(ctx, in)
}

func (s *stubOrderService) Cancel(ctx context.Context, identity *domain.Identity, orderID string) (*ports.OrderView, error) {
	return s.cancelFn(ctx, identity, orderID)
}

type stubAdminService struct {
	snapshot *ports.DashboardSnapshot
	err      error
}

func (s *stubAdminService) Stats(_ context.Context, identity *domain.Identity) (*ports.DashboardSnapshot, error) {
	if !identity.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	return s.snapshot, s.err
}

// --- Repositories ---

// memReportRepo keeps sample reports in insertion order.
type memReportRepo struct {
	mu      sync.Mutex
	reports []*domain.SampleReport
}

func (r *memReportRepo) Create(_ context.Context, rep *domain.SampleReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rep.ID = fmt.Sprintf("report-%d", len(r.reports)+1)
	clone := *rep
	r.reports = append(r.reports, &clone)
	return nil
}

func (r *memReportRepo) List(_ context.Context, limit int) ([]*domain.SampleReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.SampleReport, 0, len(r.reports))
	for i := len(r.reports) - 1; i >= 0; i-- {
		out = append(out, r.reports[i])
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memReportRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rep := range r.reports {
		if rep.ID == id {
			r.reports = append(r.reports[:i], r.reports[i+1:]...)
			return nil
		}
	}
	return domain.ErrReportNotFound
}

type stubPaymentService struct {
	verifyFn  func(ctx context.Context, in ports.VerifyPaymentInput) (*domain.Order, error)
	webhookFn func(ctx context.Context, body []byte, signature string) error
}

func (s *stubPaymentService) Verify(ctx context.Context, in ports.VerifyPaymentInput) (*domain.Order, error) {
	return s.verifyFn(ctx, in)
}

func (s *stubPaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	return s.webhookFn(ctx, body, signature)
}
