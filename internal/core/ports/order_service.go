package ports

import (
	"context"
	"time"

	"github.com/numerologyhub/site-api/internal/core/domain"
)

const (
	DefaultPage      = 1
	DefaultLimit     = 10
	MaxLimit         = 100
	MaxPage          = 100000
	DefaultSortBy    = "createdAt"
	DefaultSortOrder = "desc"
	StatusAll        = "all"
	LookupLimit      = 20
)

// OrderQuery is the validated order listing request.
type OrderQuery struct {
	Page      int
	Limit     int
	Search    string
	Status    string
	DateFrom  time.Time // local midnight of the first day, zero when absent
	DateTo    time.Time // local midnight of the last day, zero when absent
	SortBy    string
	SortOrder string
}

// OrderView is an order plus its non-persisted presentation fields.
type OrderView struct {
	Order          *domain.Order
	FormattedPrice string
	Status         domain.StatusPresentation
}

type Pagination struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

type OrderPage struct {
	Orders     []OrderView
	Pagination Pagination
}

// CheckoutInput starts a purchase. Identity is nil for guest checkout.
type CheckoutInput struct {
	Identity       *domain.Identity
	ServiceID      string
	Contact        domain.ContactDetails
	BookingDetails *domain.BookingDetails
}

// PaymentIntent is what the browser needs to open the gateway checkout.
type PaymentIntent struct {
	GatewayOrderID string
	Amount         int64
	Currency       string
	KeyID          string
}

type CheckoutResult struct {
	Order   OrderView
	Payment PaymentIntent
}

type OrderService interface {
	// Query lists the caller's own orders.
	Query(ctx context.Context, identity *domain.Identity, q OrderQuery) (*OrderPage, error)
	// QueryAll lists every order. Admin only.
	QueryAll(ctx context.Context, identity *domain.Identity, q OrderQuery) (*OrderPage, error)
	Get(ctx context.Context, identity *domain.Identity, orderID string) (*OrderView, error)
	Lookup(ctx context.Context, email, phone string) ([]OrderView, error)
	Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error)
	Cancel(ctx context.Context, identity *domain.Identity, orderID string) (*OrderView, error)
}
