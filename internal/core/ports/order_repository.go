package ports

import (
	"context"
	"time"

	"github.com/numerologyhub/site-api/internal/core/domain"
)

// ListOrdersFilter carries every query parameter for listing orders.
// UserID is always enforced by the service layer for customer queries.
type ListOrdersFilter struct {
	UserID    string    // empty = no owner filter (admin only)
	Status    string    // empty = any status
	Search    string    // case-insensitive match on serviceName, orderId, contact name
	DateFrom  time.Time // optional: created_at >= DateFrom
	DateTo    time.Time // optional: created_at <= DateTo
	SortBy    string
	SortOrder string
	Page      int // 1-based
	Limit     int
}

// StatusChange is a guarded payment status update.
type StatusChange struct {
	OrderID          string
	From             domain.PaymentStatus
	To               domain.PaymentStatus
	GatewayPaymentID string
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	// FindByOrderID retrieves an order by its public id. When userID is
	// non-empty the lookup is additionally filtered by owner.
	FindByOrderID(ctx context.Context, orderID, userID string) (*domain.Order, error)
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*domain.Order, error)
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, int64, error)
	// FindByContact matches contact email and phone exactly, newest first.
	FindByContact(ctx context.Context, email, phone string, limit int) ([]*domain.Order, error)
	SetGatewayOrder(ctx context.Context, orderID, gatewayOrderID string) error
	// CompareAndSetStatus applies the change only while the stored status still
	// equals change.From. It reports whether a document was updated.
	CompareAndSetStatus(ctx context.Context, change StatusChange) (bool, error)
}
