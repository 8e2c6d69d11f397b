package ports

import (
	"context"

	"github.com/numerologyhub/site-api/internal/core/domain"
)

// GatewayOrderRequest is sent to the payment gateway. Amount is in minor units.
type GatewayOrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
}

// PaymentGateway is the synchronous payment provider.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, req GatewayOrderRequest) (*GatewayOrder, error)
	VerifyPaymentSignature(gatewayOrderID, gatewayPaymentID, signature string) bool
	VerifyWebhookSignature(body []byte, signature string) bool
	ParseWebhook(body []byte) (*WebhookEvent, error)
	KeyID() string
}

// PaymentLock serialises status updates for a single order across callbacks.
type PaymentLock interface {
	// Acquire reports false when another holder owns the lock. The returned
	// token identifies this holder and must be passed to Release.
	Acquire(ctx context.Context, orderID string) (token string, ok bool, err error)
	// Release is a no-op when the lock has expired and been taken by someone else.
	Release(ctx context.Context, orderID, token string) error
}

type VerifyPaymentInput struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

// WebhookEvent is the subset of a gateway webhook the service acts on.
type WebhookEvent struct {
	Event            string
	GatewayOrderID   string
	GatewayPaymentID string
}

type PaymentService interface {
	Verify(ctx context.Context, in VerifyPaymentInput) (*domain.Order, error)
	// HandleWebhook checks the signature of body before acting on it.
	HandleWebhook(ctx context.Context, body []byte, signature string) error
}
