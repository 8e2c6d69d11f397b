package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

const (
	eventPaymentCaptured = "payment.captured"
	eventPaymentFailed   = "payment.failed"
	eventOrderPaid       = "order.paid"
)

// statusTransitioner applies guarded pending→terminal payment transitions.
// The per-order lock keeps concurrent callbacks apart; the conditional
// update is what actually guarantees a single winner.
type statusTransitioner struct {
	repo ports.OrderRepository
	lock ports.PaymentLock
	log  zerolog.Logger
}

func newStatusTransitioner(repo ports.OrderRepository, lock ports.PaymentLock, log zerolog.Logger) *statusTransitioner {
	return &statusTransitioner{repo: repo, lock: lock, log: log}
}

func (t *statusTransitioner) apply(ctx context.Context, order *domain.Order, next domain.PaymentStatus, paymentID string) (*domain.Order, error) {
	// Replaying the status the order already has is a no-op.
	if order.PaymentStatus == next {
		return order, nil
	}
	if !order.PaymentStatus.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, order.PaymentStatus, next)
	}

	token, acquired, err := t.lock.Acquire(ctx, order.OrderID)
	if err != nil {
		t.log.Warn().Err(err).Str("order_id", order.OrderID).Msg("payment lock unavailable, relying on conditional update")
	} else if !acquired {
		return nil, domain.ErrPaymentInProgress
	} else {
		defer func() {
			if rerr := t.lock.Release(context.WithoutCancel(ctx), order.OrderID, token); rerr != nil {
				t.log.Warn().Err(rerr).Str("order_id", order.OrderID).Msg("failed to release payment lock")
			}
		}()
	}

	updated, err := t.repo.CompareAndSetStatus(ctx, ports.StatusChange{
		OrderID:          order.OrderID,
		From:             order.PaymentStatus,
		To:               next,
		GatewayPaymentID: paymentID,
	})
	if err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}

	if !updated {
		// Someone else moved the order first.
		current, err := t.repo.FindByOrderID(ctx, order.OrderID, "")
		if err != nil {
			return nil, err
		}
		if current.PaymentStatus == next {
			return current, nil
		}
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, current.PaymentStatus, next)
	}

	out := *order
	out.PaymentStatus = next
	if paymentID != "" {
		out.GatewayPaymentID = paymentID
	}
	out.UpdatedAt = time.Now().UTC()

	t.log.Info().
		Str("order_id", order.OrderID).
		Str("from", string(order.PaymentStatus)).
		Str("to", string(next)).
		Msg("payment status updated")

	return &out, nil
}

type PaymentService struct {
	repo        ports.OrderRepository
	gateway     ports.PaymentGateway
	transitions *statusTransitioner
	log         zerolog.Logger
}

func NewPaymentService(repo ports.OrderRepository, gateway ports.PaymentGateway, lock ports.PaymentLock, log zerolog.Logger) *PaymentService {
	return &PaymentService{
		repo:        repo,
		gateway:     gateway,
		transitions: newStatusTransitioner(repo, lock, log),
		log:         log,
	}
}

// Verify completes an order after the browser reports a successful payment.
func (s *PaymentService) Verify(ctx context.Context, in ports.VerifyPaymentInput) (*domain.Order, error) {
	if !s.gateway.VerifyPaymentSignature(in.GatewayOrderID, in.GatewayPaymentID, in.Signature) {
		return nil, domain.ErrInvalidSignature
	}

	order, err := s.repo.FindByGatewayOrderID(ctx, in.GatewayOrderID)
	if err != nil {
		return nil, err
	}

	return s.transitions.apply(ctx, order, domain.PaymentCompleted, in.GatewayPaymentID)
}

// HandleWebhook applies gateway payment events. Events for unknown orders
// and late events for already-settled orders are acknowledged and dropped.
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !s.gateway.VerifyWebhookSignature(body, signature) {
		return domain.ErrInvalidSignature
	}

	evt, err := s.gateway.ParseWebhook(body)
	if err != nil {
		return domain.NewValidationError(domain.FieldError{Field: "body", Message: err.Error()})
	}

	var next domain.PaymentStatus
	switch evt.Event {
	case eventPaymentCaptured, eventOrderPaid:
		next = domain.PaymentCompleted
	case eventPaymentFailed:
		next = domain.PaymentFailed
	default:
		s.log.Debug().Str("event", evt.Event).Msg("webhook event ignored")
		return nil
	}

	order, err := s.repo.FindByGatewayOrderID(ctx, evt.GatewayOrderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			s.log.Warn().Str("gateway_order_id", evt.GatewayOrderID).Msg("webhook for unknown order")
			return nil
		}
		return err
	}

	if _, err := s.transitions.apply(ctx, order, next, evt.GatewayPaymentID); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			s.log.Warn().Err(err).Str("order_id", order.OrderID).Str("event", evt.Event).Msg("webhook transition rejected")
			return nil
		}
		return err
	}
	return nil
}
