package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/numerologyhub/site-api/internal/api/metrics"
	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

const (
	webhookSignatureHeader = "X-Razorpay-Signature"
	maxWebhookBody         = 1 << 20
)

type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type verifyPaymentRequest struct {
	GatewayOrderID   string `json:"gatewayOrderId"   validate:"required"`
	GatewayPaymentID string `json:"gatewayPaymentId" validate:"required"`
	Signature        string `json:"signature"        validate:"required"`
}

type verifyPaymentResponse struct {
	Success       bool   `json:"success"`
	OrderID       string `json:"orderId"`
	PaymentStatus string `json:"paymentStatus"`
}

type webhookResponse struct {
	Status string `json:"status"`
}

// Verify handles POST /api/payments/verify, called by the browser after the
// gateway checkout succeeds.
//
// @Summary      Verify a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      verifyPaymentRequest  true  "Gateway checkout result"
// @Success      200   {object}  verifyPaymentResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/payments/verify [post]
func (h *PaymentHandler) Verify(c echo.Context) error {
	var req verifyPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.service.Verify(c.Request().Context(), ports.VerifyPaymentInput{
		GatewayOrderID:   req.GatewayOrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		Signature:        req.Signature,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPaymentInProgress) {
			metrics.PaymentLockContentionTotal.Inc()
		}
		return err
	}

	metrics.PaymentTransitionsTotal.WithLabelValues(string(order.PaymentStatus), "verify").Inc()
	return c.JSON(http.StatusOK, verifyPaymentResponse{
		Success:       true,
		OrderID:       order.OrderID,
		PaymentStatus: string(order.PaymentStatus),
	})
}

// Webhook handles POST /api/payments/webhook. A 5xx answer makes the gateway
// deliver the event again.
//
// @Summary      Payment gateway webhook
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        X-Razorpay-Signature  header    string  true  "HMAC-SHA256 of the body"
// @Success      200                   {object}  webhookResponse
// @Failure      400                   {object}  errorResponse
// @Failure      500                   {object}  errorResponse
// @Router       /api/payments/webhook [post]
func (h *PaymentHandler) Webhook(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err = h.service.HandleWebhook(c.Request().Context(), body, c.Request().Header.Get(webhookSignatureHeader))
	switch {
	case err == nil:
		metrics.WebhooksReceivedTotal.WithLabelValues("accepted").Inc()
	case errors.Is(err, domain.ErrInvalidSignature), errors.Is(err, domain.ErrValidation):
		metrics.WebhooksReceivedTotal.WithLabelValues("rejected").Inc()
		return err
	default:
		if errors.Is(err, domain.ErrPaymentInProgress) {
			metrics.PaymentLockContentionTotal.Inc()
		}
		metrics.WebhooksReceivedTotal.WithLabelValues("error").Inc()
		return err
	}

	return c.JSON(http.StatusOK, webhookResponse{Status: "ok"})
}
