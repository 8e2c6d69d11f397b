package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/numerologyhub/site-api/internal/core/ports"
)

const (
	DefaultBaseURL = "https://api.razorpay.com/v1"
	requestTimeout = 15 * time.Second
)

var errMissingEntity = errors.New("webhook payload has no payment entity")

type Config struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
	BaseURL       string
}

// Gateway talks to a Razorpay-compatible orders API.
type Gateway struct {
	client        *http.Client
	keyID         string
	keySecret     string
	webhookSecret string
	baseURL       string
}

func NewGateway(cfg Config) *Gateway {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return &Gateway{
		client:        &http.Client{Timeout: requestTimeout},
		keyID:         cfg.KeyID,
		keySecret:     cfg.KeySecret,
		webhookSecret: cfg.WebhookSecret,
		baseURL:       base,
	}
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type createOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (g *Gateway) KeyID() string {
	return g.keyID
}

func (g *Gateway) CreateOrder(ctx context.Context, req ports.GatewayOrderRequest) (*ports.GatewayOrder, error) {
	payload, err := json.Marshal(createOrderRequest{
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("encode order request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	httpReq.SetBasicAuth(g.keyID, g.keySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("create gateway order: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Description != "" {
			return nil, fmt.Errorf("gateway returned %d: %s", resp.StatusCode, apiErr.Error.Description)
		}
		return nil, fmt.Errorf("gateway returned %d", resp.StatusCode)
	}

	var out createOrderResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode gateway order: %w", err)
	}
	if out.ID == "" {
		return nil, errors.New("gateway order has no id")
	}

	return &ports.GatewayOrder{ID: out.ID, Amount: out.Amount, Currency: out.Currency}, nil
}

// VerifyPaymentSignature checks the checkout callback signature, an
// HMAC-SHA256 of "<order_id>|<payment_id>" keyed with the API secret.
// Without a secret every signature is rejected.
func (g *Gateway) VerifyPaymentSignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	if g.keySecret == "" || gatewayOrderID == "" || gatewayPaymentID == "" || signature == "" {
		return false
	}
	return validSignature([]byte(gatewayOrderID+"|"+gatewayPaymentID), g.keySecret, signature)
}

func (g *Gateway) VerifyWebhookSignature(body []byte, signature string) bool {
	if g.webhookSecret == "" || signature == "" {
		return false
	}
	return validSignature(body, g.webhookSecret, signature)
}

type webhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment *struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
		Order *struct {
			Entity struct {
				ID string `json:"id"`
			} `json:"entity"`
		} `json:"order"`
	} `json:"payload"`
}

func (g *Gateway) ParseWebhook(body []byte) (*ports.WebhookEvent, error) {
	var p webhookPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode webhook: %w", err)
	}

	ev := &ports.WebhookEvent{Event: p.Event}
	if p.Payload.Payment != nil {
		ev.GatewayPaymentID = p.Payload.Payment.Entity.ID
		ev.GatewayOrderID = p.Payload.Payment.Entity.OrderID
	}
	if ev.GatewayOrderID == "" && p.Payload.Order != nil {
		ev.GatewayOrderID = p.Payload.Order.Entity.ID
	}
	if ev.Event == "" || ev.GatewayOrderID == "" {
		return nil, errMissingEntity
	}
	return ev, nil
}

func sign(message []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(message)
	return hex.EncodeToString(mac.Sum(nil))
}

func validSignature(message []byte, secret, signature string) bool {
	return hmac.Equal([]byte(sign(message, secret)), []byte(strings.ToLower(signature)))
}
