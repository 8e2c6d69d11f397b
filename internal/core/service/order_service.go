package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/numerologyhub/site-api/internal/core/authz"
	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

var validSortFields = map[string]bool{"createdAt": true, "price": true, "serviceName": true}

var validStatusFilters = map[string]bool{
	ports.StatusAll:                 true,
	string(domain.PaymentPending):   true,
	string(domain.PaymentCompleted): true,
	string(domain.PaymentFailed):    true,
	string(domain.PaymentCancelled): true,
}

type OrderService struct {
	repo        ports.OrderRepository
	catalog     ports.CatalogRepository
	gateway     ports.PaymentGateway
	transitions *statusTransitioner
	prices      *PriceFormatter
	log         zerolog.Logger
}

func NewOrderService(
	repo ports.OrderRepository,
	catalog ports.CatalogRepository,
	gateway ports.PaymentGateway,
	lock ports.PaymentLock,
	prices *PriceFormatter,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		repo:        repo,
		catalog:     catalog,
		gateway:     gateway,
		transitions: newStatusTransitioner(repo, lock, log),
		prices:      prices,
		log:         log,
	}
}

// Query lists the caller's own orders. The owner filter is always applied,
// whatever the other parameters say.
func (s *OrderService) Query(ctx context.Context, identity *domain.Identity, q ports.OrderQuery) (*ports.OrderPage, error) {
	if !authz.Authorize(identity, authz.Orders, authz.List).Allowed() {
		return nil, domain.ErrUnauthorized
	}
	return s.query(ctx, identity.SubjectID, q)
}

func (s *OrderService) QueryAll(ctx context.Context, identity *domain.Identity, q ports.OrderQuery) (*ports.OrderPage, error) {
	if !authz.Authorize(identity, authz.Orders, authz.ListAll).Allowed() {
		return nil, domain.ErrUnauthorized
	}
	return s.query(ctx, "", q)
}

func (s *OrderService) query(ctx context.Context, userID string, q ports.OrderQuery) (*ports.OrderPage, error) {
	q = withQueryDefaults(q)
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	filter := ports.ListOrdersFilter{
		UserID:    userID,
		Search:    strings.TrimSpace(q.Search),
		DateFrom:  q.DateFrom,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Page:      q.Page,
		Limit:     q.Limit,
	}
	if q.Status != ports.StatusAll {
		filter.Status = q.Status
	}
	if !q.DateTo.IsZero() {
		filter.DateTo = endOfDay(q.DateTo)
	}

	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(q.Limit)))
	return &ports.OrderPage{
		Orders: s.views(orders),
		Pagination: ports.Pagination{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    q.Page < totalPages,
			HasPrev:    q.Page > 1,
		},
	}, nil
}

func (s *OrderService) Get(ctx context.Context, identity *domain.Identity, orderID string) (*ports.OrderView, error) {
	if !authz.Authorize(identity, authz.Orders, authz.Read).Allowed() {
		return nil, domain.ErrUnauthorized
	}

	order, err := s.repo.FindByOrderID(ctx, orderID, identity.SubjectID)
	if err != nil {
		return nil, err
	}
	view := s.view(order)
	return &view, nil
}

// Lookup is the guest order tracking path. Both contact fields must match
// exactly.
func (s *OrderService) Lookup(ctx context.Context, email, phone string) ([]ports.OrderView, error) {
	email = domain.NormalizeEmail(email)
	phone = strings.TrimSpace(phone)

	verr := domain.NewValidationError()
	if email == "" {
		verr.Add("email", "email is required")
	}
	if phone == "" {
		verr.Add("phone", "phone is required")
	}
	if !verr.Empty() {
		return nil, verr
	}

	orders, err := s.repo.FindByContact(ctx, email, phone, ports.LookupLimit)
	if err != nil {
		return nil, fmt.Errorf("lookup orders: %w", err)
	}
	return s.views(orders), nil
}

// Checkout persists a pending order priced from the catalog and opens a
// gateway order for it.
func (s *OrderService) Checkout(ctx context.Context, in ports.CheckoutInput) (*ports.CheckoutResult, error) {
	if !authz.Authorize(in.Identity, authz.Orders, authz.Create).Allowed() {
		return nil, domain.ErrUnauthorized
	}

	svc, err := s.catalog.FindByID(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive() {
		return nil, domain.ErrServiceNotFound
	}

	now := time.Now().UTC()
	order := &domain.Order{
		OrderID:     generateOrderID(),
		ServiceID:   svc.ID,
		ServiceName: svc.ServiceName,
		ServiceType: serviceTypeFor(svc.Category),
		Price:       svc.Price,
		Currency:    s.prices.Currency(),
		ContactDetails: domain.ContactDetails{
			Name:  strings.TrimSpace(in.Contact.Name),
			Email: domain.NormalizeEmail(in.Contact.Email),
			Phone: strings.TrimSpace(in.Contact.Phone),
		},
		BookingDetails: in.BookingDetails,
		PaymentStatus:  domain.PaymentPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.Identity != nil {
		order.UserID = in.Identity.SubjectID
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.log.Error().Err(err).Msg("failed to create order")
		return nil, fmt.Errorf("create order: %w", err)
	}

	gw, err := s.gateway.CreateOrder(ctx, ports.GatewayOrderRequest{
		Amount:   minorUnits(order.Price),
		Currency: order.Currency,
		Receipt:  order.OrderID,
		Notes: map[string]string{
			"orderId":     order.OrderID,
			"serviceName": order.ServiceName,
		},
	})
	if err != nil {
		if _, terr := s.transitions.apply(ctx, order, domain.PaymentFailed, ""); terr != nil {
			s.log.Warn().Err(terr).Str("order_id", order.OrderID).Msg("failed to mark order failed")
		}
		return nil, fmt.Errorf("create gateway order: %w", err)
	}

	if err := s.repo.SetGatewayOrder(ctx, order.OrderID, gw.ID); err != nil {
		return nil, fmt.Errorf("store gateway order: %w", err)
	}
	order.GatewayOrderID = gw.ID

	s.log.Info().
		Str("order_id", order.OrderID).
		Str("user_id", order.UserID).
		Str("service_id", order.ServiceID).
		Msg("order created")

	return &ports.CheckoutResult{
		Order: s.view(order),
		Payment: ports.PaymentIntent{
			GatewayOrderID: gw.ID,
			Amount:         gw.Amount,
			Currency:       gw.Currency,
			KeyID:          s.gateway.KeyID(),
		},
	}, nil
}

// Cancel lets the owner abandon an order that is still pending.
func (s *OrderService) Cancel(ctx context.Context, identity *domain.Identity, orderID string) (*ports.OrderView, error) {
	if !authz.Authorize(identity, authz.Orders, authz.Cancel).Allowed() {
		return nil, domain.ErrUnauthorized
	}

	order, err := s.repo.FindByOrderID(ctx, orderID, identity.SubjectID)
	if err != nil {
		return nil, err
	}

	updated, err := s.transitions.apply(ctx, order, domain.PaymentCancelled, "")
	if err != nil {
		return nil, err
	}
	view := s.view(updated)
	return &view, nil
}

func (s *OrderService) view(o *domain.Order) ports.OrderView {
	return ports.OrderView{
		Order:          o,
		FormattedPrice: s.prices.Format(o.Price),
		Status:         domain.PresentStatus(o.PaymentStatus),
	}
}

func (s *OrderService) views(orders []*domain.Order) []ports.OrderView {
	out := make([]ports.OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, s.view(o))
	}
	return out
}

func withQueryDefaults(q ports.OrderQuery) ports.OrderQuery {
	if q.Page == 0 {
		q.Page = ports.DefaultPage
	}
	if q.Limit == 0 {
		q.Limit = ports.DefaultLimit
	}
	if q.Status == "" {
		q.Status = ports.StatusAll
	}
	if q.SortBy == "" {
		q.SortBy = ports.DefaultSortBy
	}
	if q.SortOrder == "" {
		q.SortOrder = ports.DefaultSortOrder
	}
	return q
}

// validateQuery rejects out-of-range values instead of clamping them.
func validateQuery(q ports.OrderQuery) error {
	verr := domain.NewValidationError()
	if q.Page < 1 || q.Page > ports.MaxPage {
		verr.Add("page", fmt.Sprintf("page must be between 1 and %d", ports.MaxPage))
	}
	if q.Limit < 1 || q.Limit > ports.MaxLimit {
		verr.Add("limit", fmt.Sprintf("limit must be between 1 and %d", ports.MaxLimit))
	}
	if !validStatusFilters[q.Status] {
		verr.Add("status", "status must be one of: pending completed failed cancelled all")
	}
	if !validSortFields[q.SortBy] {
		verr.Add("sortBy", "sortBy must be one of: createdAt price serviceName")
	}
	if q.SortOrder != "asc" && q.SortOrder != "desc" {
		verr.Add("sortOrder", "sortOrder must be one of: asc desc")
	}
	if !q.DateFrom.IsZero() && !q.DateTo.IsZero() && q.DateTo.Before(q.DateFrom) {
		verr.Add("dateTo", "dateTo must not be before dateFrom")
	}
	if !verr.Empty() {
		return verr
	}
	return nil
}

// endOfDay returns the last millisecond of t's calendar day in t's location.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func serviceTypeFor(category string) string {
	switch category {
	case domain.ServiceTypeConsultation, domain.ServiceTypeRemedy:
		return category
	default:
		return domain.ServiceTypeReport
	}
}

// generateOrderID returns a unique order id in the format ORD-XXXXXXXXXXXX.
func generateOrderID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORD-" + strings.ToUpper(id[:12])
}
