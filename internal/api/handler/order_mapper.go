package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

// --- Request → Service input ---

// parseOrderQuery turns the raw query string into a service query. Every
// rejected parameter is reported, not just the first one.
func parseOrderQuery(c echo.Context) (ports.OrderQuery, error) {
	verr := domain.NewValidationError()
	req := orderQueryRequest{
		Page:      intParam(c, "page", verr),
		Limit:     intParam(c, "limit", verr),
		Search:    c.QueryParam("search"),
		Status:    c.QueryParam("status"),
		DateFrom:  c.QueryParam("dateFrom"),
		DateTo:    c.QueryParam("dateTo"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}
	if !verr.Empty() {
		return ports.OrderQuery{}, verr
	}
	if err := c.Validate(&req); err != nil {
		return ports.OrderQuery{}, err
	}

	q := ports.OrderQuery{
		Search:    req.Search,
		Status:    req.Status,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	if req.Page != nil {
		q.Page = *req.Page
	}
	if req.Limit != nil {
		q.Limit = *req.Limit
	}
	// validated above, so parsing cannot fail
	if req.DateFrom != "" {
		q.DateFrom, _ = time.ParseInLocation(dateLayout, req.DateFrom, time.Local)
	}
	if req.DateTo != "" {
		q.DateTo, _ = time.ParseInLocation(dateLayout, req.DateTo, time.Local)
	}
	return q, nil
}

func intParam(c echo.Context, name string, verr *domain.ValidationError) *int {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	var n int
	if err := echo.QueryParamsBinder(c).MustInt(name, &n).BindError(); err != nil {
		verr.Add(name, "must be a whole number")
		return nil
	}
	return &n
}

func toCheckoutInput(req createOrderRequest, identity *domain.Identity) ports.CheckoutInput {
	in := ports.CheckoutInput{
		Identity:  identity,
		ServiceID: req.ServiceID,
		Contact: domain.ContactDetails{
			Name:  req.ContactDetails.Name,
			Email: req.ContactDetails.Email,
			Phone: req.ContactDetails.Phone,
		},
	}
	if b := req.BookingDetails; b != nil {
		in.BookingDetails = &domain.BookingDetails{
			PreferredDate: b.PreferredDate,
			PreferredTime: b.PreferredTime,
			BirthDate:     b.BirthDate,
			BirthTime:     b.BirthTime,
			BirthPlace:    b.BirthPlace,
			Notes:         b.Notes,
		}
	}
	return in
}

// --- Service result → HTTP response ---

func toOrderResponse(v ports.OrderView) orderResponse {
	return orderResponse{
		Order:              v.Order,
		FormattedPrice:     v.FormattedPrice,
		StatusPresentation: v.Status,
	}
}

func toOrderResponses(views []ports.OrderView) []orderResponse {
	out := make([]orderResponse, len(views))
	for i, v := range views {
		out[i] = toOrderResponse(v)
	}
	return out
}

func toOrderListResponse(p *ports.OrderPage) orderListResponse {
	return orderListResponse{
		Success: true,
		Orders:  toOrderResponses(p.Orders),
		Pagination: paginationResponse{
			Page:       p.Pagination.Page,
			Limit:      p.Pagination.Limit,
			Total:      p.Pagination.Total,
			TotalPages: p.Pagination.TotalPages,
			HasNext:    p.Pagination.HasNext,
			HasPrev:    p.Pagination.HasPrev,
		},
	}
}

func toCheckoutResponse(r *ports.CheckoutResult) checkoutResponse {
	return checkoutResponse{
		Success: true,
		Order:   toOrderResponse(r.Order),
		Payment: paymentIntentResponse{
			GatewayOrderID: r.Payment.GatewayOrderID,
			Amount:         r.Payment.Amount,
			Currency:       r.Payment.Currency,
			KeyID:          r.Payment.KeyID,
		},
	}
}
