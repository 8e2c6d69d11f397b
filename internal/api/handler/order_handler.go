package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/numerologyhub/site-api/internal/api/metrics"
	"github.com/numerologyhub/site-api/internal/api/middleware"
	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

// OrderHandler handles HTTP requests for order operations.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// List handles GET /api/orders. Results are always limited to the caller's
// own orders.
//
// @Summary      List my orders
// @Tags         orders
// @Produce      json
// @Security     SessionCookie
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Page size, 1-100 (default 10)"
// @Param        search     query     string  false  "Matches service name, order id or contact name"
// @Param        status     query     string  false  "pending, completed, failed, cancelled or all"
// @Param        dateFrom   query     string  false  "YYYY-MM-DD"
// @Param        dateTo     query     string  false  "YYYY-MM-DD, inclusive"
// @Param        sortBy     query     string  false  "createdAt, price or serviceName"
// @Param        sortOrder  query     string  false  "asc or desc"
// @Success      200        {object}  orderListResponse
// @Failure      400        {object}  errorResponse
// @Failure      401        {object}  errorResponse
// @Failure      500        {object}  errorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	q, err := parseOrderQuery(c)
	if err != nil {
		return err
	}

	page, err := h.service.Query(c.Request().Context(), identity, q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderListResponse(page))
}

// ListAll handles GET /api/admin/orders.
//
// @Summary      List all orders
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Page size, 1-100 (default 10)"
// @Param        search     query     string  false  "Matches service name, order id or contact name"
// @Param        status     query     string  false  "pending, completed, failed, cancelled or all"
// @Param        dateFrom   query     string  false  "YYYY-MM-DD"
// @Param        dateTo     query     string  false  "YYYY-MM-DD, inclusive"
// @Param        sortBy     query     string  false  "createdAt, price or serviceName"
// @Param        sortOrder  query     string  false  "asc or desc"
// @Success      200        {object}  orderListResponse
// @Failure      400        {object}  errorResponse
// @Failure      401        {object}  errorResponse
// @Router       /api/admin/orders [get]
func (h *OrderHandler) ListAll(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	q, err := parseOrderQuery(c)
	if err != nil {
		return err
	}

	page, err := h.service.QueryAll(c.Request().Context(), identity, q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderListResponse(page))
}

// Get handles GET /api/orders/:id. The body is the bare order.
//
// @Summary      Get one of my orders
// @Tags         orders
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "Order id (e.g. ORD-1A2B3C4D5E6F)"
// @Success      200  {object}  orderResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	view, err := h.service.Get(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(*view))
}

// Create handles POST /api/orders. Guests may check out; signed-in callers
// get the order attached to their account.
//
// @Summary      Start checkout
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      createOrderRequest  true  "Service and contact details"
// @Success      201   {object}  checkoutResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.Checkout(c.Request().Context(), toCheckoutInput(req, middleware.IdentityFrom(c)))
	if err != nil {
		return err
	}

	metrics.OrdersCreatedTotal.WithLabelValues(result.Order.Order.ServiceType).Inc()
	return c.JSON(http.StatusCreated, toCheckoutResponse(result))
}

// Cancel handles POST /api/orders/:id/cancel.
//
// @Summary      Cancel a pending order
// @Tags         orders
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  orderStatusResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	view, err := h.service.Cancel(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.PaymentTransitionsTotal.WithLabelValues(string(domain.PaymentCancelled), "cancel").Inc()
	return c.JSON(http.StatusOK, orderStatusResponse{Success: true, Order: toOrderResponse(*view)})
}

// Lookup handles POST /api/orders/lookup for guests. Both fields must match
// the order's contact details exactly.
//
// @Summary      Find guest orders
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      lookupRequest  true  "Contact email and phone used at checkout"
// @Success      200   {object}  lookupResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/orders/lookup [post]
func (h *OrderHandler) Lookup(c echo.Context) error {
	var req lookupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	views, err := h.service.Lookup(c.Request().Context(), req.Email, req.Phone)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lookupResponse{Success: true, Orders: toOrderResponses(views)})
}
