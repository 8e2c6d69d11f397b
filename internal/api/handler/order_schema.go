package handler

import (
	"strings"

	"github.com/numerologyhub/site-api/internal/core/domain"
)

const dateLayout = "2006-01-02"

// orderQueryRequest holds the raw listing parameters. Page and limit are
// parsed by hand so non-numeric values become field errors.
type orderQueryRequest struct {
	Page      *int   `query:"page"      validate:"omitnil,min=1,max=100000"`
	Limit     *int   `query:"limit"     validate:"omitnil,min=1,max=100"`
	Search    string `query:"search"    validate:"max=100"`
	Status    string `query:"status"    validate:"omitempty,oneof=pending completed failed cancelled all"`
	DateFrom  string `query:"dateFrom"  validate:"omitempty,datetime=2006-01-02"`
	DateTo    string `query:"dateTo"    validate:"omitempty,datetime=2006-01-02"`
	SortBy    string `query:"sortBy"    validate:"omitempty,oneof=createdAt price serviceName"`
	SortOrder string `query:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

type contactDetailsRequest struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,max=20"`
}

type bookingDetailsRequest struct {
	PreferredDate string `json:"preferredDate" validate:"omitempty,datetime=2006-01-02"`
	PreferredTime string `json:"preferredTime" validate:"omitempty,datetime=15:04"`
	BirthDate     string `json:"birthDate"     validate:"omitempty,datetime=2006-01-02"`
	BirthTime     string `json:"birthTime"     validate:"omitempty,datetime=15:04"`
	BirthPlace    string `json:"birthPlace"    validate:"max=200"`
	Notes         string `json:"notes"         validate:"max=1000"`
}

type createOrderRequest struct {
	ServiceID      string                 `json:"serviceId"      validate:"required"`
	ContactDetails contactDetailsRequest  `json:"contactDetails" validate:"required"`
	BookingDetails *bookingDetailsRequest `json:"bookingDetails" validate:"omitnil"`
}

type lookupRequest struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,max=20"`
}

func (r *contactDetailsRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = domain.NormalizeEmail(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
}

func (r *createOrderRequest) normalize() {
	r.ContactDetails.normalize()
}

func (r *lookupRequest) normalize() {
	r.Email = domain.NormalizeEmail(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
}

// orderResponse is an order with its presentation fields.
type orderResponse struct {
	*domain.Order
	FormattedPrice string `json:"formattedPrice"`
	domain.StatusPresentation
}

type paginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

type orderListResponse struct {
	Success    bool               `json:"success"`
	Orders     []orderResponse    `json:"orders"`
	Pagination paginationResponse `json:"pagination"`
}

type lookupResponse struct {
	Success bool            `json:"success"`
	Orders  []orderResponse `json:"orders"`
}

type paymentIntentResponse struct {
	GatewayOrderID string `json:"gatewayOrderId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	KeyID          string `json:"keyId"`
}

type checkoutResponse struct {
	Success bool                  `json:"success"`
	Order   orderResponse         `json:"order"`
	Payment paymentIntentResponse `json:"payment"`
}

type orderStatusResponse struct {
	Success bool          `json:"success"`
	Order   orderResponse `json:"order"`
}
