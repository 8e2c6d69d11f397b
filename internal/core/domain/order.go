package domain

import (
	"errors"
	"time"
)

// PaymentStatus represents the payment lifecycle of an order.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// validTransitions: pending is the only non-terminal status.
var validTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending: {PaymentCompleted, PaymentFailed, PaymentCancelled},
}

var ErrOrderNotFound = errors.New("order not found")
var ErrInvalidTransition = errors.New("invalid payment status transition")
var ErrPaymentInProgress = errors.New("payment update already in progress")
var ErrInvalidSignature = errors.New("invalid payment signature")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentCompleted || s == PaymentFailed || s == PaymentCancelled
}

func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s.IsTerminal()
}

// Service types an order can be placed for. They mirror catalog categories.
const (
	ServiceTypeReport       = "report"
	ServiceTypeConsultation = "consultation"
	ServiceTypeRemedy       = "remedy"
)

// ContactDetails is who the order is for; guest lookup matches on Email and Phone.
type ContactDetails struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone" bson:"phone"`
}

// BookingDetails holds the optional consultation slot and birth data.
type BookingDetails struct {
	PreferredDate string `json:"preferredDate,omitempty" bson:"preferred_date,omitempty"`
	PreferredTime string `json:"preferredTime,omitempty" bson:"preferred_time,omitempty"`
	BirthDate     string `json:"birthDate,omitempty" bson:"birth_date,omitempty"`
	BirthTime     string `json:"birthTime,omitempty" bson:"birth_time,omitempty"`
	BirthPlace    string `json:"birthPlace,omitempty" bson:"birth_place,omitempty"`
	Notes         string `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Order is a purchase of a catalog service. UserID is empty for guest checkouts.
type Order struct {
	ID               string          `json:"id" bson:"_id,omitempty"`
	OrderID          string          `json:"orderId" bson:"order_id"`
	UserID           string          `json:"userId,omitempty" bson:"user_id,omitempty"`
	ServiceID        string          `json:"serviceId" bson:"service_id"`
	ServiceName      string          `json:"serviceName" bson:"service_name"`
	ServiceType      string          `json:"serviceType" bson:"service_type"`
	Price            float64         `json:"price" bson:"price"`
	Currency         string          `json:"currency" bson:"currency"`
	PaymentStatus    PaymentStatus   `json:"paymentStatus" bson:"payment_status"`
	ContactDetails   ContactDetails  `json:"contactDetails" bson:"contact_details"`
	BookingDetails   *BookingDetails `json:"bookingDetails,omitempty" bson:"booking_details,omitempty"`
	GatewayOrderID   string          `json:"gatewayOrderId,omitempty" bson:"gateway_order_id,omitempty"`
	GatewayPaymentID string          `json:"gatewayPaymentId,omitempty" bson:"gateway_payment_id,omitempty"`
	CreatedAt        time.Time       `json:"createdAt" bson:"created_at"`
	UpdatedAt        time.Time       `json:"updatedAt" bson:"updated_at"`
}
