package domain

import (
	"errors"
	"time"
)

const (
	ContactNew      = "new"
	ContactRead     = "read"
	ContactResolved = "resolved"
)

var ErrContactNotFound = errors.New("contact not found")
var ErrReportNotFound = errors.New("sample report not found")

// Contact is a message left through the public contact form.
type Contact struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty" bson:"subject,omitempty"`
	Message   string    `json:"message" bson:"message"`
	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// SampleReport is a free numerology report request captured as a lead.
type SampleReport struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	FirstName      string    `json:"firstName" bson:"first_name"`
	BirthDate      string    `json:"birthDate" bson:"birth_date"`
	Time           string    `json:"time" bson:"time"`
	WhatsappNumber string    `json:"whatsappNumber" bson:"whatsapp_number"`
	Email          string    `json:"email" bson:"email"`
	City           string    `json:"city" bson:"city"`
	CreatedAt      time.Time `json:"createdAt" bson:"created_at"`
}
