package domain

import (
	"errors"
	"time"
)

const (
	ServiceActive   = "active"
	ServiceInactive = "inactive"
)

var ErrServiceNotFound = errors.New("service not found")

// Service is a catalog entry customers can order.
type Service struct {
	ID               string    `json:"id" bson:"_id,omitempty"`
	ServiceName      string    `json:"serviceName" bson:"service_name"`
	ShortDescription string    `json:"shortDescription" bson:"short_description"`
	LongDescription  string    `json:"longDescription" bson:"long_description"`
	Price            float64   `json:"price" bson:"price"`
	ImageURL         string    `json:"imageUrl" bson:"image_url"`
	Status           string    `json:"status" bson:"status"`
	Category         string    `json:"category" bson:"category"`
	CreatedAt        time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" bson:"updated_at"`
}

func (s *Service) IsActive() bool {
	return s.Status == ServiceActive
}
