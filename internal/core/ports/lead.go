package ports

import (
	"context"

	"github.com/numerologyhub/site-api/internal/core/domain"
)

type ContactRepository interface {
	Create(ctx context.Context, c *domain.Contact) error
	List(ctx context.Context) ([]*domain.Contact, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
}

// SampleReportRepository lists newest first. A zero limit means no limit.
type SampleReportRepository interface {
	Create(ctx context.Context, r *domain.SampleReport) error
	List(ctx context.Context, limit int) ([]*domain.SampleReport, error)
	Delete(ctx context.Context, id string) error
}

type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

type ContactService interface {
	Submit(ctx context.Context, in ContactInput) (string, error)
	List(ctx context.Context, identity *domain.Identity) ([]*domain.Contact, error)
	SetStatus(ctx context.Context, identity *domain.Identity, id, status string) (*domain.Contact, error)
	Delete(ctx context.Context, identity *domain.Identity, id string) error
}

type SampleReportInput struct {
	FirstName      string
	BirthDate      string
	Time           string
	WhatsappNumber string
	Email          string
	City           string
}

type SampleReportService interface {
	Submit(ctx context.Context, in SampleReportInput) (string, error)
	List(ctx context.Context, identity *domain.Identity) ([]*domain.SampleReport, error)
	Delete(ctx context.Context, identity *domain.Identity, id string) error
}
