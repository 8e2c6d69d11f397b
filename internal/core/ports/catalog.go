package ports

import (
	"context"

	"github.com/numerologyhub/site-api/internal/core/domain"
)

type CatalogFilter struct {
	ActiveOnly bool
	Category   string
}

type CatalogRepository interface {
	List(ctx context.Context, filter CatalogFilter) ([]*domain.Service, error)
	FindByID(ctx context.Context, id string) (*domain.Service, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Service, error)
	Create(ctx context.Context, s *domain.Service) error
	Update(ctx context.Context, s *domain.Service) error
	Delete(ctx context.Context, id string) error
}

// ServiceInput is an admin catalog edit. Image may be a data URI.
type ServiceInput struct {
	ServiceName      string
	ShortDescription string
	LongDescription  string
	Price            float64
	Image            string
	Status           string
	Category         string
}

type CatalogService interface {
	ListActive(ctx context.Context, category string) ([]*domain.Service, error)
	GetActive(ctx context.Context, id string) (*domain.Service, error)
	ListAll(ctx context.Context, identity *domain.Identity) ([]*domain.Service, error)
	Create(ctx context.Context, identity *domain.Identity, in ServiceInput) (*domain.Service, error)
	Update(ctx context.Context, identity *domain.Identity, id string, in ServiceInput) (*domain.Service, error)
	Delete(ctx context.Context, identity *domain.Identity, id string) error
}
