package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/numerologyhub/site-api/internal/core/authz"
	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

const serviceImageFolder = "services"

type CatalogService struct {
	repo   ports.CatalogRepository
	images ports.ImageStore
	log    zerolog.Logger
}

func NewCatalogService(repo ports.CatalogRepository, images ports.ImageStore, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, images: images, log: log}
}

func (s *CatalogService) ListActive(ctx context.Context, category string) ([]*domain.Service, error) {
	return s.repo.List(ctx, ports.CatalogFilter{ActiveOnly: true, Category: category})
}

// GetActive hides inactive services from the public catalog.
func (s *CatalogService) GetActive(ctx context.Context, id string) (*domain.Service, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive() {
		return nil, domain.ErrServiceNotFound
	}
	return svc, nil
}

func (s *CatalogService) ListAll(ctx context.Context, identity *domain.Identity) ([]*domain.Service, error) {
	if !authz.Authorize(identity, authz.Catalog, authz.ListAll).Allowed() {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.List(ctx, ports.CatalogFilter{})
}

func (s *CatalogService) Create(ctx context.Context, identity *domain.Identity, in ports.ServiceInput) (*domain.Service, error) {
	if !authz.Authorize(identity, authz.Catalog, authz.Create).Allowed() {
		return nil, domain.ErrUnauthorized
	}
	if err := validateServiceInput(in); err != nil {
		return nil, err
	}

	imageURL, err := s.resolveImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	svc := &domain.Service{
		ServiceName:      strings.TrimSpace(in.ServiceName),
		ShortDescription: in.ShortDescription,
		LongDescription:  in.LongDescription,
		Price:            in.Price,
		ImageURL:         imageURL,
		Status:           statusOrDefault(in.Status),
		Category:         in.Category,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	s.log.Info().Str("service_id", svc.ID).Msg("service created")
	return svc, nil
}

func (s *CatalogService) Update(ctx context.Context, identity *domain.Identity, id string, in ports.ServiceInput) (*domain.Service, error) {
	if !authz.Authorize(identity, authz.Catalog, authz.Update).Allowed() {
		return nil, domain.ErrUnauthorized
	}
	if err := validateServiceInput(in); err != nil {
		return nil, err
	}

	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.resolveImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	svc.ServiceName = strings.TrimSpace(in.ServiceName)
	svc.ShortDescription = in.ShortDescription
	svc.LongDescription = in.LongDescription
	svc.Price = in.Price
	if imageURL != "" {
		svc.ImageURL = imageURL
	}
	svc.Status = statusOrDefault(in.Status)
	svc.Category = in.Category
	svc.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, err
	}

	s.log.Info().Str("service_id", svc.ID).Msg("service updated")
	return svc, nil
}

func (s *CatalogService) Delete(ctx context.Context, identity *domain.Identity, id string) error {
	if !authz.Authorize(identity, authz.Catalog, authz.Delete).Allowed() {
		return domain.ErrUnauthorized
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("service_id", id).Msg("service deleted")
	return nil
}

// resolveImage uploads data URIs and passes plain URLs through.
func (s *CatalogService) resolveImage(ctx context.Context, image string) (string, error) {
	if !isDataURI(image) {
		return image, nil
	}
	uploaded, err := s.images.Upload(ctx, image, serviceImageFolder)
	if err != nil {
		return "", err
	}
	return uploaded.SecureURL, nil
}

func validateServiceInput(in ports.ServiceInput) error {
	verr := domain.NewValidationError()
	if strings.TrimSpace(in.ServiceName) == "" {
		verr.Add("serviceName", "serviceName is required")
	}
	if in.Price < 0 {
		verr.Add("price", "price must be at least 0")
	}
	switch in.Status {
	case "", domain.ServiceActive, domain.ServiceInactive:
	default:
		verr.Add("status", "status must be one of: active inactive")
	}
	if !verr.Empty() {
		return verr
	}
	return nil
}

func statusOrDefault(status string) string {
	if status == "" {
		return domain.ServiceActive
	}
	return status
}

func isDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}
