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

type ContactService struct {
	repo ports.ContactRepository
	log  zerolog.Logger
}

func NewContactService(repo ports.ContactRepository, log zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, log: log}
}

func (s *ContactService) Submit(ctx context.Context, in ports.ContactInput) (string, error) {
	c := &domain.Contact{
		Name:      strings.TrimSpace(in.Name),
		Email:     domain.NormalizeEmail(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   in.Message,
		Status:    domain.ContactNew,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return "", fmt.Errorf("create contact: %w", err)
	}

	s.log.Info().Str("contact_id", c.ID).Msg("contact message received")
	return c.ID, nil
}

func (s *ContactService) List(ctx context.Context, identity *domain.Identity) ([]*domain.Contact, error) {
	if !authz.Authorize(identity, authz.Contacts, authz.List).Allowed() {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.List(ctx)
}

func (s *ContactService) SetStatus(ctx context.Context, identity *domain.Identity, id, status string) (*domain.Contact, error) {
	if !authz.Authorize(identity, authz.Contacts, authz.Update).Allowed() {
		return nil, domain.ErrUnauthorized
	}
	switch status {
	case domain.ContactNew, domain.ContactRead, domain.ContactResolved:
	default:
		return nil, domain.NewValidationError(domain.FieldError{Field: "status", Message: "status must be one of: new read resolved"})
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *ContactService) Delete(ctx context.Context, identity *domain.Identity, id string) error {
	if !authz.Authorize(identity, authz.Contacts, authz.Delete).Allowed() {
		return domain.ErrUnauthorized
	}
	return s.repo.Delete(ctx, id)
}

type SampleReportService struct {
	repo ports.SampleReportRepository
	log  zerolog.Logger
}

func NewSampleReportService(repo ports.SampleReportRepository, log zerolog.Logger) *SampleReportService {
	return &SampleReportService{repo: repo, log: log}
}

func (s *SampleReportService) Submit(ctx context.Context, in ports.SampleReportInput) (string, error) {
	r := &domain.SampleReport{
		FirstName:      strings.TrimSpace(in.FirstName),
		BirthDate:      in.BirthDate,
		Time:           in.Time,
		WhatsappNumber: strings.TrimSpace(in.WhatsappNumber),
		Email:          domain.NormalizeEmail(in.Email),
		City:           strings.TrimSpace(in.City),
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return "", fmt.Errorf("create sample report: %w", err)
	}

	s.log.Info().Str("report_id", r.ID).Msg("sample report created")
	return r.ID, nil
}

// List returns every request, newest first.
func (s *SampleReportService) List(ctx context.Context, identity *domain.Identity) ([]*domain.SampleReport, error) {
	if !authz.Authorize(identity, authz.SampleReports, authz.List).Allowed() {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.List(ctx, 0)
}

func (s *SampleReportService) Delete(ctx context.Context, identity *domain.Identity, id string) error {
	if !authz.Authorize(identity, authz.SampleReports, authz.Delete).Allowed() {
		return domain.ErrUnauthorized
	}
	return s.repo.Delete(ctx, id)
}
