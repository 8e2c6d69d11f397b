package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/numerologyhub/site-api/internal/core/authz"
	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

const profileImageFolder = "profiles"

// ProfileService lets users edit their own account. Email and role are not
// editable here.
type ProfileService struct {
	repo   ports.UserRepository
	images ports.ImageStore
	log    zerolog.Logger
}

func NewProfileService(repo ports.UserRepository, images ports.ImageStore, log zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, images: images, log: log}
}

func (s *ProfileService) Get(ctx context.Context, identity *domain.Identity) (*domain.User, error) {
	if !authz.Authorize(identity, authz.Profile, authz.Read).Allowed() {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.FindByID(ctx, identity.SubjectID)
}

func (s *ProfileService) Update(ctx context.Context, identity *domain.Identity, in ports.ProfileInput) (*domain.User, error) {
	if !authz.Authorize(identity, authz.Profile, authz.Update).Allowed() {
		return nil, domain.ErrUnauthorized
	}

	upd := ports.ProfileUpdate{Phone: in.Phone}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError(domain.FieldError{Field: "name", Message: "name must not be empty"})
		}
		upd.Name = &name
	}

	if in.ProfileImage != nil {
		url := *in.ProfileImage
		if isDataURI(url) {
			uploaded, err := s.images.Upload(ctx, url, profileImageFolder)
			if err != nil {
				return nil, err
			}
			url = uploaded.SecureURL
		}
		upd.ProfileImageURL = &url
	}

	user, err := s.repo.UpdateProfile(ctx, identity.SubjectID, upd)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("profile updated")
	return user, nil
}

func (s *ProfileService) ChangePassword(ctx context.Context, identity *domain.Identity, in ports.PasswordChange) error {
	if !authz.Authorize(identity, authz.Profile, authz.Update).Allowed() {
		return domain.ErrUnauthorized
	}
	if len(in.NewPassword) < minPasswordLength {
		return domain.NewValidationError(domain.FieldError{
			Field:   "newPassword",
			Message: fmt.Sprintf("newPassword must be at least %d characters", minPasswordLength),
		})
	}

	user, err := s.repo.FindByID(ctx, identity.SubjectID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)) != nil {
		return domain.NewValidationError(domain.FieldError{Field: "currentPassword", Message: "currentPassword is incorrect"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}
