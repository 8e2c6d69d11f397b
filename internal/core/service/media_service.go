package service

import (
	"context"
	"regexp"

	"github.com/numerologyhub/site-api/internal/core/authz"
	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

const defaultUploadFolder = "uploads"

var folderPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,40}$`)

type MediaService struct {
	images ports.ImageStore
}

func NewMediaService(images ports.ImageStore) *MediaService {
	return &MediaService{images: images}
}

func (s *MediaService) Upload(ctx context.Context, identity *domain.Identity, dataURI, folder string) (*ports.UploadedImage, error) {
	if !authz.Authorize(identity, authz.Uploads, authz.Create).Allowed() {
		return nil, domain.ErrUnauthorized
	}
	if folder == "" {
		folder = defaultUploadFolder
	}
	if !folderPattern.MatchString(folder) {
		return nil, domain.NewValidationError(domain.FieldError{Field: "folder", Message: "folder must be lowercase letters, digits, dashes or underscores"})
	}
	if !isDataURI(dataURI) {
		return nil, domain.NewValidationError(domain.FieldError{Field: "image", Message: "image must be a data URI"})
	}
	return s.images.Upload(ctx, dataURI, folder)
}
