package ports

import (
	"context"

	"github.com/numerologyhub/site-api/internal/core/domain"
)

type UploadedImage struct {
	SecureURL string
	PublicID  string
}

// ImageStore hosts base64 data URI images and returns their public location.
type ImageStore interface {
	Upload(ctx context.Context, dataURI, folder string) (*UploadedImage, error)
}

type MediaService interface {
	Upload(ctx context.Context, identity *domain.Identity, dataURI, folder string) (*UploadedImage, error)
}
