package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/numerologyhub/site-api/internal/core/domain"
	"github.com/numerologyhub/site-api/internal/core/ports"
)

const MaxImageBytes = 5 << 20

var imageExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/webp": "webp",
	"image/gif":  "gif",
}

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	// PublicURL prefixes returned image URLs. Defaults to the endpoint.
	PublicURL string
}

// ImageStore keeps uploaded images in an S3-compatible bucket.
type ImageStore struct {
	client    *minio.Client
	bucket    string
	region    string
	publicURL string
}

func NewImageStore(cfg Config) (*ImageStore, error) {
	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL

	if strings.HasPrefix(endpoint, "http") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse endpoint: %w", err)
		}
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	public := strings.TrimRight(cfg.PublicURL, "/")
	if public == "" {
		scheme := "http"
		if useSSL {
			scheme = "https"
		}
		public = scheme + "://" + endpoint
	}

	return &ImageStore{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		publicURL: public,
	}, nil
}

func (s *ImageStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("bucket exists %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// Ping reports whether the bucket is reachable.
func (s *ImageStore) Ping(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}
	return nil
}

func (s *ImageStore) Upload(ctx context.Context, dataURI, folder string) (*ports.UploadedImage, error) {
	img, err := decodeDataURI(dataURI)
	if err != nil {
		return nil, err
	}

	publicID := path.Join(folder, uuid.NewString())
	key := publicID + "." + img.ext

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(img.data), int64(len(img.data)), minio.PutObjectOptions{
		ContentType: img.contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("put object %s: %w", key, err)
	}

	return &ports.UploadedImage{
		SecureURL: s.publicURL + "/" + s.bucket + "/" + key,
		PublicID:  publicID,
	}, nil
}

type decodedImage struct {
	contentType string
	ext         string
	data        []byte
}

// decodeDataURI accepts "data:image/<type>;base64,<payload>".
func decodeDataURI(dataURI string) (*decodedImage, error) {
	invalid := func(msg string) error {
		return domain.NewValidationError(domain.FieldError{Field: "image", Message: msg})
	}

	rest, ok := strings.CutPrefix(dataURI, "data:")
	if !ok {
		return nil, invalid("must be a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, invalid("must be a data URI")
	}
	contentType, encoding, ok := strings.Cut(meta, ";")
	if !ok || encoding != "base64" {
		return nil, invalid("must be base64 encoded")
	}
	contentType = strings.ToLower(contentType)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, invalid("unsupported image type")
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageBytes+3 {
		return nil, invalid("image is too large")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, invalid("invalid base64 payload")
	}
	if len(data) == 0 {
		return nil, invalid("image is empty")
	}
	if len(data) > MaxImageBytes {
		return nil, invalid("image is too large")
	}

	return &decodedImage{contentType: contentType, ext: ext, data: data}, nil
}
