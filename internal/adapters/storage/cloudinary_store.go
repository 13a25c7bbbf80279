package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/providers"
	"github.com/zatekoja/HotelReservationSystem/backend/pkg/config"
	apperrors "github.com/zatekoja/HotelReservationSystem/backend/pkg/errors"
)

// CloudinaryStore uploads room photos to Cloudinary
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStore creates a store from a cloudinary:// URL
func NewCloudinaryStore(cfg config.CloudinaryConfig) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld, folder: cfg.Folder}, nil
}

// Upload stores content and returns its HTTPS URL
func (s *CloudinaryStore) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, content, uploader.UploadParams{
		Folder:   s.folder,
		PublicID: publicID(filename),
	})
	if err != nil {
		return "", apperrors.NewExternalError("failed to upload photo", err)
	}
	if resp.Error.Message != "" {
		return "", apperrors.NewExternalError("failed to upload photo", fmt.Errorf("%s", resp.Error.Message))
	}
	return resp.SecureURL, nil
}

// publicID derives a Cloudinary public id from an upload filename
func publicID(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
}

// DisabledStore rejects uploads when no photo storage is configured
type DisabledStore struct{}

// Upload always fails
func (DisabledStore) Upload(context.Context, string, io.Reader) (string, error) {
	return "", apperrors.NewExternalError("photo storage is not configured", nil)
}

// NewPhotoStore picks Cloudinary when a URL is configured
func NewPhotoStore(cfg config.CloudinaryConfig) (providers.PhotoStore, error) {
	if cfg.URL == "" {
		return DisabledStore{}, nil
	}
	return NewCloudinaryStore(cfg)
}
