package upload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/config"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/utils"
)

// ErrNotConfigured is returned when no off-site provider is set up.
var ErrNotConfigured = errors.New("upload provider not configured")

// Service provides off-site copies with provider switching
type Service struct {
	provider     Provider
	providerName string
	folder       string
}

// NewService creates a new upload service
func NewService(provider Provider, folder string) *Service {
	return &Service{
		provider:     provider,
		providerName: provider.GetProviderName(),
		folder:       folder,
	}
}

// NewServiceFromConfig picks the provider named by UPLOAD_PROVIDER. It returns
// nil, nil when off-site copies are disabled.
func NewServiceFromConfig(cfg *config.Config) (*Service, error) {
	var (
		provider Provider
		err      error
	)
	switch cfg.UploadProvider {
	case "", "none":
		return nil, nil
	case "local":
		provider, err = NewLocalProvider(cfg.UploadLocalDir)
	case "s3":
		provider, err = NewS3Provider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Endpoint)
	case "cloudinary":
		provider, err = NewCloudinaryProvider(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	default:
		return nil, fmt.Errorf("unknown upload provider: %s", cfg.UploadProvider)
	}
	if err != nil {
		return nil, err
	}

	utils.LogInfo("☁️ Off-site backup copies enabled", map[string]interface{}{
		"provider": provider.GetProviderName(),
		"folder":   cfg.UploadFolder,
	})
	return NewService(provider, cfg.UploadFolder), nil
}

// UploadFile copies one local file to the provider.
func (s *Service) UploadFile(ctx context.Context, path string) (*UploadResult, error) {
	if s == nil || s.provider == nil {
		return nil, ErrNotConfigured
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return s.provider.Upload(ctx, f, filepath.Base(path), &UploadOptions{Folder: s.folder, Overwrite: true})
}

// UploadFiles uploads every path and keeps going past failures.
func (s *Service) UploadFiles(ctx context.Context, paths []string) ([]*UploadResult, error) {
	var (
		results []*UploadResult
		errs    []error
	)
	for _, path := range paths {
		res, err := s.UploadFile(ctx, path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

// Delete removes a stored copy by key
func (s *Service) Delete(ctx context.Context, key string) error {
	if s == nil || s.provider == nil {
		return ErrNotConfigured
	}
	return s.provider.Delete(ctx, key)
}

// GetProviderName returns the current provider name
func (s *Service) GetProviderName() string {
	if s == nil {
		return "none"
	}
	return s.providerName
}
