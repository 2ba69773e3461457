package upload

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryProvider stores copies as raw Cloudinary assets
type CloudinaryProvider struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}

// NewCloudinaryProvider creates a new Cloudinary provider
func NewCloudinaryProvider(cloudName, apiKey, apiSecret string) (*CloudinaryProvider, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryProvider{
		cld:       cld,
		cloudName: cloudName,
	}, nil
}

// Upload uploads a file to Cloudinary. Raw assets keep their extension in
// the public id.
func (p *CloudinaryProvider) Upload(ctx context.Context, file io.Reader, filename string, options *UploadOptions) (*UploadResult, error) {
	options = MergeOptions(options)

	publicID := options.Key
	if publicID == "" {
		publicID = filepath.Base(filename)
	}

	params := uploader.UploadParams{
		Folder:       options.Folder,
		PublicID:     publicID,
		ResourceType: "raw",
		Overwrite:    &options.Overwrite,
	}

	result, err := p.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return nil, fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("Cloudinary upload failed: %s", result.Error.Message)
	}

	return &UploadResult{
		URL:      result.SecureURL,
		FileName: filename,
		Size:     int64(result.Bytes),
		Key:      result.PublicID,
	}, nil
}

// Delete deletes a raw asset from Cloudinary
func (p *CloudinaryProvider) Delete(ctx context.Context, key string) error {
	params := uploader.DestroyParams{
		PublicID:     strings.TrimPrefix(key, "/"),
		ResourceType: "raw",
	}

	result, err := p.cld.Upload.Destroy(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to delete from Cloudinary: %w", err)
	}
	if result.Result != "ok" {
		return fmt.Errorf("Cloudinary delete failed: %s", result.Result)
	}
	return nil
}

// GetProviderName returns the provider name
func (p *CloudinaryProvider) GetProviderName() string {
	return "Cloudinary"
}
