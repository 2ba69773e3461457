// Package upload mirrors local backup files to off-site storage.
package upload

import (
	"context"
	"io"
	"path/filepath"
	"strings"
)

// UploadResult represents the result of a file upload
type UploadResult struct {
	URL      string `json:"url"`       // Location of the stored copy
	FileName string `json:"file_name"` // Original filename
	Size     int64  `json:"size"`      // File size in bytes
	Key      string `json:"key"`       // Provider-specific identifier
}

// UploadOptions represents upload configuration options
type UploadOptions struct {
	Folder    string // Folder/prefix to upload to
	Key       string // Explicit name; defaults to the file name
	Overwrite bool
}

// Provider defines the interface for off-site storage providers
type Provider interface {
	Upload(ctx context.Context, file io.Reader, filename string, options *UploadOptions) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
	GetProviderName() string
}

// DefaultUploadOptions returns default upload options
func DefaultUploadOptions() *UploadOptions {
	return &UploadOptions{
		Folder:    "venue-backups",
		Overwrite: false,
	}
}

// MergeOptions merges custom options with defaults
func MergeOptions(custom *UploadOptions) *UploadOptions {
	defaults := DefaultUploadOptions()
	if custom == nil {
		return defaults
	}
	if custom.Folder != "" {
		defaults.Folder = custom.Folder
	}
	if custom.Key != "" {
		defaults.Key = custom.Key
	}
	defaults.Overwrite = custom.Overwrite
	return defaults
}

// objectKey joins folder and name with forward slashes.
func objectKey(options *UploadOptions, filename string) string {
	name := options.Key
	if name == "" {
		name = filepath.Base(filename)
	}
	key := name
	if options.Folder != "" {
		key = options.Folder + "/" + name
	}
	return strings.ReplaceAll(key, "\\", "/")
}

// detectContentType covers the data and export files the service produces.
func detectContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return "application/json"
	case ".csv":
		return "text/csv"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
