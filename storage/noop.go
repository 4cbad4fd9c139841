package storage

import (
	"context"
	"errors"
	"io"
)

// ErrStorageDisabled is returned by the disabled uploader when object
// storage is not configured.
var ErrStorageDisabled = errors.New("object storage is not configured")

type disabledUploader struct{}

// NewDisabledUploader returns a FileUploader that rejects uploads. Used
// when the platform runs without R2 credentials.
func NewDisabledUploader() FileUploader {
	return disabledUploader{}
}

func (disabledUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error) {
	return nil, ErrStorageDisabled
}

func (disabledUploader) Delete(ctx context.Context, key string) error {
	return ErrStorageDisabled
}

func (disabledUploader) GetPublicURL(key string) string {
	return ""
}
