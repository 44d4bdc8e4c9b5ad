// Package storage uploads user images to an external blob store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ErrDisabled is returned by the no-op store when no backend is configured.
var ErrDisabled = errors.New("blob storage is not configured")

// BlobStore takes a file on local disk and returns its public URL.
type BlobStore interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

type disabledStore struct{}

// NewDisabledStore returns a store whose uploads always fail.
func NewDisabledStore() BlobStore { return disabledStore{} }

func (disabledStore) Upload(context.Context, string) (string, error) {
	return "", ErrDisabled
}

// objectName builds a unique object key that keeps the original extension.
func objectName(prefix, localPath string) string {
	ext := strings.ToLower(filepath.Ext(localPath))
	base := strings.TrimSuffix(filepath.Base(localPath), filepath.Ext(localPath))
	return fmt.Sprintf("%s/%s_%d%s", prefix, base, time.Now().UnixNano(), ext)
}
