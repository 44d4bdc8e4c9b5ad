package storage

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kurin/blazer/b2"
)

type B2Store struct {
	bucket *b2.Bucket
	prefix string
}

func NewB2Store(ctx context.Context, accountID, appKey, bucketName, prefix string) (*B2Store, error) {
	client, err := b2.NewClient(ctx, accountID, appKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create b2 client: %w", err)
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}
	return &B2Store{bucket: bucket, prefix: prefix}, nil
}

func (s *B2Store) Upload(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	obj := s.bucket.Object(objectName(s.prefix, localPath))
	w := obj.NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}
	return obj.URL(), nil
}
