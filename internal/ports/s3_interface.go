package ports

import (
	"context"
	"time"
)

// S3Storage : statement exports
type S3Storage interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
	GeneratePresignedGetURL(ctx context.Context, key string, expire time.Duration) (string, error)
}
