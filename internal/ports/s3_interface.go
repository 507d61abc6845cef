package ports

import (
	"context"
	"time"
)

// S3Storage : объектное хранилище загруженных файлов
type S3Storage interface {
	UploadObject(ctx context.Context, key string, mimeType string, data []byte) error
	DeleteObject(ctx context.Context, key string) error
	ObjectURL(key string) string
	GeneratePresignedGetURL(ctx context.Context, key string, expire time.Duration) (string, error)
}
