package ports

import (
	"context"
	"io"
)

// S3Storage : блоб-хранилище файлов отчётов
type S3Storage interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
	GetObject(ctx context.Context, key string) (io.ReadCloser, int64, error)
	HeadObject(ctx context.Context, key string) (bool, error)
	DeleteObject(ctx context.Context, key string) error
}
