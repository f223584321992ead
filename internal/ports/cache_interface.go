package ports

import (
	"context"

	"report-web-server/internal/model"
)

// CacheRepository : Redis-кэш метаданных отчётов
type CacheRepository interface {
	SetReport(ctx context.Context, report *model.Report) error
	GetReport(ctx context.Context, reportID int64) (*model.Report, error)
	DeleteReport(ctx context.Context, reportID int64) error
}
