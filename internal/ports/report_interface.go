package ports

import (
	"context"

	"github.com/jmoiron/sqlx"

	"report-web-server/internal/model"
	"report-web-server/internal/model/requestresponse"
)

// ReportRepository : SQL слой отчётов
type ReportRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, report *model.Report) (*model.Report, error)
	Update(ctx context.Context, exec sqlx.ExtContext, report *model.Report) (*model.Report, error)
	GetByID(ctx context.Context, exec sqlx.ExtContext, reportID int64) (*model.Report, error)
	List(ctx context.Context, exec sqlx.ExtContext, dateFrom, dateTo string, limit, offset int) ([]model.Report, int, error)
	Delete(ctx context.Context, exec sqlx.ExtContext, reportID int64) (*model.Report, error)
	SetFileURL(ctx context.Context, exec sqlx.ExtContext, reportID int64, fileType string, fileKey string) error
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

type ReportService interface {
	CreateOrUpdateReport(ctx context.Context, req *requestresponse.CreateReportRequest) (*model.Report, error)
	GetReportByID(ctx context.Context, reportID int64) (*model.Report, error)
	ListReports(ctx context.Context, dateFrom, dateTo string, page, limit int) ([]model.Report, int, error)
	DeleteReport(ctx context.Context, reportID int64) (*model.Report, error)
	UploadReportFile(ctx context.Context, reportID int64, fileType string, body []byte) (string, error)
}

// DownloadService : выпуск и погашение подписанных ссылок на скачивание
type DownloadService interface {
	IssueDownloadURL(ctx context.Context, reportID int64, fileType string) (*model.DownloadLink, error)
	RedeemDownload(ctx context.Context, reportID int64, fileType string, token string) (*model.FileDownload, error)
}
