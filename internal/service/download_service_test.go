package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"report-web-server/config"
	"report-web-server/internal/model"
	"report-web-server/internal/model/requestresponse"
	"report-web-server/internal/repository"
	"report-web-server/internal/security"
	"report-web-server/internal/service"
)

type MockReportService struct{ mock.Mock }

func (m *MockReportService) CreateOrUpdateReport(ctx context.Context, req *requestresponse.CreateReportRequest) (*model.Report, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportService) GetReportByID(ctx context.Context, reportID int64) (*model.Report, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportService) ListReports(ctx context.Context, dateFrom, dateTo string, page, limit int) ([]model.Report, int, error) {
	args := m.Called(ctx, dateFrom, dateTo, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Report), args.Int(1), args.Error(2)
}

func (m *MockReportService) DeleteReport(ctx context.Context, reportID int64) (*model.Report, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportService) UploadReportFile(ctx context.Context, reportID int64, fileType string, body []byte) (string, error) {
	args := m.Called(ctx, reportID, fileType, body)
	return args.String(0), args.Error(1)
}

type MockS3Storage struct{ mock.Mock }

func (m *MockS3Storage) PutObject(ctx context.Context, key string, body []byte, contentType string) error {
	return m.Called(ctx, key, body, contentType).Error(0)
}

func (m *MockS3Storage) GetObject(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(int64), args.Error(2)
}

func (m *MockS3Storage) HeadObject(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockS3Storage) DeleteObject(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func strPtr(s string) *string { return &s }

func downloadConfig() *config.DownloadConfig {
	return &config.DownloadConfig{
		BaseURL: "http://localhost:8080",
		Secret:  "test-download-secret",
	}
}

func TestResolveFileKey(t *testing.T) {
	report := &model.Report{
		ID:         42,
		Title:      "Gold report",
		MP3FileURL: strPtr("audio/42_1.mp3"),
	}

	t.Run("ключ как есть", func(t *testing.T) {
		key, err := service.ResolveFileKey(report, "mp3")
		require.NoError(t, err)
		assert.Equal(t, "audio/42_1.mp3", key)
	})

	t.Run("легаси полный URL приводится к ключу", func(t *testing.T) {
		legacy := &model.Report{ID: 1, WordFileURL: strPtr("https://cdn.example.com/word/1_a.docx")}
		key, err := service.ResolveFileKey(legacy, "word")
		require.NoError(t, err)
		assert.Equal(t, "word/1_a.docx", key)
	})

	t.Run("неверный тип файла", func(t *testing.T) {
		_, err := service.ResolveFileKey(report, "pdf")
		assert.ErrorIs(t, err, service.ErrInvalidFileType)
	})

	t.Run("файл не привязан", func(t *testing.T) {
		_, err := service.ResolveFileKey(report, "word")
		assert.ErrorIs(t, err, service.ErrFileNotAssociated)
	})
}

func TestIssueDownloadURL_Success(t *testing.T) {
	reportSvc := new(MockReportService)
	storage := new(MockS3Storage)
	cfg := downloadConfig()

	report := &model.Report{ID: 42, Title: "Gold report", MP3FileURL: strPtr("audio/42_1.mp3")}
	reportSvc.On("GetReportByID", mock.Anything, int64(42)).Return(report, nil)
	storage.On("HeadObject", mock.Anything, "audio/42_1.mp3").Return(true, nil)

	svc := service.NewDownloadService(reportSvc, storage, cfg)
	link, err := svc.IssueDownloadURL(context.Background(), 42, "mp3")
	require.NoError(t, err)

	parsed, err := url.Parse(link.DownloadURL)
	require.NoError(t, err)
	assert.Equal(t, "/api/reports/42/file/mp3", parsed.Path)

	// токен в query расшифровывается обратно в ключ файла
	token := parsed.Query().Get("token")
	require.NotEmpty(t, token)

	payload, err := security.DecodeDownloadToken(token, cfg.Secret)
	require.NoError(t, err)
	assert.Equal(t, "audio/42_1.mp3", payload.FileKey)

	// срок действия — примерно час от момента выпуска
	expiresAt, err := time.Parse(time.RFC3339, link.ExpiresAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 10*time.Second)
}

func TestIssueDownloadURL_InvalidFileType(t *testing.T) {
	reportSvc := new(MockReportService)
	storage := new(MockS3Storage)

	svc := service.NewDownloadService(reportSvc, storage, downloadConfig())
	_, err := svc.IssueDownloadURL(context.Background(), 42, "pdf")
	assert.ErrorIs(t, err, service.ErrInvalidFileType)

	// валидация до любого I/O
	reportSvc.AssertNotCalled(t, "GetReportByID")
	storage.AssertNotCalled(t, "HeadObject")
}

func TestIssueDownloadURL_ReportNotFound(t *testing.T) {
	reportSvc := new(MockReportService)
	storage := new(MockS3Storage)

	reportSvc.On("GetReportByID", mock.Anything, int64(7)).Return(nil, repository.ErrReportNotFound)

	svc := service.NewDownloadService(reportSvc, storage, downloadConfig())
	_, err := svc.IssueDownloadURL(context.Background(), 7, "mp3")
	assert.ErrorIs(t, err, repository.ErrReportNotFound)
}

func TestIssueDownloadURL_BlobMissing(t *testing.T) {
	reportSvc := new(MockReportService)
	storage := new(MockS3Storage)

	report := &model.Report{ID: 42, MP3FileURL: strPtr("audio/42_1.mp3")}
	reportSvc.On("GetReportByID", mock.Anything, int64(42)).Return(report, nil)
	storage.On("HeadObject", mock.Anything, "audio/42_1.mp3").Return(false, nil)

	svc := service.NewDownloadService(reportSvc, storage, downloadConfig())
	_, err := svc.IssueDownloadURL(context.Background(), 42, "mp3")
	assert.ErrorIs(t, err, service.ErrObjectNotFound)
}

func TestIssueDownloadURL_MissingSecret(t *testing.T) {
	reportSvc := new(MockReportService)
	storage := new(MockS3Storage)

	report := &model.Report{ID: 42, MP3FileURL: strPtr("audio/42_1.mp3")}
	reportSvc.On("GetReportByID", mock.Anything, int64(42)).Return(report, nil)
	storage.On("HeadObject", mock.Anything, "audio/42_1.mp3").Return(true, nil)

	cfg := &config.DownloadConfig{BaseURL: "http://localhost:8080"}
	svc := service.NewDownloadService(reportSvc, storage, cfg)
	_, err := svc.IssueDownloadURL(context.Background(), 42, "mp3")
	assert.ErrorIs(t, err, security.ErrMissingSecret)
}

func TestRedeemDownload_Success(t *testing.T) {
	reportSvc := new(MockReportService)
	storage := new(MockS3Storage)
	cfg := downloadConfig()

	token, err := security.EncodeDownloadToken("audio/42_1.mp3", time.Now().Add(time.Hour), cfg.Secret)
	require.NoError(t, err)

	content := []byte("mp3-bytes")
	storage.On("GetObject", mock.Anything, "audio/42_1.mp3").
		Return(io.NopCloser(bytes.NewReader(content)), int64(len(content)), nil)

	report := &model.Report{ID: 42, Title: "Gold report", MP3FileURL: strPtr("audio/42_1.mp3")}
	reportSvc.On("GetReportByID", mock.Anything, int64(42)).Return(report, nil)

	svc := service.NewDownloadService(reportSvc, storage, cfg)
	download, err := svc.RedeemDownload(context.Background(), 42, "mp3", token)
	require.NoError(t, err)
	defer download.Body.Close()

	assert.Equal(t, "audio/mpeg", download.ContentType)
	assert.Equal(t, "Gold report_mp3.mp3", download.Filename)
	assert.Equal(t, int64(len(content)), download.ContentLength)

	body, err := io.ReadAll(download.Body)
	require.NoError(t, err)
	assert.Equal(t, content, body)
}

func TestRedeemDownload_EmptyToken(t *testing.T) {
	svc := service.NewDownloadService(new(MockReportService), new(MockS3Storage), downloadConfig())

	for _, token := range []string{"", "   ", "\t\n"} {
		_, err := svc.RedeemDownload(context.Background(), 42, "mp3", token)
		assert.ErrorIs(t, err, service.ErrTokenRequired)
	}
}

func TestRedeemDownload_ExpiredToken(t *testing.T) {
	cfg := downloadConfig()
	token, err := security.EncodeDownloadToken("audio/42_1.mp3", time.Now().Add(-time.Millisecond), cfg.Secret)
	require.NoError(t, err)

	storage := new(MockS3Storage)
	svc := service.NewDownloadService(new(MockReportService), storage, cfg)

	_, err = svc.RedeemDownload(context.Background(), 42, "mp3", token)
	assert.ErrorIs(t, err, security.ErrTokenDenied)
	storage.AssertNotCalled(t, "GetObject")
}

func TestRedeemDownload_BlobDeletedAfterMint(t *testing.T) {
	cfg := downloadConfig()
	token, err := security.EncodeDownloadToken("audio/42_1.mp3", time.Now().Add(time.Hour), cfg.Secret)
	require.NoError(t, err)

	storage := new(MockS3Storage)
	// блоб удалили после выпуска ссылки — токен всё ещё валиден
	storage.On("GetObject", mock.Anything, "audio/42_1.mp3").Return(nil, int64(0), service.ErrObjectNotFound)

	svc := service.NewDownloadService(new(MockReportService), storage, cfg)
	_, err = svc.RedeemDownload(context.Background(), 42, "mp3", token)
	assert.ErrorIs(t, err, service.ErrObjectNotFound)
}

func TestRedeemDownload_FallbackFilename(t *testing.T) {
	cfg := downloadConfig()
	token, err := security.EncodeDownloadToken("audio/42_1.mp3", time.Now().Add(time.Hour), cfg.Secret)
	require.NoError(t, err)

	content := []byte("mp3-bytes")
	storage := new(MockS3Storage)
	storage.On("GetObject", mock.Anything, "audio/42_1.mp3").
		Return(io.NopCloser(bytes.NewReader(content)), int64(len(content)), nil)

	// отчёт уже удалён — скачивание не блокируется, имя собирается из id и типа
	reportSvc := new(MockReportService)
	reportSvc.On("GetReportByID", mock.Anything, int64(42)).Return(nil, errors.New("отчёт не найден"))

	svc := service.NewDownloadService(reportSvc, storage, cfg)
	download, err := svc.RedeemDownload(context.Background(), 42, "mp3", token)
	require.NoError(t, err)
	defer download.Body.Close()

	assert.Equal(t, "report_42_mp3.mp3", download.Filename)
}
