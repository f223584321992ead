package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"report-web-server/config"
	"report-web-server/internal/model"
	"report-web-server/internal/ports"
	"report-web-server/internal/security"
	"report-web-server/internal/util"
)

var (
	ErrFileNotAssociated = errors.New("файл этого типа не привязан к отчёту")
	ErrTokenRequired     = errors.New("токен скачивания обязателен, сначала получите ссылку на скачивание")
)

// Срок действия подписанной ссылки
const downloadTokenTTL = time.Hour

type DownloadService struct {
	reportService    ports.ReportService
	storageInterface ports.S3Storage
	cfg              *config.DownloadConfig
}

func NewDownloadService(
	reportService ports.ReportService,
	storageInterface ports.S3Storage,
	cfg *config.DownloadConfig,
) *DownloadService {
	return &DownloadService{
		reportService:    reportService,
		storageInterface: storageInterface,
		cfg:              cfg,
	}
}

// ResolveFileKey : канонический ключ объекта для файла отчёта.
// Сохранённая ссылка — непрозрачный ключ; старые записи с полным URL
// детерминированно приводятся к ключу без ошибки
func ResolveFileKey(report *model.Report, fileType string) (string, error) {
	if !util.ValidateFileType(fileType) {
		return "", ErrInvalidFileType
	}

	fileURL := report.FileReference(fileType)
	if fileURL == nil || *fileURL == "" {
		return "", ErrFileNotAssociated
	}

	fileKey := util.ExtractFileKey(*fileURL)
	if fileKey == "" {
		return "", ErrFileNotAssociated
	}

	return fileKey, nil
}

// IssueDownloadURL : выпускает подписанную ссылку на скачивание файла.
// Токен выпускается только после подтверждения существования объекта
func (s *DownloadService) IssueDownloadURL(ctx context.Context, reportID int64, fileType string) (*model.DownloadLink, error) {
	if !util.ValidateFileType(fileType) {
		return nil, ErrInvalidFileType
	}

	report, err := s.reportService.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	fileKey, err := ResolveFileKey(report, fileType)
	if err != nil {
		return nil, err
	}

	exists, err := s.storageInterface.HeadObject(ctx, fileKey)
	if err != nil {
		return nil, util.LogError("[DownloadService] ошибка проверки объекта в S3", err)
	}
	if !exists {
		return nil, ErrObjectNotFound
	}

	expiresAt := time.Now().Add(downloadTokenTTL)
	token, err := security.EncodeDownloadToken(fileKey, expiresAt, s.cfg.Secret)
	if err != nil {
		return nil, err
	}

	downloadURL := fmt.Sprintf("%s/api/reports/%d/file/%s?token=%s",
		strings.TrimSuffix(s.cfg.BaseURL, "/"),
		reportID,
		fileType,
		url.QueryEscape(token),
	)

	return &model.DownloadLink{
		DownloadURL: downloadURL,
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// RedeemDownload : погашение токена — отдаёт файл по проверенному ключу.
// Отчёт догружается только ради человекочитаемого имени файла: если его
// уже нет, скачивание не блокируется, имя собирается из id и типа
func (s *DownloadService) RedeemDownload(ctx context.Context, reportID int64, fileType string, token string) (*model.FileDownload, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrTokenRequired
	}

	fileKey, err := security.VerifyDownloadToken(token, s.cfg.Secret)
	if err != nil {
		return nil, err
	}

	// валидный токен не гарантирует наличие объекта: блоб могли удалить
	// после выпуска ссылки
	body, size, err := s.storageInterface.GetObject(ctx, fileKey)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("report_%d_%s.%s", reportID, fileType, util.FileExtension(fileType))
	if report, err := s.reportService.GetReportByID(ctx, reportID); err == nil {
		filename = fmt.Sprintf("%s_%s.%s", report.Title, fileType, util.FileExtension(fileType))
	} else {
		log.Printf("[DownloadService] отчёт %d не загружен для имени файла: %v", reportID, err)
	}

	return &model.FileDownload{
		Body:          body,
		ContentType:   util.GetFileContentType(fileType),
		Filename:      filename,
		ContentLength: size,
	}, nil
}
