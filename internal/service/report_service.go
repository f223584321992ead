package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"report-web-server/config"
	"report-web-server/internal/model"
	"report-web-server/internal/model/requestresponse"
	"report-web-server/internal/ports"
	"report-web-server/internal/util"
)

var (
	ErrTitleDateRequired = errors.New("title и date обязательны")
	ErrInvalidFileType   = errors.New("неверный тип файла, допустимы 'word' и 'mp3'")
)

type ReportService struct {
	reportRepository ports.ReportRepository
	cacheRepository  ports.CacheRepository
	storageInterface ports.S3Storage
}

func NewReportService(
	reportRepository ports.ReportRepository,
	cacheRepository ports.CacheRepository,
	storageInterface ports.S3Storage,
) *ReportService {
	return &ReportService{
		reportRepository: reportRepository,
		cacheRepository:  cacheRepository,
		storageInterface: storageInterface,
	}
}

// CreateOrUpdateReport : единый контракт создания отчёта — тело с id
// обновляет существующую запись, тело без id создаёт новую
func (s *ReportService) CreateOrUpdateReport(ctx context.Context, req *requestresponse.CreateReportRequest) (*model.Report, error) {
	if req.Title == "" || req.Date == "" {
		return nil, ErrTitleDateRequired
	}

	db, ok := ctx.Value("db").(*config.Database)
	if ok == false {
		return nil, fmt.Errorf("[ReportService] database connection не найден в context")
	}

	report := &model.Report{
		Title:       req.Title,
		Date:        req.Date,
		Description: req.Description,
		WordFileURL: req.WordFileURL,
		MP3FileURL:  req.MP3FileURL,
	}

	if req.ID == nil {
		created, err := s.reportRepository.Create(ctx, db, report)
		if err != nil {
			return nil, util.LogError("[ReportService] не удалось сохранить отчёт в БД", err)
		}
		log.Printf("[ReportService] отчёт %d успешно создан", created.ID)
		return created, nil
	}

	report.ID = *req.ID
	updated, err := s.reportRepository.Update(ctx, db, report)
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepository.DeleteReport(ctx, updated.ID); err != nil {
		log.Printf("[ReportService] ошибка удаления отчёта из кэша: %v", err)
	}

	log.Printf("[ReportService] отчёт %d успешно обновлён", updated.ID)
	return updated, nil
}

// GetReportByID : возвращает отчёт, сперва из кэша, затем из БД
func (s *ReportService) GetReportByID(ctx context.Context, reportID int64) (*model.Report, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if ok == false {
		return nil, fmt.Errorf("[ReportService] database connection не найден в context")
	}

	report, err := s.cacheRepository.GetReport(ctx, reportID)
	if err != nil {
		log.Printf("[ReportService] ошибка кэширования: %v", err)
	}
	if report != nil {
		return report, nil
	}

	report, err = s.reportRepository.GetByID(ctx, db, reportID)
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepository.SetReport(ctx, report); err != nil {
		log.Printf("[ReportService] ошибка кэширования отчёта: %v", err)
	}

	return report, nil
}

// ListReports : страница отчётов с фильтром по дате
func (s *ReportService) ListReports(ctx context.Context, dateFrom, dateTo string, page, limit int) ([]model.Report, int, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if ok == false {
		return nil, 0, fmt.Errorf("[ReportService] database connection не найден в context")
	}

	reports, total, err := s.reportRepository.List(ctx, db, dateFrom, dateTo, limit, page*limit)
	if err != nil {
		return nil, 0, util.LogError("[ReportService] не удалось получить список отчётов", err)
	}

	return reports, total, nil
}

// DeleteReport : удаляет отчёт вместе с файлами в хранилище.
// Удаление блобов — best-effort: ошибка хранилища логируется и не мешает
// удалению записи из БД, осиротевшие объекты — принятый режим отказа
func (s *ReportService) DeleteReport(ctx context.Context, reportID int64) (*model.Report, error) {
	exec, rollback, commit, err := s.reportRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[ReportService] ошибка начала транзакции", err)
	}
	defer rollback()

	report, err := s.reportRepository.GetByID(ctx, exec, reportID)
	if err != nil {
		return nil, err
	}

	for _, fileURL := range []*string{report.WordFileURL, report.MP3FileURL} {
		if fileURL == nil || *fileURL == "" {
			continue
		}
		if err := s.storageInterface.DeleteObject(ctx, util.ExtractFileKey(*fileURL)); err != nil {
			log.Printf("[ReportService] ошибка удаления файла %s из S3: %v", *fileURL, err)
		}
	}

	deleted, err := s.reportRepository.Delete(ctx, exec, reportID)
	if err != nil {
		return nil, util.LogError("[ReportService] ошибка удаления отчёта из БД", err)
	}

	if err := commit(); err != nil {
		return nil, fmt.Errorf("[ReportService] ошибка коммита транзакции: %w", err)
	}

	if err := s.cacheRepository.DeleteReport(ctx, reportID); err != nil {
		log.Printf("[ReportService] ошибка удаления из кэша: %v", err)
	}

	log.Printf("[ReportService] отчёт %d успешно удален", reportID)
	return deleted, nil
}

// UploadReportFile : сохраняет файл отчёта в S3 и записывает его ключ в БД.
// Блоб пишется до строки БД: если обновление записи упадёт, в хранилище
// останется осиротевший объект — несогласованность принята и не скрывается
func (s *ReportService) UploadReportFile(ctx context.Context, reportID int64, fileType string, body []byte) (string, error) {
	if !util.ValidateFileType(fileType) {
		return "", ErrInvalidFileType
	}

	db, ok := ctx.Value("db").(*config.Database)
	if ok == false {
		return "", fmt.Errorf("[ReportService] database connection не найден в context")
	}

	if _, err := s.reportRepository.GetByID(ctx, db, reportID); err != nil {
		return "", err
	}

	fileKey := util.GenerateFileKey(reportID, fileType)

	if err := s.storageInterface.PutObject(ctx, fileKey, body, util.GetFileContentType(fileType)); err != nil {
		return "", util.LogError("[ReportService] не удалось загрузить файл в S3", err)
	}

	if err := s.reportRepository.SetFileURL(ctx, db, reportID, fileType, fileKey); err != nil {
		return "", util.LogError("[ReportService] не удалось сохранить ключ файла в БД", err)
	}

	if err := s.cacheRepository.DeleteReport(ctx, reportID); err != nil {
		log.Printf("[ReportService] ошибка удаления отчёта из кэша: %v", err)
	}

	log.Printf("[ReportService] файл %s загружен для отчёта %d", fileKey, reportID)
	return fileKey, nil
}
