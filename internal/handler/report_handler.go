package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"report-web-server/internal/model/requestresponse"
	"report-web-server/internal/ports"
	"report-web-server/internal/repository"
	"report-web-server/internal/security"
	"report-web-server/internal/service"
	"report-web-server/internal/util"
)

type ReportHandler struct {
	ports.ReportService
	downloadService ports.DownloadService
}

func NewReportHandler(reportService ports.ReportService, downloadService ports.DownloadService) *ReportHandler {
	return &ReportHandler{reportService, downloadService}
}

func reportIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "reportId"), 10, 64)
}

// CreateReport godoc
// @Summary Создание или обновление отчёта
// @Description Тело с id обновляет существующий отчёт, тело без id создаёт новый.
// @Tags Reports
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateReportRequest true "Данные отчёта"
// @Success 200 {object} requestresponse.ReportResponse
// @Failure 400 {object} requestresponse.ErrorResponse "title и date обязательны"
// @Failure 404 {object} requestresponse.ErrorResponse "Отчёт для обновления не найден"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/reports [post]
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req requestresponse.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	report, err := h.ReportService.CreateOrUpdateReport(ctx, &req)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, service.ErrTitleDateRequired):
			util.HandleError(w, "title и date обязательны", http.StatusBadRequest)
		case errors.Is(err, repository.ErrReportNotFound):
			util.HandleError(w, "отчёт не найден", http.StatusNotFound)
		default:
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.ReportResponse{Success: true, Report: report})
}

// GetReport godoc
// @Summary Получение отчёта по ID
// @Tags Reports
// @Produce json
// @Param reportId path int true "ID отчёта"
// @Success 200 {object} requestresponse.ReportResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/reports/{reportId} [get]
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	reportID, err := reportIDParam(r)
	if err != nil {
		util.HandleError(w, "неверный ID отчёта", http.StatusBadRequest)
		return
	}

	report, err := h.ReportService.GetReportByID(r.Context(), reportID)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, repository.ErrReportNotFound):
			util.HandleError(w, "отчёт не найден", http.StatusNotFound)
		default:
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.ReportResponse{Success: true, Report: report})
}

// ListReports godoc
// @Summary Список отчётов
// @Description Возвращает страницу отчётов с фильтром по дате.
// @Tags Reports
// @Produce json
// @Param page query int false "Номер страницы (с нуля)" default(0)
// @Param limit query int false "Размер страницы" default(20) minimum(1) maximum(100)
// @Param date_from query string false "Фильтр: дата с (ISO)"
// @Param date_to query string false "Фильтр: дата по (ISO)"
// @Success 200 {object} requestresponse.ListReportsResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/reports [get]
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	page := 0
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		parsed, err := strconv.Atoi(pageStr)
		if err != nil || parsed < 0 {
			util.HandleError(w, "неверное значение page", http.StatusBadRequest)
			return
		}
		page = parsed
	}

	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			util.HandleError(w, "неверное значение limit", http.StatusBadRequest)
			return
		}
		if parsed > 100 {
			limit = 100
		} else {
			limit = parsed
		}
	}

	dateFrom := r.URL.Query().Get("date_from")
	dateTo := r.URL.Query().Get("date_to")

	reports, total, err := h.ReportService.ListReports(r.Context(), dateFrom, dateTo, page, limit)
	if err != nil {
		log.Println(err)
		util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	totalPages := (total + limit - 1) / limit

	resp := requestresponse.ListReportsResponse{
		Success: true,
		Reports: reports,
		Pagination: requestresponse.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// DeleteReport godoc
// @Summary Удаление отчёта
// @Description Удаляет отчёт и его файлы из хранилища. Ошибки удаления файлов не мешают удалению записи.
// @Tags Reports
// @Produce json
// @Param reportId path int true "ID отчёта"
// @Success 200 {object} requestresponse.ReportResponse "Удалённый отчёт для подтверждения"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/reports/{reportId} [delete]
func (h *ReportHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	reportID, err := reportIDParam(r)
	if err != nil {
		util.HandleError(w, "неверный ID отчёта", http.StatusBadRequest)
		return
	}

	deleted, err := h.ReportService.DeleteReport(r.Context(), reportID)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, repository.ErrReportNotFound):
			util.HandleError(w, "отчёт не найден", http.StatusNotFound)
		default:
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requestresponse.ReportResponse{Success: true, Report: deleted})
}

// UploadReportFile godoc
// @Summary Загрузка файла отчёта (Word или MP3)
// @Tags Reports
// @Accept multipart/form-data
// @Produce json
// @Param reportId path int true "ID отчёта"
// @Param file formData file true "Файл отчёта"
// @Param fileType formData string true "Тип файла: word или mp3"
// @Success 200 {object} requestresponse.UploadFileResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/reports/{reportId}/upload [post]
func (h *ReportHandler) UploadReportFile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	reportID, err := reportIDParam(r)
	if err != nil {
		util.HandleError(w, "неверный ID отчёта", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	fileType := r.FormValue("fileType")
	if !util.ValidateFileType(fileType) {
		util.HandleError(w, "неверный тип файла, допустимы 'word' и 'mp3'", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		util.HandleError(w, "файл не найден в запросе", http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		util.HandleError(w, "ошибка чтения файла", http.StatusInternalServerError)
		return
	}

	fileKey, err := h.ReportService.UploadReportFile(ctx, reportID, fileType, fileBytes)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, service.ErrInvalidFileType):
			util.HandleError(w, "неверный тип файла, допустимы 'word' и 'mp3'", http.StatusBadRequest)
		case errors.Is(err, repository.ErrReportNotFound):
			util.HandleError(w, "отчёт не найден", http.StatusNotFound)
		default:
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	resp := requestresponse.UploadFileResponse{
		Success:  true,
		FileURL:  fileKey,
		FileType: fileType,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetDownloadURL godoc
// @Summary Выпуск подписанной ссылки на скачивание файла отчёта
// @Description Ссылка действительна один час и содержит токен-capability на конкретный файл.
// @Tags Reports
// @Produce json
// @Param reportId path int true "ID отчёта"
// @Param fileType path string true "Тип файла: word или mp3"
// @Success 200 {object} requestresponse.DownloadURLResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Неверный тип файла"
// @Failure 404 {object} requestresponse.ErrorResponse "Отчёт, файл или объект в хранилище не найден"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/reports/{reportId}/download/{fileType} [get]
func (h *ReportHandler) GetDownloadURL(w http.ResponseWriter, r *http.Request) {
	reportID, err := reportIDParam(r)
	if err != nil {
		util.HandleError(w, "неверный ID отчёта", http.StatusBadRequest)
		return
	}
	fileType := chi.URLParam(r, "fileType")

	link, err := h.downloadService.IssueDownloadURL(r.Context(), reportID, fileType)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, service.ErrInvalidFileType):
			util.HandleError(w, "неверный тип файла, допустимы 'word' и 'mp3'", http.StatusBadRequest)
		case errors.Is(err, repository.ErrReportNotFound):
			util.HandleError(w, "отчёт не найден", http.StatusNotFound)
		case errors.Is(err, service.ErrFileNotAssociated):
			util.HandleError(w, fmt.Sprintf("файл %s для этого отчёта не найден", fileType), http.StatusNotFound)
		case errors.Is(err, service.ErrObjectNotFound):
			util.HandleError(w, "файл не найден в хранилище", http.StatusNotFound)
		default:
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	resp := requestresponse.DownloadURLResponse{
		Success:     true,
		DownloadURL: link.DownloadURL,
		ExpiresAt:   link.ExpiresAt,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// DirectDownload godoc
// @Summary Прямое скачивание файла по токену
// @Description Отдаёт файл, если токен из query-параметра действителен. Неверная подпись и истёкший срок неразличимы для клиента.
// @Tags Reports
// @Produce octet-stream
// @Param reportId path int true "ID отчёта"
// @Param fileType path string true "Тип файла: word или mp3"
// @Param token query string true "Токен скачивания"
// @Success 200 {file} binary
// @Failure 400 {object} requestresponse.ErrorResponse "Токен отсутствует, недействителен или просрочен"
// @Failure 404 {object} requestresponse.ErrorResponse "Файл не найден в хранилище"
// @Router /api/reports/{reportId}/file/{fileType} [get]
func (h *ReportHandler) DirectDownload(w http.ResponseWriter, r *http.Request) {
	reportID, err := reportIDParam(r)
	if err != nil {
		util.HandleError(w, "неверный ID отчёта", http.StatusBadRequest)
		return
	}
	fileType := chi.URLParam(r, "fileType")
	token := r.URL.Query().Get("token")

	download, err := h.downloadService.RedeemDownload(r.Context(), reportID, fileType, token)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, service.ErrTokenRequired):
			util.HandleError(w, "токен скачивания обязателен, сначала получите ссылку на скачивание", http.StatusBadRequest)
		case errors.Is(err, security.ErrTokenDenied):
			// неверная подпись и истёкший срок — один и тот же ответ
			util.HandleError(w, "токен недействителен или просрочен", http.StatusBadRequest)
		case errors.Is(err, service.ErrObjectNotFound):
			util.HandleError(w, "файл не найден в хранилище", http.StatusNotFound)
		default:
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}
	defer download.Body.Close()

	w.Header().Set("Content-Type", download.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Filename))
	w.Header().Set("Cache-Control", "private, no-cache")
	if download.ContentLength >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(download.ContentLength, 10))
	}

	if _, err := io.Copy(w, download.Body); err != nil {
		log.Printf("[ReportHandler] ошибка отдачи файла %s: %v", download.Filename, err)
	}
}
