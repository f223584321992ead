package requestresponse

import "report-web-server/internal/model"

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// CreateReportRequest : тело создания/обновления отчёта.
// Если ID задан — обновляем существующий отчёт, иначе создаём новый
type CreateReportRequest struct {
	ID          *int64  `json:"id,omitempty"`
	Title       string  `json:"title"`
	Date        string  `json:"date"`
	Description *string `json:"description,omitempty"`
	WordFileURL *string `json:"word_file_url,omitempty"`
	MP3FileURL  *string `json:"mp3_file_url,omitempty"`
}

type ReportResponse struct {
	Success bool          `json:"success"`
	Report  *model.Report `json:"report"`
}

type ListReportsResponse struct {
	Success    bool           `json:"success"`
	Reports    []model.Report `json:"reports"`
	Pagination Pagination     `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type UploadFileResponse struct {
	Success  bool   `json:"success"`
	FileURL  string `json:"file_url"`
	FileType string `json:"file_type"`
}

type DownloadURLResponse struct {
	Success     bool   `json:"success"`
	DownloadURL string `json:"downloadUrl"`
	ExpiresAt   string `json:"expiresAt"`
}
