package model

import "io"

// Report : отчёт с опциональными сгенерированными файлами (Word/MP3).
// Ссылки на файлы хранят ключ объекта в S3, а не полный URL
type Report struct {
	ID          int64   `db:"id" json:"id"`
	Title       string  `db:"title" json:"title"`
	Date        string  `db:"date" json:"date"`
	Description *string `db:"description" json:"description"`
	WordFileURL *string `db:"word_file_url" json:"word_file_url"`
	MP3FileURL  *string `db:"mp3_file_url" json:"mp3_file_url"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
	UpdatedAt   string  `db:"updated_at" json:"updated_at"`
}

// FileReference : ссылка на файл отчёта по типу файла
func (r *Report) FileReference(fileType string) *string {
	switch fileType {
	case "word":
		return r.WordFileURL
	case "mp3":
		return r.MP3FileURL
	}
	return nil
}

// DownloadLink : результат выпуска подписанной ссылки на скачивание
type DownloadLink struct {
	DownloadURL string `json:"downloadUrl"`
	ExpiresAt   string `json:"expiresAt"`
}

// FileDownload : содержимое файла для отдачи клиенту
type FileDownload struct {
	Body          io.ReadCloser
	ContentType   string
	Filename      string
	ContentLength int64
}
