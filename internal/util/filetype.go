package util

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const (
	FileTypeWord = "word"
	FileTypeMP3  = "mp3"
)

// ValidateFileType : допустимы ровно два типа файлов отчёта
func ValidateFileType(fileType string) bool {
	return fileType == FileTypeWord || fileType == FileTypeMP3
}

// GetFileContentType : MIME-тип определяется только типом файла,
// а не заявленным типом при загрузке
func GetFileContentType(fileType string) string {
	switch fileType {
	case FileTypeWord:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FileTypeMP3:
		return "audio/mpeg"
	default:
		return "application/octet-stream"
	}
}

// FileExtension : расширение для имени скачиваемого файла
func FileExtension(fileType string) string {
	if fileType == FileTypeWord {
		return "docx"
	}
	return "mp3"
}

// GenerateFileKey : уникальный ключ объекта в хранилище для файла отчёта
func GenerateFileKey(reportID int64, fileType string) string {
	prefix := "audio"
	if fileType == FileTypeWord {
		prefix = "word"
	}
	return fmt.Sprintf("%s/%d_%s.%s", prefix, reportID, uuid.New().String()[:8], FileExtension(fileType))
}

// ExtractFileKey : приводит сохранённую ссылку к ключу объекта.
// В новых записях хранится сам ключ, в старых мог остаться полный URL —
// тогда отбрасываем схему и хост и оставляем путь
func ExtractFileKey(fileURI string) string {
	if !strings.Contains(fileURI, "://") {
		return strings.TrimPrefix(fileURI, "/")
	}

	parsed, err := url.Parse(fileURI)
	if err != nil {
		return strings.TrimPrefix(fileURI, "/")
	}

	return strings.TrimPrefix(parsed.Path, "/")
}
