package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"report-web-server/config"
	"report-web-server/internal/model"
	"report-web-server/internal/util"
)

var ErrReportNotFound = errors.New("отчёт не найден")

type ReportRepository struct {
	*config.Database
}

func NewReportRepository(database *config.Database) *ReportRepository {
	return &ReportRepository{database}
}

// Create : сохраняем новый отчёт, id и таймстемпы назначает БД
func (r *ReportRepository) Create(ctx context.Context, exec sqlx.ExtContext, report *model.Report) (*model.Report, error) {
	query := `
		INSERT INTO reports (title, date, description, word_file_url, mp3_file_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, date, description, word_file_url, mp3_file_url, created_at, updated_at
	`

	var created model.Report
	err := sqlx.GetContext(ctx, exec, &created, query,
		report.Title,
		report.Date,
		report.Description,
		report.WordFileURL,
		report.MP3FileURL)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// Update : обновляем существующий отчёт по id
func (r *ReportRepository) Update(ctx context.Context, exec sqlx.ExtContext, report *model.Report) (*model.Report, error) {
	query := `
		UPDATE reports
		SET title = $2,
		    date = $3,
		    description = COALESCE($4, description),
		    word_file_url = COALESCE($5, word_file_url),
		    mp3_file_url = COALESCE($6, mp3_file_url),
		    updated_at = to_char(now() AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS"Z"')
		WHERE id = $1
		RETURNING id, title, date, description, word_file_url, mp3_file_url, created_at, updated_at
	`

	var updated model.Report
	err := sqlx.GetContext(ctx, exec, &updated, query,
		report.ID,
		report.Title,
		report.Date,
		report.Description,
		report.WordFileURL,
		report.MP3FileURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// GetByID : возвращаем отчёт по первичному ключу
func (r *ReportRepository) GetByID(ctx context.Context, exec sqlx.ExtContext, reportID int64) (*model.Report, error) {
	query := `
		SELECT id, title, date, description, word_file_url, mp3_file_url, created_at, updated_at
		FROM reports
		WHERE id = $1
	`

	var report model.Report
	err := sqlx.GetContext(ctx, exec, &report, query, reportID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}

	return &report, nil
}

// List : страница отчётов с фильтром по дате, новые сверху
func (r *ReportRepository) List(ctx context.Context, exec sqlx.ExtContext, dateFrom, dateTo string, limit, offset int) ([]model.Report, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}

	if dateFrom != "" {
		args = append(args, dateFrom)
		where += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if dateTo != "" {
		args = append(args, dateTo)
		where += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	var total int
	if err := sqlx.GetContext(ctx, exec, &total, "SELECT COUNT(*) FROM reports"+where, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT id, title, date, description, word_file_url, mp3_file_url, created_at, updated_at
		FROM reports
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	reports := []model.Report{}
	rows, err := exec.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var report model.Report
		if err := rows.StructScan(&report); err != nil {
			return nil, 0, err
		}
		reports = append(reports, report)
	}

	return reports, total, nil
}

// Delete : удаляем отчёт и возвращаем удалённую строку для подтверждения
func (r *ReportRepository) Delete(ctx context.Context, exec sqlx.ExtContext, reportID int64) (*model.Report, error) {
	query := `
		DELETE FROM reports
		WHERE id = $1
		RETURNING id, title, date, description, word_file_url, mp3_file_url, created_at, updated_at
	`

	var deleted model.Report
	err := sqlx.GetContext(ctx, exec, &deleted, query, reportID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}

	return &deleted, nil
}

// SetFileURL : записывает ключ загруженного файла в соответствующую колонку
func (r *ReportRepository) SetFileURL(ctx context.Context, exec sqlx.ExtContext, reportID int64, fileType string, fileKey string) error {
	column := "mp3_file_url"
	if fileType == util.FileTypeWord {
		column = "word_file_url"
	}

	query := fmt.Sprintf(`UPDATE reports SET %s = $2, updated_at = to_char(now() AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS"Z"') WHERE id = $1`, column)

	result, err := exec.ExecContext(ctx, query, reportID, fileKey)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReportNotFound
	}

	return nil
}

func (r *ReportRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}
