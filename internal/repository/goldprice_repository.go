package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"report-web-server/config"
	"report-web-server/internal/model"
)

type GoldPriceRepository struct {
	*config.Database
}

func NewGoldPriceRepository(database *config.Database) *GoldPriceRepository {
	return &GoldPriceRepository{database}
}

// Insert : сохраняем одно наблюдение цены
func (r *GoldPriceRepository) Insert(ctx context.Context, exec sqlx.ExtContext, price *model.GoldPrice) (*model.GoldPrice, error) {
	query := `
		INSERT INTO gold_prices (timestamp, price, change_percentage, change, open, high, low, prev)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, timestamp, price, change_percentage, change, open, high, low, prev, created_at
	`

	var inserted model.GoldPrice
	err := sqlx.GetContext(ctx, exec, &inserted, query,
		price.Timestamp,
		price.Price,
		price.ChangePercentage,
		price.Change,
		price.Open,
		price.High,
		price.Low,
		price.Prev)
	if err != nil {
		return nil, err
	}

	return &inserted, nil
}

// List : последние наблюдения, новые сверху
func (r *GoldPriceRepository) List(ctx context.Context, exec sqlx.ExtContext, limit int) ([]model.GoldPrice, error) {
	query := `
		SELECT id, timestamp, price, change_percentage, change, open, high, low, prev, created_at
		FROM gold_prices
		ORDER BY created_at DESC
		LIMIT $1
	`

	prices := []model.GoldPrice{}
	rows, err := exec.QueryxContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var price model.GoldPrice
		if err := rows.StructScan(&price); err != nil {
			return nil, err
		}
		prices = append(prices, price)
	}

	return prices, nil
}
