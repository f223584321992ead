package ports

import (
	"context"

	"github.com/jmoiron/sqlx"

	"report-web-server/internal/model"
)

// GoldPriceRepository : SQL слой котировок золота
type GoldPriceRepository interface {
	Insert(ctx context.Context, exec sqlx.ExtContext, price *model.GoldPrice) (*model.GoldPrice, error)
	List(ctx context.Context, exec sqlx.ExtContext, limit int) ([]model.GoldPrice, error)
}

type GoldPriceService interface {
	FetchAndStore(ctx context.Context) (*model.GoldPrice, error)
	ListPrices(ctx context.Context, limit int) ([]model.GoldPrice, error)
}
