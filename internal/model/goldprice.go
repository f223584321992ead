package model

// GoldPrice : одно наблюдение цены золота из внешнего API
type GoldPrice struct {
	ID               int64   `db:"id" json:"id"`
	Timestamp        int64   `db:"timestamp" json:"timestamp"`
	Price            float64 `db:"price" json:"price"`
	ChangePercentage float64 `db:"change_percentage" json:"change_percentage"`
	Change           float64 `db:"change" json:"change"`
	Open             float64 `db:"open" json:"open"`
	High             float64 `db:"high" json:"high"`
	Low              float64 `db:"low" json:"low"`
	Prev             float64 `db:"prev" json:"prev"`
	CreatedAt        string  `db:"created_at" json:"created_at"`
}
