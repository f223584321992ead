package requestresponse

import "report-web-server/internal/model"

type GoldPriceFetchResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    *model.GoldPrice `json:"data,omitempty"`
}

type GoldPriceListResponse struct {
	Success bool              `json:"success"`
	Data    []model.GoldPrice `json:"data"`
	Count   int               `json:"count"`
}
