package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"report-web-server/internal/model/requestresponse"
	"report-web-server/internal/ports"
	"report-web-server/internal/util"
)

type GoldPriceHandler struct {
	ports.GoldPriceService
}

func NewGoldPriceHandler(goldPriceService ports.GoldPriceService) *GoldPriceHandler {
	return &GoldPriceHandler{goldPriceService}
}

// FetchGoldPrice godoc
// @Summary Запрос текущей цены золота и сохранение в БД
// @Tags Gold Price
// @Produce json
// @Success 200 {object} requestresponse.GoldPriceFetchResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/gold-prices/fetch [get]
func (h *GoldPriceHandler) FetchGoldPrice(w http.ResponseWriter, r *http.Request) {
	price, err := h.GoldPriceService.FetchAndStore(r.Context())
	if err != nil {
		log.Println(err)
		util.HandleError(w, "не удалось получить или сохранить цену золота", http.StatusInternalServerError)
		return
	}

	resp := requestresponse.GoldPriceFetchResponse{
		Success: true,
		Message: "цена золота получена и сохранена",
		Data:    price,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ListGoldPrices godoc
// @Summary Список сохранённых цен золота
// @Tags Gold Price
// @Produce json
// @Param limit query int false "Количество записей" default(10) minimum(1) maximum(100)
// @Success 200 {object} requestresponse.GoldPriceListResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/gold-prices [get]
func (h *GoldPriceHandler) ListGoldPrices(w http.ResponseWriter, r *http.Request) {
	limit := 10
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

	prices, err := h.GoldPriceService.ListPrices(r.Context(), limit)
	if err != nil {
		log.Println(err)
		util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	resp := requestresponse.GoldPriceListResponse{
		Success: true,
		Data:    prices,
		Count:   len(prices),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
