package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"report-web-server/config"
	"report-web-server/internal/model"
	"report-web-server/internal/ports"
	"report-web-server/internal/util"
)

// goldAPIResponse : формат ответа внешнего API котировок (XAU за грамм)
type goldAPIResponse struct {
	Status string `json:"status"`
	Data   struct {
		Timestamp   int64 `json:"timestamp"`
		MetalPrices struct {
			XAU struct {
				Open             float64 `json:"open"`
				High             float64 `json:"high"`
				Low              float64 `json:"low"`
				Prev             float64 `json:"prev"`
				Change           float64 `json:"change"`
				ChangePercentage float64 `json:"change_percentage"`
				Price            float64 `json:"price"`
			} `json:"XAU"`
		} `json:"metal_prices"`
	} `json:"data"`
}

type GoldPriceService struct {
	goldPriceRepository ports.GoldPriceRepository
	db                  *config.Database
	mailSender          ports.MailSender
	cfg                 *config.GoldAPIConfig
	client              *http.Client
}

func NewGoldPriceService(
	goldPriceRepository ports.GoldPriceRepository,
	db *config.Database,
	mailSender ports.MailSender,
	cfg *config.GoldAPIConfig,
) *GoldPriceService {
	return &GoldPriceService{
		goldPriceRepository: goldPriceRepository,
		db:                  db,
		mailSender:          mailSender,
		cfg:                 cfg,
		client:              &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchAndStore : запрашивает текущую цену у внешнего API и сохраняет в БД.
// Уведомление по почте отправляется в фоне и не влияет на результат
func (s *GoldPriceService) FetchAndStore(ctx context.Context) (*model.GoldPrice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.URL, nil)
	if err != nil {
		return nil, util.LogError("[GoldPriceService] ошибка создания запроса", err)
	}
	req.Header.Set("x-api-key", s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, util.LogError("[GoldPriceService] ошибка запроса к API котировок", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("[GoldPriceService] API котировок вернул статус %d", resp.StatusCode)
	}

	var apiData goldAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiData); err != nil {
		return nil, util.LogError("[GoldPriceService] ошибка разбора ответа API", err)
	}

	xau := apiData.Data.MetalPrices.XAU
	price := &model.GoldPrice{
		Timestamp:        apiData.Data.Timestamp,
		Price:            xau.Price,
		ChangePercentage: xau.ChangePercentage,
		Change:           xau.Change,
		Open:             xau.Open,
		High:             xau.High,
		Low:              xau.Low,
		Prev:             xau.Prev,
	}

	inserted, err := s.goldPriceRepository.Insert(ctx, s.db, price)
	if err != nil {
		return nil, util.LogError("[GoldPriceService] не удалось сохранить цену в БД", err)
	}

	log.Printf("[GoldPriceService] цена золота %.2f сохранена (id=%d)", inserted.Price, inserted.ID)

	if s.cfg.NotifyTo != "" {
		go s.notify(inserted)
	}

	return inserted, nil
}

// notify : fire-and-forget уведомление, ошибки только в лог
func (s *GoldPriceService) notify(price *model.GoldPrice) {
	details := map[string]string{
		"Цена":      fmt.Sprintf("%.2f CNY/г", price.Price),
		"Изменение": fmt.Sprintf("%.2f (%.2f%%)", price.Change, price.ChangePercentage),
	}
	err := s.mailSender.SendNotificationEmail(
		[]string{s.cfg.NotifyTo},
		"Обновление цены золота",
		fmt.Sprintf("Получена новая котировка на %s", time.UnixMilli(price.Timestamp).Format("2006-01-02 15:04")),
		details,
	)
	if err != nil {
		log.Printf("[GoldPriceService] ошибка отправки уведомления: %v", err)
	}
}

// ListPrices : последние сохранённые котировки
func (s *GoldPriceService) ListPrices(ctx context.Context, limit int) ([]model.GoldPrice, error) {
	prices, err := s.goldPriceRepository.List(ctx, s.db, limit)
	if err != nil {
		return nil, util.LogError("[GoldPriceService] не удалось получить список цен", err)
	}
	return prices, nil
}
