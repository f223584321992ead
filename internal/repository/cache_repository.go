package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"report-web-server/config"
	"report-web-server/internal/model"
	"report-web-server/internal/util"
)

type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetReport(ctx context.Context, report *model.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return util.LogError("ошибка сериализации отчёта", err)
	}

	cmd := r.client.Client.Set(ctx, r.key(report.ID), data, r.ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения в Redis", err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}

	return nil
}

func (r *CacheRepository) GetReport(ctx context.Context, reportID int64) (*model.Report, error) {
	val, err := r.client.Client.Get(ctx, r.key(reportID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения отчёта из Redis", err)
	}

	var report model.Report
	if err := json.Unmarshal([]byte(val), &report); err != nil {
		return nil, util.LogError("ошибка десериализации отчёта из кэша", err)
	}
	return &report, nil
}

func (r *CacheRepository) DeleteReport(ctx context.Context, reportID int64) error {
	if err := r.client.Client.Del(ctx, r.key(reportID)).Err(); err != nil {
		return util.LogError("ошибка удаления отчёта из Redis", err)
	}
	return nil
}

func (r *CacheRepository) key(reportID int64) string {
	return fmt.Sprintf("report:%d", reportID)
}
