package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Freeeeeet/availability_api/internal/model"
)

const (
	keyPrefix  = "availability:"
	versionKey = keyPrefix + "version"
)

// AvailabilityCache кеширует результат поиска доступных слотов в Redis.
// Любая запись в слоты увеличивает версию, и старые ключи просто истекают по TTL.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *AvailabilityCache {
	return &AvailabilityCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Version текущая версия кеша; false если Redis недоступен
func (c *AvailabilityCache) Version(ctx context.Context) (int64, bool) {
	version, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Warn("Failed to read availability version", zap.Error(err))
		return 0, false
	}
	return version, true
}

// Get возвращает результат, сохранённый под версией; ошибки Redis считаются промахом
func (c *AvailabilityCache) Get(ctx context.Context, version int64, filter model.AvailabilityFilter) ([]*model.Session, bool) {
	key := FilterKey(version, filter)

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Failed to read availability cache", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	var sessions []*model.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		c.logger.Warn("Corrupt availability cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	return sessions, true
}

// Set сохраняет результат под версией, прочитанной до запроса к БД.
// После Invalidate запись попадает в ключ, который уже никто не читает.
func (c *AvailabilityCache) Set(ctx context.Context, version int64, filter model.AvailabilityFilter, sessions []*model.Session) {
	key := FilterKey(version, filter)

	data, err := json.Marshal(sessions)
	if err != nil {
		c.logger.Warn("Failed to encode availability", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to write availability cache", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate сбрасывает все сохранённые результаты
func (c *AvailabilityCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		c.logger.Warn("Failed to invalidate availability cache", zap.Error(err))
	}
}

// FilterKey строит ключ кеша для версии и фильтра
func FilterKey(version int64, filter model.AvailabilityFilter) string {
	professional := "all"
	if filter.ProfessionalID != nil {
		professional = strconv.FormatInt(*filter.ProfessionalID, 10)
	}

	window := "any"
	if filter.Range.IsSet() {
		window = fmt.Sprintf("%d-%d", filter.Range.From.Unix(), filter.Range.To.Unix())
	}

	return fmt.Sprintf("%sv%d:%s:%s", keyPrefix, version, professional, window)
}
