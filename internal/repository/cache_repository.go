package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"presentation-web-server/config"
	"presentation-web-server/internal/model"
	"presentation-web-server/internal/util"

	"github.com/redis/go-redis/v9"
)

// CacheRepository : короткоживущий кэш снапшотов сессии по join-коду.
// Обслуживает путь опроса зрителей: TTL порядка интервала опроса,
// инвалидация при каждой мутации сессии
type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetSnapshot(ctx context.Context, joinCode string, snapshot *model.SessionSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return util.LogError("ошибка сериализации снапшота", err)
	}

	cmd := r.client.Client.Set(ctx, r.key(joinCode), data, r.ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения в Redis", err)
	}

	return nil
}

func (r *CacheRepository) GetSnapshot(ctx context.Context, joinCode string) (*model.SessionSnapshot, error) {
	val, err := r.client.Client.Get(ctx, r.key(joinCode)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения снапшота из Redis", err)
	}

	var snapshot model.SessionSnapshot
	if err := json.Unmarshal([]byte(val), &snapshot); err != nil {
		return nil, util.LogError("ошибка десериализации снапшота из кэша", err)
	}
	return &snapshot, nil
}

func (r *CacheRepository) DeleteSnapshot(ctx context.Context, joinCode string) error {
	if err := r.client.Client.Del(ctx, r.key(joinCode)).Err(); err != nil {
		return util.LogError("ошибка удаления снапшота из Redis", err)
	}
	return nil
}

func (r *CacheRepository) key(joinCode string) string {
	return fmt.Sprintf("session:code:%s", joinCode)
}
