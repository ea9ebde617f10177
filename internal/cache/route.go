package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_map/internal/models"
)

const routeKeyPrefix = "route"

// RouteCache хранит построенные маршруты в Redis с ограниченным временем жизни
type RouteCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewRouteCache(client *redis.Client, ttl time.Duration) *RouteCache {
	return &RouteCache{
		redisClient: client,
		ttl:         ttl,
	}
}

// Get возвращает маршрут из кеша; при промахе - nil без ошибки
func (c *RouteCache) Get(ctx context.Context, start, end models.Position) (*models.RouteResult, error) {
	data, err := c.redisClient.Get(ctx, routeKey(start, end)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get route from cache: %w", err)
	}

	var route models.RouteResult
	if err := json.Unmarshal(data, &route); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached route: %w", err)
	}
	return &route, nil
}

// Set сохраняет маршрут в кеш
func (c *RouteCache) Set(ctx context.Context, start, end models.Position, route *models.RouteResult) error {
	data, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("failed to marshal route for cache: %w", err)
	}

	if err := c.redisClient.Set(ctx, routeKey(start, end), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set route cache: %w", err)
	}
	return nil
}

func routeKey(start, end models.Position) string {
	return fmt.Sprintf("%s:%s,%s:%s,%s", routeKeyPrefix,
		coord(start.Lon()), coord(start.Lat()), coord(end.Lon()), coord(end.Lat()))
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
