package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_map/internal/models"
)

const (
	webhookQueueKey = "timeline_notifications"
)

// TimelineNotification - уведомление о новом событии в ленте инцидента
type TimelineNotification struct {
	EmergencyID string               `json:"emergency_id"`
	Event       models.TimelineEvent `json:"event"`
	Timestamp   time.Time            `json:"timestamp"`
}

// WebhookPublisher - интерфейс для публикации вебхуков
type WebhookPublisher interface {
	Publish(ctx context.Context, notification TimelineNotification) error
}

// RedisWebhookPublisher - реализация WebhookPublisher, использующая Redis
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

// NewRedisWebhookPublisher создает новый RedisWebhookPublisher
func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish кладет уведомление в очередь Redis
func (p *RedisWebhookPublisher) Publish(ctx context.Context, notification TimelineNotification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal timeline notification: %w", err)
	}

	// LPUSH + BRPOP в воркере дают FIFO
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish timeline notification to Redis: %w", err)
	}
	return nil
}
