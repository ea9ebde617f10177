package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_map/internal/config"
	"github.com/sirupsen/logrus"
)

const popTimeout = time.Second

// WebhookWorker - структура для обработки и отправки вебхуков
type WebhookWorker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *http.Client
	wg          sync.WaitGroup
}

// NewWebhookWorker создает новый WebhookWorker
func NewWebhookWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *WebhookWorker {
	return &WebhookWorker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
	}
}

// Start запускает горутину для обработки очереди вебхуков
func (w *WebhookWorker) Start(ctx context.Context) {
	w.logger.Info("Starting webhook worker...")
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping webhook worker.")
				return
			default:
			}

			// Ограниченное ожидание, чтобы воркер замечал отмену контекста
			result, err := w.redisClient.BRPop(ctx, popTimeout, webhookQueueKey).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || ctx.Err() != nil {
					continue
				}
				w.logger.WithError(err).Error("Failed to pop timeline notification from Redis")
				w.sleep(ctx, w.cfg.WebhookBaseDelay)
				continue
			}

			// result[0] - ключ, result[1] - значение
			payload := result[1]
			var notification TimelineNotification
			if err := json.Unmarshal([]byte(payload), &notification); err != nil {
				w.logger.WithError(err).Error("Failed to unmarshal timeline notification from Redis")
				continue
			}

			w.deliver(ctx, notification, payload)
		}
	}()
}

// Wait блокируется до остановки воркера
func (w *WebhookWorker) Wait() {
	w.wg.Wait()
}

func (w *WebhookWorker) deliver(ctx context.Context, notification TimelineNotification, rawPayload string) {
	log := w.logger.WithFields(logrus.Fields{
		"emergency_id": notification.EmergencyID,
		"event_id":     notification.Event.ID,
	})
	log.Debug("Processing timeline notification...")

	if w.cfg.WebhookURL == "" {
		log.Warn("Webhook URL is not configured. Skipping webhook delivery.")
		return
	}

	maxRetries := w.cfg.WebhookMaxRetries
	delay := w.cfg.WebhookBaseDelay

	for i := 0; i < maxRetries; i++ {
		status, err := w.send(ctx, rawPayload)
		if err == nil && status >= 200 && status < 300 {
			log.Info("Webhook delivered successfully.")
			return
		}
		if ctx.Err() != nil {
			log.Warn("Webhook delivery interrupted by shutdown.")
			return
		}
		if err != nil {
			log.WithError(err).Warnf("Failed to send webhook. Retrying in %v. Retries left: %d", delay, maxRetries-1-i)
		} else {
			log.Warnf("Webhook delivery failed with status code %d. Retrying in %v. Retries left: %d", status, delay, maxRetries-1-i)
		}
		if i < maxRetries-1 {
			w.sleep(ctx, delay)
			delay *= 2 // Экспоненциальная задержка
		}
	}

	log.Errorf("Failed to deliver webhook after %d retries.", maxRetries)
}

func (w *WebhookWorker) send(ctx context.Context, rawPayload string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.WebhookURL, bytes.NewBufferString(rawPayload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	// Добавляем HMAC подпись, если WEBHOOK_SECRET задан
	if w.cfg.WebhookSecret != "" {
		req.Header.Set("X-Webhook-Signature", generateHMACSHA256(rawPayload, w.cfg.WebhookSecret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

func (w *WebhookWorker) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
