package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stockdash/internal/config"
	"stockdash/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// EmailPayload is the body of an email:send job.
type EmailPayload struct {
	To         string `json:"to"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	AttachPath string `json:"attachPath,omitempty"`
}

// LowStockPayload is the body of an alert:low_stock job.
type LowStockPayload struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
}

// NewEmailHandler delivers queued emails through the SMTP mailer.
func NewEmailHandler(mailer *infra.Mailer, log zerolog.Logger) Handler {
	return func(ctx context.Context, job *Job) error {
		payload := EmailPayload{}
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("email job payload: %w", err)
		}
		if err := mailer.Send(payload.To, payload.Subject, payload.Body, payload.AttachPath); err != nil {
			return err
		}
		log.Info().Str("to", payload.To).Str("subject", payload.Subject).Msg("email sent")
		return nil
	}
}

// NewLowStockHandler emails the configured recipient when a product runs
// low. A short-lived redis key suppresses repeat alerts for the same
// product so a burst of sales does not flood the inbox.
func NewLowStockHandler(mailer *infra.Mailer, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) Handler {
	return func(ctx context.Context, job *Job) error {
		payload := LowStockPayload{}
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("low stock job payload: %w", err)
		}
		if cfg.AlertEmail == "" {
			log.Warn().Str("product_id", payload.ProductID).Msg("low stock alert dropped, no recipient configured")
			return nil
		}

		if rdb != nil {
			key := "alert:sent:" + payload.ProductID
			ok, err := rdb.SetNX(ctx, key, 1, 6*time.Hour).Result()
			if err == nil && !ok {
				log.Debug().Str("product_id", payload.ProductID).Msg("low stock alert suppressed, already sent")
				return nil
			}
		}

		subject := fmt.Sprintf("Low stock: %s", payload.Name)
		body := fmt.Sprintf("Product %q is down to %d units (threshold %d). Consider restocking.",
			payload.Name, payload.Stock, cfg.LowStockThreshold)
		if err := mailer.Send(cfg.AlertEmail, subject, body, ""); err != nil {
			return err
		}
		log.Info().Str("product_id", payload.ProductID).Int("stock", payload.Stock).Msg("low stock alert sent")
		return nil
	}
}
