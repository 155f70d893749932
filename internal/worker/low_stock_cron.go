package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stockdash/internal/config"
	"stockdash/internal/model"

	"github.com/rs/zerolog"
)

// LowStockLister provides the products currently at or below the threshold.
type LowStockLister interface {
	LowStockProducts(ctx context.Context) ([]model.Product, error)
}

// StartLowStockCron periodically scans for low-stock products and queues a
// single digest email, complementing the per-mutation alerts with a safety
// net for stock that went low while alerting was down.
func StartLowStockCron(ctx context.Context, interval time.Duration, lister LowStockLister, dispatcher *Dispatcher, cfg *config.Config, log zerolog.Logger) {
	if cfg.AlertEmail == "" {
		log.Info().Msg("low stock cron disabled, no recipient configured")
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runLowStockScan(ctx, lister, dispatcher, cfg, log)
			}
		}
	}()
	log.Info().Dur("interval", interval).Msg("low stock cron started")
}

func runLowStockScan(ctx context.Context, lister LowStockLister, dispatcher *Dispatcher, cfg *config.Config, log zerolog.Logger) {
	products, err := lister.LowStockProducts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("low stock scan failed")
		return
	}
	if len(products) == 0 {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d products are at or below the threshold of %d units:\n\n", len(products), cfg.LowStockThreshold)
	for _, p := range products {
		fmt.Fprintf(&b, "  - %s: %d units\n", p.Name, p.StockQuantity)
	}

	err = dispatcher.Enqueue(ctx, JobEmailSend, EmailPayload{
		To:      cfg.AlertEmail,
		Subject: fmt.Sprintf("Low stock digest: %d products", len(products)),
		Body:    b.String(),
	})
	if err != nil {
		log.Error().Err(err).Msg("low stock digest enqueue failed")
		return
	}
	log.Info().Int("products", len(products)).Msg("low stock digest queued")
}
