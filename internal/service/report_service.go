package service

import (
	"context"
	"fmt"

	"stockdash/internal/config"
	"stockdash/internal/infra"
	"stockdash/internal/repository"

	"github.com/rs/zerolog"
)

// ReportMailer enqueues report emails for asynchronous delivery.
type ReportMailer interface {
	EnqueueReportEmail(ctx context.Context, to, subject, body, attachPath string) error
}

// ReportService builds the PDF inventory report and hands delivery off to
// the worker queue so HTTP requests never block on SMTP.
type ReportService struct {
	products repository.ProductRepository
	mailer   ReportMailer
	cfg      *config.Config
	log      zerolog.Logger
}

func NewReportService(
	products repository.ProductRepository,
	mailer ReportMailer,
	cfg *config.Config,
	log zerolog.Logger,
) *ReportService {
	return &ReportService{products: products, mailer: mailer, cfg: cfg, log: log}
}

// GenerateInventoryReport writes the PDF and returns its path.
func (s *ReportService) GenerateInventoryReport(ctx context.Context) (string, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return "", err
	}
	path, err := infra.GenerateInventoryReportPDF(products, s.cfg.LowStockThreshold, s.cfg.PDFStoragePath)
	if err != nil {
		return "", err
	}
	s.log.Info().Str("path", path).Int("products", len(products)).Msg("inventory report generated")
	return path, nil
}

// EmailInventoryReport generates the report and queues it for delivery.
func (s *ReportService) EmailInventoryReport(ctx context.Context, to string) error {
	if s.mailer == nil {
		return fmt.Errorf("report delivery is not configured: %w", ErrInvalidArgument)
	}
	path, err := s.GenerateInventoryReport(ctx)
	if err != nil {
		return err
	}
	body := "Attached is the current inventory report with stock levels and valuations."
	if err := s.mailer.EnqueueReportEmail(ctx, to, "Inventory Report", body, path); err != nil {
		return err
	}
	s.log.Info().Str("to", to).Msg("inventory report queued for delivery")
	return nil
}
