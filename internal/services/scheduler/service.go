// Package scheduler triggers periodic report runs on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/brevis/internal/common"
	"github.com/ternarybob/brevis/internal/interfaces"
	"github.com/ternarybob/brevis/internal/models"
	"github.com/ternarybob/brevis/internal/services/delivery"
	"github.com/ternarybob/brevis/internal/services/report"
)

// Service runs the report pipeline on a schedule and delivers the result.
type Service struct {
	reports  *report.Service
	delivery interfaces.DeliveryService
	config   *common.ScheduleConfig
	cron     *cron.Cron
	logger   arbor.ILogger
	mu       sync.Mutex
	running  bool
}

// NewService creates a scheduler service.
func NewService(reports *report.Service, deliveryService interfaces.DeliveryService, config *common.ScheduleConfig, logger arbor.ILogger) *Service {
	return &Service{
		reports:  reports,
		delivery: deliveryService,
		config:   config,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start registers the scheduled report run and starts the cron loop. A
// disabled schedule is a no-op.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.config.Enabled {
		s.logger.Info().Msg("Report schedule disabled")
		return nil
	}
	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	expr := s.config.Cron
	if expr == "" {
		expr = "0 8 * * FRI"
	}

	if _, err := s.cron.AddFunc(expr, s.runScheduledReport); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info().
		Str("cron_expr", expr).
		Msg("Report schedule started")

	return nil
}

// Stop halts the cron loop, waiting for an in-flight run to finish.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false

	s.logger.Info().Msg("Report schedule stopped")
}

// runScheduledReport executes one full report run and delivers it.
func (s *Service) runScheduledReport() {
	ctx := context.Background()

	s.logger.Info().Msg("Scheduled report run starting")

	generated, err := s.reports.GenerateReport(ctx, models.ReportKindWeekly)
	if err != nil {
		if errors.Is(err, report.ErrNoRecords) {
			s.logger.Warn().Msg("Scheduled report skipped: no meeting records in window")
		} else {
			s.logger.Error().Err(err).Msg("Scheduled report run failed")
		}
		return
	}

	if !s.delivery.IsConfigured() {
		s.logger.Warn().
			Str("report_id", generated.ID).
			Msg("Delivery not configured, report generated but not sent")
		return
	}

	subject := delivery.Subject(generated.Kind, time.Now())
	if err := s.delivery.Send(ctx, "", subject, generated.HTML); err != nil {
		s.logger.Error().Err(err).Str("report_id", generated.ID).Msg("Scheduled report delivery failed")
		return
	}

	s.logger.Info().
		Str("report_id", generated.ID).
		Str("subject", subject).
		Msg("Scheduled report delivered")
}
