package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"prospectar-server/internal/infra/async"

	"github.com/robfig/cron/v3"
)

const _defaultRetentionSchedule = "0 3 * * *"

type RetentionConfig struct {
	Days     int
	Schedule string
}

func NewRetentionWorker(config RetentionConfig, auditService AuditService) (*RetentionWorker, error) {
	if config.Schedule == "" {
		config.Schedule = _defaultRetentionSchedule
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(config.Schedule); err != nil {
		return nil, fmt.Errorf("parsing retention schedule: %w", err)
	}

	return &RetentionWorker{
		config:       config,
		auditService: auditService,
		scheduler:    cron.New(cron.WithParser(parser)),
		now:          time.Now,
	}, nil
}

var _ async.Worker = (*RetentionWorker)(nil)

// RetentionWorker prunes audit entries older than the configured number of
// days. Zero days disables it.
type RetentionWorker struct {
	config       RetentionConfig
	auditService AuditService
	scheduler    *cron.Cron
	now          func() time.Time
}

func (w *RetentionWorker) Run(ctx context.Context, done func()) {
	defer done()

	if w.config.Days <= 0 {
		slog.Info("audit retention disabled")
		return
	}

	_, err := w.scheduler.AddFunc(w.config.Schedule, func() {
		w.Prune(context.WithoutCancel(ctx))
	})
	if err != nil {
		slog.Error("scheduling audit retention", slog.String("error", err.Error()))
		return
	}

	slog.Debug("audit retention worker started", slog.String("schedule", w.config.Schedule), slog.Int("days", w.config.Days))
	w.scheduler.Start()

	<-ctx.Done()
	<-w.scheduler.Stop().Done()
	slog.Info("audit retention worker cancelled")
}

// Prune runs one retention pass immediately.
func (w *RetentionWorker) Prune(ctx context.Context) {
	before := w.now().UTC().AddDate(0, 0, -w.config.Days)
	if _, err := w.auditService.Prune(ctx, before); err != nil {
		slog.Error("running audit retention", slog.String("error", err.Error()))
	}
}

func (w *RetentionWorker) Shutdown() {
	w.scheduler.Stop()
}
