package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"task-tracker/internal/logger"
	"task-tracker/internal/models"
)

// OverdueScanner periodically counts tasks whose due date has passed without
// being done and logs a summary. It is purely observational: it never
// mutates tasks.
type OverdueScanner struct {
	db       *gorm.DB
	interval time.Duration
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewOverdueScanner(db *gorm.DB, interval time.Duration) *OverdueScanner {
	return &OverdueScanner{db: db, interval: interval}
}

func (s *OverdueScanner) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.scan(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.scan(ctx)
			}
		}
	}()

	logger.Info("overdue scanner started", zap.Duration("interval", s.interval))
}

func (s *OverdueScanner) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
	logger.Info("overdue scanner stopped")
}

func (s *OverdueScanner) scan(ctx context.Context) {
	count, err := s.countOverdue(ctx, time.Now())
	if err != nil {
		logger.Error("overdue scan failed", zap.Error(err))
		return
	}
	if count > 0 {
		logger.Warn("overdue tasks detected", zap.Int64("count", count))
		return
	}
	logger.Debug("no overdue tasks")
}

func (s *OverdueScanner) countOverdue(ctx context.Context, now time.Time) (int64, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("due_date IS NOT NULL AND due_date < ? AND status <> ?", today, models.StatusDone).
		Count(&count).Error
	return count, err
}
