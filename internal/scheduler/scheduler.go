package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"laundry-be/internal/inventory"
	"laundry-be/internal/logger"
	"laundry-be/internal/notification"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	outboxSchedule   = "@every 1m"
	lowStockSchedule = "@daily"
	outboxBatch      = 50
	jobTimeout       = 30 * time.Second
)

type PendingDispatcher interface {
	DispatchPending(ctx context.Context, limit int) (int, error)
}

type LowStockSource interface {
	LowStock(ctx context.Context) ([]*inventory.Item, error)
}

type Notifier interface {
	Notify(ctx context.Context, userID *string, kind, title, message, priority string) (*notification.Notification, error)
}

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

type Scheduler struct {
	cron       *cron.Cron
	dispatcher PendingDispatcher
	stock      LowStockSource
	notifier   Notifier
}

func New(dispatcher PendingDispatcher, stock LowStockSource, notifier Notifier) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithParser(cronParser)),
		dispatcher: dispatcher,
		stock:      stock,
		notifier:   notifier,
	}
}

// Start registers the background jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(outboxSchedule, s.RetryOutbox); err != nil {
		return fmt.Errorf("schedule outbox retry: %w", err)
	}
	if _, err := s.cron.AddFunc(lowStockSchedule, s.BroadcastLowStock); err != nil {
		return fmt.Errorf("schedule low-stock broadcast: %w", err)
	}
	s.cron.Start()
	logger.L().Info("scheduler started", zap.Int("jobs", len(s.cron.Entries())))
	return nil
}

// Stop halts scheduling; the returned context is done when running jobs end.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func recoverJob(job string) {
	if err := recover(); err != nil {
		logger.L().Error("scheduled job panicked", zap.String("job", job), zap.Any("panic", err))
	}
}

// RetryOutbox redelivers order events whose first dispatch failed.
func (s *Scheduler) RetryOutbox() {
	defer recoverJob("outbox")

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.dispatcher.DispatchPending(ctx, outboxBatch)
	if err != nil {
		logger.L().Warn("outbox retry incomplete", zap.Int("delivered", n), zap.Error(err))
		return
	}
	if n > 0 {
		logger.L().Info("outbox retry delivered events", zap.Int("delivered", n))
	}
}

// BroadcastLowStock posts one broadcast notification listing items below
// their minimum stock.
func (s *Scheduler) BroadcastLowStock() {
	defer recoverJob("low-stock")

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	items, err := s.stock.LowStock(ctx)
	if err != nil {
		logger.L().Error("failed to load low-stock items", zap.Error(err))
		return
	}
	if len(items) == 0 {
		return
	}

	title, message, priority := lowStockNotice(items)
	if _, err := s.notifier.Notify(ctx, nil, notification.TypeInventory, title, message, priority); err != nil {
		logger.L().Error("failed to broadcast low stock", zap.Error(err))
		return
	}
	logger.L().Info("low-stock broadcast sent", zap.Int("items", len(items)))
}

func lowStockNotice(items []*inventory.Item) (title, message, priority string) {
	names := make([]string, 0, len(items))
	priority = notification.PriorityMedium
	for _, it := range items {
		names = append(names, fmt.Sprintf("%s (%d %s)", it.Name, it.Stock, it.Unit))
		if it.Stock == 0 {
			priority = notification.PriorityHigh
		}
	}
	return "Stok Menipis",
		fmt.Sprintf("%d item di bawah stok minimum: %s", len(items), strings.Join(names, ", ")),
		priority
}
