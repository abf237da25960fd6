package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// BookingCompleter помечает прошедшие занятия проведёнными
type BookingCompleter interface {
	CompletePastBookings(ctx context.Context) (int64, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	completer BookingCompleter
	interval  time.Duration
	logger    *zap.Logger

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewScheduler создаёт новый планировщик
func NewScheduler(completer BookingCompleter, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		completer: completer,
		interval:  interval,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("completion_interval", s.interval))

	s.wg.Add(1)
	go s.runCompletionTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	s.wg.Wait()
}

func (s *Scheduler) runCompletionTask(ctx context.Context) {
	defer s.wg.Done()

	// Первый запуск сразу при старте
	s.completeBookings(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.completeBookings(ctx)
		case <-s.stopChan:
			s.logger.Info("Completion task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Completion task cancelled")
			return
		}
	}
}

func (s *Scheduler) completeBookings(ctx context.Context) {
	completed, err := s.completer.CompletePastBookings(ctx)
	if err != nil {
		s.logger.Error("Failed to complete past bookings", zap.Error(err))
		return
	}

	if completed > 0 {
		s.logger.Info("Past bookings completed", zap.Int64("count", completed))
	}
}
