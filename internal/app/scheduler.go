package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Evicter хранилище, из которого можно удалить давно неактивные записи
type Evicter interface {
	Evict(idle time.Duration) int
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	limiters Evicter
	interval time.Duration
	idle     time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewScheduler создаёт планировщик очистки лимитеров запросов
func NewScheduler(limiters Evicter, interval, idle time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		limiters: limiters,
		interval: interval,
		idle:     idle,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))

	go s.runEvictionTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	<-s.done
}

func (s *Scheduler) runEvictionTask(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evict()
		case <-s.stopChan:
			s.logger.Info("Limiter eviction task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Limiter eviction task cancelled")
			return
		}
	}
}

func (s *Scheduler) evict() {
	removed := s.limiters.Evict(s.idle)
	if removed > 0 {
		s.logger.Debug("Evicted idle rate limiters", zap.Int("removed", removed))
	}
}
