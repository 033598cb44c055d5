package reminder

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Scheduler struct {
	svc      *Service
	interval time.Duration
	log      *zap.Logger
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewScheduler(svc *Service, interval time.Duration, log *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Scheduler{
		svc:      svc,
		interval: interval,
		log:      log,
		stopCh:   make(chan struct{}),
	}
}

// Start запускает планировщик в отдельной горутине
func (s *Scheduler) Start(ctx context.Context) {
	s.log.Info("starting reminder scheduler", zap.Duration("interval", s.interval))
	s.wg.Add(1)
	go s.run(ctx)
}

// Stop останавливает планировщик и ждёт завершения текущего прогона
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.log.Info("stopping reminder scheduler")
		close(s.stopCh)
	})
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Выполняем сразу при старте
	if _, err := s.svc.RemindStalePending(ctx); err != nil {
		s.log.Error("initial reminder run failed", zap.Error(err))
	}

	for {
		select {
		case <-ticker.C:
			if _, err := s.svc.RemindStalePending(ctx); err != nil {
				s.log.Error("reminder run failed", zap.Error(err))
			}
		case <-s.stopCh:
			s.log.Info("reminder scheduler stopped")
			return
		case <-ctx.Done():
			s.log.Info("reminder scheduler cancelled")
			return
		}
	}
}

// RunOnceNow: для cmd/reminder
func (s *Scheduler) RunOnceNow(ctx context.Context) (int, error) {
	return s.svc.RemindStalePending(ctx)
}
