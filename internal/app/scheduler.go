package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultDispatchSpec - как часто диспетчер проверяет наступившие напоминания
const DefaultDispatchSpec = "@every 15s"

// Dispatcher доставляет наступившие задачи (реализуется delayqueue.Queue)
type Dispatcher interface {
	DispatchDue(ctx context.Context) (int, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	cron       *cron.Cron
	dispatcher Dispatcher
	spec       string
	timeout    time.Duration
	logger     *zap.Logger

	mu      sync.Mutex
	running bool
	initial sync.WaitGroup
}

// NewScheduler создаёт новый планировщик
func NewScheduler(dispatcher Dispatcher, spec string, logger *zap.Logger) *Scheduler {
	if spec == "" {
		spec = DefaultDispatchSpec
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.Local)),
		dispatcher: dispatcher,
		spec:       spec,
		timeout:    time.Minute,
		logger:     logger,
	}
}

// Start регистрирует задачу диспетчеризации и запускает cron
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("Starting background scheduler", zap.String("spec", s.spec))

	_, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(ctx) })
	if err != nil {
		return fmt.Errorf("add dispatch job: %w", err)
	}

	// сразу отправляем то, что накопилось пока сервис был остановлен
	s.initial.Add(1)
	go func() {
		defer s.initial.Done()
		s.RunOnce(ctx)
	}()

	s.cron.Start()
	return nil
}

// RunOnce выполняет один проход диспетчера. Параллельные проходы пропускаются.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Debug("Dispatch already running, skipping tick")
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	if ctx.Err() != nil {
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	delivered, err := s.dispatcher.DispatchDue(runCtx)
	if err != nil {
		s.logger.Error("Failed to dispatch reminders", zap.Error(err))
		return
	}
	if delivered > 0 {
		s.logger.Info("Reminders delivered", zap.Int("count", delivered))
	}
}

// Stop останавливает cron и ждёт завершения текущего прохода, включая стартовый
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	<-s.cron.Stop().Done()
	s.initial.Wait()
}
