package sweep

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hackhub/internal/metrics"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Store - массовые условные обновления статусов проверенных хакатонов
type Store interface {
	AdvanceToOngoing(ctx context.Context, now time.Time) (int64, error)
	AdvanceToCompleted(ctx context.Context, now time.Time) (int64, error)
}

// Invalidator сбрасывает кэши, зависящие от статусов
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Result - сколько хакатонов сменили статус за прогон
type Result struct {
	ToOngoing   int64
	ToCompleted int64
}

func (r Result) Changed() bool {
	return r.ToOngoing > 0 || r.ToCompleted > 0
}

// Scheduler раз в сутки, в полночь по часам clock, продвигает статусы
// upcoming -> ongoing -> completed.
type Scheduler struct {
	store Store
	cache Invalidator
	clock clockwork.Clock
	log   zerolog.Logger

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

func New(store Store, cache Invalidator, clock clockwork.Clock) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{
		store: store,
		cache: cache,
		clock: clock,
		log:   log.With().Str("component", "status_sweep").Logger(),
	}
}

// NextRun возвращает ближайшую полночь строго после now
func NextRun(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}

// Start запускает фоновый цикл. Повторный вызов без Stop ничего не делает.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go s.loop(ctx, s.stop, s.done)
	s.log.Info().Msg("started")
}

// Stop останавливает цикл и ждет завершения текущего прогона
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stop)
	done := s.done
	s.mu.Unlock()

	<-done
	s.log.Info().Msg("stopped")
}

func (s *Scheduler) loop(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	for {
		now := s.clock.Now()
		next := NextRun(now)
		timer := s.clock.NewTimer(next.Sub(now))
		s.log.Debug().Time("next_run", next).Msg("scheduled")

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-stop:
			timer.Stop()
			return
		case <-timer.Chan():
			_, _ = s.RunOnce(ctx, s.clock.Now())
		}
	}
}

// RunOnce выполняет оба шага. Второй шаг выполняется после первого, чтобы
// хакатон с уже прошедшими началом и концом стал completed за один прогон.
// Ошибки шагов логируются, прогон не повторяется и не откатывается.
func (s *Scheduler) RunOnce(ctx context.Context, now time.Time) (Result, error) {
	metrics.RecordSweepRun()
	var res Result
	var errs []error

	n, err := s.store.AdvanceToOngoing(ctx, now)
	if err != nil {
		metrics.RecordSweepFailure("ongoing")
		s.log.Error().Err(err).Msg("upcoming -> ongoing failed")
		errs = append(errs, fmt.Errorf("advance to ongoing: %w", err))
	} else {
		res.ToOngoing = n
		metrics.RecordSweepTransitions("ongoing", n)
	}

	n, err = s.store.AdvanceToCompleted(ctx, now)
	if err != nil {
		metrics.RecordSweepFailure("completed")
		s.log.Error().Err(err).Msg("ongoing -> completed failed")
		errs = append(errs, fmt.Errorf("advance to completed: %w", err))
	} else {
		res.ToCompleted = n
		metrics.RecordSweepTransitions("completed", n)
	}

	if res.Changed() && s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn().Err(err).Msg("cache invalidate failed")
		}
	}

	s.log.Info().
		Time("now", now).
		Int64("to_ongoing", res.ToOngoing).
		Int64("to_completed", res.ToCompleted).
		Msg("updated hackathon statuses")

	return res, errors.Join(errs...)
}
