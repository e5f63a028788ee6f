package services

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// overdueMarker is the part of the bill service the sweeper needs.
type overdueMarker interface {
	MarkOverdueBills(ctx context.Context, asOf time.Time) (int64, error)
}

// OverdueSweeper periodically moves approved and partial bills past their due date to overdue.
type OverdueSweeper struct {
	bills    overdueMarker
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewOverdueSweeper creates a sweeper. It does nothing until Start is called.
func NewOverdueSweeper(bills overdueMarker, interval time.Duration, logger *slog.Logger) *OverdueSweeper {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &OverdueSweeper{
		bills:    bills,
		interval: interval,
		logger:   logger.With(slog.String("component", "overdue_sweeper")),
		now:      time.Now,
	}
}

// Start launches the background loop. The first sweep runs immediately.
func (s *OverdueSweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		return
	}
	s.ticker = time.NewTicker(s.interval)
	s.stop = make(chan struct{})
	s.wg.Add(1)
	go s.run(s.ticker, s.stop)

	s.logger.Info("Overdue sweeper started", slog.Duration("interval", s.interval))
}

// Stop halts the loop and waits for an in-flight sweep to finish.
func (s *OverdueSweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	close(s.stop)
	s.wg.Wait()
	s.ticker = nil
	s.logger.Info("Overdue sweeper stopped")
}

// SweepOnce marks bills due before the start of today (UTC) as overdue.
func (s *OverdueSweeper) SweepOnce(ctx context.Context) (int64, error) {
	y, m, d := s.now().UTC().Date()
	asOf := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	n, err := s.bills.MarkOverdueBills(ctx, asOf)
	if err != nil {
		s.logger.Error("Overdue sweep failed", slog.String("error", err.Error()))
		return 0, err
	}
	s.logger.Debug("Overdue sweep finished", slog.Int64("marked", n))
	return n, nil
}

func (s *OverdueSweeper) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer s.wg.Done()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-stop
		cancel()
	}()

	_, _ = s.SweepOnce(ctx)
	for {
		select {
		case <-ticker.C:
			_, _ = s.SweepOnce(ctx)
		case <-stop:
			return
		}
	}
}
