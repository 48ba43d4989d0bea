package maintenance

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"stpaul-crime/config"
	"stpaul-crime/core/store"
	"stpaul-crime/core/utils"
)

// Scheduler periodically refreshes query statistics and logs table sizes.
type Scheduler struct {
	cfg    config.SchedulerConfig
	db     *sql.DB
	logger *utils.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	cancel  context.CancelFunc
	running bool
}

func NewScheduler(cfg config.SchedulerConfig, db *sql.DB, logger *utils.Logger) *Scheduler {
	return &Scheduler{cfg: cfg, db: db, logger: logger}
}

func (s *Scheduler) StartWithContext(ctx context.Context) error {
	if s == nil || s.db == nil || !s.cfg.Enabled {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(s.cfg.Spec, func() { _ = s.RunOnce(runCtx, time.Now().UTC()) }); err != nil {
		cancel()
		return err
	}
	c.Start()
	s.cron = c
	s.cancel = cancel
	s.running = true
	return nil
}

func (s *Scheduler) StopWithContext(ctx context.Context) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	c := s.cron
	cancel := s.cancel
	wasRunning := s.running
	s.cron = nil
	s.cancel = nil
	s.running = false
	s.mu.Unlock()
	if !wasRunning || c == nil {
		return nil
	}
	cancel()
	stopped := c.Stop()
	select {
	case <-stopped.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) RunOnce(ctx context.Context, now time.Time) error {
	if s == nil || s.db == nil {
		return nil
	}
	if err := store.Optimize(ctx, s.db); err != nil {
		s.logger.Errorf("maintenance: %v", err)
		return err
	}
	counts, err := store.CountRows(ctx, s.db)
	if err != nil {
		s.logger.Errorf("maintenance: %v", err)
		return err
	}
	s.logger.Printf("maintenance at %s: codes=%d neighborhoods=%d incidents=%d",
		now.Format(time.RFC3339), counts.Codes, counts.Neighborhoods, counts.Incidents)
	return nil
}
