package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type StatsStore interface {
	CountAccounts(ctx context.Context) (int64, error)
}

// Scheduler runs periodic housekeeping. Currently a single daily job
// that logs the total account count for ops visibility.
type Scheduler struct {
	cron  *cron.Cron
	store StatsStore
	log   zerolog.Logger
}

func NewScheduler(store StatsStore, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:  c,
		store: store,
		log:   log,
	}
}

func (s *Scheduler) Start() error {
	if s.store == nil {
		return nil
	}

	if _, err := s.cron.AddFunc("0 0 0 * * *", s.logAccountStats); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() context.CancelFunc {
	_, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	go func() {
		s.cron.Stop()
		cancel()
	}()
	return cancel
}

func (s *Scheduler) logAccountStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := s.store.CountAccounts(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("account stats query failed")
		return
	}
	s.log.Info().Int64("accounts", count).Msg("daily account stats")
}
