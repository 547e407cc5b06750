package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/arktribe/tribestore/internal/logger"
	"github.com/arktribe/tribestore/internal/repository"
)

// Maintenance owns the scheduled background jobs: hourly purge of dead
// refresh tokens and a daily playtime rollup logged per user.
type Maintenance struct {
	Tokens *repository.TokenRepo
	Logs   *repository.LeaseLogRepo
	cron   *cron.Cron
}

func NewMaintenance(t *repository.TokenRepo, l *repository.LeaseLogRepo) *Maintenance {
	return &Maintenance{Tokens: t, Logs: l}
}

// Start registers and launches the cron jobs. Call Stop on shutdown.
func (m *Maintenance) Start() error {
	m.cron = cron.New()

	if _, err := m.cron.AddFunc("@hourly", m.purgeTokens); err != nil {
		return err
	}
	if _, err := m.cron.AddFunc("30 0 * * *", m.rollupPlaytime); err != nil {
		return err
	}

	m.cron.Start()
	logger.Info("maintenance jobs scheduled",
		zap.String("purge_tokens", "@hourly"),
		zap.String("playtime_rollup", "30 0 * * *"))
	return nil
}

// Stop halts the scheduler, waiting for running jobs to finish.
func (m *Maintenance) Stop() {
	if m.cron != nil {
		ctx := m.cron.Stop()
		<-ctx.Done()
	}
}

func (m *Maintenance) purgeTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := m.Tokens.PurgeExpired(ctx, time.Now().UTC())
	if err != nil {
		logger.Error("token purge failed", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Info("purged dead refresh tokens", zap.Int64("rows", n))
	}
}

func (m *Maintenance) rollupPlaytime() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	since := time.Now().UTC().Add(-24 * time.Hour)
	totals, err := m.Logs.TotalsSince(ctx, since)
	if err != nil {
		logger.Error("playtime rollup failed", zap.Error(err))
		return
	}
	for _, t := range totals {
		logger.Info("daily playtime",
			zap.Uint64("user_id", t.UserID),
			zap.Int64("total_secs", t.TotalSecs))
	}
}
