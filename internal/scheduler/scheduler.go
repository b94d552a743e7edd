package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/kitchen/internal/config"
	"github.com/mamadbah2/kitchen/internal/domain/models"
	"github.com/mamadbah2/kitchen/internal/service/notify"
)

// InventorySource provides the current stock.
type InventorySource interface {
	Inventory() []models.Ingredient
}

// ExpiryNotifier is the part of notify.Service the scheduler drives.
type ExpiryNotifier interface {
	StartSession() notify.Session
	CheckExpiring(ctx context.Context, inventory []models.Ingredient) (bool, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	schedule  string
	inventory InventorySource
	notifier  ExpiryNotifier
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance running in the configured timezone.
func NewScheduler(cfg config.NotifyConfig, inventory InventorySource, notifier ExpiryNotifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		schedule:  cfg.CronSchedule,
		inventory: inventory,
		notifier:  notifier,
		logger:    logger,
	}, nil
}

// Start registers the expiry check and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.runExpiryCheck); err != nil {
		return fmt.Errorf("schedule expiry check: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// runExpiryCheck opens a fresh notification session so that every scheduled run may
// remind the user once.
func (s *Scheduler) runExpiryCheck() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	session := s.notifier.StartSession()
	sent, err := s.notifier.CheckExpiring(ctx, s.inventory.Inventory())
	if err != nil {
		s.logger.Error("scheduled expiry check failed", zap.String("session", session.ID), zap.Error(err))
		return
	}
	s.logger.Info("scheduled expiry check done", zap.String("session", session.ID), zap.Bool("alerted", sent))
}
