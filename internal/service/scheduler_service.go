package service

import (
	"context"
	"time"

	"github.com/examwatch/examwatch-backend/internal/repository"
	"github.com/examwatch/examwatch-backend/pkg/cache"
	"github.com/examwatch/examwatch-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// SchedulerService runs background jobs: publishing scheduled posts and
// refreshing listing caches when something changed.
type SchedulerService struct {
	cron  *cron.Cron
	repo  repository.PostRepository
	cache cache.Service
}

// NewSchedulerService creates the scheduler without starting it
func NewSchedulerService(repo repository.PostRepository, cacheService cache.Service) *SchedulerService {
	return &SchedulerService{
		cron:  cron.New(),
		repo:  repo,
		cache: cacheService,
	}
}

// Start registers the jobs and starts the cron loop
func (s *SchedulerService) Start() error {
	if _, err := s.cron.AddFunc("@every 1m", s.publishDue); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop stops the cron loop and waits for running jobs
func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// publishDue flips posts whose scheduled publish time has arrived and
// invalidates every listing-derived cache when any did.
func (s *SchedulerService) publishDue() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := s.repo.PublishDue(ctx, time.Now())
	if err != nil {
		logger.GetLogger().Error().Err(err).Msg("scheduled publish sweep failed")
		return
	}
	if count == 0 {
		return
	}

	logger.GetLogger().Info().Int64("count", count).Msg("published scheduled posts")

	if s.cache != nil {
		_ = s.cache.InvalidateSearchPages(ctx)
		_ = s.cache.InvalidateRecent(ctx)
		_ = s.cache.InvalidateSitemaps(ctx)
	}
}
