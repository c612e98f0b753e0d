package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"go-weather/internal/domain/usecase/weather"
	"go-weather/pkg/log"
)

// WeatherScheduler periodically refreshes every saved city
type WeatherScheduler struct {
	cron           *cron.Cron
	useCase        weather.UseCase
	cronExpression string
	runTimeout     time.Duration
}

// NewWeatherScheduler creates a scheduler firing on a standard 5 field cron expression
func NewWeatherScheduler(useCase weather.UseCase, cronExpression string) *WeatherScheduler {
	return &WeatherScheduler{
		cron:           cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		useCase:        useCase,
		cronExpression: cronExpression,
		runTimeout:     10 * time.Minute,
	}
}

// InitWeatherScheduleTasks registers the refresh job and starts the cron.
// An invalid expression is returned and nothing is started.
func (s *WeatherScheduler) InitWeatherScheduleTasks() error {
	if _, err := s.cron.AddFunc(s.cronExpression, s.ExecuteScheduledTask); err != nil {
		return err
	}

	s.cron.Start()
	log.Infof("Weather refresh scheduler started with cron expression: %s", s.cronExpression)
	return nil
}

// ExecuteScheduledTask runs one refresh of the saved cities under a fresh run id
func (s *WeatherScheduler) ExecuteScheduledTask() {
	runID := uuid.New().String()

	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	log.Info("Weather refresh triggered", zap.String("request_id", runID))
	summary := s.useCase.RefreshSavedCities(ctx, runID)
	if summary.Failed > 0 {
		log.Warn("Weather refresh finished with failures",
			zap.String("request_id", runID),
			zap.Int("failed", summary.Failed),
			zap.Int("total", summary.Total))
	}
}

// Stop stops the cron and waits for a running refresh to finish
func (s *WeatherScheduler) Stop() {
	<-s.cron.Stop().Done()
}
