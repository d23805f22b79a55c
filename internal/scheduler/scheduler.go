package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/omarshaarawi/nbastats/internal/config"
	"github.com/omarshaarawi/nbastats/internal/service"
	"github.com/robfig/cron/v3"
)

const jobTimeout = 2 * time.Minute

type Scheduler struct {
	s            gocron.Scheduler
	statsService *service.StatsService
	sendMessage  func(string) error
	clock        clockwork.Clock
	location     *time.Location
	schedule     cron.Schedule
	spec         string
}

func NewScheduler(statsService *service.StatsService, sendMessage func(string) error, cfg config.Schedule, clock clockwork.Clock) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		slog.Error("Failed to load location, using UTC", "timezone", cfg.Timezone, "error", err)
		location = time.UTC
	}

	schedule, err := cron.ParseStandard(cfg.Cron)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", cfg.Cron, err)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
		gocron.WithClock(clock),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:            s,
		statsService: statsService,
		sendMessage:  sendMessage,
		clock:        clock,
		location:     location,
		schedule:     schedule,
		spec:         cfg.Cron,
	}, nil
}

func (s *Scheduler) Start() error {
	// Previous day's final scores
	_, err := s.s.NewJob(
		gocron.CronJob(s.spec, false),
		gocron.NewTask(s.sendScoreboard),
		gocron.WithName("daily-scoreboard"),
	)
	if err != nil {
		return fmt.Errorf("failed to create scoreboard job: %w", err)
	}

	s.s.Start()
	slog.Info("Scheduler started", "schedule", s.spec, "next_run", s.NextRun())
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

// NextRun is the next time the daily post fires.
func (s *Scheduler) NextRun() time.Time {
	return s.schedule.Next(s.clock.Now().In(s.location))
}

func (s *Scheduler) sendScoreboard() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	yesterday := s.clock.Now().In(s.location).AddDate(0, 0, -1)
	report, err := s.statsService.GetScoreboardFor(ctx, yesterday)
	if err != nil {
		slog.Error("Failed to get scoreboard", "date", yesterday.Format("01/02/2006"), "error", err)
		return
	}
	if err := s.sendMessage(report); err != nil {
		slog.Error("Failed to send scoreboard", "error", err)
	}
}
