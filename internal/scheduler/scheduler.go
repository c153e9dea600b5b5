package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"sleeperscout/internal/service"
)

type Scheduler struct {
	s           gocron.Scheduler
	analyzer    *service.AnalyzerService
	sendMessage func(string) error
}

func NewScheduler(analyzer *service.AnalyzerService, sendMessage func(string) error) (*Scheduler, error) {
	location, err := time.LoadLocation("America/Chicago") // CDT
	if err != nil {
		slog.Error("Failed to load location", "error", err)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		analyzer:    analyzer,
		sendMessage: sendMessage,
	}, nil
}

func (s *Scheduler) Start() error {
	var err error

	// Waiver report - Wednesday 7:30 CDT, after Tuesday night waivers clear
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Wednesday), gocron.NewAtTimes(gocron.NewAtTime(7, 30, 0))),
		gocron.NewTask(s.sendWaiverReport),
	)
	if err != nil {
		return fmt.Errorf("failed to create waiver report job: %w", err)
	}

	// League analysis - Tuesday 7:30 CDT, once Monday night scores settle
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Tuesday), gocron.NewAtTimes(gocron.NewAtTime(7, 30, 0))),
		gocron.NewTask(s.sendLeagueReport),
	)
	if err != nil {
		return fmt.Errorf("failed to create league report job: %w", err)
	}

	// Trending refresh - daily 6:00 CDT, keeps momentum scores current
	_, err = s.s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(6, 0, 0))),
		gocron.NewTask(s.reloadTrending),
	)
	if err != nil {
		return fmt.Errorf("failed to create trending refresh job: %w", err)
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) sendWaiverReport() {
	report, err := s.analyzer.WaiverReport()
	if err != nil {
		slog.Error("Failed to generate waiver report", "error", err)
		return
	}
	s.sendMessage(report)
}

func (s *Scheduler) sendLeagueReport() {
	report, err := s.analyzer.LeagueReport()
	if err != nil {
		slog.Error("Failed to generate league report", "error", err)
		return
	}
	s.sendMessage(report)
}

func (s *Scheduler) reloadTrending() {
	if err := s.analyzer.ReloadTrending(); err != nil {
		slog.Error("Failed to reload trending data", "error", err)
	}
}
