package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"sleeperscout/internal/adp"
	"sleeperscout/internal/api/sleeper"
	"sleeperscout/internal/bot"
	"sleeperscout/internal/config"
	"sleeperscout/internal/models"
	"sleeperscout/internal/performance"
	"sleeperscout/internal/repository/memory"
	"sleeperscout/internal/scheduler"
	"sleeperscout/internal/service"
	"sleeperscout/internal/valuation"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	mode := flag.String("mode", "bot", "run mode: bot, league, or waiver")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	client := sleeper.NewClient()
	api := sleeper.NewAPI(client)
	repo := memory.NewRepository()

	tracker := performance.NewTracker(api, cfg.Sleeper.LeagueID, func(id string) (models.Position, bool) {
		p, ok := repo.Player(id)
		return p.Position, ok
	})
	adpSource := adp.NewSource()
	engine := valuation.NewEngine(repo, tracker, adpSource)

	analyzer := service.NewAnalyzerService(api, repo, engine, cfg.Sleeper, func(currentWeek int) {
		summary := tracker.Load(currentWeek)
		slog.Info("Loaded performance data",
			"weeks", summary.WeeksLoaded,
			"failedWeeks", summary.FailedWeeks,
			"players", summary.Players)
	})

	if err := analyzer.Load(); err != nil {
		return err
	}

	switch *mode {
	case "league":
		report, err := analyzer.LeagueReport()
		if err != nil {
			return err
		}
		fmt.Println(report)
		return nil
	case "waiver":
		report, err := analyzer.WaiverReport()
		if err != nil {
			return err
		}
		fmt.Println(report)
		return nil
	case "bot":
		return runBot(cfg, analyzer)
	default:
		return fmt.Errorf("unknown mode: %s", *mode)
	}
}

func runBot(cfg *config.Config, analyzer *service.AnalyzerService) error {
	if cfg.TelegramBot.Token == "" {
		return fmt.Errorf("bot mode requires TELEGRAM_TOKEN")
	}

	telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, analyzer)
	if err != nil {
		return err
	}

	sched, err := scheduler.NewScheduler(analyzer, telegramBot.SendMessage)
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := telegramBot.Start(ctx); err != nil {
			slog.Error("Error running telegram bot", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	return nil
}
