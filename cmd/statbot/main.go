package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/omarshaarawi/nbastats/internal/api/nba"
	"github.com/omarshaarawi/nbastats/internal/bot"
	"github.com/omarshaarawi/nbastats/internal/config"
	"github.com/omarshaarawi/nbastats/internal/repository/memory"
	"github.com/omarshaarawi/nbastats/internal/scheduler"
	"github.com/omarshaarawi/nbastats/internal/server"
	"github.com/omarshaarawi/nbastats/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	if cfg.TelegramBot.Token == "" {
		return errors.New("TELEGRAM_TOKEN is required")
	}

	nbaClient := nba.NewClient(cfg.StatsAPI)
	repo := memory.NewRepository()
	statsService := service.NewStatsService(nbaClient, repo)

	telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, statsService)
	if err != nil {
		return err
	}

	sched, err := scheduler.NewScheduler(statsService, telegramBot.SendMessage, cfg.Schedule, nbaClient.Clock())
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
		if err := server.New(cfg.HTTP.Addr).Run(ctx); err != nil {
			slog.Error("Error running HTTP server", "error", err)
		}
	}()

	go func() {
		if err := telegramBot.Start(ctx); err != nil {
			slog.Error("Error running telegram bot", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	return nil
}
