package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meal-planner/internal/app"
	"meal-planner/internal/config"
	"meal-planner/internal/database"
	"meal-planner/internal/llm"
	"meal-planner/internal/logging"
	"meal-planner/internal/telegram"
)

func main() {
	logger := logging.New("telegram-bot")

	cfg, err := config.NewFromEnv()
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		logger.Warn("unknown log level, keeping info", "level", cfg.LogLevel)
	}

	ctx := context.Background()

	// Recipe clipping is optional; without an API key the bot only serves the plan and list.
	textGen, err := llm.NewTextGenerator(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to create LLM client", "err", err)
	}
	if c, ok := textGen.(llm.Closer); ok {
		defer c.Close()
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("failed to initialize database", "err", err)
	}
	defer db.Close()

	application, err := app.New(cfg, db, textGen)
	if err != nil {
		logger.Fatal("failed to initialize app", "err", err)
	}

	bot, err := telegram.NewBot(application)
	if err != nil {
		logger.Fatal("failed to initialize Telegram bot", "err", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: bot.Handler(),
	}

	go func() {
		logger.Info("telegram bot server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("server forced to shutdown", "err", err)
	}
	bot.Wait()

	logger.Info("server exiting")
}
