// Package main contains the entrypoint for the Telegram digest bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/bot"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/bot/handlers"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/bot/tasks"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/config"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/database"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/gemini"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/logger"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/session"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/summary"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/telegram"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes all application components, starts the bot and returns an
// exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log, cfg.Summary.MaxDayRows)

	gemClient, err := gemini.NewClient(ctx, cfg.Gemini, log)
	if err != nil {
		log.Error("Failed to initialize Gemini client", "error", err)
		return 1
	}

	assembler := summary.NewAssembler(gemClient, gemini.DigestInstruction, summary.Options{
		MaxMessageChars: cfg.Summary.MaxMessageChars,
		MaxPromptChars:  cfg.Summary.MaxPromptChars,
		TruncationNote:  cfg.Messages.TruncationNote,
		EmptySummary:    cfg.Messages.EmptySummary,
	}, log)

	hDeps := handlers.HandlerDeps{
		Logger:    log,
		Config:    cfg,
		Store:     store,
		Assembler: assembler,
		Sessions:  session.NewManager(session.DefaultTTL),
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewCaptureHandler(hDeps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	cfg.Telegram.BotInfo, err = tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", cfg.Telegram.BotInfo.ID, "bot_username", cfg.Telegram.BotInfo.Username)

	cmdHandlers := handlers.RegisterAllCommands(hDeps)
	if err := telegram.RegisterHandlers(tg, log, cmdHandlers); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	tDeps := tasks.TaskDeps{
		Logger:    log,
		Store:     store,
		Assembler: assembler,
		Config:    cfg,
		TgBot:     tg,
	}
	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	app := bot.NewBot(log, cfg, db, store, tg, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
