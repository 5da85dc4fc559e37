package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	_ "time/tzdata" // Europe/Kyiv on hosts without a zoneinfo database.

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"content_plan_bot/internal/bot"
	"content_plan_bot/internal/config"
	"content_plan_bot/internal/dates"
	"content_plan_bot/internal/digest"
	"content_plan_bot/internal/fetcher"
	"content_plan_bot/internal/metrics"
	"content_plan_bot/internal/model"
	"content_plan_bot/internal/reminder"
	"content_plan_bot/internal/scheduler"
	"content_plan_bot/internal/storage"
	"content_plan_bot/internal/tags"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "content-plan-bot",
		Short: "Daily Telegram reminder for content-plan deadlines",
		Long: `Reads the published content-plan table and posts a digest of overdue
posts and posts due today, tomorrow and in three days to the team chat.

Without a sub-command the bot runs as a service: it answers commands and
sends the digest every day at REMIND_AT.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadEnvFile(envFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	root.AddCommand(&cobra.Command{
		Use:   "once",
		Short: "Send the digest once and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return once(cmd.Context())
		},
	})

	return root
}

// loadEnvFile loads path into the environment; a missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

type app struct {
	cfg       *config.Config
	log       *slog.Logger
	store     *storage.SQLite
	bot       *bot.Bot
	clock     *dates.Clock
	collector *metrics.Collector
	reminder  *reminder.Service
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		return nil, err
	}

	log := newLogger(cfg.LogLevel)

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Error("create data directory", "path", dir, "error", err)
			return nil, err
		}
	}

	store, err := storage.NewSQLite(cfg.DatabasePath)
	if err != nil {
		log.Error("open database", "path", cfg.DatabasePath, "error", err)
		return nil, err
	}

	b, err := bot.New(cfg.TelegramBotToken, store, cfg, log)
	if err != nil {
		_ = store.Close()
		log.Error("create bot", "error", err)
		return nil, err
	}

	plan := cfg.Plan
	builder := digest.NewBuilder(digest.Options{
		Resolver:     tags.NewResolver(plan.Handles, plan.HandlePrefix),
		GlobalTags:   plan.GlobalTags,
		DoneStatuses: plan.DoneStatuses,
		Sentinels: digest.Sentinels{
			NoPlatform: plan.NoPlatform,
			NoAuthor:   plan.NoAuthor,
			NoStatus:   plan.NoStatus,
		},
	}, log)

	clock := dates.NewClock(cfg.Location())
	collector := metrics.New()

	svc := reminder.New(reminder.Options{
		SheetURL: cfg.SheetURL,
		Columns:  plan.Columns,
		Fetcher:  fetcher.New(http.DefaultClient),
		Builder:  builder,
		Clock:    clock,
		Sender:   b,
		Store:    store,
		Observer: collector,
		Log:      log,
	})
	b.SetReminder(svc)

	return &app{
		cfg:       cfg,
		log:       log,
		store:     store,
		bot:       b,
		clock:     clock,
		collector: collector,
		reminder:  svc,
	}, nil
}

func serve(parent context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.store.Close() }()

	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sched := scheduler.New(a.reminder, a.store, a.clock, a.cfg.RemindAtMinutes(), a.log)

	a.log.Info("starting bot",
		"timezone", a.cfg.Timezone,
		"remind_at", a.cfg.RemindAt,
		"chat_id", a.cfg.ChatID,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.bot.Run(gctx)
		return nil
	})
	g.Go(func() error {
		sched.Run(gctx)
		return nil
	})
	if a.cfg.MetricsAddr != "" {
		g.Go(func() error {
			return a.collector.Serve(gctx, a.cfg.MetricsAddr, a.log)
		})
	}

	err = g.Wait()
	a.log.Info("bot stopped")
	return err
}

func once(parent context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.store.Close() }()

	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	run, err := a.reminder.Run(ctx, model.TriggerCLI)
	if err != nil {
		return err
	}
	fmt.Println(bot.FormatRunResult(run))
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
