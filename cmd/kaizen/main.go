package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"kaizen/internal/auth"
	"kaizen/internal/config"
	"kaizen/internal/habit"
	"kaizen/internal/localstore"
	"kaizen/internal/logger"
	"kaizen/internal/notify"
	"kaizen/internal/repository"
	"kaizen/internal/scheduler"
	"kaizen/internal/settings"
	"kaizen/internal/task"
	"kaizen/internal/tui"
	"kaizen/internal/tui/glass"
	"kaizen/internal/tui/retro"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := os.MkdirAll(cfg.ProfileDir, 0o755); err != nil {
		log.Fatalf("profile dir: %v", err)
	}

	if err := logger.Init(cfg.LogPath, cfg.Development); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	store, err := localstore.OpenFile(filepath.Join(cfg.ProfileDir, "store.json"))
	if err != nil {
		log.Fatalf("local store: %v", err)
	}

	var provider auth.Provider = auth.GuestProvider{}
	if cfg.GoogleSignIn {
		provider = auth.NewGoogleProvider(cfg.ProfileDir)
	}
	identity := auth.WaitForState(ctx, provider, 5*time.Second)

	var (
		tasks   task.Service
		cloud   *task.CloudService
		ownerID = "guest"
	)
	if identity != nil {
		db, err := repository.NewDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		cloud = task.NewCloudService(repository.NewTaskRepository(db))
		tasks = cloud
		ownerID = identity.UID
		logger.Info("signed in", zap.String("uid", identity.UID))
	} else {
		tasks = task.NewGuestService(store)
		logger.Info("running as guest")
	}

	var notifier notify.Notifier = notify.NotifierFunc(func(a notify.Alert) error {
		logger.Info("reminder", zap.String("task_id", a.TaskID), zap.Int("threshold", a.Threshold))
		return nil
	})
	scanner := notify.NewScanner(notifier, time.Local)
	if cfg.TelegramToken != "" {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChat)
		if err != nil {
			log.Fatalf("telegram: %v", err)
		}
		scanner = notify.NewScanner(tg, time.Local)
		scanner.SetPermission(notify.PermissionGranted)
	}

	habits := habit.NewService(store)

	cron := scheduler.New(time.Local)
	if cloud != nil {
		if _, err := cron.ScheduleInterval(cfg.ScanInterval, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			cloud.Refresh(jobCtx)
		}); err != nil {
			log.Fatalf("schedule refresh: %v", err)
		}
	}
	// Streaks depend on the calendar day, so recompute them at midnight.
	if _, err := cron.ScheduleDaily("00:00", func() {
		if err := habits.ReplaceAll(habits.List()); err != nil {
			logger.Warn("streak refresh", zap.Error(err))
		}
	}); err != nil {
		log.Fatalf("schedule streak refresh: %v", err)
	}
	cron.Start()
	defer cron.Stop()

	deps := tui.Deps{
		Tasks:      tasks,
		Habits:     habits,
		Settings:   settings.NewService(store),
		Scanner:    scanner,
		Auth:       provider,
		Identity:   identity,
		OwnerID:    ownerID,
		ProfileDir: cfg.ProfileDir,
		Now:        time.Now,
	}

	var root tea.Model
	if cfg.UI == "glass" {
		root = glass.New(deps)
	} else {
		root = retro.New(deps)
	}

	program := tea.NewProgram(root, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		logger.Error("ui", err)
		log.Fatalf("ui: %v", err)
	}
}
