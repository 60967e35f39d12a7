package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sandeepkv93/plannerd/internal/config"
	"github.com/sandeepkv93/plannerd/internal/export"
	"github.com/sandeepkv93/plannerd/internal/query"
	"github.com/sandeepkv93/plannerd/internal/reminder"
	"github.com/sandeepkv93/plannerd/internal/repository"
	"github.com/sandeepkv93/plannerd/internal/stats"
	"github.com/sandeepkv93/plannerd/internal/storage"
)

type flags struct {
	configPath string
	dataFile   string
	exportPath string
}

func main() {
	if err := run(parseFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "plannerd failed: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.configPath, "config", "plannerd.yaml", "Path to config file")
	flag.StringVar(&f.dataFile, "data", "", "Data file path (overrides config if set)")
	flag.StringVar(&f.exportPath, "export", "", "Write schedules as iCalendar to this path and exit")
	flag.Parse()
	return f
}

func run(f flags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	if f.dataFile != "" {
		cfg.DataFile = f.dataFile
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("plannerd starting",
		"data_file", cfg.DataFile,
		"check_interval_seconds", cfg.CheckIntervalSeconds,
		"log_level", cfg.LogLevel,
	)

	fileStore := storage.NewFileStore(cfg.DataFile)
	store, err := fileStore.Load()
	if errors.Is(err, storage.ErrCorrupt) {
		// Recover with a fresh store, but never silently.
		logger.Warn("data file unreadable, starting with defaults", "error", err)
	} else if err != nil {
		return err
	}

	repo := repository.New(store, fileStore)
	queries := query.NewEngine(repo)

	if f.exportPath != "" {
		return exportCalendar(logger, queries, f.exportPath)
	}

	aggregator := stats.New(queries)
	completion := aggregator.Completion()
	logger.Info("store loaded",
		"categories", len(queries.Categories()),
		"schedules", completion.Total,
		"plans", len(queries.Plans()),
		"completion_rate", completion.CompletionRate,
	)

	svc := reminder.New(queries, repo,
		reminder.WithInterval(time.Duration(cfg.CheckIntervalSeconds)*time.Second),
		reminder.WithBuffer(cfg.EventBuffer),
	)
	if err := svc.Start(); err != nil {
		return err
	}

	go consumeEvents(logger, svc)
	go func() {
		for range repo.Changes() {
			logger.Debug("store changed")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("signal received, shutting down", "signal", sig.String())

	svc.Stop()
	logger.Info("plannerd exiting", "dropped_events", svc.Dropped())
	return nil
}

// consumeEvents logs each due reminder and dismisses it: in a headless
// daemon, delivery is the notification.
func consumeEvents(logger *slog.Logger, svc *reminder.Service) {
	for ev := range svc.C() {
		s := ev.Schedule
		logger.Info("reminder due",
			"schedule_id", s.ID,
			"title", s.Title,
			"start_time", s.StartTime,
			"category", s.Category,
		)
		if err := svc.Dismiss(s.ID); err != nil {
			logger.Error("dismiss reminder", "schedule_id", s.ID, "error", err)
		}
	}
}

func exportCalendar(logger *slog.Logger, queries *query.Engine, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer out.Close()

	items := queries.Filter(query.Filter{})
	if err := export.Write(out, items); err != nil {
		return err
	}
	logger.Info("calendar exported", "path", path, "schedules", len(items))
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
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
