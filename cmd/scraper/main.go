package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oddsfeed/veribet-scraper/internal/pkg/browser"
	pkgconfig "github.com/oddsfeed/veribet-scraper/internal/pkg/config"
	"github.com/oddsfeed/veribet-scraper/internal/pkg/logging"
	"github.com/oddsfeed/veribet-scraper/internal/pkg/notify"
	"github.com/oddsfeed/veribet-scraper/internal/pkg/sink"
	"github.com/oddsfeed/veribet-scraper/internal/scraper"
)

const defaultConfigPath = "configs/production.yaml"

type config struct {
	configPath string
	runFor     time.Duration
	once       bool
}

func main() {
	if err := run(); err != nil {
		slog.Error("Scraper failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := parseFlags()

	appConfig, err := pkgconfig.Load(cfg.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logging.Setup(&appConfig.Logging, "scraper")
	slog.Info("Config loaded", "url", appConfig.Scraper.BaseURL,
		"interval", appConfig.Scraper.Interval)

	ctx, cancel := createContext(cfg.runFor)
	defer cancel()
	setupSignalHandler(ctx, cancel)

	b, err := browser.Start(ctx, appConfig.Scraper.MaxRetries)
	if err != nil {
		return err
	}
	defer b.Close()

	sinks := buildSinks(appConfig)
	defer sinks.Close()

	var notifier *notify.TelegramNotifier
	if appConfig.Telegram.BotToken != "" {
		notifier = notify.NewTelegramNotifier(appConfig.Telegram.BotToken, appConfig.Telegram.ChatID)
	}

	s := scraper.New(b, &appConfig.Scraper)
	return runLoop(ctx, cfg, appConfig, b, s, sinks, notifier)
}

func runLoop(
	ctx context.Context,
	cfg config,
	appConfig *pkgconfig.Config,
	b *browser.Browser,
	s *scraper.Scraper,
	sinks sink.Sink,
	notifier *notify.TelegramNotifier,
) error {
	for {
		select {
		case <-ctx.Done():
			slog.Info("Scraper stopped gracefully")
			return nil
		default:
		}

		start := time.Now()
		if err := b.Navigate(ctx, appConfig.Scraper.BaseURL); err != nil {
			slog.Warn("Navigation failed, skipping cycle", "error", err)
		} else {
			lines := s.RunCycle(ctx)
			if err := sinks.Write(ctx, lines); err != nil {
				slog.Warn("Failed to deliver betting lines", "error", err)
			}
			slog.Info("Scrape cycle complete",
				"lines", len(lines), "duration", time.Since(start).Round(time.Millisecond))
			notifier.NotifyCycle(len(lines), time.Since(start))
		}

		if cfg.once {
			return nil
		}

		select {
		case <-ctx.Done():
			slog.Info("Scraper stopped gracefully")
			return nil
		case <-time.After(appConfig.Scraper.Interval):
		}
	}
}

func buildSinks(appConfig *pkgconfig.Config) sink.Sink {
	sinks := []sink.Sink{sink.NewJSONFile(appConfig.Output.Path)}
	if appConfig.Output.Stdout {
		sinks = append(sinks, sink.NewStdout())
	}
	if appConfig.Postgres.DSN != "" {
		pg, err := sink.NewPostgres(&appConfig.Postgres)
		if err != nil {
			slog.Warn("Postgres sink unavailable, continuing without it", "error", err)
		} else {
			sinks = append(sinks, pg)
		}
	}
	return sink.NewMulti(sinks...)
}

func parseFlags() config {
	var cfg config

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	flag.StringVar(&cfg.configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.DurationVar(&cfg.runFor, "run-for", 0, "Auto-stop after duration (e.g. 10s, 1m). 0 = run until SIGINT/SIGTERM")
	flag.BoolVar(&cfg.once, "once", false, "Run a single scrape cycle and exit")
	flag.Parse()
	return cfg
}

func createContext(runFor time.Duration) (context.Context, context.CancelFunc) {
	if runFor > 0 {
		return context.WithTimeout(context.Background(), runFor)
	}
	return context.WithCancel(context.Background())
}

func setupSignalHandler(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("Received shutdown signal, stopping scraper...", "signal", sig.String())
			cancel()
		case <-ctx.Done():
			signal.Stop(sigChan)
			close(sigChan)
		}
	}()
}
