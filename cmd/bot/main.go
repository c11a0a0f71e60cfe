package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"BreakoutSniper/internal/broker"
	"BreakoutSniper/internal/calculator"
	"BreakoutSniper/internal/collector"
	"BreakoutSniper/internal/config"
	"BreakoutSniper/internal/metrics"
	"BreakoutSniper/internal/notifier"
	"BreakoutSniper/internal/recorder"
	"BreakoutSniper/internal/scanner"
	"BreakoutSniper/internal/scheduler"
	"BreakoutSniper/internal/sizing"
	"BreakoutSniper/internal/util"
)

func main() {
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fallback := util.NewLogger("info")
		fallback.Fatal().Err(err).Msg("load config")
	}

	log := util.NewLogger(cfg.App.LogLevel)
	log.Info().Msg("BreakoutSniper starting")

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	if cfg.App.MetricsAddr != "" {
		metrics.Serve(cfg.App.MetricsAddr)
		log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics server started")
	}

	fetcher := collector.NewAlpacaFetcher(cfg.Alpaca.DataBaseURL, cfg.Secrets.AlpacaAPIKey, cfg.Secrets.AlpacaSecretKey)
	log.Info().Str("source", fetcher.Name()).Msg("data source ready")
	col := collector.NewCollector(fetcher, cfg.Scan.BatchSize, cfg.Scan.DaysBack, log)

	rule := scanner.Rule{
		MinBars:           cfg.Scan.MinBars,
		MinPrice:          cfg.Scan.MinPrice,
		MinAvgVolume:      cfg.Scan.MinAvgVolume,
		MinRelativeVolume: cfg.Scan.MinRelativeVolume,
		VolumeLookback:    cfg.Scan.VolumeLookback,
		WinRateThreshold:  cfg.Scan.WinRateThreshold,
		Horizon:           cfg.Scan.Horizon,
		Periods: calculator.Periods{
			SMAFast:     cfg.Scan.SMAFastPeriod,
			SMASlow:     cfg.Scan.SMASlowPeriod,
			Directional: cfg.Scan.DirectionalPeriod,
		},
	}
	sc := scanner.New(rule, log)
	sz := sizing.NewSizer(log)
	pl := sizing.NewPlanner(sizing.Brackets{
		TargetPct:    cfg.Sizing.TargetPct,
		StopPct:      cfg.Sizing.StopPct,
		TickDecimals: int32(cfg.Sizing.TickDecimals),
	})

	br := broker.NewAlpacaBroker(cfg.Alpaca.TradingBaseURL, cfg.Secrets.AlpacaAPIKey, cfg.Secrets.AlpacaSecretKey)

	var nt notifier.Notifier
	if cfg.Email.Host != "" {
		nt = notifier.NewEmailNotifier(cfg.Email.Host, cfg.Email.Port,
			cfg.Secrets.EmailUser, cfg.Secrets.EmailPass,
			cfg.Secrets.EmailUser, cfg.Secrets.EmailReceiver, log)
	} else {
		log.Warn().Msg("email not configured, reports disabled")
		nt = notifier.NewNoopNotifier()
	}

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	gate, err := scheduler.NewGate(cfg.Schedule.Timezone, cfg.Schedule.WindowStart,
		cfg.Schedule.WindowCutoff, time.Duration(cfg.Schedule.MaxWaitMinute)*time.Minute)
	if err != nil {
		log.Fatal().Err(err).Msg("init execution window")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(ctx, cfg, fetcher, col, sc, sz, pl, br, nt, rec, gate, log)
	if err := sched.Register(cfg.Schedule.ScanCron); err != nil {
		log.Fatal().Err(err).Msg("register cron task")
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, executing scan now")
		go sched.RunScanNow()
	}

	log.Info().Msg("BreakoutSniper is running, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	cancel()
	log.Info().Msg("BreakoutSniper stopped")
}
