package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"BreakoutSniper/internal/broker"
	"BreakoutSniper/internal/collector"
	"BreakoutSniper/internal/config"
	"BreakoutSniper/internal/metrics"
	"BreakoutSniper/internal/model"
	"BreakoutSniper/internal/notifier"
	"BreakoutSniper/internal/recorder"
	"BreakoutSniper/internal/scanner"
	"BreakoutSniper/internal/sizing"
)

// Scheduler owns the cron task and the full run: gate, tide, universe,
// fan-out scan, rank, size, plan, submit, record, report.
type Scheduler struct {
	cron      *cron.Cron
	cfg       *config.Config
	fetcher   collector.Fetcher
	collector *collector.Collector
	scanner   *scanner.Scanner
	sizer     *sizing.Sizer
	planner   *sizing.Planner
	broker    broker.Broker
	notifier  notifier.Notifier
	recorder  recorder.Recorder
	gate      *Gate
	ctx       context.Context
	log       zerolog.Logger
}

// New creates a Scheduler wiring all collaborators together.
func New(ctx context.Context, cfg *config.Config, fetcher collector.Fetcher, col *collector.Collector,
	sc *scanner.Scanner, sz *sizing.Sizer, pl *sizing.Planner, br broker.Broker,
	nt notifier.Notifier, rec recorder.Recorder, gate *Gate, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds(), cron.WithLocation(gate.Location)),
		cfg:       cfg,
		fetcher:   fetcher,
		collector: col,
		scanner:   sc,
		sizer:     sz,
		planner:   pl,
		broker:    br,
		notifier:  nt,
		recorder:  rec,
		gate:      gate,
		ctx:       ctx,
		log:       log.With().Str("component", "scheduler").Logger(),
	}
}

// Register adds the daily scan task.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info().Msg("scheduler stopped")
}

// RunScanNow executes the scan task immediately, bypassing the window gate.
// Used for manual trigger / RUN_ON_START.
func (s *Scheduler) RunScanNow() {
	if err := s.runScan(s.ctx, time.Now().In(s.gate.Location).Format("03:04 PM MST")); err != nil {
		s.log.Error().Err(err).Msg("manual scan failed")
	}
}

func (s *Scheduler) scanTask() {
	ok, msg := s.gate.Wait(s.ctx)
	if !ok {
		s.log.Info().Str("reason", msg).Msg("skipping scan")
		return
	}
	if err := s.runScan(s.ctx, msg); err != nil {
		s.log.Error().Err(err).Msg("scan run failed")
	}
}

func (s *Scheduler) runScan(ctx context.Context, runAt string) error {
	started := time.Now()
	defer func() {
		metrics.RunDuration.Observe(time.Since(started).Seconds())
	}()
	s.log.Info().Str("run_at", runAt).Msg("starting scan run")

	summary := &model.RunSummary{}
	summary.TideHealthy, summary.TideStatus = collector.MarketTide(
		ctx, s.fetcher, s.cfg.Scan.TideBenchmark, s.cfg.Scan.TidePeriod, s.cfg.Scan.TideDaysBack)
	s.log.Info().Str("tide", summary.TideStatus).Msg("market tide checked")

	universe, err := collector.LoadUniverse(s.cfg.Scan.TickersFile)
	if err != nil {
		return fmt.Errorf("load universe: %w", err)
	}
	summary.Stats.Attempted = len(universe)

	series, failures := s.collector.CollectUniverse(ctx, universe)
	summary.Errors = append(summary.Errors, failures...)
	if ctx.Err() != nil {
		return fmt.Errorf("collect universe: %w", ctx.Err())
	}
	summary.Stats.ValidSeries = len(series)

	outcomes := s.scanner.ScanAll(ctx, series, s.cfg.Scan.Workers)
	if ctx.Err() != nil {
		return fmt.Errorf("scan universe: %w", ctx.Err())
	}
	tallyFunnel(&summary.Stats, outcomes)

	ranked := scanner.Rank(scanner.Candidates(outcomes))
	summary.Candidates = ranked
	metrics.CandidatesFound.Add(float64(len(ranked)))
	s.log.Info().
		Int("attempted", summary.Stats.Attempted).
		Int("valid", summary.Stats.ValidSeries).
		Int("liquidity", summary.Stats.PassedLiquidity).
		Int("trend", summary.Stats.PassedTrend).
		Int("hits", len(ranked)).
		Msg("scan funnel complete")

	positions, err := s.execute(ctx, summary, ranked)
	if err != nil {
		return err
	}

	if err := s.recorder.RecordRun(&recorder.RunRecord{RunAt: started, Summary: summary}); err != nil {
		s.log.Error().Err(err).Msg("record run")
	}

	subject := notifier.FormatSubject(summary)
	body := notifier.FormatScanReport(summary, positions, runAt)
	if err := s.notifier.Send(ctx, subject, body); err != nil {
		s.log.Error().Err(err).Msg("send report")
	}
	return nil
}

// execute queries broker state, sizes the ranked candidates, and submits
// bracket orders. Per-symbol submit failures go to the execution log; only
// an unusable broker session aborts the run.
func (s *Scheduler) execute(ctx context.Context, summary *model.RunSummary, ranked []model.Candidate) ([]model.Position, error) {
	account, err := s.broker.Account(ctx)
	if err != nil {
		return nil, fmt.Errorf("broker account: %w", err)
	}
	positions, err := s.broker.Positions(ctx)
	if err != nil {
		return nil, fmt.Errorf("broker positions: %w", err)
	}
	pending, err := s.broker.OpenOrderSymbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("broker open orders: %w", err)
	}

	taken := make(map[string]bool, len(positions)+len(pending))
	for _, p := range positions {
		taken[p.Symbol] = true
	}
	for _, sym := range pending {
		taken[sym] = true
	}

	rc := model.RiskConstraints{
		Equity:             account.Equity,
		MaxSlotCash:        s.cfg.Sizing.MaxSlotCash,
		MaxCandidates:      s.cfg.Sizing.MaxCandidates,
		DayTradeCount:      account.DayTradeCount,
		PDTEquityThreshold: s.cfg.Sizing.PDTEquityThreshold,
		PDTDayTradeLimit:   s.cfg.Sizing.PDTDayTradeLimit,
	}
	allocs, blocked, reason := s.sizer.Allocate(ranked, rc, taken)
	if blocked {
		summary.Blocked = true
		summary.BlockedReason = reason
		return positions, nil
	}

	for _, a := range allocs {
		plan, err := s.planner.BuildPlan(a)
		if err != nil {
			summary.Errors = append(summary.Errors, err.Error())
			s.log.Warn().Err(err).Str("symbol", a.Candidate.Symbol).Msg("planning failure")
			continue
		}
		summary.Plans = append(summary.Plans, plan)
		if err := s.broker.SubmitBracket(ctx, plan); err != nil {
			metrics.OrdersSubmitted.WithLabelValues("error").Inc()
			summary.ExecutionLog = append(summary.ExecutionLog,
				fmt.Sprintf("Err %s: %v", plan.Symbol, err))
			continue
		}
		metrics.OrdersSubmitted.WithLabelValues("ok").Inc()
		summary.ExecutionLog = append(summary.ExecutionLog,
			fmt.Sprintf("PLACED LIMIT BUY %d %s @ $%.2f", plan.Quantity, plan.Symbol, plan.EntryPrice))
	}
	return positions, nil
}

func tallyFunnel(stats *model.FunnelStats, outcomes []model.Outcome) {
	for _, o := range outcomes {
		if o.Symbol == "" {
			continue
		}
		metrics.SymbolsScanned.WithLabelValues("scanned").Inc()
		switch o.Reason {
		case model.RejectInsufficientData, model.RejectFetchError:
			continue
		case model.RejectLiquidity:
			continue
		}
		stats.PassedLiquidity++
		switch o.Reason {
		case model.RejectTrend, model.RejectMomentum:
			continue
		}
		stats.PassedTrend++
		metrics.SymbolsScanned.WithLabelValues("signal").Inc()
		if o.Candidate != nil {
			stats.PassedBacktest++
		}
	}
}
