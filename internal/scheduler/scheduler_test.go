package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"BreakoutSniper/internal/broker"
	"BreakoutSniper/internal/collector"
	"BreakoutSniper/internal/config"
	"BreakoutSniper/internal/model"
	"BreakoutSniper/internal/recorder"
	"BreakoutSniper/internal/scanner"
	"BreakoutSniper/internal/sizing"
)

type captureNotifier struct {
	subject string
	body    string
	sent    int
}

func (c *captureNotifier) Send(_ context.Context, subject, body string) error {
	c.subject, c.body = subject, body
	c.sent++
	return nil
}

type captureRecorder struct {
	records []*recorder.RunRecord
}

func (c *captureRecorder) RecordRun(r *recorder.RunRecord) error {
	c.records = append(c.records, r)
	return nil
}

func (c *captureRecorder) Close() error { return nil }

// breakoutBars mirrors the scanner fixture: chop, then a clean run with a
// volume spike on the last bar.
func breakoutBars() []model.OHLCV {
	bars := make([]model.OHLCV, 60)
	for i := 0; i < 40; i++ {
		c := 10 - 0.01*float64(i)
		if i%2 == 1 {
			c += 0.2
		} else {
			c -= 0.2
		}
		bars[i] = model.OHLCV{Open: c, High: c + 0.15, Low: c - 0.15, Close: c, Volume: 1000000}
	}
	for i := 40; i < 60; i++ {
		c := 10 + float64(i-40)*(10.0/19.0)
		bars[i] = model.OHLCV{Open: c, High: c + 0.15, Low: c - 0.15, Close: c, Volume: 1000000}
	}
	bars[59].Volume = 2000000
	return bars
}

func flatBars() []model.OHLCV {
	bars := make([]model.OHLCV, 60)
	for i := range bars {
		bars[i] = model.OHLCV{Open: 10, High: 10.1, Low: 9.9, Close: 10, Volume: 1000000}
	}
	return bars
}

type harness struct {
	sched    *Scheduler
	broker   *broker.MockBroker
	notifier *captureNotifier
	recorder *captureRecorder
}

func newHarness(t *testing.T, br *broker.MockBroker) *harness {
	t.Helper()

	tickers := filepath.Join(t.TempDir(), "tickers.txt")
	if err := os.WriteFile(tickers, []byte("AAA\nBBB\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{}
	cfg.Scan.TickersFile = tickers
	cfg.Scan.Workers = 2
	cfg.Scan.TideBenchmark = "SPY"
	cfg.Scan.TidePeriod = 20
	cfg.Scan.TideDaysBack = 40
	cfg.Sizing.MaxCandidates = 20
	cfg.Sizing.MaxSlotCash = 5000
	cfg.Sizing.PDTEquityThreshold = 30000
	cfg.Sizing.PDTDayTradeLimit = 2
	cfg.Sizing.TargetPct = 0.045
	cfg.Sizing.StopPct = 0.015
	cfg.Sizing.TickDecimals = 2

	fetcher := &collector.MockFetcher{Data: map[string][]model.OHLCV{
		"AAA": breakoutBars(),
		"BBB": flatBars(),
		"SPY": collector.GenerateBars(400, 500, 1e6, 60),
	}}

	gate, err := NewGate("America/New_York", "15:45", "15:59", 50*time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	nt := &captureNotifier{}
	rec := &captureRecorder{}
	log := zerolog.Nop()
	sched := New(context.Background(), cfg, fetcher,
		collector.NewCollector(fetcher, 100, 365, log),
		scanner.New(scanner.DefaultRule(), log),
		sizing.NewSizer(log),
		sizing.NewPlanner(sizing.Brackets{TargetPct: 0.045, StopPct: 0.015, TickDecimals: 2}),
		br, nt, rec, gate, log)

	return &harness{sched: sched, broker: br, notifier: nt, recorder: rec}
}

func TestRunScan_EndToEnd(t *testing.T) {
	h := newHarness(t, &broker.MockBroker{
		AccountState: broker.Account{Equity: 100000, DayTradeCount: 0},
	})

	if err := h.sched.runScan(context.Background(), "03:50 PM EST"); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(h.recorder.records) != 1 {
		t.Fatalf("expected one recorded run, got %d", len(h.recorder.records))
	}
	summary := h.recorder.records[0].Summary

	if summary.Stats.Attempted != 2 || summary.Stats.ValidSeries != 2 {
		t.Errorf("funnel head wrong: %+v", summary.Stats)
	}
	if len(summary.Candidates) != 1 || summary.Candidates[0].Symbol != "AAA" {
		t.Fatalf("expected AAA as the only hit, got %v", summary.Candidates)
	}
	if !summary.TideHealthy {
		t.Errorf("rising benchmark should read healthy: %s", summary.TideStatus)
	}

	if len(h.broker.Submitted) != 1 {
		t.Fatalf("expected one bracket order, got %d", len(h.broker.Submitted))
	}
	plan := h.broker.Submitted[0]
	if plan.Symbol != "AAA" || plan.Quantity < 1 {
		t.Errorf("bad plan submitted: %+v", plan)
	}
	if plan.TakeProfitPrice <= plan.EntryPrice || plan.StopPrice >= plan.EntryPrice {
		t.Errorf("brackets must straddle entry: %+v", plan)
	}

	if h.notifier.sent != 1 {
		t.Fatalf("expected one report, got %d", h.notifier.sent)
	}
	if !strings.Contains(h.notifier.subject, "1") {
		t.Errorf("subject should carry the hit count, got %q", h.notifier.subject)
	}
	if !strings.Contains(h.notifier.body, "AAA") || !strings.Contains(h.notifier.body, "PLACED LIMIT BUY") {
		t.Errorf("report body missing hit or execution line")
	}
}

func TestRunScan_Deterministic(t *testing.T) {
	h := newHarness(t, &broker.MockBroker{
		AccountState: broker.Account{Equity: 100000},
	})

	ctx := context.Background()
	if err := h.sched.runScan(ctx, "03:50 PM EST"); err != nil {
		t.Fatal(err)
	}
	if err := h.sched.runScan(ctx, "03:50 PM EST"); err != nil {
		t.Fatal(err)
	}

	if len(h.recorder.records) != 2 {
		t.Fatalf("expected two recorded runs, got %d", len(h.recorder.records))
	}
	a, b := h.recorder.records[0].Summary, h.recorder.records[1].Summary
	if !reflect.DeepEqual(a.Candidates, b.Candidates) {
		t.Errorf("candidates differ between identical runs:\n%v\n%v", a.Candidates, b.Candidates)
	}
	if !reflect.DeepEqual(a.Plans, b.Plans) {
		t.Errorf("plans differ between identical runs:\n%v\n%v", a.Plans, b.Plans)
	}
}

func TestRunScan_PDTBlocked(t *testing.T) {
	h := newHarness(t, &broker.MockBroker{
		AccountState: broker.Account{Equity: 25000, DayTradeCount: 2},
	})

	if err := h.sched.runScan(context.Background(), "03:50 PM EST"); err != nil {
		t.Fatalf("blocked run is still a successful run: %v", err)
	}

	summary := h.recorder.records[0].Summary
	if !summary.Blocked || !strings.Contains(summary.BlockedReason, "PDT") {
		t.Fatalf("expected PDT block, got %+v", summary)
	}
	if len(h.broker.Submitted) != 0 {
		t.Errorf("blocked run must not submit orders, got %d", len(h.broker.Submitted))
	}
	if !strings.Contains(h.notifier.body, "BLOCKED") {
		t.Error("report should surface the block")
	}
}

func TestRunScan_SkipsHeldSymbols(t *testing.T) {
	h := newHarness(t, &broker.MockBroker{
		AccountState: broker.Account{Equity: 100000},
		Held:         []model.Position{{Symbol: "AAA", Quantity: 10}},
	})

	if err := h.sched.runScan(context.Background(), "03:50 PM EST"); err != nil {
		t.Fatal(err)
	}
	if len(h.broker.Submitted) != 0 {
		t.Errorf("held symbol must not be bought again, got %v", h.broker.Submitted)
	}
	// The hit still shows in the report even though no order went out.
	if len(h.recorder.records[0].Summary.Candidates) != 1 {
		t.Error("candidate list should be independent of portfolio state")
	}
}

func TestRunScan_MissingUniverseFails(t *testing.T) {
	h := newHarness(t, &broker.MockBroker{AccountState: broker.Account{Equity: 100000}})
	h.sched.cfg.Scan.TickersFile = filepath.Join(t.TempDir(), "nope.txt")

	if err := h.sched.runScan(context.Background(), "03:50 PM EST"); err == nil {
		t.Fatal("expected error for missing universe file")
	}
	if h.notifier.sent != 0 {
		t.Error("failed run must not send a report")
	}
}
