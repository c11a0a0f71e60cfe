package recorder

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log.With().Str("component", "recorder").Logger()}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	r.log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_runs (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			attempted        INTEGER,
			valid_series     INTEGER,
			passed_liquidity INTEGER,
			passed_trend     INTEGER,
			passed_backtest  INTEGER,
			hits             INTEGER,
			plans            INTEGER,
			blocked          INTEGER,
			blocked_reason   TEXT,
			tide_healthy     INTEGER,
			tide_status      TEXT,
			errors           TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON scan_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS candidates (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id    INTEGER NOT NULL,
			rank      INTEGER,
			symbol    TEXT,
			win_rate  REAL,
			price     REAL,
			FOREIGN KEY(run_id) REFERENCES scan_runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_run ON candidates(run_id)`,

		`CREATE TABLE IF NOT EXISTS position_plans (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      INTEGER NOT NULL,
			symbol      TEXT,
			quantity    INTEGER,
			entry_price REAL,
			take_profit REAL,
			stop_price  REAL,
			FOREIGN KEY(run_id) REFERENCES scan_runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_plans_run ON position_plans(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun writes the run summary and its candidates and plans.
func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sum := rec.Summary
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO scan_runs
		(timestamp, attempted, valid_series, passed_liquidity, passed_trend, passed_backtest,
		 hits, plans, blocked, blocked_reason, tide_healthy, tide_status, errors)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.RunAt.Unix(),
		sum.Stats.Attempted, sum.Stats.ValidSeries, sum.Stats.PassedLiquidity,
		sum.Stats.PassedTrend, sum.Stats.PassedBacktest,
		len(sum.Candidates), len(sum.Plans),
		boolToInt(sum.Blocked), sum.BlockedReason,
		boolToInt(sum.TideHealthy), sum.TideStatus,
		strings.Join(sum.Errors, "; "),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for i, c := range sum.Candidates {
		if _, err := tx.Exec(`INSERT INTO candidates (run_id, rank, symbol, win_rate, price)
			VALUES (?,?,?,?,?)`, runID, i+1, c.Symbol, c.WinRate, c.Price); err != nil {
			return fmt.Errorf("insert candidate %s: %w", c.Symbol, err)
		}
	}
	for _, p := range sum.Plans {
		if _, err := tx.Exec(`INSERT INTO position_plans
			(run_id, symbol, quantity, entry_price, take_profit, stop_price)
			VALUES (?,?,?,?,?,?)`,
			runID, p.Symbol, p.Quantity, p.EntryPrice, p.TakeProfitPrice, p.StopPrice); err != nil {
			return fmt.Errorf("insert plan %s: %w", p.Symbol, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
