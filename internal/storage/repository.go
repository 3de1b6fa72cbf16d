package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rpgo/financial-planner/internal/domain"
	"github.com/rpgo/financial-planner/pkg/money"

	_ "modernc.org/sqlite"
)

// ErrRunNotFound is returned when no run has the requested id.
var ErrRunNotFound = errors.New("simulation run not found")

// Run is one persisted simulation: its inputs and its outputs.
type Run struct {
	ID            string
	Name          string
	StartYear     int
	EndYear       int
	InflationRate decimal.Decimal
	Scenario      domain.RawConfig
	CreatedAt     time.Time
	Results       []domain.PeriodResult
	Warnings      []domain.Warning
}

// RunSummary is the listing form of a Run.
type RunSummary struct {
	ID        string
	Name      string
	StartYear int
	EndYear   int
	Years     int
	CreatedAt time.Time
}

// nowFunc is replaced in tests.
var nowFunc = func() time.Time { return time.Now().UTC() }

type SQLiteRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteRepository opens (creating if needed) the database at dbPath and
// applies pending migrations.
func NewSQLiteRepository(dbPath string, logger *slog.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, logger: logger.With("component", "storage")}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveRun stores run with its results and warnings in one transaction. An
// empty ID is filled with a new UUID and a zero CreatedAt with the current
// time. It returns the run id.
func (r *SQLiteRepository) SaveRun(ctx context.Context, run *Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = nowFunc()
	}

	scenarioJSON, err := json.Marshal(map[string]any(run.Scenario))
	if err != nil {
		return "", fmt.Errorf("encode scenario: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO simulation_runs (id, name, start_year, end_year, inflation_rate, scenario_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Name, run.StartYear, run.EndYear, run.InflationRate.String(), string(scenarioJSON),
		run.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, res := range run.Results {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO period_results (run_id, year, total_income, total_taxes, total_mandatory_expenses,
			 leftover, naive_discretionary, living_costs, housing_costs) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, res.Year,
			money.String(res.TotalIncome), money.String(res.TotalTaxes), money.String(res.TotalMandatoryExpenses),
			money.String(res.Leftover), money.String(res.NaiveDiscretionary),
			money.String(res.LivingCosts), money.String(res.HousingCosts))
		if err != nil {
			return "", fmt.Errorf("insert result for %d: %w", res.Year, err)
		}
	}

	for i, w := range run.Warnings {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_warnings (run_id, seq, year, event, code, message) VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, i, w.Year, string(w.Event), w.Code, w.Message)
		if err != nil {
			return "", fmt.Errorf("insert warning: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}

	r.logger.InfoContext(ctx, "simulation run saved",
		"id", run.ID,
		"name", run.Name,
		"years", len(run.Results),
		"warnings", len(run.Warnings))
	return run.ID, nil
}

// ListRuns returns the most recent runs first. A non-positive limit lists all.
func (r *SQLiteRepository) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.id, r.name, r.start_year, r.end_year, r.created_at,
		        (SELECT COUNT(*) FROM period_results p WHERE p.run_id = r.id)
		 FROM simulation_runs r
		 ORDER BY r.created_at DESC, r.id
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var s RunSummary
		var created string
		if err := rows.Scan(&s.ID, &s.Name, &s.StartYear, &s.EndYear, &created, &s.Years); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if s.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parse created_at for %s: %w", s.ID, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// LoadRun reads a run with its results ordered by year.
func (r *SQLiteRepository) LoadRun(ctx context.Context, id string) (*Run, error) {
	run := &Run{ID: id}
	var inflation, scenarioJSON, created string
	err := r.db.QueryRowContext(ctx,
		`SELECT name, start_year, end_year, inflation_rate, scenario_json, created_at
		 FROM simulation_runs WHERE id = ?`, id).
		Scan(&run.Name, &run.StartYear, &run.EndYear, &inflation, &scenarioJSON, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}

	if run.InflationRate, err = decimal.NewFromString(inflation); err != nil {
		return nil, fmt.Errorf("parse inflation_rate for %s: %w", id, err)
	}
	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("parse created_at for %s: %w", id, err)
	}
	var scenario map[string]any
	if err := json.Unmarshal([]byte(scenarioJSON), &scenario); err != nil {
		return nil, fmt.Errorf("decode scenario for %s: %w", id, err)
	}
	if scenario != nil {
		run.Scenario = domain.RawConfig(scenario)
	}

	if run.Results, err = r.loadResults(ctx, id); err != nil {
		return nil, err
	}
	if run.Warnings, err = r.loadWarnings(ctx, id); err != nil {
		return nil, err
	}
	return run, nil
}

func (r *SQLiteRepository) loadResults(ctx context.Context, id string) ([]domain.PeriodResult, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT year, total_income, total_taxes, total_mandatory_expenses, leftover,
		        naive_discretionary, living_costs, housing_costs
		 FROM period_results WHERE run_id = ? ORDER BY year`, id)
	if err != nil {
		return nil, fmt.Errorf("load results for %s: %w", id, err)
	}
	defer rows.Close()

	var out []domain.PeriodResult
	for rows.Next() {
		var res domain.PeriodResult
		var cols [7]string
		if err := rows.Scan(&res.Year, &cols[0], &cols[1], &cols[2], &cols[3], &cols[4], &cols[5], &cols[6]); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		targets := []*decimal.Decimal{
			&res.TotalIncome, &res.TotalTaxes, &res.TotalMandatoryExpenses,
			&res.Leftover, &res.NaiveDiscretionary, &res.LivingCosts, &res.HousingCosts,
		}
		for i, t := range targets {
			if *t, err = decimal.NewFromString(cols[i]); err != nil {
				return nil, fmt.Errorf("parse amount %q for %s/%d: %w", cols[i], id, res.Year, err)
			}
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) loadWarnings(ctx context.Context, id string) ([]domain.Warning, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT year, event, code, message FROM run_warnings WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("load warnings for %s: %w", id, err)
	}
	defer rows.Close()

	var out []domain.Warning
	for rows.Next() {
		var w domain.Warning
		var event string
		if err := rows.Scan(&w.Year, &event, &w.Code, &w.Message); err != nil {
			return nil, fmt.Errorf("scan warning: %w", err)
		}
		w.Event = domain.EventType(event)
		if w.Code == domain.WarningMemberNotFound {
			w.Err = domain.ErrMemberNotFound
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// DeleteRun removes a run and everything recorded for it.
func (r *SQLiteRepository) DeleteRun(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM run_warnings WHERE run_id = ?`,
		`DELETE FROM period_results WHERE run_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("delete run %s: %w", id, err)
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM simulation_runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return tx.Commit()
}
