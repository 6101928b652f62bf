package rundb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"stairforge.ai/internal/plan"
)

// Store indexes finished headless runs in SQLite for batch analysis.
// Writes are synchronous: runs finish at human rates, so no writer
// goroutine is needed.
type Store struct {
	db *sql.DB
}

// RunRow is one indexed run.
type RunRow struct {
	ID             int64
	Scenario       string
	ScenarioDigest string
	ReachedGoal    bool
	Iterations     int
	Actions        int
	FailureCode    string
	RecordedAt     string
}

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func initPragmas(db *sql.DB) error {
	// WAL is much faster for append-style workloads.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scenario TEXT NOT NULL,
			scenario_digest TEXT NOT NULL,
			reached_goal INTEGER NOT NULL,
			iterations INTEGER NOT NULL,
			actions INTEGER NOT NULL,
			failure_code TEXT NOT NULL DEFAULT '',
			final_grid_json TEXT NOT NULL,
			final_agent_json TEXT NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_digest ON runs(scenario_digest, recorded_at);`,
		`CREATE TABLE IF NOT EXISTS run_actions (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			seq INTEGER NOT NULL,
			kind TEXT NOT NULL,
			action_json TEXT NOT NULL,
			PRIMARY KEY (run_id, seq)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun records a finished run and its action list, returning the run
// row id.
func (s *Store) InsertRun(sc plan.Scenario, res plan.RunResult, failureCode string) (int64, error) {
	gridJSON, err := json.Marshal(res.FinalGrid.Heights())
	if err != nil {
		return 0, err
	}
	agentJSON, err := json.Marshal(res.FinalAgentPos)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	r, err := tx.Exec(
		`INSERT INTO runs (scenario, scenario_digest, reached_goal, iterations, actions, failure_code, final_grid_json, final_agent_json, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sc.Name, sc.Digest(), boolToInt(res.ReachedGoal), res.Iterations, len(res.Actions),
		failureCode, string(gridJSON), string(agentJSON), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	id, err := r.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i, a := range res.Actions {
		aj, err := json.Marshal(a)
		if err != nil {
			return 0, err
		}
		if _, err := tx.Exec(
			`INSERT INTO run_actions (run_id, seq, kind, action_json) VALUES (?, ?, ?, ?)`,
			id, i, string(a.Kind), string(aj),
		); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// Runs lists indexed runs, newest first.
func (s *Store) Runs(limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, scenario, scenario_digest, reached_goal, iterations, actions, failure_code, recorded_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		var reached int
		if err := rows.Scan(&r.ID, &r.Scenario, &r.ScenarioDigest, &reached, &r.Iterations, &r.Actions, &r.FailureCode, &r.RecordedAt); err != nil {
			return nil, err
		}
		r.ReachedGoal = reached != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// ActionsFor returns the stored action list of one run in order.
func (s *Store) ActionsFor(runID int64) ([]plan.PlannedAction, error) {
	rows, err := s.db.Query(
		`SELECT action_json FROM run_actions WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []plan.PlannedAction
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var a plan.PlannedAction
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
