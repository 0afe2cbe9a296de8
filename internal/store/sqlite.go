package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/opportunity-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	id         TEXT PRIMARY KEY,
	restaurant TEXT NOT NULL,
	snapshot   TEXT NOT NULL,
	result     TEXT NOT NULL,
	total_gap  REAL NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_analysis_runs_restaurant ON analysis_runs(restaurant);
CREATE INDEX IF NOT EXISTS idx_analysis_runs_created_at ON analysis_runs(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveRun(ctx context.Context, snap *model.BusinessSnapshot, result *model.AggregateResult) (*model.AnalysisRun, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	snapJSON, err := json.Marshal(snap)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal snapshot")
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal result")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analysis_runs (id, restaurant, snapshot, result, total_gap, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, snap.Restaurant.Name, string(snapJSON), string(resultJSON), result.TotalAdditional, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}

	return &model.AnalysisRun{
		ID:         id,
		Restaurant: snap.Restaurant,
		Snapshot:   snap,
		Result:     result,
		CreatedAt:  now,
	}, nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*model.AnalysisRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, snapshot, result, created_at FROM analysis_runs WHERE id = ?`, id)

	var run model.AnalysisRun
	var snapJSON, resultJSON string
	if err := row.Scan(&run.ID, &snapJSON, &resultJSON, &run.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, eris.Errorf("sqlite: run %s not found", id)
		}
		return nil, eris.Wrapf(err, "sqlite: get run %s", id)
	}

	if err := json.Unmarshal([]byte(snapJSON), &run.Snapshot); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal snapshot")
	}
	if err := json.Unmarshal([]byte(resultJSON), &run.Result); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal result")
	}
	run.Restaurant = run.Snapshot.Restaurant

	return &run, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.AnalysisRun, error) {
	query := `SELECT id, snapshot, result, created_at FROM analysis_runs`
	var args []any
	if filter.Restaurant != "" {
		query += ` WHERE restaurant LIKE ?`
		args = append(args, "%"+filter.Restaurant+"%")
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var runs []model.AnalysisRun
	for rows.Next() {
		var run model.AnalysisRun
		var snapJSON, resultJSON string
		if err := rows.Scan(&run.ID, &snapJSON, &resultJSON, &run.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		if err := json.Unmarshal([]byte(snapJSON), &run.Snapshot); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal snapshot")
		}
		if err := json.Unmarshal([]byte(resultJSON), &run.Result); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal result")
		}
		run.Restaurant = run.Snapshot.Restaurant
		runs = append(runs, run)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}
