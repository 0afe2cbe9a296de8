package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/opportunity-cli/internal/model"
)

// Pool abstracts the pgxpool methods the store needs, so pgxmock can stand in
// during tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresFromPool wraps an existing pool (used by tests).
func NewPostgresFromPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	id         TEXT PRIMARY KEY,
	restaurant TEXT NOT NULL,
	snapshot   JSONB NOT NULL,
	result     JSONB NOT NULL,
	total_gap  DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_analysis_runs_restaurant ON analysis_runs(restaurant);
CREATE INDEX IF NOT EXISTS idx_analysis_runs_created_at ON analysis_runs(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveRun(ctx context.Context, snap *model.BusinessSnapshot, result *model.AggregateResult) (*model.AnalysisRun, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	snapJSON, err := json.Marshal(snap)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal snapshot")
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal result")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO analysis_runs (id, restaurant, snapshot, result, total_gap, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		id, snap.Restaurant.Name, snapJSON, resultJSON, result.TotalAdditional, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert run")
	}

	return &model.AnalysisRun{
		ID:         id,
		Restaurant: snap.Restaurant,
		Snapshot:   snap,
		Result:     result,
		CreatedAt:  now,
	}, nil
}

func (s *PostgresStore) GetRun(ctx context.Context, id string) (*model.AnalysisRun, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, snapshot, result, created_at FROM analysis_runs WHERE id = $1`, id)

	var run model.AnalysisRun
	var snapJSON, resultJSON []byte
	if err := row.Scan(&run.ID, &snapJSON, &resultJSON, &run.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, eris.Errorf("postgres: run %s not found", id)
		}
		return nil, eris.Wrapf(err, "postgres: get run %s", id)
	}

	if err := json.Unmarshal(snapJSON, &run.Snapshot); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal snapshot")
	}
	if err := json.Unmarshal(resultJSON, &run.Result); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal result")
	}
	run.Restaurant = run.Snapshot.Restaurant

	return &run, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.AnalysisRun, error) {
	query := `SELECT id, snapshot, result, created_at FROM analysis_runs`
	var args []any
	idx := 1
	if filter.Restaurant != "" {
		query += ` WHERE restaurant ILIKE $1`
		args = append(args, "%"+filter.Restaurant+"%")
		idx++
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT $` + strconv.Itoa(idx)
		args = append(args, filter.Limit)
		idx++
	}
	if filter.Offset > 0 {
		query += ` OFFSET $` + strconv.Itoa(idx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []model.AnalysisRun
	for rows.Next() {
		var run model.AnalysisRun
		var snapJSON, resultJSON []byte
		if err := rows.Scan(&run.ID, &snapJSON, &resultJSON, &run.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		if err := json.Unmarshal(snapJSON, &run.Snapshot); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal snapshot")
		}
		if err := json.Unmarshal(resultJSON, &run.Result); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal result")
		}
		run.Restaurant = run.Snapshot.Restaurant
		runs = append(runs, run)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: iterate runs")
}
