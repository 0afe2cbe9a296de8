package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPostgres(t *testing.T) (pgxmock.PgxPoolIface, *PostgresStore) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewPostgresFromPool(mock)
}

func TestPostgres_Migrate(t *testing.T) {
	mock, s := newMockPostgres(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS analysis_runs").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SaveRun(t *testing.T) {
	mock, s := newMockPostgres(t)
	mock.ExpectExec("INSERT INTO analysis_runs").
		WithArgs(pgxmock.AnyArg(), "Mario's", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	snap, result := testRun("Mario's")
	run, err := s.SaveRun(context.Background(), snap, result)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "Mario's", run.Restaurant.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetRun(t *testing.T) {
	mock, s := newMockPostgres(t)

	snap, result := testRun("Mario's")
	snapJSON, err := json.Marshal(snap)
	require.NoError(t, err)
	resultJSON, err := json.Marshal(result)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, snapshot, result, created_at FROM analysis_runs").
		WithArgs("run-1").
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "snapshot", "result", "created_at"}).
				AddRow("run-1", snapJSON, resultJSON, time.Now().UTC()),
		)

	got, err := s.GetRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, "Mario's", got.Restaurant.Name)
	assert.InDelta(t, result.TotalAdditional, got.Result.TotalAdditional, 0.0001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetRunNotFound(t *testing.T) {
	mock, s := newMockPostgres(t)
	mock.ExpectQuery("SELECT id, snapshot, result, created_at FROM analysis_runs").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"id", "snapshot", "result", "created_at"}))

	_, err := s.GetRun(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPostgres_ListRuns(t *testing.T) {
	mock, s := newMockPostgres(t)

	snap, result := testRun("Mario's")
	snapJSON, _ := json.Marshal(snap)
	resultJSON, _ := json.Marshal(result)

	mock.ExpectQuery("SELECT id, snapshot, result, created_at FROM analysis_runs").
		WithArgs("%Mario%").
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "snapshot", "result", "created_at"}).
				AddRow("run-1", snapJSON, resultJSON, time.Now().UTC()),
		)

	runs, err := s.ListRuns(context.Background(), RunFilter{Restaurant: "Mario"})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
