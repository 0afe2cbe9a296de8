package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/opportunity-cli/internal/estimate"
	"github.com/sells-group/opportunity-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testRun(name string) (*model.BusinessSnapshot, *model.AggregateResult) {
	snap := model.NewSnapshot(model.Restaurant{PlaceID: "p1", Name: name})
	snap.AvgTicket = 25
	snap.MonthlyTransactions = 1600
	snap.MonthlyRevenue = 40_000
	return snap, estimate.Aggregate(snap)
}

func TestSQLite_SaveAndGetRun(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	snap, result := testRun("Mario's")
	saved, err := s.SaveRun(ctx, snap, result)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := s.GetRun(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mario's", got.Restaurant.Name)
	assert.InDelta(t, result.TotalAdditional, got.Result.TotalAdditional, 0.0001)
	assert.Len(t, got.Result.Services, len(model.Channels))
}

func TestSQLite_GetRunNotFound(t *testing.T) {
	s := newTestSQLite(t)
	_, err := s.GetRun(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLite_ListRunsFilterAndOrder(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	for _, name := range []string{"Mario's", "Luigi's", "Mario's Downtown"} {
		snap, result := testRun(name)
		_, err := s.SaveRun(ctx, snap, result)
		require.NoError(t, err)
	}

	all, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	marios, err := s.ListRuns(ctx, RunFilter{Restaurant: "Mario"})
	require.NoError(t, err)
	assert.Len(t, marios, 2)

	limited, err := s.ListRuns(ctx, RunFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
