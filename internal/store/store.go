// Package store persists completed analysis runs.
package store

import (
	"context"

	"github.com/sells-group/opportunity-cli/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Restaurant string `json:"restaurant,omitempty"` // substring match on name
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for analysis runs.
type Store interface {
	SaveRun(ctx context.Context, snap *model.BusinessSnapshot, result *model.AggregateResult) (*model.AnalysisRun, error)
	GetRun(ctx context.Context, id string) (*model.AnalysisRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.AnalysisRun, error)

	Migrate(ctx context.Context) error
	Close() error
}
