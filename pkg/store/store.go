// Package store persists named chart definitions.
//
// The Store interface has two implementations:
//   - MemoryStore: in-memory storage for development and testing
//   - MongoStore: MongoDB-backed storage for server deployments
//
// Stored charts carry the full definition (data plus presentation
// options), so the server can re-render any stored chart in any format
// without the client resubmitting it.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/funnelgraph/pkg/chartfile"
	"github.com/matzehuels/funnelgraph/pkg/errors"
)

// Chart is a stored chart definition.
type Chart struct {
	ID         string         `bson:"_id" json:"id"`
	Name       string         `bson:"name" json:"name"`
	Definition chartfile.File `bson:"definition" json:"definition"`
	CreatedAt  time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time      `bson:"updated_at" json:"updated_at"`
}

// NewChart creates a chart with a fresh ID and timestamps.
func NewChart(name string, def chartfile.File) *Chart {
	now := time.Now().UTC()
	return &Chart{
		ID:         uuid.NewString(),
		Name:       name,
		Definition: def,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Store is the interface for chart persistence backends.
type Store interface {
	// Save stores a chart, inserting or replacing by ID. An empty ID
	// is assigned before writing.
	Save(ctx context.Context, c *Chart) error

	// Get retrieves a chart by ID. Returns a CHART_NOT_FOUND error if
	// the chart doesn't exist.
	Get(ctx context.Context, id string) (*Chart, error)

	// List returns all stored charts ordered by creation time.
	List(ctx context.Context) ([]*Chart, error)

	// Delete removes a chart. Returns a CHART_NOT_FOUND error if the
	// chart doesn't exist.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// notFound builds the standard missing-chart error.
func notFound(id string) error {
	return errors.New(errors.ErrCodeChartNotFound, "chart %s not found", id)
}
