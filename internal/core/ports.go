package core

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a scan record does not exist.
var ErrNotFound = errors.New("scan record not found")

// ListFilter narrows and orders a record listing. Zero values match
// everything; the default order is newest-first.
type ListFilter struct {
	Channel   Channel
	Result    Result
	Ascending bool
}

// RecordStore defines the interface for persisting scan records.
type RecordStore interface {
	// Insert stores a new record and returns its generated id.
	Insert(ctx context.Context, rec *ScanRecord) (string, error)

	// List returns records in the filter's order (newest-first by default),
	// starting after the given opaque cursor, along with the cursor for the
	// next page ("" when exhausted).
	List(ctx context.Context, filter ListFilter, cursor string, limit int) ([]*ScanRecord, string, error)

	// GetByID retrieves a single record.
	GetByID(ctx context.Context, id string) (*ScanRecord, error)

	// Delete removes a record.
	Delete(ctx context.Context, id string) error

	// Aggregate summarizes records created within the trailing window.
	Aggregate(ctx context.Context, window time.Duration) (*AnalyticsSummary, error)
}
