package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/riskdash/riskdash/internal/core"
)

// MemoryStore is an in-process implementation of the RecordStore interface.
// It doubles as the mock mode the dashboard falls back to when no database is
// configured: every operation succeeds, history just doesn't survive restarts.
type MemoryStore struct {
	records map[string]*core.ScanRecord
	mu      sync.RWMutex
	logger  *zap.Logger
}

// NewMemoryStore creates a new in-memory record store.
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*core.ScanRecord),
		logger:  logger,
	}
}

// Insert stores a new record and returns its generated id.
func (m *MemoryStore) Insert(ctx context.Context, rec *core.ScanRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	stored := *rec
	stored.ID = id
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	m.records[id] = &stored

	return id, nil
}

// List returns records in the filter's order, resuming after the cursor.
func (m *MemoryStore) List(ctx context.Context, filter core.ListFilter, cursor string, limit int) ([]*core.ScanRecord, string, error) {
	var after *pageCursor
	if cursor != "" {
		c, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", err
		}
		after = &c
	}
	if limit <= 0 {
		limit = defaultPageSize
	}

	m.mu.RLock()
	matched := make([]*core.ScanRecord, 0, len(m.records))
	for _, rec := range m.records {
		if matches(rec, filter) {
			matched = append(matched, rec)
		}
	}
	m.mu.RUnlock()

	// Id as tiebreak so paging is stable across equal timestamps.
	asc := filter.Ascending
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			if asc {
				return matched[i].CreatedAt.Before(matched[j].CreatedAt)
			}
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		if asc {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].ID > matched[j].ID
	})

	page := make([]*core.ScanRecord, 0, limit)
	for _, rec := range matched {
		if after != nil && !pastCursor(rec, *after, asc) {
			continue
		}
		copied := *rec
		page = append(page, &copied)
		if len(page) == limit {
			break
		}
	}

	next := ""
	if len(page) == limit && len(page) < len(matched) {
		last := page[len(page)-1]
		next = encodeCursor(last.ID, last.CreatedAt)
	}
	return page, next, nil
}

// GetByID retrieves a single record.
func (m *MemoryStore) GetByID(ctx context.Context, id string) (*core.ScanRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

// Delete removes a record.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

// Aggregate summarizes records created within the trailing window.
func (m *MemoryStore) Aggregate(ctx context.Context, window time.Duration) (*core.AnalyticsSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cutoff := time.Now().UTC().Add(-window)
	summary := &core.AnalyticsSummary{
		ByCategory: make(map[string]int64),
		ByDay:      make(map[string]int64),
	}

	for _, rec := range m.records {
		if rec.CreatedAt.Before(cutoff) {
			continue
		}
		summary.Total++
		switch rec.Result {
		case core.ResultSpam:
			summary.SpamCount++
		case core.ResultSuspicious:
			summary.SuspiciousCount++
		case core.ResultClean:
			summary.CleanCount++
		}
		summary.ByCategory[string(rec.Category)]++
		summary.ByDay[rec.CreatedAt.Format("2006-01-02")]++
	}

	return summary, nil
}

// SeedDemo fills the store with a handful of example scans so the dashboard
// has something to show in mock mode.
func (m *MemoryStore) SeedDemo() {
	eval := core.NewEvaluator(nil, nil)
	samples := []struct {
		content string
		channel core.Channel
	}{
		{"URGENT: You have won a $1000 gift card! Click here to claim your prize now!", core.ChannelEmail},
		{"Hi team, the quarterly planning meeting moved to Thursday 10am.", core.ChannelEmail},
		{"Your package could not be delivered. Verify your address: http://bit.ly/3xk", core.ChannelSMS},
		{"Get fake followers fast, dm for promo prices", core.ChannelInstagram},
	}

	ctx := context.Background()
	for _, s := range samples {
		rec := &core.ScanRecord{
			Content:   s.content,
			Channel:   s.channel,
			Verdict:   *eval.Evaluate(s.content, s.channel),
			CreatedAt: time.Now().UTC(),
		}
		if _, err := m.Insert(ctx, rec); err != nil && m.logger != nil {
			m.logger.Warn("Failed to seed demo record", zap.Error(err))
		}
	}
	if m.logger != nil {
		m.logger.Info("Seeded demo scan records", zap.Int("count", len(samples)))
	}
}

const defaultPageSize = 20

func matches(rec *core.ScanRecord, filter core.ListFilter) bool {
	if filter.Channel != "" && rec.Channel != filter.Channel {
		return false
	}
	if filter.Result != "" && rec.Result != filter.Result {
		return false
	}
	return true
}

// pastCursor reports whether rec sorts strictly after the cursor position in
// the chosen ordering, i.e. belongs to a later page.
func pastCursor(rec *core.ScanRecord, c pageCursor, asc bool) bool {
	if !rec.CreatedAt.Equal(c.CreatedAt) {
		if asc {
			return rec.CreatedAt.After(c.CreatedAt)
		}
		return rec.CreatedAt.Before(c.CreatedAt)
	}
	if asc {
		return rec.ID > c.ID
	}
	return rec.ID < c.ID
}
