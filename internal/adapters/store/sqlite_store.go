package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/riskdash/riskdash/internal/core"
)

// SQLiteStore is a SQLite implementation of the RecordStore interface.
// Timestamps are stored as RFC3339 UTC text so that lexicographic comparison
// matches chronological order.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens (and if needed initializes) a SQLite-backed store.
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS scan_records (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			channel TEXT NOT NULL,
			sender TEXT NOT NULL DEFAULT '',
			subject TEXT NOT NULL DEFAULT '',
			phone_number TEXT NOT NULL DEFAULT '',
			result TEXT NOT NULL,
			category TEXT NOT NULL,
			confidence_score REAL NOT NULL,
			risk_score REAL NOT NULL,
			spam_score REAL NOT NULL,
			flags TEXT NOT NULL,
			analysis_details TEXT NOT NULL,
			created_at TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_scan_records_created_at ON scan_records(created_at)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Insert stores a new record and returns its generated id.
func (s *SQLiteStore) Insert(ctx context.Context, rec *core.ScanRecord) (string, error) {
	flagsJSON, err := marshalFlags(rec)
	if err != nil {
		return "", err
	}
	detailsJSON, err := marshalDetails(rec)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO scan_records (
			id, content, channel, sender, subject, phone_number,
			result, category, confidence_score, risk_score, spam_score,
			flags, analysis_details, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, rec.Content, string(rec.Channel), rec.Sender, rec.Subject, rec.PhoneNumber,
		string(rec.Result), string(rec.Category), rec.ConfidenceScore, rec.RiskScore, rec.SpamScore,
		flagsJSON, detailsJSON, createdAt.UTC().Format(sqlTimeLayout))
	if err != nil {
		return "", fmt.Errorf("failed to insert scan record: %w", err)
	}

	return id, nil
}

// List returns records in the filter's order, resuming after the cursor.
func (s *SQLiteStore) List(ctx context.Context, filter core.ListFilter, cursor string, limit int) ([]*core.ScanRecord, string, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	query := `
		SELECT id, content, channel, sender, subject, phone_number,
		       result, category, confidence_score, risk_score, spam_score,
		       flags, analysis_details, created_at
		FROM scan_records
		WHERE 1=1`
	args := []any{}

	if filter.Channel != "" {
		query += " AND channel = ?"
		args = append(args, string(filter.Channel))
	}
	if filter.Result != "" {
		query += " AND result = ?"
		args = append(args, string(filter.Result))
	}
	if cursor != "" {
		c, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", err
		}
		ts := c.CreatedAt.UTC().Format(sqlTimeLayout)
		if filter.Ascending {
			query += " AND (created_at > ? OR (created_at = ? AND id > ?))"
		} else {
			query += " AND (created_at < ? OR (created_at = ? AND id < ?))"
		}
		args = append(args, ts, ts, c.ID)
	}

	// Fetch one extra row to know whether another page exists.
	order := "DESC"
	if filter.Ascending {
		order = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY created_at %s, id %s LIMIT ?", order, order)
	args = append(args, limit+1)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list scan records: %w", err)
	}
	defer rows.Close()

	records := []*core.ScanRecord{}
	for rows.Next() {
		rec, err := s.scanRow(rows)
		if err != nil {
			return nil, "", err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("failed to read scan records: %w", err)
	}

	next := ""
	if len(records) > limit {
		records = records[:limit]
		last := records[len(records)-1]
		next = encodeCursor(last.ID, last.CreatedAt)
	}
	return records, next, nil
}

// GetByID retrieves a single record.
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (*core.ScanRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, content, channel, sender, subject, phone_number,
		       result, category, confidence_score, risk_score, spam_score,
		       flags, analysis_details, created_at
		FROM scan_records
		WHERE id = ?
	`, id)

	rec, err := s.scanRow(row)
	if err == sql.ErrNoRows {
		return nil, core.ErrNotFound
	}
	return rec, err
}

// Delete removes a record.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM scan_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scan record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}
	return nil
}

// Aggregate summarizes records created within the trailing window.
func (s *SQLiteStore) Aggregate(ctx context.Context, window time.Duration) (*core.AnalyticsSummary, error) {
	cutoff := time.Now().UTC().Add(-window).Format(sqlTimeLayout)

	summary := &core.AnalyticsSummary{
		ByCategory: make(map[string]int64),
		ByDay:      make(map[string]int64),
	}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN result = 'spam' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN result = 'suspicious' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN result = 'clean' THEN 1 ELSE 0 END), 0)
		FROM scan_records
		WHERE created_at >= ?
	`, cutoff).Scan(&summary.Total, &summary.SpamCount, &summary.SuspiciousCount, &summary.CleanCount)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate scan records: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*) FROM scan_records
		WHERE created_at >= ?
		GROUP BY category
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var count int64
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to read category counts: %w", err)
		}
		summary.ByCategory[category] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read category counts: %w", err)
	}

	dayRows, err := s.db.QueryContext(ctx, `
		SELECT substr(created_at, 1, 10), COUNT(*) FROM scan_records
		WHERE created_at >= ?
		GROUP BY substr(created_at, 1, 10)
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate days: %w", err)
	}
	defer dayRows.Close()
	for dayRows.Next() {
		var day string
		var count int64
		if err := dayRows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("failed to read day counts: %w", err)
		}
		summary.ByDay[day] = count
	}
	if err := dayRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read day counts: %w", err)
	}

	return summary, nil
}

// Stop closes the database connection.
func (s *SQLiteStore) Stop() {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close SQLite database", zap.Error(err))
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanRow(row rowScanner) (*core.ScanRecord, error) {
	var rec core.ScanRecord
	var channel, result, category, flagsJSON, detailsJSON, createdAt string

	err := row.Scan(&rec.ID, &rec.Content, &channel, &rec.Sender, &rec.Subject, &rec.PhoneNumber,
		&result, &category, &rec.ConfidenceScore, &rec.RiskScore, &rec.SpamScore,
		&flagsJSON, &detailsJSON, &createdAt)
	if err != nil {
		return nil, err
	}

	rec.Channel = core.Channel(channel)
	rec.Result = core.Result(result)
	rec.Category = core.Category(category)
	if err := unmarshalVerdictColumns(&rec, flagsJSON, detailsJSON); err != nil {
		return nil, err
	}
	rec.CreatedAt, err = time.Parse(sqlTimeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return &rec, nil
}
