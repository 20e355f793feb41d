package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/riskdash/riskdash/internal/whitelist"
)

// stubStore counts inserts and can be told to fail.
type stubStore struct {
	inserts int
	fail    bool
}

func (s *stubStore) Insert(ctx context.Context, rec *ScanRecord) (string, error) {
	if s.fail {
		return "", errors.New("store offline")
	}
	s.inserts++
	return "stub-id", nil
}

func (s *stubStore) List(ctx context.Context, filter ListFilter, cursor string, limit int) ([]*ScanRecord, string, error) {
	return nil, "", nil
}

func (s *stubStore) GetByID(ctx context.Context, id string) (*ScanRecord, error) {
	return nil, ErrNotFound
}

func (s *stubStore) Delete(ctx context.Context, id string) error {
	return ErrNotFound
}

func (s *stubStore) Aggregate(ctx context.Context, window time.Duration) (*AnalyticsSummary, error) {
	return &AnalyticsSummary{ByCategory: map[string]int64{}, ByDay: map[string]int64{}}, nil
}

func newTestService(store RecordStore, trusted []string) *AnalysisService {
	var checker *whitelist.Checker
	if trusted != nil {
		checker = whitelist.NewChecker(trusted, nil)
	}
	return NewAnalysisService(NewEvaluator(nil, nil), store, zap.NewNop(), checker)
}

func TestAnalyze_PersistsRecord(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(store, nil)

	rec, err := svc.Analyze(context.Background(), AnalyzeRequest{
		Content: "URGENT: Claim your prize now!",
		Channel: ChannelEmail,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != "stub-id" {
		t.Errorf("id = %q, want store-assigned id", rec.ID)
	}
	if store.inserts != 1 {
		t.Errorf("inserts = %d, want 1", store.inserts)
	}
	if rec.Result != ResultSpam {
		t.Errorf("result = %s, want spam", rec.Result)
	}
}

func TestAnalyze_StoreFailureStillClassifies(t *testing.T) {
	svc := newTestService(&stubStore{fail: true}, nil)

	rec, err := svc.Analyze(context.Background(), AnalyzeRequest{
		Content: "URGENT: Claim your prize now!",
		Channel: ChannelEmail,
	})
	if err != nil {
		t.Fatalf("classification must not fail on store error, got %v", err)
	}
	if rec.Result != ResultSpam {
		t.Errorf("result = %s, want spam", rec.Result)
	}
	if rec.ID == "" {
		t.Errorf("record should carry a generated id even without persistence")
	}
}

func TestAnalyze_TrustedSenderBypass(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(store, []string{"corp.example.com"})

	rec, err := svc.Analyze(context.Background(), AnalyzeRequest{
		Content: "URGENT: Claim your prize now!",
		Channel: ChannelEmail,
		Sender:  "alerts@corp.example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Result != ResultClean {
		t.Errorf("result = %s, want clean for trusted sender", rec.Result)
	}
	if len(rec.Flags) != 0 {
		t.Errorf("flags = %v, want none for trusted sender", rec.Flags)
	}
}

func TestAnalyzeForPlatforms(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(store, nil)

	verdicts := svc.AnalyzeForPlatforms(context.Background(),
		"free crypto giveaway, dm me now", []string{"twitter", "instagram"})

	if len(verdicts) != 2 {
		t.Fatalf("verdicts = %d, want 2", len(verdicts))
	}
	if store.inserts != 2 {
		t.Errorf("inserts = %d, want one per platform", store.inserts)
	}

	twitter, instagram := verdicts[0], verdicts[1]
	if !containsString(twitter.Flags, "Platform-specific: crypto giveaway") {
		t.Errorf("twitter flags = %v, missing platform flag", twitter.Flags)
	}
	if containsString(instagram.Flags, "Platform-specific: crypto giveaway") {
		t.Errorf("instagram flags = %v, should not carry twitter flag", instagram.Flags)
	}
}

func TestAnalytics_SetsWindow(t *testing.T) {
	svc := newTestService(&stubStore{}, nil)

	summary, err := svc.Analytics(context.Background(), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.WindowDays != 14 {
		t.Errorf("window days = %d, want 14", summary.WindowDays)
	}
}
