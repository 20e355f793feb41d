package core

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/riskdash/riskdash/internal/whitelist"
)

// AnalysisService ties the evaluator to the record store. Classification
// never fails: when the store cannot persist a record the service logs the
// error and returns the verdict anyway, with history silently degraded.
type AnalysisService struct {
	evaluator *Evaluator
	store     RecordStore
	logger    *zap.Logger
	trusted   *whitelist.Checker
}

// AnalyzeRequest is one piece of content to classify, with optional context
// carried through to the stored record.
type AnalyzeRequest struct {
	Content     string
	Channel     Channel
	Sender      string
	Subject     string
	PhoneNumber string
}

// NewAnalysisService creates a new analysis service. The trusted checker may
// be nil, in which case every sender is scanned.
func NewAnalysisService(
	evaluator *Evaluator,
	store RecordStore,
	logger *zap.Logger,
	trusted *whitelist.Checker,
) *AnalysisService {
	return &AnalysisService{
		evaluator: evaluator,
		store:     store,
		logger:    logger,
		trusted:   trusted,
	}
}

// Analyze evaluates a single piece of content and records the result.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalyzeRequest) (*ScanRecord, error) {
	var verdict *Verdict
	if req.Sender != "" && s.trusted != nil && s.trusted.IsTrusted(req.Sender) {
		s.logger.Info("Skipping scan for trusted sender",
			zap.String("sender", req.Sender),
			zap.String("action", "trusted_bypass"))
		verdict = CleanVerdict()
	} else {
		verdict = s.evaluator.Evaluate(req.Content, req.Channel)
	}

	rec := &ScanRecord{
		Content:     req.Content,
		Channel:     req.Channel,
		Sender:      req.Sender,
		Subject:     req.Subject,
		PhoneNumber: req.PhoneNumber,
		Verdict:     *verdict,
		CreatedAt:   time.Now().UTC(),
	}

	if id, err := s.store.Insert(ctx, rec); err != nil {
		s.logger.Error("Failed to persist scan record, returning verdict without history",
			zap.Error(err))
		rec.ID = uuid.NewString()
	} else {
		rec.ID = id
	}

	return rec, nil
}

// AnalyzeForPlatforms evaluates the same content once per social platform,
// each pass consulting that platform's pattern table. Every evaluation is
// recorded individually.
func (s *AnalysisService) AnalyzeForPlatforms(ctx context.Context, content string, platforms []string) []*Verdict {
	verdicts := make([]*Verdict, 0, len(platforms))
	for _, platform := range platforms {
		channel := Channel(strings.ToLower(strings.TrimSpace(platform)))
		verdict := s.evaluator.Evaluate(content, channel)
		verdicts = append(verdicts, verdict)

		rec := &ScanRecord{
			Content:   content,
			Channel:   channel,
			Verdict:   *verdict,
			CreatedAt: time.Now().UTC(),
		}
		if _, err := s.store.Insert(ctx, rec); err != nil {
			s.logger.Error("Failed to persist platform scan record",
				zap.String("platform", string(channel)),
				zap.Error(err))
		}
	}
	return verdicts
}

// History lists stored records, newest first.
func (s *AnalysisService) History(ctx context.Context, filter ListFilter, cursor string, limit int) ([]*ScanRecord, string, error) {
	return s.store.List(ctx, filter, cursor, limit)
}

// Scan retrieves one stored record.
func (s *AnalysisService) Scan(ctx context.Context, id string) (*ScanRecord, error) {
	return s.store.GetByID(ctx, id)
}

// DeleteScan removes one stored record.
func (s *AnalysisService) DeleteScan(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Analytics aggregates stored records over the trailing number of days.
func (s *AnalysisService) Analytics(ctx context.Context, days int) (*AnalyticsSummary, error) {
	summary, err := s.store.Aggregate(ctx, time.Duration(days)*24*time.Hour)
	if err != nil {
		return nil, err
	}
	summary.WindowDays = days
	return summary, nil
}
