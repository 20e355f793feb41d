package core

import (
	"math"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// JitterFunc supplies randomness for the display-only sub-scores. It must
// return values in [0,1). A nil JitterFunc disables jitter entirely, which is
// what tests use.
type JitterFunc func() float64

// Evaluator is the heuristic content-risk scoring engine. It is stateless and
// safe for concurrent use; the primary classification is deterministic, only
// the behavior/quality sub-scores carry optional jitter.
type Evaluator struct {
	jitter JitterFunc
	logger *zap.Logger
}

// NewEvaluator creates a new evaluator.
func NewEvaluator(logger *zap.Logger, jitter JitterFunc) *Evaluator {
	return &Evaluator{
		jitter: jitter,
		logger: logger,
	}
}

// Evaluate scores a piece of content for the given channel and returns a
// verdict. It never fails: empty input is valid and classifies as clean with
// floor confidence.
//
// Thresholds: spam at spam score >= 50, suspicious at >= 20. Confidence is
// distance-from-boundary based: clamp(100-|score-50|, 20, 100).
func (e *Evaluator) Evaluate(content string, channel Channel) *Verdict {
	lower := strings.ToLower(content)

	var spamScore, riskScore float64
	flags := []string{}
	patterns := []string{}

	for _, cat := range universalPatterns {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				spamScore += cat.spamWeight
				riskScore += cat.riskWeight
				flags = appendUnique(flags, cat.flag)
				patterns = appendUnique(patterns, cat.name)
			}
		}
	}

	for _, term := range platformPatterns[channel] {
		if strings.Contains(lower, term) {
			spamScore += platformSpamWeight
			riskScore += platformRiskWeight
			flags = appendUnique(flags, "Platform-specific: "+term)
			patterns = appendUnique(patterns, "platform_specific")
		}
	}

	// Quality indicators are cumulative: positive and negative hits both
	// apply, negative sentiment wins the label when both are present.
	quality, behavior := 100.0, 100.0
	hasPositive, hasNegative := false, false
	for _, kw := range positiveIndicators {
		if strings.Contains(lower, kw) {
			quality += positiveQualityDelta
			behavior += positiveBehaviorDelta
			hasPositive = true
		}
	}
	for _, kw := range negativeIndicators {
		if strings.Contains(lower, kw) {
			quality += negativeQualityDelta
			behavior += negativeBehaviorDelta
			hasNegative = true
		}
	}
	sentiment := SentimentNeutral
	switch {
	case hasNegative:
		sentiment = SentimentNegative
	case hasPositive:
		sentiment = SentimentPositive
	}

	runes := utf8.RuneCountInString(strings.TrimSpace(content))
	short := runes < shortContentRunes
	if short {
		spamScore += shortContentSpamBump
		riskScore += shortContentRiskBump
		flags = appendUnique(flags, "Very short content")
		patterns = appendUnique(patterns, "short_content")
	}
	if runes > longContentRunes {
		quality += longContentQualityBonus
	}
	if countEmojis(content) > emojiLimit {
		spamScore += emojiSpamBump
		riskScore += emojiRiskBump
		flags = appendUnique(flags, "Excessive emojis")
		patterns = appendUnique(patterns, "excessive_emojis")
	}

	if e.jitter != nil {
		quality += e.jitter()*10 - 5
		behavior += e.jitter()*10 - 5
	}
	quality = clamp(quality, 0, 100)
	behavior = clamp(behavior, 0, 100)

	urgency := UrgencyLow
	switch {
	case spamScore >= urgencyHighScore:
		urgency = UrgencyHigh
	case spamScore >= urgencyMediumScore:
		urgency = UrgencyMedium
	}

	confidence := clamp(100-math.Abs(spamScore-spamThreshold), confidenceFloor, 100)
	if short {
		confidence = shortContentConfidence
	}

	result, category := classify(spamScore, patterns)

	if e.logger != nil {
		e.logger.Debug("Evaluated content",
			zap.String("channel", string(channel)),
			zap.Float64("spam_score", spamScore),
			zap.Float64("risk_score", riskScore),
			zap.String("result", string(result)))
	}

	return &Verdict{
		Result:          result,
		Category:        category,
		ConfidenceScore: confidence,
		RiskScore:       clamp(riskScore, riskFloor, 100),
		Flags:           flags,
		SpamScore:       spamScore,
		AnalysisDetails: AnalysisDetails{
			Language:            "English",
			Sentiment:           sentiment,
			UrgencyLevel:        urgency,
			SuspiciousPatterns:  patterns,
			UserBehaviorScore:   behavior,
			ContentQualityScore: quality,
		},
	}
}

// classify maps the spam score and the fired pattern categories onto the
// result/category pair.
func classify(spamScore float64, patterns []string) (Result, Category) {
	fired := func(name string) bool {
		for _, p := range patterns {
			if p == name {
				return true
			}
		}
		return false
	}

	switch {
	case spamScore >= spamThreshold:
		switch {
		case spamScore >= highRiskThreshold:
			return ResultSpam, CategoryHighRiskSpam
		case fired("shortened_url") || fired("suspicious_action"):
			return ResultSpam, CategoryPhishing
		default:
			return ResultSpam, CategoryScam
		}
	case spamScore >= suspiciousThreshold:
		if (fired("monetary_offer") || fired("emotional_manipulation")) &&
			!fired("shortened_url") && !fired("suspicious_action") {
			return ResultSuspicious, CategoryPromotional
		}
		return ResultSuspicious, CategorySuspicious
	default:
		return ResultClean, CategoryLegitimate
	}
}

// CleanVerdict returns the verdict used when scanning is bypassed, e.g. for a
// trusted sender.
func CleanVerdict() *Verdict {
	return &Verdict{
		Result:          ResultClean,
		Category:        CategoryLegitimate,
		ConfidenceScore: 100,
		RiskScore:       riskFloor,
		Flags:           []string{},
		AnalysisDetails: AnalysisDetails{
			Language:            "English",
			Sentiment:           SentimentNeutral,
			UrgencyLevel:        UrgencyLow,
			SuspiciousPatterns:  []string{},
			UserBehaviorScore:   100,
			ContentQualityScore: 100,
		},
	}
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// countEmojis counts code points in the common emoji blocks.
func countEmojis(s string) int {
	count := 0
	for _, r := range s {
		switch {
		case r >= 0x1F300 && r <= 0x1FAFF, // pictographs, emoticons, symbols
			r >= 0x2600 && r <= 0x27BF, // misc symbols and dingbats
			r >= 0xFE00 && r <= 0xFE0F: // variation selectors
			count++
		}
	}
	return count
}
