package core

import (
	"time"
)

// Result is the primary classification of a piece of content.
type Result string

const (
	ResultSpam       Result = "spam"
	ResultSuspicious Result = "suspicious"
	ResultClean      Result = "clean"
)

// Category refines the result into a display label.
type Category string

const (
	CategoryLegitimate   Category = "legitimate"
	CategoryScam         Category = "scam"
	CategoryPhishing     Category = "phishing"
	CategorySuspicious   Category = "suspicious"
	CategoryHighRiskSpam Category = "high_risk_spam"
	CategoryPromotional  Category = "promotional"
)

// Sentiment describes the tone of the analyzed content.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// UrgencyLevel describes how much pressure the content puts on the reader.
type UrgencyLevel string

const (
	UrgencyLow    UrgencyLevel = "low"
	UrgencyMedium UrgencyLevel = "medium"
	UrgencyHigh   UrgencyLevel = "high"
)

// Channel is the messaging medium or social platform the content came from.
// Unknown channels are valid; they simply skip the platform-specific patterns.
type Channel string

const (
	ChannelEmail     Channel = "email"
	ChannelSMS       Channel = "sms"
	ChannelInstagram Channel = "instagram"
	ChannelFacebook  Channel = "facebook"
	ChannelWhatsApp  Channel = "whatsapp"
	ChannelTwitter   Channel = "twitter"
	ChannelTelegram  Channel = "telegram"
	ChannelLinkedIn  Channel = "linkedin"
)

// AnalysisDetails holds the secondary metrics derived during an evaluation.
type AnalysisDetails struct {
	Language            string       `json:"language"`
	Sentiment           Sentiment    `json:"sentiment"`
	UrgencyLevel        UrgencyLevel `json:"urgency_level"`
	SuspiciousPatterns  []string     `json:"suspicious_patterns"`
	UserBehaviorScore   float64      `json:"user_behavior_score"`
	ContentQualityScore float64      `json:"content_quality_score"`
}

// Verdict is the outcome of evaluating one piece of content.
//
// SpamScore is the internal accumulator that drives Result; it is not part of
// the API payload. RiskScore is the user-facing risk metric, clamped to
// [10,100].
type Verdict struct {
	Result          Result          `json:"result"`
	Category        Category        `json:"category"`
	ConfidenceScore float64         `json:"confidence_score"`
	RiskScore       float64         `json:"risk_score"`
	Flags           []string        `json:"flags"`
	AnalysisDetails AnalysisDetails `json:"analysis_details"`
	SpamScore       float64         `json:"-"`
}

// ScanRecord wraps a Verdict with the input that produced it. Records are
// immutable once inserted; they can only be looked up, listed or deleted.
type ScanRecord struct {
	ID          string  `json:"id"`
	Content     string  `json:"content"`
	Channel     Channel `json:"message_type"`
	Sender      string  `json:"sender,omitempty"`
	Subject     string  `json:"subject,omitempty"`
	PhoneNumber string  `json:"phone_number,omitempty"`
	Verdict
	CreatedAt time.Time `json:"created_at"`
}

// AnalyticsSummary aggregates stored scan records over a trailing window.
type AnalyticsSummary struct {
	WindowDays      int              `json:"window_days"`
	Total           int64            `json:"total"`
	SpamCount       int64            `json:"spam_count"`
	SuspiciousCount int64            `json:"suspicious_count"`
	CleanCount      int64            `json:"clean_count"`
	ByCategory      map[string]int64 `json:"by_category"`
	ByDay           map[string]int64 `json:"by_day"`
}
