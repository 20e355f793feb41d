package core

import (
	"reflect"
	"strings"
	"testing"
)

func newTestEvaluator() *Evaluator {
	// nil jitter keeps every score deterministic
	return NewEvaluator(nil, nil)
}

func TestEvaluate_SpamWithUrgencyMoneyAndAction(t *testing.T) {
	e := newTestEvaluator()
	v := e.Evaluate("URGENT: Claim your $1000 prize NOW!", ChannelEmail)

	if v.Result != ResultSpam {
		t.Errorf("result = %s, want spam", v.Result)
	}
	for _, want := range []string{"Urgency language", "Monetary offers", "Suspicious actions"} {
		if !containsString(v.Flags, want) {
			t.Errorf("flags = %v, missing %q", v.Flags, want)
		}
	}
	if v.RiskScore < 65 {
		t.Errorf("risk score = %.1f, want >= 65", v.RiskScore)
	}
}

func TestEvaluate_CleanBusinessMessage(t *testing.T) {
	e := newTestEvaluator()
	v := e.Evaluate("Hi John, meeting tomorrow at 2 PM in Conference Room A.", ChannelEmail)

	if v.Result != ResultClean {
		t.Errorf("result = %s, want clean", v.Result)
	}
	if v.Category != CategoryLegitimate {
		t.Errorf("category = %s, want legitimate", v.Category)
	}
	if len(v.Flags) != 0 {
		t.Errorf("flags = %v, want none", v.Flags)
	}
	if v.RiskScore > 25 {
		t.Errorf("risk score = %.1f, want <= 25", v.RiskScore)
	}
}

func TestEvaluate_PhishingLink(t *testing.T) {
	e := newTestEvaluator()
	v := e.Evaluate("Your account needs verification. Click link: http://bit.ly/x", ChannelEmail)

	if v.Result != ResultSpam {
		t.Errorf("result = %s, want spam", v.Result)
	}
	if !containsString(v.Flags, "Suspicious domains") {
		t.Errorf("flags = %v, missing Suspicious domains", v.Flags)
	}
	if !containsString(v.Flags, "Suspicious actions") {
		t.Errorf("flags = %v, missing Suspicious actions", v.Flags)
	}
	if v.Category != CategoryPhishing {
		t.Errorf("category = %s, want phishing", v.Category)
	}
}

func TestEvaluate_EmptyContent(t *testing.T) {
	e := newTestEvaluator()
	v := e.Evaluate("", ChannelEmail)

	if v.Result != ResultClean {
		t.Errorf("result = %s, want clean", v.Result)
	}
	if !containsString(v.Flags, "Very short content") {
		t.Errorf("flags = %v, missing Very short content", v.Flags)
	}
	if v.ConfidenceScore > 30 {
		t.Errorf("confidence = %.1f, want near floor", v.ConfidenceScore)
	}
}

func TestEvaluate_PlatformSpecificFlagsOnly(t *testing.T) {
	e := newTestEvaluator()
	content := "Buy fake followers now! Limited time discount!"

	instagram := e.Evaluate(content, ChannelInstagram)
	linkedin := e.Evaluate(content, ChannelLinkedIn)

	if !containsString(instagram.Flags, "Platform-specific: fake followers") {
		t.Errorf("instagram flags = %v, missing platform flag", instagram.Flags)
	}
	if containsString(linkedin.Flags, "Platform-specific: fake followers") {
		t.Errorf("linkedin flags = %v, should not carry instagram flag", linkedin.Flags)
	}

	// Universal flags are channel-independent
	if !reflect.DeepEqual(universalOnly(instagram.Flags), universalOnly(linkedin.Flags)) {
		t.Errorf("universal flags differ: %v vs %v", instagram.Flags, linkedin.Flags)
	}
}

func TestEvaluate_SingleUrgencyKeywordIsClean(t *testing.T) {
	e := newTestEvaluator()
	// One urgency hit (+15) stays below the suspicious threshold of 20.
	v := e.Evaluate("please respond immediately regarding the server maintenance report", ChannelEmail)

	if v.SpamScore != 15 {
		t.Fatalf("spam score = %.1f, want 15", v.SpamScore)
	}
	if v.Result != ResultClean {
		t.Errorf("result = %s, want clean", v.Result)
	}
}

func TestEvaluate_Monotonicity(t *testing.T) {
	e := newTestEvaluator()
	base := e.Evaluate("congratulations you have won today", ChannelEmail)
	more := e.Evaluate("congratulations you have won a cash prize today", ChannelEmail)

	if more.SpamScore < base.SpamScore {
		t.Errorf("spam score decreased: %.1f -> %.1f", base.SpamScore, more.SpamScore)
	}
	if more.RiskScore < base.RiskScore {
		t.Errorf("risk score decreased: %.1f -> %.1f", base.RiskScore, more.RiskScore)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	e := newTestEvaluator()
	content := "URGENT: verify your account at bit.ly/scam now, win free cash!"

	a := e.Evaluate(content, ChannelSMS)
	b := e.Evaluate(content, ChannelSMS)

	if a.Result != b.Result || a.Category != b.Category {
		t.Errorf("classification differs across calls: %s/%s vs %s/%s", a.Result, a.Category, b.Result, b.Category)
	}
	if !reflect.DeepEqual(a.Flags, b.Flags) {
		t.Errorf("flags differ: %v vs %v", a.Flags, b.Flags)
	}
	if !reflect.DeepEqual(a.AnalysisDetails.SuspiciousPatterns, b.AnalysisDetails.SuspiciousPatterns) {
		t.Errorf("patterns differ: %v vs %v", a.AnalysisDetails.SuspiciousPatterns, b.AnalysisDetails.SuspiciousPatterns)
	}
	if a.SpamScore != b.SpamScore || a.ConfidenceScore != b.ConfidenceScore {
		t.Errorf("scores differ without jitter: %v vs %v", a, b)
	}
}

func TestEvaluate_ScoreBounds(t *testing.T) {
	e := newTestEvaluator()
	inputs := []string{
		"",
		"hello",
		"Hi John, meeting tomorrow at 2 PM.",
		"URGENT win free cash prize now click verify bit.ly tinyurl amazing exclusive",
		strings.Repeat("win cash now ", 50),
	}

	for _, input := range inputs {
		v := e.Evaluate(input, ChannelEmail)
		if v.RiskScore < 10 || v.RiskScore > 100 {
			t.Errorf("risk score %.1f out of [10,100] for %q", v.RiskScore, input)
		}
		if v.ConfidenceScore < 20 || v.ConfidenceScore > 100 {
			t.Errorf("confidence %.1f out of [20,100] for %q", v.ConfidenceScore, input)
		}
		d := v.AnalysisDetails
		if d.UserBehaviorScore < 0 || d.UserBehaviorScore > 100 {
			t.Errorf("behavior score %.1f out of [0,100] for %q", d.UserBehaviorScore, input)
		}
		if d.ContentQualityScore < 0 || d.ContentQualityScore > 100 {
			t.Errorf("quality score %.1f out of [0,100] for %q", d.ContentQualityScore, input)
		}
	}
}

func TestEvaluate_NoDuplicateFlags(t *testing.T) {
	e := newTestEvaluator()
	v := e.Evaluate("win win win free cash money prize discount million", ChannelEmail)

	seen := map[string]bool{}
	for _, f := range v.Flags {
		if seen[f] {
			t.Errorf("duplicate flag %q in %v", f, v.Flags)
		}
		seen[f] = true
	}
	seen = map[string]bool{}
	for _, p := range v.AnalysisDetails.SuspiciousPatterns {
		if seen[p] {
			t.Errorf("duplicate pattern %q in %v", p, v.AnalysisDetails.SuspiciousPatterns)
		}
		seen[p] = true
	}
	if !reflect.DeepEqual(v.Flags, []string{"Monetary offers"}) {
		t.Errorf("flags = %v, want only Monetary offers", v.Flags)
	}
}

func TestEvaluate_ExcessiveEmojis(t *testing.T) {
	e := newTestEvaluator()
	v := e.Evaluate("🎉🎉🎉🎉🎉🎉 big party announcement", ChannelSMS)

	if !containsString(v.Flags, "Excessive emojis") {
		t.Errorf("flags = %v, missing Excessive emojis", v.Flags)
	}

	few := e.Evaluate("🎉 big party announcement", ChannelSMS)
	if containsString(few.Flags, "Excessive emojis") {
		t.Errorf("flags = %v, single emoji should not flag", few.Flags)
	}
}

func TestEvaluate_JitterStaysBounded(t *testing.T) {
	plain := NewEvaluator(nil, nil)
	jittered := NewEvaluator(nil, func() float64 { return 0 })

	content := "quarterly report attached, let me know if numbers look right"
	a := plain.Evaluate(content, ChannelEmail)
	b := jittered.Evaluate(content, ChannelEmail)

	// Jitter only moves the display sub-scores, and by at most 5.
	if a.Result != b.Result || a.SpamScore != b.SpamScore {
		t.Errorf("jitter changed classification: %v vs %v", a.Result, b.Result)
	}
	diff := b.AnalysisDetails.ContentQualityScore - a.AnalysisDetails.ContentQualityScore
	if diff < -5 || diff > 5 {
		t.Errorf("quality jitter %.2f exceeds +/-5", diff)
	}
}

func TestEvaluate_HighRiskCategory(t *testing.T) {
	e := newTestEvaluator()
	v := e.Evaluate("URGENT act fast! Win a cash prize: click to verify at bit.ly/x", ChannelEmail)

	if v.SpamScore < 80 {
		t.Fatalf("spam score = %.1f, want >= 80", v.SpamScore)
	}
	if v.Category != CategoryHighRiskSpam {
		t.Errorf("category = %s, want high_risk_spam", v.Category)
	}
	if v.AnalysisDetails.UrgencyLevel != UrgencyHigh {
		t.Errorf("urgency = %s, want high", v.AnalysisDetails.UrgencyLevel)
	}
}

func TestEvaluate_PromotionalCategory(t *testing.T) {
	e := newTestEvaluator()
	// Two monetary hits (+40): suspicious, no action or link patterns.
	v := e.Evaluate("big discount this weekend, everything is free to try", ChannelEmail)

	if v.Result != ResultSuspicious {
		t.Fatalf("result = %s, want suspicious", v.Result)
	}
	if v.Category != CategoryPromotional {
		t.Errorf("category = %s, want promotional", v.Category)
	}
}

func TestEvaluate_SentimentFromIndicators(t *testing.T) {
	e := newTestEvaluator()

	neg := e.Evaluate("this looks like a scam and outright fraud to me", ChannelEmail)
	if neg.AnalysisDetails.Sentiment != SentimentNegative {
		t.Errorf("sentiment = %s, want negative", neg.AnalysisDetails.Sentiment)
	}
	if neg.AnalysisDetails.ContentQualityScore != 70 {
		t.Errorf("quality = %.1f, want 70 after two negative hits", neg.AnalysisDetails.ContentQualityScore)
	}

	pos := e.Evaluate("the official verified newsletter was helpful as always", ChannelEmail)
	if pos.AnalysisDetails.Sentiment != SentimentPositive {
		t.Errorf("sentiment = %s, want positive", pos.AnalysisDetails.Sentiment)
	}

	neutral := e.Evaluate("lunch is in the fridge, see you tonight", ChannelEmail)
	if neutral.AnalysisDetails.Sentiment != SentimentNeutral {
		t.Errorf("sentiment = %s, want neutral", neutral.AnalysisDetails.Sentiment)
	}
}

func containsString(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func universalOnly(flags []string) []string {
	out := []string{}
	for _, f := range flags {
		if !strings.HasPrefix(f, "Platform-specific:") {
			out = append(out, f)
		}
	}
	return out
}
