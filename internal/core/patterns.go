package core

// patternCategory is one detection rule: a keyword list with fixed score
// increments, a flag shown to users and a coarser pattern name for the
// analysis details. Each keyword that appears in the content contributes the
// weights independently; the flag and pattern name are recorded once.
type patternCategory struct {
	name       string
	flag       string
	keywords   []string
	spamWeight float64
	riskWeight float64
}

// universalPatterns apply to every channel. The tables are package-level
// constants in spirit: loaded once, never mutated.
var universalPatterns = []patternCategory{
	{
		name:       "urgency",
		flag:       "Urgency language",
		keywords:   []string{"urgent", "immediately", "now", "hurry", "limited time", "expires soon", "last chance", "act fast"},
		spamWeight: 15,
		riskWeight: 20,
	},
	{
		name:       "monetary_offer",
		flag:       "Monetary offers",
		keywords:   []string{"win", "won", "prize", "gift card", "cash", "money", "free", "discount", "million", "thousand"},
		spamWeight: 20,
		riskWeight: 25,
	},
	{
		name:       "suspicious_action",
		flag:       "Suspicious actions",
		keywords:   []string{"click", "verify", "verification", "confirm", "update", "claim", "download", "install", "subscribe", "join now", "reactivate", "unlock"},
		spamWeight: 18,
		riskWeight: 22,
	},
	{
		name:       "shortened_url",
		flag:       "Suspicious domains",
		keywords:   []string{"bit.ly", "tinyurl", "goo.gl", "t.co", "ow.ly", "is.gd", "buff.ly", "rebrand.ly"},
		spamWeight: 25,
		riskWeight: 30,
	},
	{
		name:       "emotional_manipulation",
		flag:       "Emotional manipulation",
		keywords:   []string{"amazing", "incredible", "shocking", "exclusive", "secret", "scandal"},
		spamWeight: 12,
		riskWeight: 15,
	},
}

// Platform-specific risk terms, consulted only when the channel matches.
const (
	platformSpamWeight = 10
	platformRiskWeight = 15
)

var platformPatterns = map[Channel][]string{
	ChannelInstagram: {"fake followers", "bot activity", "follow for follow", "dm for promo"},
	ChannelFacebook:  {"fake profile", "cloned account", "marketplace deal"},
	ChannelWhatsApp:  {"forwarded many times", "chain message", "forward this message"},
	ChannelTwitter:   {"crypto giveaway", "airdrop", "dm me"},
	ChannelTelegram:  {"investment group", "pump signal", "trading tips"},
	ChannelLinkedIn:  {"fake recruiter", "work from home offer", "guaranteed income"},
}

// Quality indicators adjust the behavior/quality sub-scores and drive the
// sentiment label. Weights are (quality, behavior) deltas per matched keyword.
var positiveIndicators = []string{"authentic", "verified", "official", "helpful", "thank you", "sincerely"}

var negativeIndicators = []string{"fake", "scam", "fraud", "phishing", "malware", "stolen"}

const (
	positiveQualityDelta  = 5
	positiveBehaviorDelta = 3
	negativeQualityDelta  = -15
	negativeBehaviorDelta = -20
)

// Structural heuristics.
const (
	shortContentRunes       = 10
	shortContentSpamBump    = 5
	shortContentRiskBump    = 10
	longContentRunes        = 500
	longContentQualityBonus = 5
	emojiLimit              = 5
	emojiSpamBump           = 10
	emojiRiskBump           = 10
)

// Classification thresholds over the spam score.
const (
	spamThreshold       = 50
	suspiciousThreshold = 20
	highRiskThreshold   = 80
	urgencyHighScore    = 40
	urgencyMediumScore  = 20
)

// Score bounds.
const (
	riskFloor       = 10
	confidenceFloor = 20
	// Confidence reported for content too short to carry any signal.
	shortContentConfidence = 25
)
