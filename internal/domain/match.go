package domain

// ConfidenceLevel classifies a match score into a human-facing bucket
type ConfidenceLevel string

const (
	ConfidenceVeryHigh   ConfidenceLevel = "VERY_HIGH"   // score >= 90
	ConfidenceHigh       ConfidenceLevel = "HIGH"        // score >= 80
	ConfidenceMediumHigh ConfidenceLevel = "MEDIUM_HIGH" // score >= 70
	ConfidenceMedium     ConfidenceLevel = "MEDIUM"      // score >= 60
	ConfidenceMediumLow  ConfidenceLevel = "MEDIUM_LOW"  // score >= 50
	ConfidenceLow        ConfidenceLevel = "LOW"         // below 50
)

// MatchResult is the outcome of comparing two products for identity.
// Score is always clamped to [0,100]. Rationale preserves evaluation
// order (brand, category, weight, variant, cleaned name) and is a
// diagnostic artifact only, never used in control flow.
type MatchResult struct {
	Score      int             `json:"score"`
	Confidence ConfidenceLevel `json:"confidence"`
	Rationale  []string        `json:"rationale"`
}

// ScoredCandidate pairs a candidate product with its match result
// against a source product from the opposite store.
type ScoredCandidate struct {
	Product Product     `json:"product"`
	Match   MatchResult `json:"match"`
}
