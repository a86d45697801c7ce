package domain

// ComparisonRow is one entry in a store column of a comparison result:
// either a product the user selected (IsOrigin), the best match found
// for a product from the opposite store, or an unavailable placeholder.
type ComparisonRow struct {
	Product         Product           `json:"product"`
	IsOrigin        bool              `json:"isOrigin,omitempty"`
	Unavailable     bool              `json:"unavailable,omitempty"`
	OriginProductID int64             `json:"originProductId,omitempty"`
	Match           *MatchResult      `json:"match,omitempty"`
	Alternatives    []ScoredCandidate `json:"alternatives,omitempty"`
}

// ComparisonMetadata carries counters about a comparison pass
type ComparisonMetadata struct {
	TotalProducts        int `json:"totalProducts"`
	MatchesFound         int `json:"matchesFound"`
	HighConfidenceCount  int `json:"highConfidenceMatches"`
	ProductsWithoutMatch int `json:"productsWithoutMatch"`
}

// ComparisonResult is the full output of comparing a shopping list
// across both stores.
type ComparisonResult struct {
	Rows           map[Store][]ComparisonRow `json:"rows"`
	Totals         map[Store]float64         `json:"totals"`
	Metadata       ComparisonMetadata        `json:"metadata"`
	Recommendation *Recommendation           `json:"recommendation,omitempty"`
}
