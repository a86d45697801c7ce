package usecase

import (
	"fmt"
	"log"
	"strings"

	"github.com/cuidaelmango/backend/internal/domain"
)

// Signal weights for the identity score. The five signals are
// evaluated in a fixed order (brand, category, weight, variant,
// cleaned name) and their contributions are summed, then clamped once
// to [0,100].
const (
	brandExactPoints       = 35
	brandSimilarPoints     = 25
	brandBothAbsentPoints  = 10
	brandSimilarThreshold  = 0.8
	categoryMatchPoints    = 20
	weightExactPoints      = 30
	weightBothAbsentPoints = 10
	variantMatchPoints     = 10
	variantMismatchPenalty = 20
	variantOneSidedPenalty = 10
	nameSimilarityMax      = 10
)

// Weight difference buckets, as fractions of the larger value
const (
	weightDiffVeryClose  = 0.05
	weightDiffClose      = 0.10
	weightDiffAcceptable = 0.20
	weightDiffFar        = 0.50
)

// MatchScorer computes an identity-confidence score between two
// products from opposite stores. Pure and deterministic; safe for
// concurrent use.
type MatchScorer struct {
	enableDebugLogging bool
}

// NewMatchScorer creates a match scorer
func NewMatchScorer(enableDebugLogging bool) *MatchScorer {
	return &MatchScorer{enableDebugLogging: enableDebugLogging}
}

// Score compares two products and returns a 0-100 identity score with
// a confidence level and a rationale line per signal.
func (s *MatchScorer) Score(a, b domain.Product) domain.MatchResult {
	score := 0
	rationale := make([]string, 0, 5)

	// 1. Brand (35 points)
	switch {
	case a.Brand != "" && b.Brand != "":
		if strings.EqualFold(a.Brand, b.Brand) {
			score += brandExactPoints
			rationale = append(rationale, fmt.Sprintf("brand identical: %s", a.Brand))
		} else if sim := similarityRatio(a.Brand, b.Brand); sim > brandSimilarThreshold {
			score += brandSimilarPoints
			rationale = append(rationale, fmt.Sprintf("brand similar: %s vs %s (%.2f)", a.Brand, b.Brand, sim))
		} else {
			rationale = append(rationale, fmt.Sprintf("brand mismatch: %s vs %s", a.Brand, b.Brand))
		}
	case a.Brand == "" && b.Brand == "":
		score += brandBothAbsentPoints
		rationale = append(rationale, "no brand detected on either side")
	default:
		rationale = append(rationale, fmt.Sprintf("brand on one side only: %s", firstNonEmpty(a.Brand, b.Brand)))
	}

	// 2. Category (20 points)
	if a.Category != "" && b.Category != "" {
		if strings.EqualFold(a.Category, b.Category) {
			score += categoryMatchPoints
			rationale = append(rationale, fmt.Sprintf("category identical: %s", a.Category))
		} else {
			rationale = append(rationale, fmt.Sprintf("category mismatch: %s vs %s", a.Category, b.Category))
		}
	} else {
		rationale = append(rationale, "category not present on both sides")
	}

	// 3. Weight/volume (30 points)
	switch {
	case a.Weight > 0 && b.Weight > 0 && a.WeightUnit != "" && b.WeightUnit != "":
		normA := NormalizeWeight(a.Weight, a.WeightUnit)
		normB := NormalizeWeight(b.Weight, b.WeightUnit)
		diff := normalizedWeightDiff(normA, normB)
		points := weightPoints(diff)
		score += points
		rationale = append(rationale, fmt.Sprintf("weight %g%s vs %g%s (diff %.1f%%, +%d)",
			a.Weight, a.WeightUnit, b.Weight, b.WeightUnit, diff*100, points))
	case a.Weight == 0 && b.Weight == 0:
		score += weightBothAbsentPoints
		rationale = append(rationale, "no weight detected on either side")
	default:
		rationale = append(rationale, "weight or unit on one side only")
	}

	// 4. Variant (10 points, with penalties)
	switch {
	case a.Variant != "" && b.Variant != "":
		if strings.EqualFold(a.Variant, b.Variant) {
			score += variantMatchPoints
			rationale = append(rationale, fmt.Sprintf("variant identical: %s", a.Variant))
		} else {
			score -= variantMismatchPenalty
			rationale = append(rationale, fmt.Sprintf("variant mismatch: %s vs %s", a.Variant, b.Variant))
		}
	case a.Variant == "" && b.Variant == "":
		score += variantMatchPoints
		rationale = append(rationale, "no variant on either side")
	default:
		score -= variantOneSidedPenalty
		rationale = append(rationale, fmt.Sprintf("variant on one side only: %s", firstNonEmpty(a.Variant, b.Variant)))
	}

	// 5. Cleaned name similarity (up to 10 points)
	if a.CleanedName != "" && b.CleanedName != "" {
		sim := similarityRatio(a.CleanedName, b.CleanedName)
		score += int(sim * nameSimilarityMax)
		rationale = append(rationale, fmt.Sprintf("name similarity: %.2f", sim))
	} else {
		rationale = append(rationale, "cleaned name missing on one side")
	}

	// Clamp once, after all signals: the variant penalty can push the
	// raw sum below zero.
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	if s.enableDebugLogging {
		log.Printf("[MATCH] %q vs %q | score: %d", a.Name, b.Name, score)
	}

	return domain.MatchResult{
		Score:      score,
		Confidence: confidenceForScore(score),
		Rationale:  rationale,
	}
}

// NormalizeWeight converts a weight/volume to its base unit: grams for
// mass, milliliters for volume. Unrecognized units are taken at face
// value.
func NormalizeWeight(value float64, unit string) float64 {
	if value <= 0 || unit == "" {
		return 0
	}
	switch strings.ToLower(unit) {
	case "kg":
		return value * 1000
	case "g", "gr", "grs":
		return value
	case "l", "lt", "lts":
		return value * 1000
	case "ml", "cc":
		return value
	}
	return value
}

// normalizedWeightDiff returns |a-b| as a fraction of the larger value
func normalizedWeightDiff(a, b float64) float64 {
	if a <= 0 || b <= 0 {
		return 1
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	larger := a
	if b > a {
		larger = b
	}
	return diff / larger
}

// weightPoints maps a normalized weight difference to its score bucket
func weightPoints(diff float64) int {
	switch {
	case diff == 0:
		return weightExactPoints
	case diff < weightDiffVeryClose:
		return 25
	case diff < weightDiffClose:
		return 20
	case diff < weightDiffAcceptable:
		return 15
	case diff < weightDiffFar:
		return 5
	}
	return 0
}

// confidenceForScore buckets a clamped score into a confidence level
func confidenceForScore(score int) domain.ConfidenceLevel {
	switch {
	case score >= 90:
		return domain.ConfidenceVeryHigh
	case score >= 80:
		return domain.ConfidenceHigh
	case score >= 70:
		return domain.ConfidenceMediumHigh
	case score >= 60:
		return domain.ConfidenceMedium
	case score >= 50:
		return domain.ConfidenceMediumLow
	}
	return domain.ConfidenceLow
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
