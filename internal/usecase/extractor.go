package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cuidaelmango/backend/internal/domain"
	"github.com/cuidaelmango/backend/internal/textnorm"
)

// Package-level compiled regex patterns for performance
var (
	// Pack with weight, e.g. "6 x 1.5L". Checked before the simple
	// pattern so the pack count is not lost to a partial match.
	packWeightPattern = regexp.MustCompile(`(\d+)\s*x\s*(\d+(?:[.,]\d+)?)\s*(kg|grs|gr|g|lts|lt|l|ml|cc)\b`)

	// Simple weight/volume, e.g. "170g", "2,5 kg", "500 ml"
	simpleWeightPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(kg|grs|gr|g|lts|lt|l|ml|cc)\b`)

	// Pack-count patterns in priority order: "pack x 6", "x 6 u",
	// "12 unidades", "x6". First match wins.
	packCountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`pack\s*x?\s*(\d+)`),
		regexp.MustCompile(`x\s*(\d+)\s*u`),
		regexp.MustCompile(`(\d+)\s*unidades`),
		regexp.MustCompile(`x\s*(\d+)`),
	}
)

// ExtractorConfig holds the lookup catalogs for attribute extraction.
// Nil/empty fields fall back to the default catalogs.
type ExtractorConfig struct {
	Brands    []string
	Variants  []string
	StopWords map[string]bool
}

// AttributeExtractor turns a raw product name into structured
// attributes. Catalogs are fixed at construction, so the extractor is
// a pure function of its input and safe for concurrent use.
type AttributeExtractor struct {
	brands    []string
	variants  []string
	stopWords map[string]bool
}

// NewAttributeExtractor creates an extractor with the given catalogs
func NewAttributeExtractor(config ExtractorConfig) *AttributeExtractor {
	brands := config.Brands
	if len(brands) == 0 {
		brands = DefaultBrandCatalog()
	}
	variants := config.Variants
	if len(variants) == 0 {
		variants = DefaultVariantCatalog()
	}
	stopWords := config.StopWords
	if stopWords == nil {
		stopWords = DefaultStopWords()
	}

	// Catalog entries are folded the same way names are, so entries
	// written with accents ("día") still match folded input.
	foldedBrands := make([]string, len(brands))
	for i, b := range brands {
		foldedBrands[i] = strings.ToLower(textnorm.Fold(b))
	}
	foldedVariants := make([]string, len(variants))
	for i, v := range variants {
		foldedVariants[i] = strings.ToLower(textnorm.Fold(v))
	}

	return &AttributeExtractor{
		brands:    foldedBrands,
		variants:  foldedVariants,
		stopWords: stopWords,
	}
}

// Extract derives structured attributes from a raw product name.
// Total function: never fails, unrecognized parts degrade to zero
// values and an empty name yields empty attributes.
func (e *AttributeExtractor) Extract(name string) domain.ExtractedAttributes {
	attrs := domain.ExtractedAttributes{}
	if strings.TrimSpace(name) == "" {
		return attrs
	}

	lower := strings.ToLower(strings.TrimSpace(textnorm.Fold(name)))

	// Weight/volume: pack pattern first, then simple; first match wins
	var weightMatch string
	if m := packWeightPattern.FindStringSubmatch(lower); m != nil {
		if count, err := strconv.Atoi(m[1]); err == nil && count > 0 {
			attrs.PackCount = count
		}
		if w, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", "."), 64); err == nil && w > 0 {
			attrs.Weight = w
			attrs.WeightUnit = m[3]
		}
		weightMatch = m[0]
	} else if m := simpleWeightPattern.FindStringSubmatch(lower); m != nil {
		if w, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64); err == nil && w > 0 {
			attrs.Weight = w
			attrs.WeightUnit = m[2]
		}
		weightMatch = m[0]
	}

	// Pack count, unless the weight pattern already set it
	if attrs.PackCount == 0 {
		for _, pattern := range packCountPatterns {
			if m := pattern.FindStringSubmatch(lower); m != nil {
				if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
					attrs.PackCount = n
				}
				break
			}
		}
	}

	// Brand and variant: first catalog entry found in the name wins
	for _, brand := range e.brands {
		if strings.Contains(lower, brand) {
			attrs.Brand = brand
			break
		}
	}
	for _, variant := range e.variants {
		if strings.Contains(lower, variant) {
			attrs.Variant = variant
			break
		}
	}

	attrs.CleanedName = e.cleanName(lower, weightMatch, attrs.Brand)
	return attrs
}

// cleanName strips the matched weight and brand substrings, then drops
// stop words and very short tokens.
func (e *AttributeExtractor) cleanName(lower, weightMatch, brand string) string {
	cleaned := lower
	if weightMatch != "" {
		cleaned = strings.ReplaceAll(cleaned, weightMatch, " ")
	}
	if brand != "" {
		cleaned = strings.ReplaceAll(cleaned, brand, " ")
	}

	var kept []string
	for _, token := range strings.Fields(cleaned) {
		if e.stopWords[token] || len(token) <= 2 {
			continue
		}
		kept = append(kept, token)
	}
	return strings.Join(kept, " ")
}
