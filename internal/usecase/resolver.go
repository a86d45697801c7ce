package usecase

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/cuidaelmango/backend/internal/domain"
)

const (
	defaultCandidateLimit = 10
	defaultTopN           = 5

	// Stage-1 weight window around the source weight
	weightTolerance = 0.30

	// Minimum length for a name token to qualify as a search keyword
	keywordMinLength = 4
)

// ResolverConfig holds configuration for the candidate resolver
type ResolverConfig struct {
	CandidateLimit     int
	TopN               int
	EnableDebugLogging bool
}

// CandidateResolver narrows the opposite store's product pool for a
// source product through a fallback chain of repository queries, then
// ranks the survivors with the match scorer.
//
// The chain is directional (source store -> opposite store) and is not
// guaranteed to return the same candidates with the roles swapped;
// that is a property of the asymmetric query design, not a bug.
type CandidateResolver struct {
	products           domain.ProductRepository
	scorer             *MatchScorer
	candidateLimit     int
	topN               int
	enableDebugLogging bool
}

// NewCandidateResolver creates a resolver backed by the given repository
func NewCandidateResolver(products domain.ProductRepository, scorer *MatchScorer, config ResolverConfig) *CandidateResolver {
	limit := config.CandidateLimit
	if limit <= 0 {
		limit = defaultCandidateLimit
	}
	topN := config.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	if scorer == nil {
		scorer = NewMatchScorer(config.EnableDebugLogging)
	}

	return &CandidateResolver{
		products:           products,
		scorer:             scorer,
		candidateLimit:     limit,
		topN:               topN,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// FindCandidates returns up to the configured limit of products from
// the opposite store that could be the same physical product. Each
// fallback stage runs only when the previous one returned nothing, and
// the first stage with results is final:
//
//  1. brand + category + weight within ±30%
//  2. brand + category
//  3. brand
//  4. category + name keyword
//
// An empty result means no stage applied or matched; it is not an error.
func (r *CandidateResolver) FindCandidates(ctx context.Context, source domain.Product) ([]domain.Product, error) {
	target := source.Store.Opposite()

	// Stage 1: brand + category + similar weight
	if source.Brand != "" && source.Category != "" && source.Weight > 0 {
		found, err := r.products.Find(ctx, domain.ProductQuery{
			Store:     target,
			Brand:     source.Brand,
			Category:  source.Category,
			MinWeight: source.Weight * (1 - weightTolerance),
			MaxWeight: source.Weight * (1 + weightTolerance),
			Limit:     r.candidateLimit,
		})
		if err != nil {
			return nil, err
		}
		if len(found) > 0 {
			r.debugStage("brand+category+weight", source, len(found))
			return found, nil
		}
	}

	// Stage 2: brand + category
	if source.Brand != "" && source.Category != "" {
		found, err := r.products.Find(ctx, domain.ProductQuery{
			Store:    target,
			Brand:    source.Brand,
			Category: source.Category,
			Limit:    r.candidateLimit,
		})
		if err != nil {
			return nil, err
		}
		if len(found) > 0 {
			r.debugStage("brand+category", source, len(found))
			return found, nil
		}
	}

	// Stage 3: brand only
	if source.Brand != "" {
		found, err := r.products.Find(ctx, domain.ProductQuery{
			Store: target,
			Brand: source.Brand,
			Limit: r.candidateLimit,
		})
		if err != nil {
			return nil, err
		}
		if len(found) > 0 {
			r.debugStage("brand", source, len(found))
			return found, nil
		}
	}

	// Stage 4: category + name keyword
	if source.Category != "" {
		if keyword := searchKeyword(source.Name); keyword != "" {
			found, err := r.products.Find(ctx, domain.ProductQuery{
				Store:        target,
				Category:     source.Category,
				NameContains: keyword,
				Limit:        r.candidateLimit,
			})
			if err != nil {
				return nil, err
			}
			if len(found) > 0 {
				r.debugStage("category+keyword", source, len(found))
				return found, nil
			}
		}
	}

	return nil, nil
}

// Rank scores every candidate against the source and returns at most
// topN results in non-increasing score order. Ties keep the original
// pool order (stable sort). topN <= 0 uses the configured default.
// An empty pool yields an empty result, not an error.
func (r *CandidateResolver) Rank(source domain.Product, candidates []domain.Product, topN int) []domain.ScoredCandidate {
	if topN <= 0 {
		topN = r.topN
	}

	scored := make([]domain.ScoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		scored = append(scored, domain.ScoredCandidate{
			Product: candidate,
			Match:   r.scorer.Score(source, candidate),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Match.Score > scored[j].Match.Score
	})

	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}

// searchKeyword picks the first token of the name longer than four
// characters, or the first token when none qualifies.
func searchKeyword(name string) string {
	words := strings.Fields(strings.ToLower(name))
	if len(words) == 0 {
		return ""
	}
	for _, word := range words {
		if len(word) > keywordMinLength {
			return word
		}
	}
	return words[0]
}

func (r *CandidateResolver) debugStage(stage string, source domain.Product, count int) {
	if r.enableDebugLogging {
		log.Printf("[RESOLVE] %q matched %d candidates via %s", source.Name, count, stage)
	}
}
