package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/cuidaelmango/backend/internal/domain"
	"github.com/cuidaelmango/backend/internal/textnorm"
)

const (
	defaultMatchCacheTTL = 24 * time.Hour
	maxAlternatives      = 3

	// Matches at or above this score count as high confidence in the
	// comparison metadata
	highConfidenceScore = 80
)

// ComparisonServiceConfig holds configuration for the comparison service
type ComparisonServiceConfig struct {
	CacheTTL           time.Duration
	CandidateLimit     int
	TopN               int
	EnableDebugLogging bool
}

// ComparisonService resolves each product of a shopping list to its
// best counterpart in the opposite store and builds the side-by-side
// comparison with per-store totals and a recommendation.
//
// Resolution order per product: a user-confirmed equivalence wins
// outright, then a cached match, then the resolver's fallback chain.
// Cache failures degrade to recomputation, never to an error.
type ComparisonService struct {
	products     domain.ProductRepository
	equivalences domain.EquivalenceRepository
	cache        domain.CacheRepository
	resolver     *CandidateResolver
	aggregator   *CartAggregator
	cacheTTL     time.Duration
	topN         int
	debug        bool
}

// cachedMatch is the serialized form of a resolved match
type cachedMatch struct {
	ProductID  int64    `json:"product_id"`
	Score      int      `json:"score"`
	Confidence string   `json:"confidence"`
	Rationale  []string `json:"rationale"`
}

// NewComparisonService creates a comparison service. The equivalence
// repository and cache may be nil; both lookups are then skipped.
func NewComparisonService(
	products domain.ProductRepository,
	equivalences domain.EquivalenceRepository,
	cache domain.CacheRepository,
	config ComparisonServiceConfig,
) *ComparisonService {
	ttl := config.CacheTTL
	if ttl <= 0 {
		ttl = defaultMatchCacheTTL
	}
	topN := config.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	scorer := NewMatchScorer(config.EnableDebugLogging)

	return &ComparisonService{
		products:     products,
		equivalences: equivalences,
		cache:        cache,
		resolver: NewCandidateResolver(products, scorer, ResolverConfig{
			CandidateLimit:     config.CandidateLimit,
			TopN:               topN,
			EnableDebugLogging: config.EnableDebugLogging,
		}),
		aggregator: NewCartAggregator(),
		cacheTTL:   ttl,
		topN:       topN,
		debug:      config.EnableDebugLogging,
	}
}

// CompareProducts builds the full comparison for a shopping list. Each
// input product appears as an origin row under its own store, and its
// best counterpart (or an unavailable placeholder) as a row under the
// opposite store. Totals only count rows with a resolved price.
func (s *ComparisonService) CompareProducts(ctx context.Context, products []domain.Product) (*domain.ComparisonResult, error) {
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: empty product list", domain.ErrInvalidRequest)
	}

	result := &domain.ComparisonResult{
		Rows: map[domain.Store][]domain.ComparisonRow{
			domain.StoreCarrefour: {},
			domain.StoreDisco:     {},
		},
		Totals: make(map[domain.Store]float64),
	}
	result.Metadata.TotalProducts = len(products)

	for _, product := range products {
		if !product.Store.Valid() {
			return nil, fmt.Errorf("%w: unknown store %q for product %q", domain.ErrInvalidRequest, product.Store, product.Name)
		}

		origin := domain.ComparisonRow{Product: product, IsOrigin: true}
		result.Rows[product.Store] = append(result.Rows[product.Store], origin)
		result.Totals[product.Store] += product.Price

		counterpart := s.resolveMatch(ctx, product)
		target := product.Store.Opposite()

		if counterpart == nil {
			result.Metadata.ProductsWithoutMatch++
			result.Rows[target] = append(result.Rows[target], domain.ComparisonRow{
				Unavailable:     true,
				OriginProductID: product.ID,
			})
			continue
		}

		result.Metadata.MatchesFound++
		if counterpart.Match != nil && counterpart.Match.Score >= highConfidenceScore {
			result.Metadata.HighConfidenceCount++
		}
		counterpart.OriginProductID = product.ID
		result.Rows[target] = append(result.Rows[target], *counterpart)
		result.Totals[target] += counterpart.Product.Price
	}

	result.Recommendation = recommend(result.Totals)
	return result, nil
}

// PriceCart totals an already-resolved cart. Lines carrying only a
// product ID are hydrated from the repository before pricing.
func (s *ComparisonService) PriceCart(ctx context.Context, lines []domain.CartLine) (domain.CartSummary, error) {
	if len(lines) == 0 {
		return domain.CartSummary{}, fmt.Errorf("%w: empty cart", domain.ErrInvalidRequest)
	}

	hydrated := make([]domain.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			return domain.CartSummary{}, fmt.Errorf("%w: product %q", domain.ErrInvalidQuantity, line.Product.Name)
		}
		if line.Product.Price == 0 && line.Product.ID != 0 {
			product, err := s.products.GetByID(ctx, line.Product.ID)
			if err != nil {
				return domain.CartSummary{}, fmt.Errorf("loading product %d: %w", line.Product.ID, err)
			}
			line.Product = *product
		}
		if line.Store == "" {
			line.Store = line.Product.Store
		}
		hydrated = append(hydrated, line)
	}

	return s.aggregator.Aggregate(hydrated)
}

// resolveMatch finds the best counterpart for one product, or nil when
// nothing in the opposite store resembles it.
func (s *ComparisonService) resolveMatch(ctx context.Context, product domain.Product) *domain.ComparisonRow {
	if row := s.matchFromEquivalence(ctx, product); row != nil {
		return row
	}
	if row := s.matchFromCache(ctx, product); row != nil {
		return row
	}

	candidates, err := s.resolver.FindCandidates(ctx, product)
	if err != nil {
		log.Printf("[COMPARE] candidate lookup failed for %q: %v", product.Name, err)
		return nil
	}
	if len(candidates) == 0 {
		return nil
	}

	ranked := s.resolver.Rank(product, candidates, s.topN)
	best := ranked[0]

	alternatives := ranked[1:]
	if len(alternatives) > maxAlternatives {
		alternatives = alternatives[:maxAlternatives]
	}

	s.storeMatch(ctx, product, best)

	match := best.Match
	return &domain.ComparisonRow{
		Product:      best.Product,
		Match:        &match,
		Alternatives: alternatives,
	}
}

// matchFromEquivalence returns a row built from a stored equivalence,
// if one exists and resolves to a product in the opposite store.
func (s *ComparisonService) matchFromEquivalence(ctx context.Context, product domain.Product) *domain.ComparisonRow {
	if s.equivalences == nil || product.ID == 0 {
		return nil
	}

	links, err := s.equivalences.FindByProduct(ctx, product.ID)
	if err != nil {
		log.Printf("[COMPARE] equivalence lookup failed for product %d: %v", product.ID, err)
		return nil
	}

	for _, link := range links {
		other, err := s.products.GetByID(ctx, link.Other(product.ID))
		if err != nil {
			continue
		}
		if other.Store != product.Store.Opposite() {
			continue
		}
		if s.debug {
			log.Printf("[COMPARE] equivalence hit: %q -> %q", product.Name, other.Name)
		}
		return &domain.ComparisonRow{
			Product: *other,
			Match: &domain.MatchResult{
				Score:      100,
				Confidence: domain.ConfidenceVeryHigh,
				Rationale:  []string{"user-confirmed equivalence"},
			},
		}
	}
	return nil
}

// matchFromCache returns a previously resolved match, if still cached
// and the counterpart still exists.
func (s *ComparisonService) matchFromCache(ctx context.Context, product domain.Product) *domain.ComparisonRow {
	if s.cache == nil {
		return nil
	}

	cached, err := s.cache.Get(ctx, matchCacheKey(product))
	if err != nil || cached == nil {
		return nil
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return nil
	}
	var entry cachedMatch
	if err := json.Unmarshal(data, &entry); err != nil || entry.ProductID == 0 {
		return nil
	}

	other, err := s.products.GetByID(ctx, entry.ProductID)
	if err != nil {
		return nil
	}
	if s.debug {
		log.Printf("[COMPARE] cache hit: %q -> %q", product.Name, other.Name)
	}
	return &domain.ComparisonRow{
		Product: *other,
		Match: &domain.MatchResult{
			Score:      entry.Score,
			Confidence: domain.ConfidenceLevel(entry.Confidence),
			Rationale:  entry.Rationale,
		},
	}
}

// storeMatch caches a freshly resolved match, best effort
func (s *ComparisonService) storeMatch(ctx context.Context, product domain.Product, best domain.ScoredCandidate) {
	if s.cache == nil {
		return
	}

	entry := cachedMatch{
		ProductID:  best.Product.ID,
		Score:      best.Match.Score,
		Confidence: string(best.Match.Confidence),
		Rationale:  best.Match.Rationale,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}
	if err := s.cache.Set(ctx, matchCacheKey(product), payload, s.cacheTTL); err != nil {
		log.Printf("[COMPARE] cache write failed for %q: %v", product.Name, err)
	}
}

// matchCacheKey builds a cache key from the store and the normalized
// product name, so accent and casing differences share one entry.
func matchCacheKey(product domain.Product) string {
	return fmt.Sprintf("match:%s:%s", product.Store, textnorm.Normalize(product.Name))
}
