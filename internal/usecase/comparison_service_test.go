package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/cuidaelmango/backend/internal/domain"
)

func carrefourOreo() domain.Product {
	return domain.Product{
		ID:          1,
		Store:       domain.StoreCarrefour,
		Name:        "Oreo Clásica 117g",
		CleanedName: "clasica",
		Brand:       "oreo",
		Category:    "galletitas",
		Weight:      117,
		WeightUnit:  "g",
		Variant:     "clasica",
		Price:       1500,
	}
}

func discoOreo() domain.Product {
	return domain.Product{
		ID:          2,
		Store:       domain.StoreDisco,
		Name:        "Galletitas Oreo clasica 117 g",
		CleanedName: "clasica",
		Brand:       "oreo",
		Category:    "galletitas",
		Weight:      117,
		WeightUnit:  "g",
		Variant:     "clasica",
		Price:       1400,
	}
}

func TestCompareProducts(t *testing.T) {
	t.Run("empty list rejected", func(t *testing.T) {
		service := NewComparisonService(&stubProductRepo{}, nil, nil, ComparisonServiceConfig{})

		_, err := service.CompareProducts(context.Background(), nil)
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("unknown store rejected", func(t *testing.T) {
		service := NewComparisonService(&stubProductRepo{}, nil, nil, ComparisonServiceConfig{})

		_, err := service.CompareProducts(context.Background(), []domain.Product{
			{Store: "walmart", Name: "Pan"},
		})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("resolves counterpart in opposite store", func(t *testing.T) {
		counterpart := discoOreo()
		repo := &stubProductRepo{
			findFunc: func(q domain.ProductQuery) ([]domain.Product, error) {
				return []domain.Product{counterpart}, nil
			},
		}
		service := NewComparisonService(repo, nil, nil, ComparisonServiceConfig{})

		result, err := service.CompareProducts(context.Background(), []domain.Product{carrefourOreo()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		carrefourRows := result.Rows[domain.StoreCarrefour]
		if len(carrefourRows) != 1 || !carrefourRows[0].IsOrigin {
			t.Fatalf("expected one origin row for carrefour, got %+v", carrefourRows)
		}

		discoRows := result.Rows[domain.StoreDisco]
		if len(discoRows) != 1 {
			t.Fatalf("expected one row for disco, got %d", len(discoRows))
		}
		matched := discoRows[0]
		if matched.Product.ID != 2 {
			t.Errorf("expected counterpart 2, got %d", matched.Product.ID)
		}
		if matched.OriginProductID != 1 {
			t.Errorf("expected origin link to product 1, got %d", matched.OriginProductID)
		}
		if matched.Match == nil || matched.Match.Score != 100 {
			t.Errorf("expected score 100, got %+v", matched.Match)
		}

		if result.Totals[domain.StoreCarrefour] != 1500 {
			t.Errorf("carrefour total = %g, expected 1500", result.Totals[domain.StoreCarrefour])
		}
		if result.Totals[domain.StoreDisco] != 1400 {
			t.Errorf("disco total = %g, expected 1400", result.Totals[domain.StoreDisco])
		}
		if result.Recommendation == nil || result.Recommendation.WinningStore != domain.StoreDisco {
			t.Errorf("expected disco recommendation, got %+v", result.Recommendation)
		}

		meta := result.Metadata
		if meta.TotalProducts != 1 || meta.MatchesFound != 1 || meta.HighConfidenceCount != 1 {
			t.Errorf("unexpected metadata: %+v", meta)
		}
	})

	t.Run("no candidates yields unavailable row", func(t *testing.T) {
		service := NewComparisonService(&stubProductRepo{}, nil, nil, ComparisonServiceConfig{})

		result, err := service.CompareProducts(context.Background(), []domain.Product{carrefourOreo()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		discoRows := result.Rows[domain.StoreDisco]
		if len(discoRows) != 1 || !discoRows[0].Unavailable {
			t.Fatalf("expected an unavailable row, got %+v", discoRows)
		}
		if discoRows[0].OriginProductID != 1 {
			t.Errorf("expected origin link to product 1, got %d", discoRows[0].OriginProductID)
		}
		if result.Metadata.ProductsWithoutMatch != 1 {
			t.Errorf("expected 1 product without match, got %d", result.Metadata.ProductsWithoutMatch)
		}
		if result.Recommendation != nil {
			t.Errorf("expected nil recommendation, got %+v", result.Recommendation)
		}
	})

	t.Run("confirmed equivalence overrides resolution", func(t *testing.T) {
		repo := &stubProductRepo{byID: map[int64]domain.Product{2: discoOreo()}}
		equivalences := &stubEquivalenceRepo{
			links: []domain.Equivalence{{ID: "eq-1", ProductAID: 1, ProductBID: 2, UserConfirmed: true}},
		}
		service := NewComparisonService(repo, equivalences, nil, ComparisonServiceConfig{})

		result, err := service.CompareProducts(context.Background(), []domain.Product{carrefourOreo()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.queries) != 0 {
			t.Errorf("expected no candidate queries, got %d", len(repo.queries))
		}

		matched := result.Rows[domain.StoreDisco][0]
		if matched.Product.ID != 2 {
			t.Errorf("expected product 2, got %d", matched.Product.ID)
		}
		if matched.Match == nil || matched.Match.Score != 100 || matched.Match.Confidence != domain.ConfidenceVeryHigh {
			t.Errorf("expected confirmed match, got %+v", matched.Match)
		}
	})

	t.Run("cached match skips resolution", func(t *testing.T) {
		repo := &stubProductRepo{byID: map[int64]domain.Product{2: discoOreo()}}
		cache := newStubCache()
		source := carrefourOreo()
		cache.data[matchCacheKey(source)] = map[string]interface{}{
			"product_id": 2,
			"score":      95,
			"confidence": "VERY_HIGH",
			"rationale":  []string{"brand identical: oreo"},
		}
		service := NewComparisonService(repo, nil, cache, ComparisonServiceConfig{})

		result, err := service.CompareProducts(context.Background(), []domain.Product{source})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.queries) != 0 {
			t.Errorf("expected no candidate queries, got %d", len(repo.queries))
		}

		matched := result.Rows[domain.StoreDisco][0]
		if matched.Product.ID != 2 {
			t.Errorf("expected product 2, got %d", matched.Product.ID)
		}
		if matched.Match == nil || matched.Match.Score != 95 {
			t.Errorf("expected cached score 95, got %+v", matched.Match)
		}
	})

	t.Run("fresh resolution is cached", func(t *testing.T) {
		counterpart := discoOreo()
		repo := &stubProductRepo{
			findFunc: func(q domain.ProductQuery) ([]domain.Product, error) {
				return []domain.Product{counterpart}, nil
			},
		}
		cache := newStubCache()
		service := NewComparisonService(repo, nil, cache, ComparisonServiceConfig{})

		source := carrefourOreo()
		if _, err := service.CompareProducts(context.Background(), []domain.Product{source}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(cache.writes) != 1 {
			t.Fatalf("expected 1 cache write, got %d", len(cache.writes))
		}
		if cache.writes[0].key != matchCacheKey(source) {
			t.Errorf("cache key = %q, expected %q", cache.writes[0].key, matchCacheKey(source))
		}
		if cache.writes[0].ttl != defaultMatchCacheTTL {
			t.Errorf("ttl = %v, expected %v", cache.writes[0].ttl, defaultMatchCacheTTL)
		}
	})

	t.Run("alternatives capped at three", func(t *testing.T) {
		pool := make([]domain.Product, 0, 6)
		for i := int64(0); i < 6; i++ {
			p := discoOreo()
			p.ID = 10 + i
			pool = append(pool, p)
		}
		repo := &stubProductRepo{
			findFunc: func(q domain.ProductQuery) ([]domain.Product, error) {
				return pool, nil
			},
		}
		service := NewComparisonService(repo, nil, nil, ComparisonServiceConfig{TopN: 10})

		result, err := service.CompareProducts(context.Background(), []domain.Product{carrefourOreo()})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		matched := result.Rows[domain.StoreDisco][0]
		if len(matched.Alternatives) != maxAlternatives {
			t.Errorf("expected %d alternatives, got %d", maxAlternatives, len(matched.Alternatives))
		}
	})
}

func TestPriceCart(t *testing.T) {
	t.Run("empty cart rejected", func(t *testing.T) {
		service := NewComparisonService(&stubProductRepo{}, nil, nil, ComparisonServiceConfig{})

		_, err := service.PriceCart(context.Background(), nil)
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("invalid quantity rejected", func(t *testing.T) {
		service := NewComparisonService(&stubProductRepo{}, nil, nil, ComparisonServiceConfig{})

		_, err := service.PriceCart(context.Background(), []domain.CartLine{
			{Product: domain.Product{Name: "Pan", Price: 100}, Quantity: 0},
		})
		if !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Errorf("expected ErrInvalidQuantity, got %v", err)
		}
	})

	t.Run("hydrates lines carrying only an id", func(t *testing.T) {
		repo := &stubProductRepo{byID: map[int64]domain.Product{2: discoOreo()}}
		service := NewComparisonService(repo, nil, nil, ComparisonServiceConfig{})

		summary, err := service.PriceCart(context.Background(), []domain.CartLine{
			{Product: domain.Product{ID: 2}, Quantity: 2},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Totals[domain.StoreDisco] != 2800 {
			t.Errorf("disco total = %g, expected 2800", summary.Totals[domain.StoreDisco])
		}
	})

	t.Run("unknown product id", func(t *testing.T) {
		service := NewComparisonService(&stubProductRepo{}, nil, nil, ComparisonServiceConfig{})

		_, err := service.PriceCart(context.Background(), []domain.CartLine{
			{Product: domain.Product{ID: 99}, Quantity: 1},
		})
		if !errors.Is(err, domain.ErrProductNotFound) {
			t.Errorf("expected ErrProductNotFound, got %v", err)
		}
	})
}
