package usecase

import (
	"context"
	"testing"

	"github.com/cuidaelmango/backend/internal/domain"
)

func TestFindCandidates(t *testing.T) {
	source := domain.Product{
		Store:    domain.StoreCarrefour,
		Name:     "Oreo Clásica 117g",
		Brand:    "oreo",
		Category: "galletitas",
		Weight:   117,
	}

	t.Run("stage one hit stops the chain", func(t *testing.T) {
		repo := &stubProductRepo{
			findFunc: func(q domain.ProductQuery) ([]domain.Product, error) {
				return []domain.Product{{ID: 2, Store: domain.StoreDisco}}, nil
			},
		}
		resolver := NewCandidateResolver(repo, nil, ResolverConfig{})

		found, err := resolver.FindCandidates(context.Background(), source)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(found) != 1 {
			t.Fatalf("expected 1 candidate, got %d", len(found))
		}
		if len(repo.queries) != 1 {
			t.Fatalf("expected 1 query, got %d", len(repo.queries))
		}

		q := repo.queries[0]
		if q.Store != domain.StoreDisco {
			t.Errorf("expected query against disco, got %s", q.Store)
		}
		if q.Brand != "oreo" || q.Category != "galletitas" {
			t.Errorf("unexpected filters: %+v", q)
		}
		if q.MinWeight < 81.8 || q.MinWeight > 82 {
			t.Errorf("MinWeight = %g, expected ~81.9", q.MinWeight)
		}
		if q.MaxWeight < 152 || q.MaxWeight > 152.2 {
			t.Errorf("MaxWeight = %g, expected ~152.1", q.MaxWeight)
		}
		if q.Limit != defaultCandidateLimit {
			t.Errorf("Limit = %d, expected %d", q.Limit, defaultCandidateLimit)
		}
	})

	t.Run("falls through to brand only", func(t *testing.T) {
		repo := &stubProductRepo{
			findFunc: func(q domain.ProductQuery) ([]domain.Product, error) {
				if q.Brand != "" && q.Category == "" {
					return []domain.Product{{ID: 3, Store: domain.StoreDisco}}, nil
				}
				return nil, nil
			},
		}
		resolver := NewCandidateResolver(repo, nil, ResolverConfig{})

		found, err := resolver.FindCandidates(context.Background(), source)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(found) != 1 || found[0].ID != 3 {
			t.Fatalf("expected candidate 3, got %+v", found)
		}
		if len(repo.queries) != 3 {
			t.Errorf("expected 3 queries, got %d", len(repo.queries))
		}
	})

	t.Run("keyword stage for brandless products", func(t *testing.T) {
		repo := &stubProductRepo{
			findFunc: func(q domain.ProductQuery) ([]domain.Product, error) {
				if q.NameContains != "" {
					return []domain.Product{{ID: 4, Store: domain.StoreDisco}}, nil
				}
				return nil, nil
			},
		}
		resolver := NewCandidateResolver(repo, nil, ResolverConfig{})

		brandless := domain.Product{
			Store:    domain.StoreCarrefour,
			Name:     "Galletitas surtidas",
			Category: "galletitas",
		}
		found, err := resolver.FindCandidates(context.Background(), brandless)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(found) != 1 {
			t.Fatalf("expected 1 candidate, got %d", len(found))
		}
		if len(repo.queries) != 1 {
			t.Fatalf("expected 1 query, got %d", len(repo.queries))
		}
		if repo.queries[0].NameContains != "galletitas" {
			t.Errorf("keyword = %q, expected galletitas", repo.queries[0].NameContains)
		}
	})

	t.Run("no applicable stage returns nothing", func(t *testing.T) {
		repo := &stubProductRepo{}
		resolver := NewCandidateResolver(repo, nil, ResolverConfig{})

		bare := domain.Product{Store: domain.StoreCarrefour, Name: "???"}
		found, err := resolver.FindCandidates(context.Background(), bare)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found != nil {
			t.Errorf("expected no candidates, got %+v", found)
		}
		if len(repo.queries) != 0 {
			t.Errorf("expected no queries, got %d", len(repo.queries))
		}
	})
}

func TestRank(t *testing.T) {
	resolver := NewCandidateResolver(&stubProductRepo{}, nil, ResolverConfig{})

	source := domain.Product{
		Store:       domain.StoreCarrefour,
		Brand:       "oreo",
		Category:    "galletitas",
		Weight:      117,
		WeightUnit:  "g",
		Variant:     "clasica",
		CleanedName: "clasica",
	}
	exact := domain.Product{
		ID:          10,
		Store:       domain.StoreDisco,
		Brand:       "oreo",
		Category:    "galletitas",
		Weight:      117,
		WeightUnit:  "g",
		Variant:     "clasica",
		CleanedName: "clasica",
	}
	differentVariant := exact
	differentVariant.ID = 11
	differentVariant.Variant = "original"
	differentVariant.CleanedName = "original"

	t.Run("orders by descending score", func(t *testing.T) {
		ranked := resolver.Rank(source, []domain.Product{differentVariant, exact}, 0)
		if len(ranked) != 2 {
			t.Fatalf("expected 2 results, got %d", len(ranked))
		}
		if ranked[0].Product.ID != 10 {
			t.Errorf("expected exact match first, got product %d", ranked[0].Product.ID)
		}
		if ranked[0].Match.Score <= ranked[1].Match.Score {
			t.Errorf("scores not descending: %d then %d", ranked[0].Match.Score, ranked[1].Match.Score)
		}
	})

	t.Run("truncates to topN", func(t *testing.T) {
		ranked := resolver.Rank(source, []domain.Product{differentVariant, exact}, 1)
		if len(ranked) != 1 {
			t.Fatalf("expected 1 result, got %d", len(ranked))
		}
		if ranked[0].Product.ID != 10 {
			t.Errorf("expected best match kept, got product %d", ranked[0].Product.ID)
		}
	})

	t.Run("empty pool", func(t *testing.T) {
		ranked := resolver.Rank(source, nil, 0)
		if len(ranked) != 0 {
			t.Errorf("expected empty result, got %d", len(ranked))
		}
	})
}

func TestSearchKeyword(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Galletitas surtidas", "galletitas"},
		{"Pan x 2", "pan"}, // no token longer than four chars
		{"Miel pura organica", "organica"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := searchKeyword(tt.name); got != tt.expected {
			t.Errorf("searchKeyword(%q) = %q, expected %q", tt.name, got, tt.expected)
		}
	}
}
