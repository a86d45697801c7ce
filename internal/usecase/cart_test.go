package usecase

import (
	"errors"
	"testing"

	"github.com/cuidaelmango/backend/internal/domain"
)

func TestAggregate(t *testing.T) {
	aggregator := NewCartAggregator()

	t.Run("totals per store with recommendation", func(t *testing.T) {
		lines := []domain.CartLine{
			{
				Store:    domain.StoreCarrefour,
				Product:  domain.Product{Name: "Leche", Price: 100, Store: domain.StoreCarrefour},
				Quantity: 2,
			},
			{
				Store:    domain.StoreDisco,
				Product:  domain.Product{Name: "Leche", Price: 90, Store: domain.StoreDisco},
				Quantity: 2,
			},
		}

		summary, err := aggregator.Aggregate(lines)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Totals[domain.StoreCarrefour] != 200 {
			t.Errorf("carrefour total = %g, expected 200", summary.Totals[domain.StoreCarrefour])
		}
		if summary.Totals[domain.StoreDisco] != 180 {
			t.Errorf("disco total = %g, expected 180", summary.Totals[domain.StoreDisco])
		}
		if summary.Recommendation == nil {
			t.Fatal("expected a recommendation")
		}
		if summary.Recommendation.WinningStore != domain.StoreDisco {
			t.Errorf("expected disco to win, got %s", summary.Recommendation.WinningStore)
		}
		if summary.Recommendation.SavingsAmount != 20 {
			t.Errorf("savings = %g, expected 20", summary.Recommendation.SavingsAmount)
		}
		if summary.Recommendation.SavingsPercent != 10 {
			t.Errorf("savings percent = %g, expected 10", summary.Recommendation.SavingsPercent)
		}
	})

	t.Run("promo applied per line", func(t *testing.T) {
		lines := []domain.CartLine{
			{
				Store:    domain.StoreCarrefour,
				Product:  domain.Product{Name: "Gaseosa", Price: 100, Promo: "2do al 50%"},
				Quantity: 2,
			},
		}

		summary, err := aggregator.Aggregate(lines)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Totals[domain.StoreCarrefour] != 150 {
			t.Errorf("total = %g, expected 150", summary.Totals[domain.StoreCarrefour])
		}
	})

	t.Run("tie goes to disco with zero savings", func(t *testing.T) {
		lines := []domain.CartLine{
			{Store: domain.StoreCarrefour, Product: domain.Product{Name: "Pan", Price: 100}, Quantity: 1},
			{Store: domain.StoreDisco, Product: domain.Product{Name: "Pan", Price: 100}, Quantity: 1},
		}

		summary, err := aggregator.Aggregate(lines)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Recommendation == nil {
			t.Fatal("expected a recommendation on a tie")
		}
		if summary.Recommendation.WinningStore != domain.StoreDisco {
			t.Errorf("expected disco on tie, got %s", summary.Recommendation.WinningStore)
		}
		if summary.Recommendation.SavingsAmount != 0 {
			t.Errorf("savings = %g, expected 0", summary.Recommendation.SavingsAmount)
		}
	})

	t.Run("single store yields no recommendation", func(t *testing.T) {
		lines := []domain.CartLine{
			{Store: domain.StoreCarrefour, Product: domain.Product{Name: "Pan", Price: 100}, Quantity: 1},
		}

		summary, err := aggregator.Aggregate(lines)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Recommendation != nil {
			t.Errorf("expected nil recommendation, got %+v", summary.Recommendation)
		}
	})

	t.Run("store falls back to product store", func(t *testing.T) {
		lines := []domain.CartLine{
			{Product: domain.Product{Name: "Pan", Price: 100, Store: domain.StoreDisco}, Quantity: 1},
		}

		summary, err := aggregator.Aggregate(lines)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Totals[domain.StoreDisco] != 100 {
			t.Errorf("disco total = %g, expected 100", summary.Totals[domain.StoreDisco])
		}
	})

	t.Run("invalid price aborts aggregation", func(t *testing.T) {
		lines := []domain.CartLine{
			{Store: domain.StoreCarrefour, Product: domain.Product{Name: "Pan"}, Quantity: 1},
		}

		_, err := aggregator.Aggregate(lines)
		if !errors.Is(err, domain.ErrInvalidPrice) {
			t.Errorf("expected ErrInvalidPrice, got %v", err)
		}
	})

	t.Run("empty cart", func(t *testing.T) {
		summary, err := aggregator.Aggregate(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(summary.Totals) != 0 {
			t.Errorf("expected empty totals, got %+v", summary.Totals)
		}
		if summary.Recommendation != nil {
			t.Error("expected nil recommendation for empty cart")
		}
	})
}
