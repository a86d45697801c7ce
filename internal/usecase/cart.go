package usecase

import (
	"fmt"

	"github.com/cuidaelmango/backend/internal/domain"
)

// CartAggregator prices a shopping list split between the two stores
// and produces per-store totals with a savings recommendation.
type CartAggregator struct{}

// NewCartAggregator creates a cart aggregator
func NewCartAggregator() *CartAggregator {
	return &CartAggregator{}
}

// Aggregate groups cart lines by store, prices each line with its
// promo rules and sums per-store subtotals. The summary is built in a
// single pass and returned whole; a pricing error on any line aborts
// the aggregation.
func (a *CartAggregator) Aggregate(lines []domain.CartLine) (domain.CartSummary, error) {
	totals := make(map[domain.Store]float64)

	for _, line := range lines {
		store := line.Store
		if store == "" {
			store = line.Product.Store
		}

		total, _, err := PriceLine(line.Product.Price, line.Product.Promo, line.Quantity)
		if err != nil {
			return domain.CartSummary{}, fmt.Errorf("pricing %q: %w", line.Product.Name, err)
		}
		totals[store] += total
	}

	return domain.CartSummary{
		Totals:         totals,
		Recommendation: recommend(totals),
	}, nil
}

// recommend picks the cheaper store when both stores have a nonzero
// subtotal. Equal subtotals still produce a recommendation, with zero
// savings. With a single store there is nothing to compare and the
// recommendation is nil.
func recommend(totals map[domain.Store]float64) *domain.Recommendation {
	carrefour := totals[domain.StoreCarrefour]
	disco := totals[domain.StoreDisco]
	if carrefour <= 0 || disco <= 0 {
		return nil
	}

	winner := domain.StoreDisco
	winnerTotal, loserTotal := disco, carrefour
	if carrefour < disco {
		winner = domain.StoreCarrefour
		winnerTotal, loserTotal = carrefour, disco
	}

	savings := loserTotal - winnerTotal
	return &domain.Recommendation{
		WinningStore:   winner,
		SavingsAmount:  savings,
		SavingsPercent: savings / loserTotal * 100,
	}
}
