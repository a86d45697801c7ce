package domain

// CartLine is one selected product with a quantity, attributed to the
// store it was selected from. Consumed once by pricing; immutable.
type CartLine struct {
	Store    Store   `json:"store"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Recommendation names the cheaper store and what switching saves.
// SavingsPercent is kept at full precision; rounding is display-only.
type Recommendation struct {
	WinningStore   Store   `json:"winningStore"`
	SavingsAmount  float64 `json:"savingsAmount"`
	SavingsPercent float64 `json:"savingsPercent"`
}

// CartSummary is the all-or-nothing output of one aggregation pass.
// Recommendation is nil when only one store has a subtotal.
type CartSummary struct {
	Totals         map[Store]float64 `json:"totals"`
	Recommendation *Recommendation   `json:"recommendation,omitempty"`
}
