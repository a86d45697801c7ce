package domain

import "time"

// Equivalence is a user-confirmed pairing between a product in each
// store. It overrides the heuristic match for either product.
type Equivalence struct {
	ID            string    `json:"id"`
	ProductAID    int64     `json:"productAId"`
	ProductBID    int64     `json:"productBId"`
	Confidence    int       `json:"confidence"`
	UserConfirmed bool      `json:"userConfirmed"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Other returns the product on the opposite side of the pairing,
// or 0 if productID is not part of it.
func (e Equivalence) Other(productID int64) int64 {
	switch productID {
	case e.ProductAID:
		return e.ProductBID
	case e.ProductBID:
		return e.ProductAID
	}
	return 0
}
