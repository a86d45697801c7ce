package domain

// Store identifies one of the two supermarkets being compared
type Store string

const (
	StoreCarrefour Store = "carrefour"
	StoreDisco     Store = "disco"
)

// Opposite returns the other store. Matching is always directional:
// a product from one store is matched against the pool of the other.
func (s Store) Opposite() Store {
	if s == StoreCarrefour {
		return StoreDisco
	}
	return StoreCarrefour
}

// Valid reports whether the store is one of the two known supermarkets
func (s Store) Valid() bool {
	return s == StoreCarrefour || s == StoreDisco
}

// Product represents a scraped product listing from one store.
// Empty string / zero fields mean the attribute was not detected.
type Product struct {
	ID          int64   `json:"id"`
	Store       Store   `json:"store"`
	Name        string  `json:"name"`
	CleanedName string  `json:"cleanedName,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	Category    string  `json:"category,omitempty"`
	Weight      float64 `json:"weight,omitempty"`
	WeightUnit  string  `json:"weightUnit,omitempty"`
	PackCount   int     `json:"packCount,omitempty"`
	Variant     string  `json:"variant,omitempty"`
	Price       float64 `json:"price"`
	Promo       string  `json:"promo,omitempty"`
}

// ExtractedAttributes holds the structured fields derived from a raw
// product name. Recomputed whenever the name changes, never mutated.
type ExtractedAttributes struct {
	CleanedName string  `json:"cleanedName"`
	Brand       string  `json:"brand,omitempty"`
	Weight      float64 `json:"weight,omitempty"`
	WeightUnit  string  `json:"weightUnit,omitempty"`
	PackCount   int     `json:"packCount,omitempty"`
	Variant     string  `json:"variant,omitempty"`
}

// Apply copies the extracted attributes onto a product record
func (a ExtractedAttributes) Apply(p *Product) {
	p.CleanedName = a.CleanedName
	p.Brand = a.Brand
	p.Weight = a.Weight
	p.WeightUnit = a.WeightUnit
	p.PackCount = a.PackCount
	p.Variant = a.Variant
}
