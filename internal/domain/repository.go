package domain

import (
	"context"
	"time"
)

// ProductQuery is the bounded lookup the matching core issues against
// the persistence collaborator. Zero-valued fields are not filtered on.
type ProductQuery struct {
	Store        Store
	Brand        string
	Category     string
	MinWeight    float64
	MaxWeight    float64
	NameContains string
	Limit        int
}

// ProductRepository defines the interface for product persistence.
// Find returns a bounded list, never a stream.
type ProductRepository interface {
	Find(ctx context.Context, q ProductQuery) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	// Search performs accent-insensitive name search. In strict mode
	// every word of the term must appear in the product name.
	Search(ctx context.Context, store Store, term string, strict bool, limit int) ([]Product, error)
	Save(ctx context.Context, p *Product) error
}

// EquivalenceRepository persists user-confirmed product pairings
type EquivalenceRepository interface {
	Save(ctx context.Context, e *Equivalence) error
	// FindByProduct looks up equivalences in both directions
	FindByProduct(ctx context.Context, productID int64) ([]Equivalence, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
