package usecase

import (
	"context"
	"time"

	"github.com/cuidaelmango/backend/internal/domain"
)

// stubProductRepo records every Find query and answers through an
// optional findFunc, so tests can assert on the fallback chain.
type stubProductRepo struct {
	queries  []domain.ProductQuery
	findFunc func(q domain.ProductQuery) ([]domain.Product, error)
	byID     map[int64]domain.Product
}

func (r *stubProductRepo) Find(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	r.queries = append(r.queries, q)
	if r.findFunc != nil {
		return r.findFunc(q)
	}
	return nil, nil
}

func (r *stubProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if p, ok := r.byID[id]; ok {
		return &p, nil
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) Search(ctx context.Context, store domain.Store, term string, strict bool, limit int) ([]domain.Product, error) {
	return nil, nil
}

func (r *stubProductRepo) Save(ctx context.Context, p *domain.Product) error {
	return nil
}

type stubEquivalenceRepo struct {
	links []domain.Equivalence
}

func (r *stubEquivalenceRepo) Save(ctx context.Context, e *domain.Equivalence) error {
	r.links = append(r.links, *e)
	return nil
}

func (r *stubEquivalenceRepo) FindByProduct(ctx context.Context, productID int64) ([]domain.Equivalence, error) {
	var found []domain.Equivalence
	for _, link := range r.links {
		if link.Other(productID) != 0 {
			found = append(found, link)
		}
	}
	return found, nil
}

type cacheWrite struct {
	key   string
	value interface{}
	ttl   time.Duration
}

type stubCache struct {
	data   map[string]interface{}
	writes []cacheWrite
}

func newStubCache() *stubCache {
	return &stubCache{data: make(map[string]interface{})}
}

func (c *stubCache) Get(ctx context.Context, key string) (interface{}, error) {
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	return nil, domain.ErrCacheMiss
}

func (c *stubCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.data[key] = value
	c.writes = append(c.writes, cacheWrite{key: key, value: value, ttl: ttl})
	return nil
}

func (c *stubCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *stubCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.data[key]
	return ok, nil
}
