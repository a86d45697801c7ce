package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cuidaelmango/backend/internal/domain"
	"github.com/cuidaelmango/backend/internal/textnorm"
)

const defaultSearchLimit = 20

// MemoryStore is a thread-safe in-memory product and equivalence
// store. It backs development and tests; the query semantics mirror
// the Postgres store, including accent-insensitive name search.
type MemoryStore struct {
	mutex        sync.RWMutex
	products     map[int64]domain.Product
	equivalences []domain.Equivalence
	nextID       int64
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[int64]domain.Product),
		nextID:   1,
	}
}

// Find returns products matching every non-zero filter of the query,
// in ascending ID order for deterministic results.
func (s *MemoryStore) Find(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var found []domain.Product
	for _, p := range s.products {
		if !matchesQuery(p, q) {
			continue
		}
		found = append(found, p)
	}

	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })

	if q.Limit > 0 && len(found) > q.Limit {
		found = found[:q.Limit]
	}
	return found, nil
}

// GetByID returns the product with the given id
func (s *MemoryStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

// Search performs accent-insensitive name search within one store.
// Strict mode requires every word of the term in the product name;
// loose mode requires any word.
func (s *MemoryStore) Search(ctx context.Context, store domain.Store, term string, strict bool, limit int) ([]domain.Product, error) {
	words := strings.Fields(textnorm.Normalize(term))
	if len(words) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var found []domain.Product
	for _, p := range s.products {
		if store != "" && p.Store != store {
			continue
		}
		if !matchesWords(textnorm.Normalize(p.Name), words, strict) {
			continue
		}
		found = append(found, p)
	}

	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })

	if len(found) > limit {
		found = found[:limit]
	}
	return found, nil
}

// Save inserts or updates a product. A zero ID gets the next
// available one assigned.
func (s *MemoryStore) Save(ctx context.Context, p *domain.Product) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if p.ID == 0 {
		p.ID = s.nextID
		s.nextID++
	} else if p.ID >= s.nextID {
		s.nextID = p.ID + 1
	}
	s.products[p.ID] = *p
	return nil
}

// SaveEquivalence stores a user-confirmed pairing. A missing ID or
// timestamp is filled in.
func (s *MemoryStore) SaveEquivalence(ctx context.Context, e *domain.Equivalence) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	s.equivalences = append(s.equivalences, *e)
	return nil
}

// FindEquivalences returns every pairing involving the product, in
// either direction.
func (s *MemoryStore) FindEquivalences(ctx context.Context, productID int64) ([]domain.Equivalence, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var found []domain.Equivalence
	for _, e := range s.equivalences {
		if e.ProductAID == productID || e.ProductBID == productID {
			found = append(found, e)
		}
	}
	return found, nil
}

// Equivalences adapts the store to the equivalence repository interface
func (s *MemoryStore) Equivalences() domain.EquivalenceRepository {
	return equivalenceView{s}
}

type equivalenceView struct {
	store *MemoryStore
}

func (v equivalenceView) Save(ctx context.Context, e *domain.Equivalence) error {
	return v.store.SaveEquivalence(ctx, e)
}

func (v equivalenceView) FindByProduct(ctx context.Context, productID int64) ([]domain.Equivalence, error) {
	return v.store.FindEquivalences(ctx, productID)
}

func matchesQuery(p domain.Product, q domain.ProductQuery) bool {
	if q.Store != "" && p.Store != q.Store {
		return false
	}
	if q.Brand != "" && !strings.EqualFold(p.Brand, q.Brand) {
		return false
	}
	if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
		return false
	}
	if q.MinWeight > 0 && p.Weight < q.MinWeight {
		return false
	}
	if q.MaxWeight > 0 && p.Weight > q.MaxWeight {
		return false
	}
	if q.NameContains != "" && !strings.Contains(textnorm.Normalize(p.Name), textnorm.Normalize(q.NameContains)) {
		return false
	}
	return true
}

func matchesWords(name string, words []string, strict bool) bool {
	if strict {
		for _, w := range words {
			if !strings.Contains(name, w) {
				return false
			}
		}
		return true
	}
	for _, w := range words {
		if strings.Contains(name, w) {
			return true
		}
	}
	return false
}
