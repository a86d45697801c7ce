package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/cuidaelmango/backend/internal/domain"
	"github.com/cuidaelmango/backend/internal/textnorm"
)

const (
	pgMaxOpenConns    = 25
	pgMaxIdleConns    = 5
	pgConnMaxLifetime = 30 * time.Minute
)

// productColumns is the select list shared by every product query
const productColumns = `id, store, name, cleaned_name, brand, category,
	weight, weight_unit, pack_count, variant, price, promo`

// PostgresStore persists products and equivalences in PostgreSQL.
// Name search goes through the search_name column, which holds the
// accent-folded lowercase product name and is maintained on every
// save, so lookups never depend on a database extension.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection pool and verifies connectivity
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)
	db.SetConnMaxLifetime(pgConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Migrate creates the schema when it does not exist yet
func (s *PostgresStore) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id          BIGSERIAL PRIMARY KEY,
			store       TEXT NOT NULL,
			name        TEXT NOT NULL,
			search_name TEXT NOT NULL,
			cleaned_name TEXT NOT NULL DEFAULT '',
			brand       TEXT NOT NULL DEFAULT '',
			category    TEXT NOT NULL DEFAULT '',
			weight      DOUBLE PRECISION NOT NULL DEFAULT 0,
			weight_unit TEXT NOT NULL DEFAULT '',
			pack_count  INTEGER NOT NULL DEFAULT 0,
			variant     TEXT NOT NULL DEFAULT '',
			price       DOUBLE PRECISION NOT NULL DEFAULT 0,
			promo       TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_store_brand ON products (store, brand)`,
		`CREATE INDEX IF NOT EXISTS idx_products_store_category ON products (store, category)`,
		`CREATE INDEX IF NOT EXISTS idx_products_search_name ON products (search_name)`,
		`CREATE TABLE IF NOT EXISTS equivalences (
			id             TEXT PRIMARY KEY,
			product_a_id   BIGINT NOT NULL REFERENCES products (id),
			product_b_id   BIGINT NOT NULL REFERENCES products (id),
			confidence     INTEGER NOT NULL DEFAULT 0,
			user_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_equivalences_product_a ON equivalences (product_a_id)`,
		`CREATE INDEX IF NOT EXISTS idx_equivalences_product_b ON equivalences (product_b_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrating schema: %w", err)
		}
	}
	return nil
}

// Close releases the connection pool
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Find returns products matching every non-zero filter of the query
func (s *PostgresStore) Find(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	var (
		conditions []string
		args       []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Store != "" {
		conditions = append(conditions, "store = "+arg(string(q.Store)))
	}
	if q.Brand != "" {
		conditions = append(conditions, "LOWER(brand) = LOWER("+arg(q.Brand)+")")
	}
	if q.Category != "" {
		conditions = append(conditions, "LOWER(category) = LOWER("+arg(q.Category)+")")
	}
	if q.MinWeight > 0 {
		conditions = append(conditions, "weight >= "+arg(q.MinWeight))
	}
	if q.MaxWeight > 0 {
		conditions = append(conditions, "weight <= "+arg(q.MaxWeight))
	}
	if q.NameContains != "" {
		conditions = append(conditions, "search_name LIKE "+arg("%"+textnorm.Normalize(q.NameContains)+"%"))
	}

	query := "SELECT " + productColumns + " FROM products"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"
	if q.Limit > 0 {
		query += " LIMIT " + arg(q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// GetByID returns the product with the given id
func (s *PostgresStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying product %d: %w", id, err)
	}
	return p, nil
}

// Search performs accent-insensitive name search within one store.
// Strict mode requires every word of the term in the product name;
// loose mode requires any word.
func (s *PostgresStore) Search(ctx context.Context, store domain.Store, term string, strict bool, limit int) ([]domain.Product, error) {
	words := strings.Fields(textnorm.Normalize(term))
	if len(words) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	var (
		conditions []string
		args       []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if store != "" {
		conditions = append(conditions, "store = "+arg(string(store)))
	}

	likes := make([]string, 0, len(words))
	for _, w := range words {
		likes = append(likes, "search_name LIKE "+arg("%"+w+"%"))
	}
	joiner := " OR "
	if strict {
		joiner = " AND "
	}
	conditions = append(conditions, "("+strings.Join(likes, joiner)+")")

	query := "SELECT " + productColumns + " FROM products WHERE " +
		strings.Join(conditions, " AND ") + " ORDER BY id LIMIT " + arg(limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// Save inserts or updates a product and refreshes its search_name
func (s *PostgresStore) Save(ctx context.Context, p *domain.Product) error {
	searchName := textnorm.Normalize(p.Name)

	if p.ID == 0 {
		err := s.db.QueryRowContext(ctx,
			`INSERT INTO products
				(store, name, search_name, cleaned_name, brand, category,
				 weight, weight_unit, pack_count, variant, price, promo)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			 RETURNING id`,
			string(p.Store), p.Name, searchName, p.CleanedName, p.Brand, p.Category,
			p.Weight, p.WeightUnit, p.PackCount, p.Variant, p.Price, p.Promo,
		).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("inserting product: %w", err)
		}
		return nil
	}

	_, err := s.db.ExecContext(ctx,
		`UPDATE products SET
			store = $1, name = $2, search_name = $3, cleaned_name = $4,
			brand = $5, category = $6, weight = $7, weight_unit = $8,
			pack_count = $9, variant = $10, price = $11, promo = $12
		 WHERE id = $13`,
		string(p.Store), p.Name, searchName, p.CleanedName, p.Brand, p.Category,
		p.Weight, p.WeightUnit, p.PackCount, p.Variant, p.Price, p.Promo, p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating product %d: %w", p.ID, err)
	}
	return nil
}

// SaveEquivalence stores a user-confirmed pairing. A missing ID or
// timestamp is filled in.
func (s *PostgresStore) SaveEquivalence(ctx context.Context, e *domain.Equivalence) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO equivalences (id, product_a_id, product_b_id, confidence, user_confirmed, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.ProductAID, e.ProductBID, e.Confidence, e.UserConfirmed, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting equivalence: %w", err)
	}
	return nil
}

// FindEquivalences returns every pairing involving the product, in
// either direction.
func (s *PostgresStore) FindEquivalences(ctx context.Context, productID int64) ([]domain.Equivalence, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, product_a_id, product_b_id, confidence, user_confirmed, created_at
		 FROM equivalences
		 WHERE product_a_id = $1 OR product_b_id = $1
		 ORDER BY created_at`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying equivalences: %w", err)
	}
	defer rows.Close()

	var found []domain.Equivalence
	for rows.Next() {
		var e domain.Equivalence
		if err := rows.Scan(&e.ID, &e.ProductAID, &e.ProductBID, &e.Confidence, &e.UserConfirmed, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning equivalence: %w", err)
		}
		found = append(found, e)
	}
	return found, rows.Err()
}

// Equivalences adapts the store to the equivalence repository interface
func (s *PostgresStore) Equivalences() domain.EquivalenceRepository {
	return pgEquivalenceView{s}
}

type pgEquivalenceView struct {
	store *PostgresStore
}

func (v pgEquivalenceView) Save(ctx context.Context, e *domain.Equivalence) error {
	return v.store.SaveEquivalence(ctx, e)
}

func (v pgEquivalenceView) FindByProduct(ctx context.Context, productID int64) ([]domain.Equivalence, error) {
	return v.store.FindEquivalences(ctx, productID)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var store string
	err := row.Scan(&p.ID, &store, &p.Name, &p.CleanedName, &p.Brand, &p.Category,
		&p.Weight, &p.WeightUnit, &p.PackCount, &p.Variant, &p.Price, &p.Promo)
	if err != nil {
		return nil, err
	}
	p.Store = domain.Store(store)
	return &p, nil
}

func scanProducts(rows *sql.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}
