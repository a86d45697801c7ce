package domain

import "errors"

var (
	// ErrProductNotFound is returned when a product cannot be found in the catalog
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidPrice is returned when a unit price is zero or negative
	ErrInvalidPrice = errors.New("unit price must be positive")

	// ErrInvalidQuantity is returned when a cart line quantity is below 1
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
