package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/cuidaelmango/backend/config"
	httpDelivery "github.com/cuidaelmango/backend/internal/delivery/http"
	"github.com/cuidaelmango/backend/internal/domain"
	"github.com/cuidaelmango/backend/internal/infrastructure/cache"
	"github.com/cuidaelmango/backend/internal/infrastructure/store"
	"github.com/cuidaelmango/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting CuidaElMango Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Store Type: %s", cfg.Store.Type)
	log.Printf("Cache Type: %s (TTL: %s)", cfg.Cache.Type, cfg.Cache.TTL)

	ctx := context.Background()

	// Initialize product and equivalence storage
	var (
		products     domain.ProductRepository
		equivalences domain.EquivalenceRepository
	)
	switch cfg.Store.Type {
	case "postgres":
		pg, err := store.NewPostgresStore(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pg.Close()
		if err := pg.Migrate(ctx); err != nil {
			log.Fatalf("Failed to migrate schema: %v", err)
		}
		products = pg
		equivalences = pg.Equivalences()
	default:
		mem := store.NewMemoryStore()
		products = mem
		equivalences = mem.Equivalences()
		log.Printf("WARNING: using in-memory store, data will not survive restarts")
	}

	// Initialize match cache
	var matchCache domain.CacheRepository
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
		matchCache = redisCache
	default:
		matchCache = cache.NewMemoryCache()
	}

	// Initialize usecase layer
	comparisonService := usecase.NewComparisonService(
		products,
		equivalences,
		matchCache,
		usecase.ComparisonServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			CandidateLimit:     cfg.Matching.CandidateLimit,
			TopN:               cfg.Matching.TopN,
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		},
	)

	log.Printf("Matching: candidates=%d, topN=%d, debug=%v",
		cfg.Matching.CandidateLimit,
		cfg.Matching.TopN,
		cfg.Matching.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(comparisonService, products, equivalences)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
