package main

import (
	"fmt"
	"log"
	"os"

	"github.com/skinsift/backend/config"
	httpDelivery "github.com/skinsift/backend/internal/delivery/http"
	"github.com/skinsift/backend/internal/infrastructure/cache"
	"github.com/skinsift/backend/internal/infrastructure/snapklik"
	"github.com/skinsift/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting SkinSift Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Search term: %q", cfg.Source.SearchTerm)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Catalog cache TTL: %s", cfg.Cache.TTL)

	client := snapklik.NewClient(cfg.Source.BaseURL, cfg.Source.PageDelay, cfg.Source.MaxPages)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		client.SetDebug(true)
		log.Printf("Snapklik client debug mode enabled")
	}

	grouping := usecase.NewGroupingService(usecase.GroupingConfig{
		TopN:               cfg.Grouping.TopN,
		EnableDebugLogging: cfg.Grouping.Debug,
	})

	catalogService := usecase.NewCatalogService(
		client,
		memoryCache,
		grouping,
		usecase.CatalogServiceConfig{
			SearchTerm: cfg.Source.SearchTerm,
			CacheTTL:   cfg.Cache.TTL,
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(catalogService)

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
