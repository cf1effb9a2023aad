package main

import (
	"context"
	"log"
	"os"

	"github.com/skinsift/backend/config"
	"github.com/skinsift/backend/internal/domain"
	"github.com/skinsift/backend/internal/infrastructure/export"
	"github.com/skinsift/backend/internal/infrastructure/snapklik"
	"github.com/skinsift/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting SkinSift scraper")
	log.Printf("Search term: %q", cfg.Source.SearchTerm)
	log.Printf("Max pages: %d, page delay: %s", cfg.Source.MaxPages, cfg.Source.PageDelay)

	ctx := context.Background()

	client := snapklik.NewClient(cfg.Source.BaseURL, cfg.Source.PageDelay, cfg.Source.MaxPages)
	if cfg.Server.Environment == "development" {
		client.SetDebug(true)
	}

	raws := fetchBatch(ctx, cfg, client)
	log.Printf("Found %d products", len(raws))

	products := usecase.MapBatch(raws)

	if err := export.WriteProductsCSV(cfg.Output.ProductsPath, products); err != nil {
		log.Fatalf("Failed to write product table: %v", err)
	}
	log.Printf("Product data saved to %s", cfg.Output.ProductsPath)

	grouping := usecase.NewGroupingService(usecase.GroupingConfig{
		TopN:               cfg.Grouping.TopN,
		EnableDebugLogging: cfg.Grouping.Debug,
	})
	rows := grouping.Rows(products)

	if err := export.WriteGroupedCSV(cfg.Output.GroupedPath, rows); err != nil {
		log.Fatalf("Failed to write grouped table: %v", err)
	}
	log.Printf("Grouped results saved to %s", cfg.Output.GroupedPath)

	if cfg.Output.WorkbookPath != "" {
		if err := export.WriteWorkbook(cfg.Output.WorkbookPath, products, rows); err != nil {
			log.Fatalf("Failed to write workbook: %v", err)
		}
		log.Printf("Workbook saved to %s", cfg.Output.WorkbookPath)
	}

	counts := grouping.TopGroupCounts(products, 5)
	log.Printf("Summary: grouped %d products into %d output rows", len(products), len(rows))
	for _, gc := range counts {
		log.Printf("  %s: %d products", gc.Ingredient, gc.Products)
	}
}

// fetchBatch pulls the batch from the search API, falling back to the saved
// HTML snapshot when the API yields nothing. An empty batch is not fatal:
// the run degrades to empty output tables.
func fetchBatch(ctx context.Context, cfg *config.Config, client *snapklik.Client) []domain.RawProduct {
	raws, err := client.FetchAll(ctx, cfg.Source.SearchTerm)
	if err == nil && len(raws) > 0 {
		return raws
	}
	if err != nil {
		log.Printf("API fetch failed: %v", err)
	}

	log.Printf("Falling back to snapshot %s", cfg.Source.SnapshotPath)
	salvaged, serr := snapklik.LoadSnapshot(cfg.Source.SnapshotPath)
	if serr != nil {
		log.Printf("Snapshot fallback failed: %v", serr)
		return raws
	}
	return salvaged
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime)
	log.SetOutput(os.Stdout)
}
