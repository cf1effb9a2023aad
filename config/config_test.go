package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	config, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if config.Source.BaseURL == "" {
		t.Error("Source.BaseURL should have a default")
	}
	if config.Source.SearchTerm != "skin care" {
		t.Errorf("Source.SearchTerm = %q, want skin care", config.Source.SearchTerm)
	}
	if config.Source.MaxPages != 50 {
		t.Errorf("Source.MaxPages = %d, want 50", config.Source.MaxPages)
	}
	if config.Source.PageDelay != time.Second {
		t.Errorf("Source.PageDelay = %s, want 1s", config.Source.PageDelay)
	}
	if config.Source.SnapshotPath != "debug.html" {
		t.Errorf("Source.SnapshotPath = %q, want debug.html", config.Source.SnapshotPath)
	}
	if config.Output.ProductsPath != "snapklik_products.csv" {
		t.Errorf("Output.ProductsPath = %q", config.Output.ProductsPath)
	}
	if config.Output.GroupedPath != "grouped_skincare_products.csv" {
		t.Errorf("Output.GroupedPath = %q", config.Output.GroupedPath)
	}
	if config.Output.WorkbookPath != "" {
		t.Errorf("Output.WorkbookPath = %q, want empty", config.Output.WorkbookPath)
	}
	if config.Grouping.TopN != 3 {
		t.Errorf("Grouping.TopN = %d, want 3", config.Grouping.TopN)
	}
	if config.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", config.Server.Port)
	}
	if config.Server.Environment != "development" {
		t.Errorf("Server.Environment = %q, want development", config.Server.Environment)
	}
	if config.Cache.TTL != time.Hour {
		t.Errorf("Cache.TTL = %s, want 1h", config.Cache.TTL)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SKINSIFT_SOURCE_BASE_URL", "http://localhost:9999")
	t.Setenv("SKINSIFT_SOURCE_SEARCH_TERM", "sunscreen")
	t.Setenv("SKINSIFT_SOURCE_MAX_PAGES", "5")
	t.Setenv("SKINSIFT_SOURCE_PAGE_DELAY", "250ms")
	t.Setenv("SKINSIFT_GROUPING_TOP_N", "10")
	t.Setenv("SKINSIFT_SERVER_PORT", "3000")
	t.Setenv("SKINSIFT_CACHE_TTL", "30m")

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if config.Source.BaseURL != "http://localhost:9999" {
		t.Errorf("Source.BaseURL = %q", config.Source.BaseURL)
	}
	if config.Source.SearchTerm != "sunscreen" {
		t.Errorf("Source.SearchTerm = %q, want sunscreen", config.Source.SearchTerm)
	}
	if config.Source.MaxPages != 5 {
		t.Errorf("Source.MaxPages = %d, want 5", config.Source.MaxPages)
	}
	if config.Source.PageDelay != 250*time.Millisecond {
		t.Errorf("Source.PageDelay = %s, want 250ms", config.Source.PageDelay)
	}
	if config.Grouping.TopN != 10 {
		t.Errorf("Grouping.TopN = %d, want 10", config.Grouping.TopN)
	}
	if config.Server.Port != "3000" {
		t.Errorf("Server.Port = %q, want 3000", config.Server.Port)
	}
	if config.Cache.TTL != 30*time.Minute {
		t.Errorf("Cache.TTL = %s, want 30m", config.Cache.TTL)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero max pages", "SKINSIFT_SOURCE_MAX_PAGES", "0"},
		{"negative page delay", "SKINSIFT_SOURCE_PAGE_DELAY", "-1s"},
		{"zero top N", "SKINSIFT_GROUPING_TOP_N", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q should fail validation", tt.key, tt.value)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Source: SourceConfig{
				BaseURL:   "http://localhost",
				MaxPages:  1,
				PageDelay: time.Second,
			},
			Output:   OutputConfig{ProductsPath: "p.csv", GroupedPath: "g.csv"},
			Grouping: GroupingConfig{TopN: 3},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		config := valid()
		if err := validate(&config); err != nil {
			t.Errorf("validate() error = %v", err)
		}
	})

	t.Run("missing base URL", func(t *testing.T) {
		config := valid()
		config.Source.BaseURL = ""
		if err := validate(&config); err == nil {
			t.Error("validate() should reject empty base URL")
		}
	})

	t.Run("missing output paths", func(t *testing.T) {
		config := valid()
		config.Output.GroupedPath = ""
		if err := validate(&config); err == nil {
			t.Error("validate() should reject empty output paths")
		}
	})
}
