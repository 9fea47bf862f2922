package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"cart-bundler/internal/bundle"
)

// catalogBundle is one entry of a seed catalog file.
type catalogBundle struct {
	ID       int             `json:"id"`
	Strategy bundle.Strategy `json:"strategy"`
	Rules    any             `json:"rules"`
}

const parentVariant = "gid://shopify/ProductVariant/42539430871198"

func variant(n string) string {
	return "gid://shopify/ProductVariant/" + n
}

// generateSampleCatalog writes seed catalog files for local development.
// item_set.json.gz holds bundle 1 with four overlapping item-set rules.
// grouped.json.gz holds bundle 2 with tiered discounts for groups of 1 to 3 lines.
// Load them with STORE_ENABLED=true SEED_FILES=data/catalogs/item_set.json.gz,data/catalogs/grouped.json.gz
func main() {
	dataDir := "data/catalogs"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	allProducts := "All products: -50%"

	catalogs := map[string][]catalogBundle{
		"item_set.json.gz": {{
			ID:       1,
			Strategy: bundle.StrategyItemSet,
			Rules: []bundle.ItemSetRule{
				{
					ParentProductID: parentVariant,
					Title:           &allProducts,
					Items: []bundle.RuleItem{
						{ID: variant("40799008719006"), Quantity: 1},
						{ID: variant("41707097620638"), Quantity: 1},
						{ID: variant("40799008227486"), Quantity: 1},
						{ID: variant("41707097227422"), Quantity: 1},
					},
					Discount: bundle.ItemSetDiscount{Value: 50, Type: "percentage"},
				},
				{
					ParentProductID: parentVariant,
					Items: []bundle.RuleItem{
						{ID: variant("40799008719006"), Quantity: 1},
						{ID: variant("40799008227486"), Quantity: 1},
					},
					Discount: bundle.ItemSetDiscount{Value: 20, Type: "percentage"},
				},
				{
					ParentProductID: parentVariant,
					Items: []bundle.RuleItem{
						{ID: variant("41707097620638"), Quantity: 2},
					},
					Discount: bundle.ItemSetDiscount{Value: 5, Type: "percentage"},
				},
				{
					ParentProductID: parentVariant,
					Items: []bundle.RuleItem{
						{ID: variant("41707097620638"), Quantity: 2},
						{ID: variant("40799008227486"), Quantity: 1},
					},
					Discount: bundle.ItemSetDiscount{Value: 15, Type: "percentage"},
				},
			},
		}},
		"grouped.json.gz": {{
			ID:       2,
			Strategy: bundle.StrategyGrouped,
			Rules: []bundle.TieredRule{
				{ProductsCount: 1, Discount: 5},
				{ProductsCount: 2, Discount: 10},
				{ProductsCount: 3, Discount: 20},
			},
		}},
	}

	for filename, bundles := range catalogs {
		filePath := filepath.Join(dataDir, filename)

		if err := createCatalogFile(filePath, bundles); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d bundle(s)\n", filePath, len(bundles))
	}

	fmt.Println("\nSample catalog files created successfully!")
}

func createCatalogFile(filePath string, bundles []catalogBundle) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := json.NewEncoder(gzipWriter)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(bundles); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}

	return nil
}
