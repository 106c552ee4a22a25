// Package catalog serves the static category taxonomy: a mapping from
// category name to its subcategory list, loaded once at startup and
// treated as immutable for the process lifetime.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// Catalog holds the taxonomy as it will be served: pre-rendered JSON plus
// the decoded mapping for Go callers.
type Catalog struct {
	raw        []byte
	categories map[string][]string
}

// Load reads the taxonomy from path. A missing file falls back to the
// built-in default taxonomy. Any other failure, including malformed JSON,
// yields a catalog that serves an error payload instead of failing the
// call (the taxonomy is advisory, never load-bearing).
func Load(path string) *Catalog {
	if path == "" {
		return defaultCatalog()
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Info("Categories file not found, using built-in defaults", "path", path)
		return defaultCatalog()
	}
	if err != nil {
		slog.Warn("Failed to read categories file", "path", path, "error", err)
		return errorCatalog(err)
	}

	var categories map[string][]string
	if err := json.Unmarshal(data, &categories); err != nil {
		slog.Warn("Failed to parse categories file", "path", path, "error", err)
		return errorCatalog(err)
	}

	slog.Info("Loaded categories", "path", path, "count", len(categories))
	return &Catalog{raw: data, categories: categories}
}

// JSON returns the taxonomy rendered as application/json.
func (c *Catalog) JSON() []byte {
	return c.raw
}

// Categories returns the decoded mapping, or nil when the catalog is
// serving an error payload.
func (c *Catalog) Categories() map[string][]string {
	return c.categories
}

func defaultCatalog() *Catalog {
	categories := DefaultCategories()
	raw, err := json.MarshalIndent(categories, "", "  ")
	if err != nil {
		// Marshaling a map of strings cannot fail at runtime.
		panic(err)
	}
	return &Catalog{raw: raw, categories: categories}
}

func errorCatalog(err error) *Catalog {
	payload := map[string]string{
		"error": fmt.Sprintf("Could not load categories: %v", err),
	}
	raw, _ := json.Marshal(payload)
	return &Catalog{raw: raw}
}

// DefaultCategories is the built-in taxonomy used when no categories file
// is configured. Every subcategory list ends in "other".
func DefaultCategories() map[string][]string {
	return map[string][]string{
		"food":          {"groceries", "dining_out", "coffee_tea", "snacks", "other"},
		"transport":     {"fuel", "public_transport", "cab", "parking", "other"},
		"housing":       {"rent", "maintenance", "repairs", "other"},
		"utilities":     {"electricity", "water", "internet", "mobile", "other"},
		"health":        {"medicines", "doctor", "fitness", "other"},
		"education":     {"books", "courses", "other"},
		"entertainment": {"movies", "streaming", "games", "other"},
		"shopping":      {"clothing", "electronics", "home_decor", "other"},
		"business":      {"software", "hosting", "marketing", "other"},
		"misc":          {"uncategorized", "other"},
	}
}
