package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "nope.json"))

	cats := c.Categories()
	if len(cats) != 10 {
		t.Fatalf("default categories = %d, want 10", len(cats))
	}
	for name, subs := range cats {
		if len(subs) == 0 || subs[len(subs)-1] != "other" {
			t.Errorf("category %q subcategories %v should end in \"other\"", name, subs)
		}
	}

	var decoded map[string][]string
	if err := json.Unmarshal(c.JSON(), &decoded); err != nil {
		t.Fatalf("default JSON not decodable: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.json")
	content := `{"food": ["groceries", "other"], "misc": ["other"]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c := Load(path)
	cats := c.Categories()
	if len(cats) != 2 {
		t.Fatalf("categories = %d, want 2", len(cats))
	}
	if string(c.JSON()) != content {
		t.Errorf("JSON() should serve the file verbatim, got %s", c.JSON())
	}
}

func TestLoadMalformedFileServesErrorPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	c := Load(path)
	if c.Categories() != nil {
		t.Fatalf("expected nil categories for malformed file")
	}

	var payload map[string]string
	if err := json.Unmarshal(c.JSON(), &payload); err != nil {
		t.Fatalf("error payload not decodable: %v", err)
	}
	if !strings.HasPrefix(payload["error"], "Could not load categories:") {
		t.Errorf("unexpected error payload: %q", payload["error"])
	}
}
