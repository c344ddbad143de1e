package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

//go:embed default_catalog.jsonc
var defaultCatalog []byte

// Catalog is the candidate data for every variant, as supplied by the
// surrounding data platform.
type Catalog struct {
	Subcategories []string   `json:"subcategories"`
	Tasks         []string   `json:"tasks"`
	Users         []User     `json:"users"`
	Resources     []Resource `json:"resources"`
}

// Parse decodes a JSON-with-comments catalog document and validates it.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(jsonc.ToJSON(data), &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

// Load reads the catalog at path. An empty path or a missing file yields the
// built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Validate rejects duplicate or empty ids within a collection.
func (c *Catalog) Validate() error {
	seen := map[string]bool{}
	for _, u := range c.Users {
		if u.ID == "" {
			return fmt.Errorf("catalog: user %q has no id", u.Name)
		}
		if seen[u.ID] {
			return fmt.Errorf("catalog: duplicate user id %q", u.ID)
		}
		seen[u.ID] = true
	}
	seen = map[string]bool{}
	for _, r := range c.Resources {
		if r.ID == "" {
			return fmt.Errorf("catalog: resource %q has no id", r.Name)
		}
		if seen[r.ID] {
			return fmt.Errorf("catalog: duplicate resource id %q", r.ID)
		}
		seen[r.ID] = true
	}
	return nil
}

// TaskPool expands the favorite-task pool. Duplicate names collapse to one
// pairing.
func (c *Catalog) TaskPool() []Task {
	return CrossProduct(unique(c.Subcategories), unique(c.Tasks))
}

// Labels maps every id of a variant's pool to its display label.
func (c *Catalog) Labels(v Variant) map[string]string {
	out := map[string]string{}
	switch v {
	case VariantFavorites:
		for _, t := range c.TaskPool() {
			out[t.ItemID()] = t.Field(FieldLabel)
		}
	case VariantUsers:
		for _, u := range c.Users {
			out[u.ID] = u.Field(FieldLabel)
		}
	case VariantResources:
		for _, r := range c.Resources {
			out[r.ID] = r.Field(FieldLabel)
		}
	}
	return out
}

// Source supplies a catalog, possibly slowly. It stands in for the remote
// data platform.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// FileSource loads the catalog from a file on every call.
type FileSource struct {
	Path string
}

// Load implements Source.
func (s FileSource) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Load(s.Path)
}

func unique(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
