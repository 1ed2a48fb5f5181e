package dsm

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed assets/dsm5_criteria.json
var assetsFS embed.FS

// Criterion is one diagnostic pattern from the static catalog. Keyword sets
// exist per language and are never merged.
type Criterion struct {
	Key        string            `json:"key"`
	Code       string            `json:"code"`
	Name       string            `json:"name"`
	NameZH     string            `json:"name_zh,omitempty"`
	Keywords   []string          `json:"keywords"`
	KeywordsZH []string          `json:"keywords_zh,omitempty"`
	Criteria   map[string]string `json:"criteria"`
	Symptoms   []string          `json:"symptoms,omitempty"`
}

// Catalog is the immutable set of diagnostic criteria, loaded once at
// startup. Order is the catalog file order and is used for tie breaking.
type Catalog struct {
	ordered []Criterion
	byKey   map[string]*Criterion
}

// LoadCatalog parses the embedded criteria asset.
func LoadCatalog() (*Catalog, error) {
	data, err := assetsFS.ReadFile("assets/dsm5_criteria.json")
	if err != nil {
		return nil, fmt.Errorf("read criteria asset: %w", err)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) (*Catalog, error) {
	var entries []Criterion
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("parse criteria catalog: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("criteria catalog is empty")
	}

	c := &Catalog{
		ordered: entries,
		byKey:   make(map[string]*Criterion, len(entries)),
	}
	for i := range c.ordered {
		entry := &c.ordered[i]
		if entry.Key == "" || entry.Name == "" || len(entry.Keywords) == 0 {
			return nil, fmt.Errorf("criteria catalog entry %d is incomplete", i)
		}
		if _, dup := c.byKey[entry.Key]; dup {
			return nil, fmt.Errorf("duplicate criteria key %q", entry.Key)
		}
		c.byKey[entry.Key] = entry
	}
	return c, nil
}

// Get returns the criterion for a catalog key.
func (c *Catalog) Get(key string) (*Criterion, bool) {
	crit, ok := c.byKey[key]
	return crit, ok
}

// All returns the criteria in catalog order. Callers must not mutate.
func (c *Catalog) All() []Criterion {
	return c.ordered
}

func (c *Catalog) Len() int { return len(c.ordered) }
