// Package catalog holds the normalized in-memory keyword table. A source row
// with several French name variants is exploded into one entry per variant,
// all sharing the same keyword id. The catalog is immutable after load and
// shared by reference across requests; a reload builds a replacement and the
// service swaps the whole thing atomically.
package catalog

import (
	"strings"
)

// Entry is one locale-exploded row of the keyword table.
type Entry struct {
	ID          string
	EnglishName string
	FrenchName  string
	IDF         float64
}

// Names groups the bilingual names of one keyword id. FrenchNames keeps
// the variants in file order; the first one is what the API surfaces.
type Names struct {
	English string
	French  []string
}

// Catalog is the loaded keyword table plus its lookup indices.
type Catalog struct {
	entries []Entry
	byID    map[string]*Names
	ids     []string // distinct ids in file order
}

// New builds a catalog from exploded entries, deriving the byId index and
// the distinct id sequence. Entries are kept in the given order.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries: entries,
		byID:    make(map[string]*Names, len(entries)),
	}
	for _, e := range entries {
		n, ok := c.byID[e.ID]
		if !ok {
			n = &Names{English: e.EnglishName}
			c.byID[e.ID] = n
			c.ids = append(c.ids, e.ID)
		}
		n.French = append(n.French, e.FrenchName)
	}
	return c
}

// Len returns the number of exploded entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Size returns the number of distinct keyword ids.
func (c *Catalog) Size() int {
	return len(c.ids)
}

// Lookup returns the bilingual names of an id, if present.
func (c *Catalog) Lookup(id string) (Names, bool) {
	n, ok := c.byID[id]
	if !ok {
		return Names{}, false
	}
	return *n, true
}

// Contains reports whether the id exists in the catalog.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// IDs returns the distinct keyword ids in file order.
func (c *Catalog) IDs() []string {
	return c.ids
}

// Entries returns the exploded entries in file order.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Search returns the ids of all entries whose English or French name
// contains pattern, case-insensitively, as a literal substring. Ids are
// deduplicated preserving first occurrence in file order. The empty
// pattern is contained in every string, so it matches every id.
func (c *Catalog) Search(pattern string) []string {
	pattern = strings.ToLower(pattern)

	matched := make([]string, 0)
	seen := make(map[string]struct{})
	for _, e := range c.entries {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		if strings.Contains(strings.ToLower(e.EnglishName), pattern) ||
			strings.Contains(strings.ToLower(e.FrenchName), pattern) {
			seen[e.ID] = struct{}{}
			matched = append(matched, e.ID)
		}
	}
	return matched
}
