package catalog

import (
	"fmt"
)

// FieldSchema names the four columns of the keyword source table that the
// loader consumes. Extra columns in the source are ignored. The zero value
// is unusable; construct it from configuration and let Validate check it
// against the actual header before any row is read.
type FieldSchema struct {
	IDField     string
	EnNameField string
	FrNameField string
	IDFField    string
}

// fields returns the schema columns in loader order.
func (s FieldSchema) fields() []string {
	return []string{s.IDField, s.EnNameField, s.FrNameField, s.IDFField}
}

// Validate checks that every schema column is present in the header and
// returns the index of each, in schema order. A missing column fails fast
// with a LoadError naming it.
func (s FieldSchema) Validate(header []string) ([]int, error) {
	byName := make(map[string]int, len(header))
	for i, col := range header {
		byName[col] = i
	}

	indices := make([]int, 0, 4)
	for _, field := range s.fields() {
		if field == "" {
			return nil, fmt.Errorf("%w: schema column name is empty", ErrLoad)
		}
		idx, ok := byName[field]
		if !ok {
			return nil, fmt.Errorf("%w: required column %q not found in source header", ErrLoad, field)
		}
		indices = append(indices, idx)
	}
	return indices, nil
}
