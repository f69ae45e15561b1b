// Package matcher provides the per-language matching capability consumed by
// the extraction orchestrator: given free text, return the catalog keyword
// ids relevant to it. Matchers are trained once from a loaded catalog and
// are immutable afterwards; a catalog reload trains a fresh registry.
package matcher

import (
	"context"
	"errors"
)

// FallbackLanguage is used when the detected language has no trained
// matcher of its own.
const FallbackLanguage = "en"

// ErrMatcherFault signals an internal fault of the matching capability.
// It is distinct from "no keywords found", which is an empty result.
var ErrMatcherFault = errors.New("matching capability fault")

// Matcher maps free text to a sequence of catalog keyword ids. The order
// of returned ids must be deterministic; callers never re-sort it.
type Matcher interface {
	Match(ctx context.Context, text string) ([]string, error)
}

// Detector identifies the language of a text as a lowercase ISO 639-1
// code. Detection has no error path; undetectable input yields the
// fallback language.
type Detector interface {
	Detect(text string) string
}

// Registry holds one trained matcher per language code. It is built at
// load time and never mutated; reloads replace it wholesale.
type Registry map[string]Matcher

// Lookup returns the matcher for a language code, if any.
func (r Registry) Lookup(language string) (Matcher, bool) {
	m, ok := r[language]
	return m, ok
}

// Len returns the number of trained matchers.
func (r Registry) Len() int {
	return len(r)
}
