package matcher

import (
	"context"
	"fmt"
	"strings"

	aho "github.com/petar-dambovaliev/aho-corasick"

	"keyword-extraction-service/internal/catalog"
)

// phrase is one trainable (keyword id, name) pair.
type phrase struct {
	id   string
	text string
}

// TextMatcher matches catalog keyword names against free text using an
// Aho-Corasick automaton compiled over the lowercased name phrases of one
// language. Hits are whole-word bounded and leftmost-longest, so the
// output order (first occurrence in the text) is deterministic for a
// given automaton and input.
type TextMatcher struct {
	language  string
	automaton aho.AhoCorasick
	ids       []string // parallel to the compiled patterns
}

// newTextMatcher compiles the automaton for one language. Returns nil if
// the language has no usable phrases.
func newTextMatcher(language string, phrases []phrase) *TextMatcher {
	patterns := make([]string, 0, len(phrases))
	ids := make([]string, 0, len(phrases))

	for _, p := range phrases {
		text := strings.ToLower(strings.TrimSpace(p.text))
		if text == "" {
			continue
		}
		patterns = append(patterns, text)
		ids = append(ids, p.id)
	}
	if len(patterns) == 0 {
		return nil
	}

	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  true,
		MatchKind:            aho.LeftMostLongestMatch,
		DFA:                  true,
	})

	return &TextMatcher{
		language:  language,
		automaton: builder.Build(patterns),
		ids:       ids,
	}
}

// Match returns the ids of all keywords whose name occurs in text,
// deduplicated, ordered by first hit position.
func (m *TextMatcher) Match(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if text == "" {
		return []string{}, nil
	}

	matches := m.automaton.FindAll(strings.ToLower(text))

	// FindAll reports hits left to right; dedup by id keeps the first.
	seen := make(map[string]struct{}, len(matches))
	ids := make([]string, 0, len(matches))
	for i := range matches {
		if matches[i].Pattern() >= len(m.ids) {
			return nil, fmt.Errorf("%w: %s automaton returned pattern index %d out of range", ErrMatcherFault, m.language, matches[i].Pattern())
		}
		id := m.ids[matches[i].Pattern()]
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// Train builds one matcher per language from the loaded catalog: English
// phrases from the distinct un-exploded rows, French phrases from the
// exploded variants. Languages without any usable phrase are left out of
// the registry so extraction falls back.
func Train(c *catalog.Catalog) (Registry, error) {
	if c == nil {
		return Registry{}, nil
	}

	var english, french []phrase
	seenEn := make(map[string]struct{})
	for _, e := range c.Entries() {
		if _, dup := seenEn[e.ID]; !dup {
			seenEn[e.ID] = struct{}{}
			english = append(english, phrase{id: e.ID, text: e.EnglishName})
		}
		french = append(french, phrase{id: e.ID, text: e.FrenchName})
	}

	registry := Registry{}
	if m := newTextMatcher("en", english); m != nil {
		registry["en"] = m
	}
	if m := newTextMatcher("fr", french); m != nil {
		registry["fr"] = m
	}
	return registry, nil
}
