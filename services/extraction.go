package services

import (
	"context"
	"fmt"

	"keyword-extraction-service/internal/logger"
	"keyword-extraction-service/internal/matcher"
	"keyword-extraction-service/internal/telemetry"
	"keyword-extraction-service/models"
)

// Extractor orchestrates keyword extraction: detect the language of the
// content, pick the matcher for it (falling back to English), run it and
// assemble the matched ids into bilingual keyword records.
type Extractor struct {
	state    *State
	detector matcher.Detector
	metrics  *telemetry.Metrics
}

// NewExtractor wires the orchestrator to the service state and a language
// detector. Metrics may be nil.
func NewExtractor(state *State, detector matcher.Detector, metrics *telemetry.Metrics) *Extractor {
	return &Extractor{state: state, detector: detector, metrics: metrics}
}

// Extract returns the keywords relevant to the job content. An empty
// result is not an error; a matcher fault is, and surfaces wrapped around
// matcher.ErrMatcherFault for the handler to turn into a 500.
func (e *Extractor) Extract(ctx context.Context, jobContent string) ([]models.Keyword, error) {
	cat, registry := e.state.Snapshot()

	language := e.detector.Detect(jobContent)

	m, ok := registry.Lookup(language)
	if !ok {
		logger.Debug("No matcher for detected language, falling back",
			"detected", language, "fallback", matcher.FallbackLanguage)
		language = matcher.FallbackLanguage
		m, ok = registry.Lookup(language)
	}
	if !ok {
		// Empty registry (startup window or degraded state): zero
		// extracted keywords, not a failure.
		return []models.Keyword{}, nil
	}

	ids, err := m.Match(ctx, jobContent)
	if err != nil {
		e.metrics.RecordExtractionFailure(language)
		return nil, fmt.Errorf("extracting keywords (language %s): %w", language, err)
	}

	// The matcher's output order is deterministic; it passes through
	// untouched.
	keywords := AssembleKeywords(ids, cat)
	e.metrics.RecordExtraction(language, len(keywords))
	return keywords, nil
}

// Search returns the keywords whose English or French name contains the
// pattern, in catalog order.
func (e *Extractor) Search(pattern string) []models.Keyword {
	cat, _ := e.state.Snapshot()
	keywords := AssembleKeywords(cat.Search(pattern), cat)
	e.metrics.RecordSearch(len(keywords))
	return keywords
}
