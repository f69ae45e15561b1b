package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all application metrics
type Metrics struct {
	RequestCounter     metric.Int64Counter
	RequestDuration    metric.Float64Histogram
	KeywordsExtracted  metric.Int64Counter
	SearchMatches      metric.Int64Counter
	ExtractionFailures metric.Int64Counter
	CatalogReloads     metric.Int64Counter
}

// InitMetrics initializes all application metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("keyword-extraction-service")

	requestCounter, err := meter.Int64Counter(
		"http.requests.total",
		metric.WithDescription("Total HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	keywordsExtracted, err := meter.Int64Counter(
		"keywords.extracted.total",
		metric.WithDescription("Total keywords extracted from job content"),
	)
	if err != nil {
		return nil, err
	}

	searchMatches, err := meter.Int64Counter(
		"keywords.search.matches",
		metric.WithDescription("Total keywords returned by pattern search"),
	)
	if err != nil {
		return nil, err
	}

	extractionFailures, err := meter.Int64Counter(
		"keywords.extraction.failures",
		metric.WithDescription("Matcher faults during extraction"),
	)
	if err != nil {
		return nil, err
	}

	catalogReloads, err := meter.Int64Counter(
		"catalog.reloads.total",
		metric.WithDescription("Catalog reload attempts by outcome"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCounter:     requestCounter,
		RequestDuration:    requestDuration,
		KeywordsExtracted:  keywordsExtracted,
		SearchMatches:      searchMatches,
		ExtractionFailures: extractionFailures,
		CatalogReloads:     catalogReloads,
	}, nil
}

// RecordRequest records a completed HTTP request
func (m *Metrics) RecordRequest(method, path, status string, duration float64) {
	if m == nil {
		return
	}
	ctx := context.Background()
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.String("status", status),
	)
	m.RequestCounter.Add(ctx, 1, attrs)
	m.RequestDuration.Record(ctx, duration, attrs)
}

// RecordExtraction records the keyword count of a successful extraction
func (m *Metrics) RecordExtraction(language string, count int) {
	if m == nil {
		return
	}
	m.KeywordsExtracted.Add(context.Background(), int64(count),
		metric.WithAttributes(attribute.String("language", language)))
}

// RecordExtractionFailure records a matcher fault
func (m *Metrics) RecordExtractionFailure(language string) {
	if m == nil {
		return
	}
	m.ExtractionFailures.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("language", language)))
}

// RecordSearch records the match count of a pattern search
func (m *Metrics) RecordSearch(count int) {
	if m == nil {
		return
	}
	m.SearchMatches.Add(context.Background(), int64(count))
}

// RecordReload records a catalog reload attempt
func (m *Metrics) RecordReload(outcome string) {
	if m == nil {
		return
	}
	m.CatalogReloads.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("outcome", outcome)))
}
