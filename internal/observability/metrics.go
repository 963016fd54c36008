package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all custom hireup instruments. A zero Metrics records
// nothing.
type Metrics struct {
	ResumesAnalyzed     metric.Int64Counter
	ATSScore            metric.Int64Histogram
	AnalysisDuration    metric.Float64Histogram
	ExtractionFailures  metric.Int64Counter
	GitHubLookups       metric.Int64Counter
	HistorySaveFailures metric.Int64Counter
	RateLimitHits       metric.Int64Counter
	CertReloads         metric.Int64Counter
}

func newMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	if m.ResumesAnalyzed, err = meter.Int64Counter(
		"hireup_resumes_analyzed_total",
		metric.WithDescription("Total number of resume analyses"),
	); err != nil {
		return nil, fmt.Errorf("failed to create resumes analyzed metric: %w", err)
	}

	if m.ATSScore, err = meter.Int64Histogram(
		"hireup_ats_score",
		metric.WithDescription("Distribution of ATS scores"),
		metric.WithExplicitBucketBoundaries(10, 20, 30, 40, 50, 60, 70, 80, 90, 100),
	); err != nil {
		return nil, fmt.Errorf("failed to create ATS score metric: %w", err)
	}

	if m.AnalysisDuration, err = meter.Float64Histogram(
		"hireup_analysis_duration_seconds",
		metric.WithDescription("Time spent analyzing resumes"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("failed to create analysis duration metric: %w", err)
	}

	if m.ExtractionFailures, err = meter.Int64Counter(
		"hireup_extraction_failures_total",
		metric.WithDescription("Uploads whose text could not be extracted"),
	); err != nil {
		return nil, fmt.Errorf("failed to create extraction failures metric: %w", err)
	}

	if m.GitHubLookups, err = meter.Int64Counter(
		"hireup_github_lookups_total",
		metric.WithDescription("GitHub profile lookups"),
	); err != nil {
		return nil, fmt.Errorf("failed to create GitHub lookups metric: %w", err)
	}

	if m.HistorySaveFailures, err = meter.Int64Counter(
		"hireup_history_save_failures_total",
		metric.WithDescription("Scan history entries that could not be stored"),
	); err != nil {
		return nil, fmt.Errorf("failed to create history save failures metric: %w", err)
	}

	if m.RateLimitHits, err = meter.Int64Counter(
		"hireup_rate_limit_hits_total",
		metric.WithDescription("Total number of rate limit hits"),
	); err != nil {
		return nil, fmt.Errorf("failed to create rate limit hits metric: %w", err)
	}

	if m.CertReloads, err = meter.Int64Counter(
		"hireup_cert_reloads_total",
		metric.WithDescription("Total number of certificate reloads"),
	); err != nil {
		return nil, fmt.Errorf("failed to create certificate reload metric: %w", err)
	}

	return m, nil
}

// TrackAnalysis times fn and records its outcome. fn returns the ATS score
// of the analysis.
func (m *Metrics) TrackAnalysis(ctx context.Context, source string, fn func(context.Context) (int, error)) error {
	start := time.Now()
	score, err := fn(ctx)
	if m == nil || m.ResumesAnalyzed == nil {
		return err
	}

	attrs := metric.WithAttributes(
		attribute.String("source", source),
		attribute.Bool("success", err == nil),
	)
	m.ResumesAnalyzed.Add(ctx, 1, attrs)
	m.AnalysisDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	if err == nil {
		m.ATSScore.Record(ctx, int64(score), metric.WithAttributes(attribute.String("source", source)))
	}
	return err
}

// RecordExtractionFailure counts an upload whose text could not be read.
func (m *Metrics) RecordExtractionFailure(ctx context.Context, kind string) {
	if m != nil && m.ExtractionFailures != nil {
		m.ExtractionFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
	}
}

func (m *Metrics) RecordGitHubLookup(ctx context.Context, success bool) {
	if m != nil && m.GitHubLookups != nil {
		m.GitHubLookups.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
	}
}

func (m *Metrics) RecordHistorySaveFailure(ctx context.Context) {
	if m != nil && m.HistorySaveFailures != nil {
		m.HistorySaveFailures.Add(ctx, 1)
	}
}

// RecordRateLimitHit counts a rejected request. keyType is "ip" or "api_key".
func (m *Metrics) RecordRateLimitHit(ctx context.Context, keyType string) {
	if m != nil && m.RateLimitHits != nil {
		m.RateLimitHits.Add(ctx, 1, metric.WithAttributes(attribute.String("key_type", keyType)))
	}
}

func (m *Metrics) RecordCertReload(ctx context.Context, success bool) {
	if m != nil && m.CertReloads != nil {
		m.CertReloads.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
	}
}
