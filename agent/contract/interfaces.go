package contract

import "context"

// Analyzer discovers per-customer booking templates from canonical records.
// Implementations must return one template per customer with at least one
// record, ranked by frequency descending. The deterministic implementation
// is total and never returns an error; the remote one may fail on model or
// schema problems.
type Analyzer interface {
	Kind() AnalyzerKind
	Analyze(ctx context.Context, records []BookingRecord) ([]BookingTemplate, error)
}

// RecordSource supplies raw booking payloads for analysis. The payload shape
// is external and arbitrary; the normalizer absorbs it.
type RecordSource interface {
	FetchRecords(ctx context.Context, limit int) ([]map[string]any, error)
}
