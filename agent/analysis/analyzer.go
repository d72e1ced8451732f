package analysis

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/rentalops/booking-agent/agent/contract"
)

// DeterministicAnalyzer is the rule-based Analyzer strategy: group records by
// customer, count (equipment, surgeon, sales rep) combinations, synthesize
// one template per customer, rank by frequency. Total over any input and
// byte-for-byte repeatable.
type DeterministicAnalyzer struct {
	pipeline compose.Runnable[[]contractx.BookingRecord, []contractx.BookingTemplate]
}

var _ contractx.Analyzer = (*DeterministicAnalyzer)(nil)

// NewDeterministicAnalyzer compiles the analysis pipeline graph once; the
// returned analyzer is safe for concurrent use.
func NewDeterministicAnalyzer(ctx context.Context) (*DeterministicAnalyzer, error) {
	pipeline, err := compileAnalysisGraph(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile analysis pipeline: %w", err)
	}
	return &DeterministicAnalyzer{pipeline: pipeline}, nil
}

func (a *DeterministicAnalyzer) Kind() contractx.AnalyzerKind {
	return contractx.AnalyzerDeterministic
}

// Analyze returns one ranked template per customer. Empty input yields an
// empty, non-nil slice and never an error.
func (a *DeterministicAnalyzer) Analyze(ctx context.Context, records []contractx.BookingRecord) ([]contractx.BookingTemplate, error) {
	templates, err := a.pipeline.Invoke(ctx, records)
	if err != nil {
		return nil, err
	}
	return templates, nil
}
