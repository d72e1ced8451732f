// Package orchestrator is the engine facade: it wires the analyzer strategy,
// the snapshot store and the request-synthesis components into two compiled
// flows, analyze_history and create_booking_request.
package orchestrator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rentalops/booking-agent/agent/analysis"
	contractx "github.com/rentalops/booking-agent/agent/contract"
	statex "github.com/rentalops/booking-agent/agent/state"
	logx "github.com/rentalops/booking-agent/pkg/logger"
)

type Config struct {
	WorkspaceID string
}

type Orchestrator struct {
	store    statex.Store
	analyzer contractx.Analyzer

	analyzeRunner compose.Runnable[[]map[string]any, *statex.TemplateSnapshot]
	createRunner  compose.Runnable[contractx.CreateRequestInput, contractx.CreateRequestOutput]

	workspaceID string
	now         func() time.Time
	log         zerolog.Logger
}

func New(store statex.Store, analyzer contractx.Analyzer, cfg Config) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("snapshot store is required")
	}
	if analyzer == nil {
		return nil, errors.New("analyzer is required")
	}

	workspaceID := strings.TrimSpace(cfg.WorkspaceID)
	if workspaceID == "" {
		workspaceID = "default-workspace"
	}

	o := &Orchestrator{
		store:       store,
		analyzer:    analyzer,
		workspaceID: workspaceID,
		now:         time.Now,
		log:         logx.Component("orchestrator"),
	}

	analyzeRunner, err := o.compileAnalyzeGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.analyzeRunner = analyzeRunner

	createRunner, err := o.compileCreateGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.createRunner = createRunner

	return o, nil
}

// AnalyzeHistory normalizes raw booking payloads, runs the configured
// analyzer and installs the resulting templates as a new snapshot version.
// The previous snapshot is replaced wholesale, never patched.
func (o *Orchestrator) AnalyzeHistory(ctx context.Context, payloads []map[string]any) (*statex.TemplateSnapshot, error) {
	runID := uuid.NewString()

	snapshot, err := o.analyzeRunner.Invoke(ctx, payloads)
	if err != nil {
		return nil, err
	}

	o.log.Info().
		Str("run_id", runID).
		Str("analyzer", string(o.analyzer.Kind())).
		Int("records", snapshot.RecordCount).
		Int("templates", len(snapshot.Templates)).
		Int64("version", snapshot.Version).
		Msg("booking history analyzed")
	return snapshot, nil
}

// LookupTemplate finds a cached template by fuzzy customer/surgeon match.
// A miss is an informational result carrying suggestions, not an error; the
// only error case is a broken store.
func (o *Orchestrator) LookupTemplate(ctx context.Context, customer, surgeon string) (contractx.LookupResult, error) {
	templates, err := o.cachedTemplates(ctx)
	if err != nil {
		return contractx.LookupResult{}, err
	}

	tpl, miss := analysis.FindTemplate(templates, customer, surgeon)
	return contractx.LookupResult{Template: tpl, NotFound: miss}, nil
}

// CreateRequest runs the create_booking_request flow: template lookup, then
// schedule resolution, material-code derivation and request assembly; a
// lookup miss short-circuits into a structured not-found output.
func (o *Orchestrator) CreateRequest(ctx context.Context, in contractx.CreateRequestInput) (contractx.CreateRequestOutput, error) {
	return o.createRunner.Invoke(ctx, in)
}

func (o *Orchestrator) cachedTemplates(ctx context.Context) ([]contractx.BookingTemplate, error) {
	snapshot, err := o.store.Load(ctx, o.workspaceID)
	if err != nil {
		if errors.Is(err, statex.ErrSnapshotNotFound) {
			return []contractx.BookingTemplate{}, nil
		}
		return nil, err
	}
	return snapshot.Templates, nil
}
