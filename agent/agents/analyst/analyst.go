// Package analyst implements the remote-model variant of the Analyzer
// contract. It delegates pattern discovery to a chat model and validates the
// response back into the template invariants, so callers can swap it in for
// the deterministic analyzer without changing anything downstream.
package analyst

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog"

	contractx "github.com/rentalops/booking-agent/agent/contract"
	logx "github.com/rentalops/booking-agent/pkg/logger"
)

// RemoteAnalyzer asks a chat model for per-customer booking templates.
// Output shape matches the deterministic analyzer; content is
// non-deterministic and may carry the enrichment fields (items, confidence,
// insights).
type RemoteAnalyzer struct {
	runner       compose.Runnable[map[string]any, remoteLLMOutput]
	systemPrompt string
	log          zerolog.Logger
}

var _ contractx.Analyzer = (*RemoteAnalyzer)(nil)

type remoteLLMOutput struct {
	Templates []contractx.BookingTemplate `json:"templates"`
}

// New compiles the structured-output graph over the given chat model.
func New(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*RemoteAnalyzer, error) {
	systemPrompt = strings.TrimSpace(systemPrompt)
	if systemPrompt == "" {
		return nil, fmt.Errorf("%w: analyst prompt is empty", contractx.ErrPromptMissing)
	}
	runner, err := compileAnalystGraph(ctx, chatModel)
	if err != nil {
		return nil, fmt.Errorf("%w: compile analyst graph: %v", contractx.ErrModelInvoke, err)
	}
	return &RemoteAnalyzer{
		runner:       runner,
		systemPrompt: systemPrompt,
		log:          logx.Component("analyst"),
	}, nil
}

func (a *RemoteAnalyzer) Kind() contractx.AnalyzerKind {
	return contractx.AnalyzerRemote
}

// Analyze serializes the records, invokes the model and validates the reply.
// Empty input short-circuits to an empty template list without a model call.
func (a *RemoteAnalyzer) Analyze(ctx context.Context, records []contractx.BookingRecord) ([]contractx.BookingTemplate, error) {
	if len(records) == 0 {
		return []contractx.BookingTemplate{}, nil
	}

	payload, err := json.Marshal(map[string]any{"records": records})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal analyst payload: %v", contractx.ErrValidation, err)
	}

	out, err := a.runner.Invoke(ctx, map[string]any{
		"system": a.systemPrompt,
		"input":  string(payload),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: analyst invoke: %v", contractx.ErrModelInvoke, err)
	}

	templates, err := sanitizeTemplates(out.Templates, records)
	if err != nil {
		return nil, err
	}

	a.log.Debug().
		Int("records", len(records)).
		Int("templates", len(templates)).
		Msg("remote analysis complete")
	return templates, nil
}

// sanitizeTemplates enforces the template invariants on model output: every
// template names a known customer, totalBookings matches that customer's
// record count, and frequency is clamped into [1, totalBookings].
func sanitizeTemplates(templates []contractx.BookingTemplate, records []contractx.BookingRecord) ([]contractx.BookingTemplate, error) {
	groupSize := make(map[string]int, len(records))
	for _, rec := range records {
		groupSize[rec.Customer]++
	}

	clean := make([]contractx.BookingTemplate, 0, len(templates))
	for _, tpl := range templates {
		tpl.Customer = strings.TrimSpace(tpl.Customer)
		if tpl.Customer == "" {
			return nil, fmt.Errorf("%w: template has empty customer", contractx.ErrSchemaViolation)
		}
		total, known := groupSize[tpl.Customer]
		if !known {
			return nil, fmt.Errorf("%w: template names unknown customer %q", contractx.ErrSchemaViolation, tpl.Customer)
		}

		tpl.TotalBookings = total
		if tpl.Frequency < 1 {
			tpl.Frequency = 1
		}
		if tpl.Frequency > tpl.TotalBookings {
			tpl.Frequency = tpl.TotalBookings
		}
		if tpl.CustomerID == "" {
			tpl.CustomerID = tpl.Customer
		}
		clean = append(clean, tpl)
	}
	return clean, nil
}
