// Package tool describes the engine's operations as agent tools: JSON-schema
// parameter declarations plus an executor that dispatches tool calls onto the
// booking engine. Side-effect gating and transport live in the caller.
package tool

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/rentalops/booking-agent/agent/contract"
	statex "github.com/rentalops/booking-agent/agent/state"
)

const (
	ToolAnalyzeHistory = "history.analyze"
	ToolLookupTemplate = "booking.lookup_template"
	ToolCreateRequest  = "booking.create_request"
)

// Engine is the slice of the orchestrator the catalog needs.
type Engine interface {
	AnalyzeHistory(ctx context.Context, payloads []map[string]any) (*statex.TemplateSnapshot, error)
	LookupTemplate(ctx context.Context, customer, surgeon string) (contractx.LookupResult, error)
	CreateRequest(ctx context.Context, in contractx.CreateRequestInput) (contractx.CreateRequestOutput, error)
}

// Result is one executed tool call. Error carries tool-level failures as
// data so the conversation can continue; transport errors are returned as
// Go errors instead.
type Result struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

type Executor func(ctx context.Context, tool string, args map[string]any) (Result, error)

// BuildCatalog returns the tool declarations and an executor bound to the
// given engine.
func BuildCatalog(engine Engine) ([]*schema.ToolInfo, Executor) {
	return toolInfos(), NewExecutor(engine)
}

func NewExecutor(engine Engine) Executor {
	return func(ctx context.Context, tool string, args map[string]any) (Result, error) {
		switch tool {
		case ToolAnalyzeHistory:
			return executeAnalyzeHistory(ctx, engine, args)
		case ToolLookupTemplate:
			return executeLookupTemplate(ctx, engine, args)
		case ToolCreateRequest:
			return executeCreateRequest(ctx, engine, args)
		default:
			return Result{
				Tool:  tool,
				Error: fmt.Sprintf("tool=%s is not available", tool),
			}, nil
		}
	}
}

func executeAnalyzeHistory(ctx context.Context, engine Engine, args map[string]any) (Result, error) {
	rawRecords, ok := args["records"].([]any)
	if !ok {
		return Result{Tool: ToolAnalyzeHistory, Error: "records must be an array"}, nil
	}

	payloads := make([]map[string]any, 0, len(rawRecords))
	for _, raw := range rawRecords {
		payload, ok := raw.(map[string]any)
		if !ok {
			return Result{Tool: ToolAnalyzeHistory, Error: "each record must be an object"}, nil
		}
		payloads = append(payloads, payload)
	}

	snapshot, err := engine.AnalyzeHistory(ctx, payloads)
	if err != nil {
		return Result{}, err
	}
	return Result{Tool: ToolAnalyzeHistory, Result: snapshot}, nil
}

func executeLookupTemplate(ctx context.Context, engine Engine, args map[string]any) (Result, error) {
	out, err := engine.LookupTemplate(ctx, stringArg(args, "customer"), stringArg(args, "surgeon"))
	if err != nil {
		return Result{}, err
	}
	return Result{Tool: ToolLookupTemplate, Result: out}, nil
}

func executeCreateRequest(ctx context.Context, engine Engine, args map[string]any) (Result, error) {
	in := contractx.CreateRequestInput{
		Customer: stringArg(args, "customer"),
		Surgeon:  stringArg(args, "surgeon"),
		Customization: contractx.Customization{
			Surgeon: stringArg(args, "surgeon_override"),
			Date:    stringArg(args, "date"),
			Time:    stringArg(args, "time"),
			Notes:   stringArg(args, "notes"),
		},
	}
	if isDraft, ok := args["is_draft"].(bool); ok {
		in.Customization.IsDraft = &isDraft
	}

	out, err := engine.CreateRequest(ctx, in)
	if err != nil {
		return Result{}, err
	}
	return Result{Tool: ToolCreateRequest, Result: out}, nil
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func toolInfos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolAnalyzeHistory,
			Desc: "Analyze historical booking records and cache per-customer booking templates.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"records": {Type: schema.Array, Desc: "Raw booking records to analyze", Required: true},
			}),
		},
		{
			Name: ToolLookupTemplate,
			Desc: "Find a cached booking template by customer and/or surgeon name (fuzzy match).",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"customer": {Type: schema.String, Desc: "Customer name filter (substring)"},
				"surgeon":  {Type: schema.String, Desc: "Surgeon name filter (substring)"},
			}),
		},
		{
			Name: ToolCreateRequest,
			Desc: "Synthesize a ready-to-submit booking request from a cached template.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"customer":         {Type: schema.String, Desc: "Customer name filter (substring)"},
				"surgeon":          {Type: schema.String, Desc: "Surgeon name filter (substring)"},
				"surgeon_override": {Type: schema.String, Desc: "Surgeon to use instead of the template's"},
				"date":             {Type: schema.String, Desc: "Absolute date or relative keyword (tomorrow, next week, next month, next year)"},
				"time":             {Type: schema.String, Desc: "Time of day, e.g. 2pm or 14:00"},
				"notes":            {Type: schema.String, Desc: "Note text override"},
				"is_draft":         {Type: schema.Boolean, Desc: "Submit as draft (default true)"},
			}),
		},
	}
}
