package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/rentalops/booking-agent/agent/analysis"
	bookingx "github.com/rentalops/booking-agent/agent/booking"
	contractx "github.com/rentalops/booking-agent/agent/contract"
	schedulex "github.com/rentalops/booking-agent/agent/schedule"
	statex "github.com/rentalops/booking-agent/agent/state"
)

type analyzeGraphState struct {
	Records   []contractx.BookingRecord
	Templates []contractx.BookingTemplate
	Snapshot  *statex.TemplateSnapshot
}

func (o *Orchestrator) compileAnalyzeGraph(
	ctx context.Context,
) (compose.Runnable[[]map[string]any, *statex.TemplateSnapshot], error) {
	graph := compose.NewGraph[[]map[string]any, *statex.TemplateSnapshot]()

	if err := graph.AddLambdaNode("normalize_records",
		compose.InvokableLambda(func(ctx context.Context, payloads []map[string]any) (*analyzeGraphState, error) {
			return &analyzeGraphState{Records: analysis.NormalizeAll(payloads)}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node normalize_records: %w", err)
	}

	if err := graph.AddLambdaNode("run_analyzer",
		compose.InvokableLambda(func(ctx context.Context, in *analyzeGraphState) (*analyzeGraphState, error) {
			templates, err := o.analyzer.Analyze(ctx, in.Records)
			if err != nil {
				return nil, err
			}
			in.Templates = templates
			return in, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node run_analyzer: %w", err)
	}

	if err := graph.AddLambdaNode("snapshot_templates",
		compose.InvokableLambda(func(ctx context.Context, in *analyzeGraphState) (*analyzeGraphState, error) {
			prev, err := o.store.Load(ctx, o.workspaceID)
			if err != nil && !errors.Is(err, statex.ErrSnapshotNotFound) {
				return nil, err
			}
			in.Snapshot = statex.NewSnapshot(prev, in.Templates, o.analyzer.Kind(), len(in.Records), o.now())
			return in, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node snapshot_templates: %w", err)
	}

	if err := graph.AddLambdaNode("save_snapshot",
		compose.InvokableLambda(func(ctx context.Context, in *analyzeGraphState) (*statex.TemplateSnapshot, error) {
			if err := in.Snapshot.Validate(); err != nil {
				return nil, err
			}
			if err := o.store.Save(ctx, o.workspaceID, in.Snapshot); err != nil {
				return nil, err
			}
			return in.Snapshot, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node save_snapshot: %w", err)
	}

	edges := [][2]string{
		{compose.START, "normalize_records"},
		{"normalize_records", "run_analyzer"},
		{"run_analyzer", "snapshot_templates"},
		{"snapshot_templates", "save_snapshot"},
		{"save_snapshot", compose.END},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("orchestrator.analyze_history"))
	if err != nil {
		return nil, fmt.Errorf("compile analyze graph: %w", err)
	}
	return runner, nil
}

type createGraphState struct {
	In       contractx.CreateRequestInput
	Template *contractx.BookingTemplate
	Miss     *contractx.LookupMiss
}

func (o *Orchestrator) compileCreateGraph(
	ctx context.Context,
) (compose.Runnable[contractx.CreateRequestInput, contractx.CreateRequestOutput], error) {
	graph := compose.NewGraph[contractx.CreateRequestInput, contractx.CreateRequestOutput]()

	if err := graph.AddLambdaNode("lookup_template",
		compose.InvokableLambda(func(ctx context.Context, in contractx.CreateRequestInput) (*createGraphState, error) {
			templates, err := o.cachedTemplates(ctx)
			if err != nil {
				return nil, err
			}
			tpl, miss := analysis.FindTemplate(templates, in.Customer, in.Surgeon)
			return &createGraphState{In: in, Template: tpl, Miss: miss}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node lookup_template: %w", err)
	}

	if err := graph.AddLambdaNode("build_request",
		compose.InvokableLambda(func(ctx context.Context, in *createGraphState) (contractx.CreateRequestOutput, error) {
			if in == nil || in.Template == nil {
				return contractx.CreateRequestOutput{}, fmt.Errorf("%w: create graph state has no template", contractx.ErrValidation)
			}
			sched := schedulex.Resolve(in.In.Customization.Schedule(), o.now())
			code := bookingx.DeriveMaterialCode(in.Template.Equipment)
			req := bookingx.BuildRequest(*in.Template, sched, code, in.In.Customization)
			return contractx.CreateRequestOutput{Request: &req, Template: in.Template}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node build_request: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_miss",
		compose.InvokableLambda(func(ctx context.Context, in *createGraphState) (contractx.CreateRequestOutput, error) {
			if in == nil || in.Miss == nil {
				return contractx.CreateRequestOutput{}, fmt.Errorf("%w: create graph state has no miss", contractx.ErrValidation)
			}
			return contractx.CreateRequestOutput{NotFound: in.Miss}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_miss: %w", err)
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *createGraphState) (string, error) {
			if in == nil {
				return "", fmt.Errorf("%w: create graph state is nil", contractx.ErrValidation)
			}
			if in.Template != nil {
				return "build_request", nil
			}
			return "finalize_miss", nil
		},
		map[string]bool{
			"build_request": true,
			"finalize_miss": true,
		},
	)

	if err := graph.AddBranch("lookup_template", branch); err != nil {
		return nil, fmt.Errorf("add create branch: %w", err)
	}
	if err := graph.AddEdge(compose.START, "lookup_template"); err != nil {
		return nil, fmt.Errorf("add edge start->lookup_template: %w", err)
	}
	if err := graph.AddEdge("build_request", compose.END); err != nil {
		return nil, fmt.Errorf("add edge build_request->end: %w", err)
	}
	if err := graph.AddEdge("finalize_miss", compose.END); err != nil {
		return nil, fmt.Errorf("add edge finalize_miss->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("orchestrator.create_booking_request"))
	if err != nil {
		return nil, fmt.Errorf("compile create graph: %w", err)
	}
	return runner, nil
}
