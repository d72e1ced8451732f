package analysis

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/rentalops/booking-agent/agent/contract"
)

type pipelineState struct {
	Groups    []CustomerGroup
	Templates []contractx.BookingTemplate
}

// compileAnalysisGraph wires the deterministic pipeline as a three-node graph:
// group by customer, select the winning combination per group, rank the
// resulting templates.
func compileAnalysisGraph(
	ctx context.Context,
) (compose.Runnable[[]contractx.BookingRecord, []contractx.BookingTemplate], error) {
	graph := compose.NewGraph[[]contractx.BookingRecord, []contractx.BookingTemplate]()

	if err := graph.AddLambdaNode("group_by_customer",
		compose.InvokableLambda(func(ctx context.Context, records []contractx.BookingRecord) (*pipelineState, error) {
			return &pipelineState{Groups: GroupByCustomer(records)}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node group_by_customer: %w", err)
	}

	if err := graph.AddLambdaNode("select_combinations",
		compose.InvokableLambda(func(ctx context.Context, in *pipelineState) (*pipelineState, error) {
			in.Templates = make([]contractx.BookingTemplate, 0, len(in.Groups))
			for _, group := range in.Groups {
				winner, ok := MostFrequentCombination(group.Records)
				if !ok {
					// The grouper never emits an empty group.
					continue
				}
				in.Templates = append(in.Templates, SynthesizeTemplate(group, winner))
			}
			return in, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node select_combinations: %w", err)
	}

	if err := graph.AddLambdaNode("rank_templates",
		compose.InvokableLambda(func(ctx context.Context, in *pipelineState) ([]contractx.BookingTemplate, error) {
			return RankTemplates(in.Templates), nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node rank_templates: %w", err)
	}

	edges := [][2]string{
		{compose.START, "group_by_customer"},
		{"group_by_customer", "select_combinations"},
		{"select_combinations", "rank_templates"},
		{"rank_templates", compose.END},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("analysis.pipeline"))
	if err != nil {
		return nil, fmt.Errorf("compile analysis graph: %w", err)
	}
	return runner, nil
}
