package analyst

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// compileAnalystGraph builds the structured-output flow: prompt template ->
// chat model -> JSON parse into remoteLLMOutput. The system prompt is passed
// in as the {system} variable rather than as template text: it contains
// literal JSON braces that FString would otherwise treat as placeholders.
func compileAnalystGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
) (compose.Runnable[map[string]any, remoteLLMOutput], error) {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{input}"),
	)

	parser := schema.NewMessageJSONParser[remoteLLMOutput](&schema.MessageJSONParseConfig{
		ParseFrom: schema.MessageParseFromContent,
	})

	graph := compose.NewGraph[map[string]any, remoteLLMOutput]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add analyst prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add analyst model node: %w", err)
	}
	if err := graph.AddLambdaNode("parse_json", compose.MessageParser(parser)); err != nil {
		return nil, fmt.Errorf("add analyst parser node: %w", err)
	}

	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return nil, fmt.Errorf("add analyst edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return nil, fmt.Errorf("add analyst edge prompt->model: %w", err)
	}
	if err := graph.AddEdge("model", "parse_json"); err != nil {
		return nil, fmt.Errorf("add analyst edge model->parse: %w", err)
	}
	if err := graph.AddEdge("parse_json", compose.END); err != nil {
		return nil, fmt.Errorf("add analyst edge parse->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("analyst.structured_graph"))
	if err != nil {
		return nil, fmt.Errorf("compile analyst graph: %w", err)
	}
	return runner, nil
}
