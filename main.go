package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/rs/zerolog/log"

	analystx "github.com/rentalops/booking-agent/agent/agents/analyst"
	"github.com/rentalops/booking-agent/agent/agents/orchestrator"
	"github.com/rentalops/booking-agent/agent/analysis"
	contractx "github.com/rentalops/booking-agent/agent/contract"
	llmx "github.com/rentalops/booking-agent/agent/llm"
	promptx "github.com/rentalops/booking-agent/agent/prompt"
	statex "github.com/rentalops/booking-agent/agent/state"
	configx "github.com/rentalops/booking-agent/pkg/config"
	erpx "github.com/rentalops/booking-agent/pkg/erp"
	_ "github.com/rentalops/booking-agent/pkg/logger/autoload"
	"github.com/rentalops/booking-agent/pkg/recordsource"
)

type AppConfig struct {
	WorkspaceID string `envconfig:"WORKSPACE_ID" split_words:"true" default:"default-workspace"`
	RecordLimit int    `envconfig:"RECORD_LIMIT" split_words:"true" default:"500"`
	Analyzer    string `envconfig:"ANALYZER" split_words:"true" default:"deterministic"`
}

func main() {
	var recordsPath string
	flag.StringVar(&recordsPath, "records", "bookings.json", "path to a JSON array of raw booking records")
	flag.Parse()

	appCfg := configx.MustNew[AppConfig]("")
	ctx := context.Background()

	orch, err := orchestrator.New(statex.NewMemoryStore(), newAnalyzer(ctx, appCfg.Analyzer), orchestrator.Config{
		WorkspaceID: appCfg.WorkspaceID,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build orchestrator")
	}

	source := recordsource.NewFileSource(recordsPath)
	payloads, err := source.FetchRecords(ctx, appCfg.RecordLimit)
	if err != nil {
		log.Fatal().Err(err).Str("path", recordsPath).Msg("fetch records")
	}

	snapshot, err := orch.AnalyzeHistory(ctx, payloads)
	if err != nil {
		log.Fatal().Err(err).Msg("analyze history")
	}

	for _, tpl := range snapshot.Templates {
		log.Info().
			Str("customer", tpl.Customer).
			Str("equipment", tpl.Equipment).
			Str("surgeon", tpl.Surgeon).
			Str("sales_rep", tpl.SalesRep).
			Int("frequency", tpl.Frequency).
			Int("total_bookings", tpl.TotalBookings).
			Msg("template")
	}

	if len(snapshot.Templates) == 0 {
		return
	}

	out, err := orch.CreateRequest(ctx, contractx.CreateRequestInput{
		Customer: snapshot.Templates[0].Customer,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create booking request")
	}

	pretty, err := json.MarshalIndent(out.Request, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("render booking request")
	}
	fmt.Println(string(pretty))

	submitIfConfigured(ctx, out.Request)
}

// newAnalyzer builds the requested analyzer strategy. "remote" needs a full
// OPENROUTER_* configuration; everything else gets the deterministic core.
func newAnalyzer(ctx context.Context, kind string) contractx.Analyzer {
	if kind != string(contractx.AnalyzerRemote) {
		analyzer, err := analysis.NewDeterministicAnalyzer(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("build deterministic analyzer")
		}
		return analyzer
	}

	llmCfg, err := configx.New[llmx.Config]("OPENROUTER")
	if err != nil {
		log.Fatal().Err(err).Msg("remote analyzer requested but openrouter config is incomplete")
	}
	if err := llmCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("validate openrouter config")
	}

	analystCfg := llmCfg.OpenRouterForAnalyst()
	chatModel, err := analystCfg.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("build analyst chat model")
	}

	analyzer, err := analystx.New(ctx, chatModel, promptx.LoadPromptSet().Analyst)
	if err != nil {
		log.Fatal().Err(err).Msg("build remote analyzer")
	}
	return analyzer
}

// submitIfConfigured posts the synthesized request to the ERP when ERP_URL
// and ERP_TOKEN are set; without them the demo stays read-only.
func submitIfConfigured(ctx context.Context, request *contractx.RequestBody) {
	erpCfg, err := configx.New[erpx.Config]("ERP")
	if err != nil {
		log.Debug().Err(err).Msg("erp submission not configured, skipping")
		return
	}

	client, err := erpx.NewClient(*erpCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build erp client")
	}

	result, err := client.Submit(ctx, *request)
	if err != nil {
		log.Fatal().Err(err).Msg("submit booking request")
	}
	log.Info().
		Str("request_id", result.ID).
		Str("status", result.Status).
		Msg("booking request submitted")
}
