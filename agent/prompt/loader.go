package prompt

import (
	_ "embed"
	"strings"
)

//go:embed template/analyst.txt
var analystRaw string

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Analyst string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
// Safe to call concurrently; the embed is compile-time, and trimming is cheap.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Analyst: strings.TrimSpace(analystRaw),
	}
}
