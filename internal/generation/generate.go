// Package generation sends the assembled context to the model under the prep
// sheet output contract and extracts the candidate JSON payload from whatever
// the model wrapped it in.
package generation

import (
	"context"

	"github.com/leemount96/hearing-prep/internal/llm"
	"github.com/leemount96/hearing-prep/internal/prompts"
)

// Generator produces raw prep sheet payloads from context bundles.
type Generator struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewGenerator creates a Generator using the advanced model tier; prep sheet
// synthesis needs the most capable model available.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client, tier: llm.TierAdvanced}
}

// GeneratePrepSheet makes one model call with the bundle and returns the
// first balanced JSON object found in the response text. The candidate is
// not validated here; that is the validator's job.
func (g *Generator) GeneratePrepSheet(ctx context.Context, bundle string) (string, error) {
	template := prompts.MustGet("prep_sheet.json", "generate")
	prompt := prompts.Format(template, map[string]string{"Context": bundle})

	text, err := g.client.GenerateJSON(ctx, prompt, g.tier)
	if err != nil {
		return "", &GenerationError{Message: "model call failed", Cause: err}
	}

	payload, ok := llm.ExtractJSONObject(text)
	if !ok {
		return "", &GenerationError{Message: "no JSON object in model response"}
	}
	return payload, nil
}
