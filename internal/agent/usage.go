package agent

import (
	"math"

	"taskmind/internal/llm"
)

// PricingEntry holds USD prices per one million tokens.
type PricingEntry struct {
	Prompt     float64
	Completion float64
}

// PricingTable maps model identifiers to their token prices. The table is
// read-only once constructed; trackers never mutate it.
type PricingTable map[string]PricingEntry

// fallbackModel is used to price models missing from the table.
const fallbackModel = "openai/gpt-4o-mini"

// DefaultPricing returns per-1M-token prices for commonly routed models.
// Prices as of Jan 2026.
func DefaultPricing() PricingTable {
	return PricingTable{
		"openai/gpt-4o":        {Prompt: 2.50, Completion: 10.00},
		"openai/gpt-4o-mini":   {Prompt: 0.15, Completion: 0.60},
		"openai/gpt-4-turbo":   {Prompt: 10.00, Completion: 30.00},
		"openai/gpt-3.5-turbo": {Prompt: 0.50, Completion: 1.50},

		"anthropic/claude-3-opus":   {Prompt: 15.00, Completion: 75.00},
		"anthropic/claude-3-sonnet": {Prompt: 3.00, Completion: 15.00},
		"anthropic/claude-3-haiku":  {Prompt: 0.25, Completion: 1.25},

		"meta-llama/llama-3-70b-instruct": {Prompt: 0.80, Completion: 0.80},
		"meta-llama/llama-3-8b-instruct":  {Prompt: 0.18, Completion: 0.18},

		"google/gemini-pro":     {Prompt: 0.50, Completion: 1.50},
		"google/gemini-pro-1.5": {Prompt: 1.25, Completion: 5.00},

		"mistralai/mixtral-8x7b-instruct": {Prompt: 0.50, Completion: 0.50},
		"mistralai/mistral-large":         {Prompt: 4.00, Completion: 12.00},
	}
}

// priceFor resolves the entry for a model, falling back to gpt-4o-mini
// pricing for unknown models.
func (p PricingTable) priceFor(model string) PricingEntry {
	if entry, ok := p[model]; ok {
		return entry
	}
	if entry, ok := p[fallbackModel]; ok {
		return entry
	}
	return PricingEntry{Prompt: 0.15, Completion: 0.60}
}

// UsageStats is the finalized accounting for one orchestration run.
type UsageStats struct {
	LLMCalls         int     `json:"llm_calls"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	EstimatedCostUSD float64 `json:"estimated_cost_usd"`
	Model            string  `json:"model"`
}

// UsageTracker accumulates token usage across the model turns of a single
// run. One tracker per run; trackers are not safe for concurrent use.
type UsageTracker struct {
	model      string
	pricing    PricingTable
	calls      int
	prompt     int
	completion int
	total      int

	finalized bool
	snapshot  UsageStats
}

// NewUsageTracker creates a tracker for one run against the given model.
func NewUsageTracker(model string, pricing PricingTable) *UsageTracker {
	return &UsageTracker{model: model, pricing: pricing}
}

// OnCallStarted records that a model turn was issued. Counted even when the
// turn later fails, so transport errors still show up in call counts.
func (t *UsageTracker) OnCallStarted() {
	if t.finalized {
		return
	}
	t.calls++
}

// OnCallFinished accumulates the token usage reported for a completed turn.
func (t *UsageTracker) OnCallFinished(u llm.Usage) {
	if t.finalized {
		return
	}
	t.prompt += u.PromptTokens
	t.completion += u.CompletionTokens
	t.total += u.TotalTokens
}

// Finalize computes the cost and freezes the tracker. Subsequent calls
// return the same snapshot and later accumulation attempts are ignored.
func (t *UsageTracker) Finalize() UsageStats {
	if t.finalized {
		return t.snapshot
	}
	entry := t.pricing.priceFor(t.model)
	cost := float64(t.prompt)/1_000_000*entry.Prompt + float64(t.completion)/1_000_000*entry.Completion

	t.snapshot = UsageStats{
		LLMCalls:         t.calls,
		PromptTokens:     t.prompt,
		CompletionTokens: t.completion,
		TotalTokens:      t.total,
		EstimatedCostUSD: math.Round(cost*1e6) / 1e6,
		Model:            t.model,
	}
	t.finalized = true
	return t.snapshot
}
