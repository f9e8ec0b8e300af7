package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"taskmind/internal/llm"
)

// Defaults applied when Options fields are zero.
const (
	DefaultMaxIterations = 10
	DefaultTurnTimeout   = 60 * time.Second
)

// LLMClient is the model transport the orchestrator drives.
type LLMClient interface {
	ChatCompletion(ctx context.Context, req llm.Request) (*llm.Response, error)
}

// Options configures an orchestrator.
type Options struct {
	Model         string
	MaxIterations int
	TurnTimeout   time.Duration
	Pricing       PricingTable
}

// Result is the successful outcome of one run.
type Result struct {
	Response     string     `json:"response"`
	ActionsTaken []string   `json:"actions_taken"`
	Usage        UsageStats `json:"usage"`
}

// Orchestrator drives the bounded tool-calling loop: it asks the model for
// either a tool call or a final answer, dispatches proposed calls through
// the registry, and feeds observations back until the model answers or the
// iteration cap is hit. Runs are independent; each gets a fresh tracker and
// ledger, and the orchestrator itself holds no per-run state.
type Orchestrator struct {
	client        LLMClient
	registry      *Registry
	model         string
	maxIterations int
	turnTimeout   time.Duration
	pricing       PricingTable
	logger        *slog.Logger
}

// NewOrchestrator creates an orchestrator over the given model client and
// tool registry.
func NewOrchestrator(client LLMClient, registry *Registry, opts Options, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	if opts.TurnTimeout <= 0 {
		opts.TurnTimeout = DefaultTurnTimeout
	}
	if opts.Pricing == nil {
		opts.Pricing = DefaultPricing()
	}
	return &Orchestrator{
		client:        client,
		registry:      registry,
		model:         opts.Model,
		maxIterations: opts.MaxIterations,
		turnTimeout:   opts.TurnTimeout,
		pricing:       opts.Pricing,
		logger:        logger,
	}
}

// Run processes one natural-language query. On success it returns the final
// answer together with the finalized action trace and usage accounting. A
// transport failure or an exhausted iteration cap aborts the run with an
// error wrapping ErrExecution; no partial result is returned.
func (o *Orchestrator) Run(ctx context.Context, query string) (*Result, error) {
	runID := uuid.NewString()
	logger := o.logger.With("run_id", runID)
	logger.Info("processing agent query", "model", o.model)

	tracker := NewUsageTracker(o.model, o.pricing)
	ledger := NewLedger(logger)

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: query},
	}

	for iteration := 1; iteration <= o.maxIterations; iteration++ {
		resp, err := o.modelTurn(ctx, tracker, messages)
		if err != nil {
			logger.Error("model turn failed", "iteration", iteration, "error", err)
			return nil, fmt.Errorf("%w: %w: %w", ErrExecution, ErrLLMTransport, err)
		}

		if !resp.HasToolCalls() {
			usage := tracker.Finalize()
			result := &Result{
				Response:     resp.Message.Content,
				ActionsTaken: ledger.Render(),
				Usage:        usage,
			}
			logger.Info("agent query completed",
				"iterations", iteration,
				"actions", len(result.ActionsTaken),
				"total_tokens", usage.TotalTokens,
				"estimated_cost_usd", usage.EstimatedCostUSD,
			)
			return result, nil
		}

		messages = append(messages, resp.Message)

		// Tool calls run strictly one at a time. Dispatch uses the run
		// context, not the turn timeout, so an in-flight store write is not
		// cut off mid-mutation.
		for _, call := range resp.Message.ToolCalls {
			o.recordAction(ledger, call)
			obs := o.registry.Dispatch(ctx, call.Function.Name, call.Function.Arguments)
			logger.Debug("tool dispatched", "tool", call.Function.Name, "iteration", iteration)

			messages = append(messages, llm.Message{
				Role:       llm.RoleTool,
				ToolCallID: call.ID,
				Name:       call.Function.Name,
				Content:    obs,
			})
		}
	}

	logger.Warn("iteration cap reached without final answer", "max_iterations", o.maxIterations)
	return nil, fmt.Errorf("%w: %w", ErrExecution, ErrMaxIterations)
}

func (o *Orchestrator) modelTurn(ctx context.Context, tracker *UsageTracker, messages []llm.Message) (*llm.Response, error) {
	turnCtx, cancel := context.WithTimeout(ctx, o.turnTimeout)
	defer cancel()

	tracker.OnCallStarted()
	resp, err := o.client.ChatCompletion(turnCtx, llm.Request{
		Model:    o.model,
		Messages: messages,
		Tools:    o.registry.Tools(),
	})
	if err != nil {
		return nil, err
	}
	tracker.OnCallFinished(resp.Usage)
	return resp, nil
}

func (o *Orchestrator) recordAction(ledger *Ledger, call llm.ToolCall) {
	var args map[string]any
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		ledger.RecordText(call.Function.Name, call.Function.Arguments)
		return
	}
	ledger.Record(call.Function.Name, args)
}
