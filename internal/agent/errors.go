package agent

import "errors"

// Orchestration failures. Both abort the run and carry no partial payload,
// but callers and logs distinguish the cause.
var (
	// ErrExecution is the single orchestration-level failure returned to
	// callers. The underlying cause is wrapped.
	ErrExecution = errors.New("agent execution failed")

	// ErrLLMTransport indicates the model endpoint could not be reached or
	// returned an unusable response.
	ErrLLMTransport = errors.New("llm transport failure")

	// ErrMaxIterations indicates the model never produced a final answer
	// within the configured iteration cap.
	ErrMaxIterations = errors.New("maximum iterations exceeded")
)
