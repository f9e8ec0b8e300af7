package agent

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

type actionEntry struct {
	tool   string
	args   map[string]any
	raw    string
	hasMap bool
}

// Ledger records the tool calls of a single run in dispatch order. One
// ledger per run; ledgers are not safe for concurrent use.
type Ledger struct {
	entries []actionEntry
	logger  *slog.Logger
}

// NewLedger creates an empty action ledger.
func NewLedger(logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{logger: logger}
}

// Record appends a tool call. Entries with an empty tool name are skipped
// with a warning; a bad entry never aborts the run.
func (l *Ledger) Record(tool string, args map[string]any) {
	if tool == "" {
		l.logger.Warn("skipping action entry with empty tool name")
		return
	}
	l.entries = append(l.entries, actionEntry{tool: tool, args: args, hasMap: true})
}

// RecordText appends a tool call whose arguments could not be decoded as a
// mapping. The raw argument text is rendered as-is.
func (l *Ledger) RecordText(tool, raw string) {
	if tool == "" {
		l.logger.Warn("skipping action entry with empty tool name")
		return
	}
	l.entries = append(l.entries, actionEntry{tool: tool, raw: raw})
}

// Render returns one line per recorded call, numbered from 1, in the form
// "N. tool(k=v, ...)". Argument keys are sorted and zero-valued arguments
// are omitted, matching how the values read in user-facing summaries.
func (l *Ledger) Render() []string {
	out := make([]string, 0, len(l.entries))
	for i, e := range l.entries {
		if e.hasMap {
			out = append(out, fmt.Sprintf("%d. %s(%s)", i+1, e.tool, renderArgs(e.args)))
		} else {
			out = append(out, fmt.Sprintf("%d. %s(%s)", i+1, e.tool, e.raw))
		}
	}
	return out
}

func renderArgs(args map[string]any) string {
	keys := make([]string, 0, len(args))
	for k := range args {
		if falsy(args[k]) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, args[k]))
	}
	return strings.Join(parts, ", ")
}

func falsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case float64:
		return x == 0
	case int:
		return x == 0
	default:
		return false
	}
}
