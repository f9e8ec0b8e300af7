package agent

import (
	"fmt"
	"strings"

	"taskmind/internal/domain/todo"
)

// pageSize is the number of todos shown per page in list-style observations.
const pageSize = 20

// okResponse renders a successful observation. Extra detail, when present,
// goes on the following line.
func okResponse(message string, detail string) string {
	if detail != "" {
		return "✓ " + message + "\n" + detail
	}
	return "✓ " + message
}

// failResponse renders a failed observation.
func failResponse(message string) string {
	return "✗ " + message
}

func priorityIcon(p todo.Priority) string {
	switch p {
	case todo.PriorityLow:
		return "🔵"
	case todo.PriorityMedium:
		return "🟡"
	case todo.PriorityHigh:
		return "🟠"
	case todo.PriorityUrgent:
		return "🔴"
	default:
		return "⚪"
	}
}

// formatTodoLine renders one todo as a single line with optional status and
// priority markers.
func formatTodoLine(t todo.Todo, showStatus, showPriority bool) string {
	var parts []string

	if showStatus {
		if t.Completed {
			parts = append(parts, "✓")
		} else {
			parts = append(parts, "○")
		}
	}
	if showPriority {
		parts = append(parts, priorityIcon(t.Priority))
	}

	parts = append(parts, fmt.Sprintf("[%d] %s", t.ID, t.Title))
	if t.Description != "" {
		parts = append(parts, "- "+t.Description)
	}

	return strings.Join(parts, " ")
}

// formatTodoList renders a paginated list view. Pages are 1-based; when
// more todos remain past the requested page a hint line tells the model how
// to fetch them.
func formatTodoList(todos []todo.Todo, showStatus bool, page int) string {
	if len(todos) == 0 {
		return "No todos found"
	}
	if page < 1 {
		page = 1
	}

	total := len(todos)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	pageTodos := todos[start:end]

	lines := []string{fmt.Sprintf("Found %d todo(s) (showing %d):", total, len(pageTodos))}
	for _, t := range pageTodos {
		lines = append(lines, formatTodoLine(t, showStatus, true))
	}

	if end < total {
		remaining := total - end
		lines = append(lines, fmt.Sprintf("\n📄 %d more todo(s) available. Say 'load more' or 'next page' to see them.", remaining))
	}

	return strings.Join(lines, "\n")
}

// formatTodoDetail renders the expanded single-result view used by search.
func formatTodoDetail(t todo.Todo, query string) string {
	status := "○ Incomplete"
	if t.Completed {
		status = "✓ Completed"
	}

	lines := []string{
		fmt.Sprintf("Found 1 todo matching '%s':", query),
		fmt.Sprintf("%s [%d] %s", priorityIcon(t.Priority), t.ID, t.Title),
		"Status: " + status,
		"Priority: " + string(t.Priority),
	}
	if t.Description != "" {
		lines = append(lines, "Description: "+t.Description)
	}
	lines = append(lines, "Created: "+t.CreatedAt.Format("2006-01-02 15:04"))

	return strings.Join(lines, "\n")
}
