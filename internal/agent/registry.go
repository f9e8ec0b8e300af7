package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"taskmind/internal/domain/todo"
	"taskmind/internal/llm"
)

// TodoService defines the todo operations the tool registry dispatches to.
type TodoService interface {
	Create(ctx context.Context, req todo.CreateRequest) (*todo.Todo, error)
	List(ctx context.Context) ([]todo.Todo, error)
	ListByCompleted(ctx context.Context, completed bool) ([]todo.Todo, error)
	ListByPriority(ctx context.Context, priority todo.Priority) ([]todo.Todo, error)
	FindByText(ctx context.Context, text string) (*todo.Todo, error)
	SearchByText(ctx context.Context, text string) ([]todo.Todo, error)
	UpdateByText(ctx context.Context, text string, req todo.UpdateRequest) (*todo.Todo, error)
	DeleteByText(ctx context.Context, text string) (*todo.Todo, error)
}

type toolHandler func(ctx context.Context, args json.RawMessage) string

// Registry is the closed set of tools the model may invoke. Every dispatch
// returns a formatted observation string; failures inside a tool are reduced
// to "✗ ..." text and never surface as errors to the orchestrator.
type Registry struct {
	todos    TodoService
	logger   *slog.Logger
	handlers map[string]toolHandler
	catalog  []llm.Tool
}

// NewRegistry creates a registry over the given todo service.
func NewRegistry(todos TodoService, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{
		todos:   todos,
		logger:  logger,
		catalog: buildToolCatalog(),
	}
	r.handlers = map[string]toolHandler{
		"create_todo":           r.createTodo,
		"list_todos":            r.listTodos,
		"get_completed_todos":   r.getCompletedTodos,
		"get_todos_by_priority": r.getTodosByPriority,
		"search_todo":           r.searchTodo,
		"update_todo":           r.updateTodo,
		"delete_todo":           r.deleteTodo,
		"mark_complete":         r.markComplete,
		"mark_incomplete":       r.markIncomplete,
	}
	return r
}

// Tools returns the catalog advertised to the model.
func (r *Registry) Tools() []llm.Tool {
	return r.catalog
}

// Dispatch runs the named tool with JSON-encoded arguments and returns its
// observation. Unknown tools and handler panics become failure observations.
func (r *Registry) Dispatch(ctx context.Context, name, arguments string) (obs string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("tool handler panicked", "tool", name, "panic", rec)
			obs = failResponse(fmt.Sprintf("Failed to execute %s: internal error", name))
		}
	}()

	handler, ok := r.handlers[name]
	if !ok {
		return failResponse(fmt.Sprintf("Unknown tool: %s", name))
	}
	if arguments == "" {
		arguments = "{}"
	}
	return handler(ctx, json.RawMessage(arguments))
}

func decodeArgs(raw json.RawMessage, v any) error {
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	return dec.Decode(v)
}

type createParams struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

func (r *Registry) createTodo(ctx context.Context, args json.RawMessage) string {
	var p createParams
	if err := decodeArgs(args, &p); err != nil {
		return failResponse("Invalid arguments for create_todo: " + err.Error())
	}

	priority := todo.PriorityMedium
	if p.Priority != "" {
		if parsed, err := todo.ParsePriority(p.Priority); err == nil {
			priority = parsed
		}
	}

	if existing, err := r.todos.FindByText(ctx, p.Title); err == nil {
		if strings.EqualFold(existing.Title, p.Title) {
			return failResponse(fmt.Sprintf("Todo with similar title already exists: '%s' (ID: %d)", existing.Title, existing.ID))
		}
	}

	t, err := r.todos.Create(ctx, todo.CreateRequest{
		Title:       p.Title,
		Description: p.Description,
		Priority:    priority,
	})
	if err != nil {
		return failResponse("Failed to create todo: " + err.Error())
	}

	return okResponse(
		fmt.Sprintf("Created todo: '%s' [Priority: %s]", t.Title, t.Priority),
		fmt.Sprintf("ID: %d", t.ID),
	)
}

type pageParams struct {
	Page int `json:"page"`
}

func (r *Registry) listTodos(ctx context.Context, args json.RawMessage) string {
	var p pageParams
	if err := decodeArgs(args, &p); err != nil {
		return failResponse("Invalid arguments for list_todos: " + err.Error())
	}

	todos, err := r.todos.List(ctx)
	if err != nil {
		return failResponse("Failed to list todos: " + err.Error())
	}
	if len(todos) == 0 {
		return okResponse("No todos found", "")
	}

	return formatTodoList(todos, true, p.Page)
}

type completedParams struct {
	Completed bool `json:"completed"`
	Page      int  `json:"page"`
}

func (r *Registry) getCompletedTodos(ctx context.Context, args json.RawMessage) string {
	var p completedParams
	if err := decodeArgs(args, &p); err != nil {
		return failResponse("Invalid arguments for get_completed_todos: " + err.Error())
	}

	todos, err := r.todos.ListByCompleted(ctx, p.Completed)
	if err != nil {
		return failResponse("Failed to get todos: " + err.Error())
	}

	statusText := "incomplete"
	if p.Completed {
		statusText = "completed"
	}
	if len(todos) == 0 {
		return okResponse(fmt.Sprintf("No %s todos found", statusText), "")
	}

	return formatTodoList(todos, false, p.Page)
}

type priorityParams struct {
	Priority string `json:"priority"`
	Page     int    `json:"page"`
}

func (r *Registry) getTodosByPriority(ctx context.Context, args json.RawMessage) string {
	var p priorityParams
	if err := decodeArgs(args, &p); err != nil {
		return failResponse("Invalid arguments for get_todos_by_priority: " + err.Error())
	}

	priority, err := todo.ParsePriority(p.Priority)
	if err != nil {
		return failResponse(fmt.Sprintf("Invalid priority '%s'. Use: low, medium, high, urgent", p.Priority))
	}

	todos, err := r.todos.ListByPriority(ctx, priority)
	if err != nil {
		return failResponse("Failed to get todos: " + err.Error())
	}
	if len(todos) == 0 {
		return okResponse(fmt.Sprintf("No %s priority todos found", priority), "")
	}

	return formatTodoList(todos, true, p.Page)
}

type searchParams struct {
	SearchText string `json:"search_text"`
}

func (r *Registry) searchTodo(ctx context.Context, args json.RawMessage) string {
	var p searchParams
	if err := decodeArgs(args, &p); err != nil {
		return failResponse("Invalid arguments for search_todo: " + err.Error())
	}

	todos, err := r.todos.SearchByText(ctx, p.SearchText)
	if err != nil {
		return failResponse("Failed to search todo: " + err.Error())
	}
	if len(todos) == 0 {
		return failResponse(fmt.Sprintf("No todos found matching '%s'", p.SearchText))
	}

	if len(todos) == 1 {
		return formatTodoDetail(todos[0], p.SearchText)
	}

	lines := []string{fmt.Sprintf("Found %d todos matching '%s':", len(todos), p.SearchText)}
	for _, t := range todos {
		lines = append(lines, formatTodoLine(t, true, true))
	}
	return strings.Join(lines, "\n")
}

type updateParams struct {
	Text        string  `json:"text"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Priority    *string `json:"priority"`
}

func (r *Registry) updateTodo(ctx context.Context, args json.RawMessage) string {
	var p updateParams
	if err := decodeArgs(args, &p); err != nil {
		return failResponse("Invalid arguments for update_todo: " + err.Error())
	}

	current, err := r.todos.FindByText(ctx, p.Text)
	if err != nil {
		return failResponse(fmt.Sprintf("Todo not found matching: '%s'", p.Text))
	}

	var priority *todo.Priority
	if p.Priority != nil && *p.Priority != "" {
		parsed, err := todo.ParsePriority(*p.Priority)
		if err != nil {
			return failResponse(fmt.Sprintf("Invalid priority '%s'. Use: low, medium, high, urgent", *p.Priority))
		}
		priority = &parsed
	}

	if p.Title != nil && !strings.EqualFold(*p.Title, current.Title) {
		if existing, err := r.todos.FindByText(ctx, *p.Title); err == nil {
			if existing.ID != current.ID && strings.EqualFold(existing.Title, *p.Title) {
				msg := fmt.Sprintf(
					"Another todo with title '%s' already exists (ID: %d)\n"+
						"Current todo: '%s' (ID: %d)\n"+
						"Do you want to:\n"+
						"1. Update existing '%s' instead?\n"+
						"2. Choose a different title for '%s'?\n"+
						"3. Merge them by deleting one?",
					existing.Title, existing.ID,
					current.Title, current.ID,
					existing.Title, current.Title,
				)
				return failResponse(msg)
			}
		}
	}

	updated, err := r.todos.UpdateByText(ctx, p.Text, todo.UpdateRequest{
		Title:       p.Title,
		Description: p.Description,
		Completed:   p.Completed,
		Priority:    priority,
	})
	if err != nil {
		return failResponse("Failed to update todo: " + err.Error())
	}

	return okResponse(
		fmt.Sprintf("Updated todo: '%s'", updated.Title),
		fmt.Sprintf("Priority: %s, Completed: %t", updated.Priority, updated.Completed),
	)
}

type textParams struct {
	Text string `json:"text"`
}

func (r *Registry) deleteTodo(ctx context.Context, args json.RawMessage) string {
	var p textParams
	if err := decodeArgs(args, &p); err != nil {
		return failResponse("Invalid arguments for delete_todo: " + err.Error())
	}

	if _, err := r.todos.DeleteByText(ctx, p.Text); err != nil {
		if errors.Is(err, todo.ErrNoMatch) || errors.Is(err, todo.ErrTodoNotFound) {
			return failResponse(fmt.Sprintf("Todo not found matching: '%s'", p.Text))
		}
		return failResponse("Failed to delete todo: " + err.Error())
	}

	return okResponse(fmt.Sprintf("Deleted todo matching: '%s'", p.Text), "")
}

func (r *Registry) markComplete(ctx context.Context, args json.RawMessage) string {
	return r.setCompleted(ctx, args, true)
}

func (r *Registry) markIncomplete(ctx context.Context, args json.RawMessage) string {
	return r.setCompleted(ctx, args, false)
}

func (r *Registry) setCompleted(ctx context.Context, args json.RawMessage, completed bool) string {
	verb := "incomplete"
	if completed {
		verb = "complete"
	}

	var p textParams
	if err := decodeArgs(args, &p); err != nil {
		return failResponse(fmt.Sprintf("Invalid arguments for mark_%s: %s", verb, err.Error()))
	}

	updated, err := r.todos.UpdateByText(ctx, p.Text, todo.UpdateRequest{Completed: &completed})
	if err != nil {
		if errors.Is(err, todo.ErrNoMatch) || errors.Is(err, todo.ErrTodoNotFound) {
			return failResponse(fmt.Sprintf("Todo not found matching: '%s'", p.Text))
		}
		return failResponse(fmt.Sprintf("Failed to mark %s: %s", verb, err.Error()))
	}

	return okResponse(fmt.Sprintf("Marked as %s: '%s'", verb, updated.Title), "")
}
