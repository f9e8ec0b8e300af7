// Package mcp exposes the todo tools over the Model Context Protocol so
// local MCP clients can drive the same registry the agent uses.
package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"taskmind/internal/agent"
)

const serverInstructions = `Todo assistant tools. Create, list, search, update, complete and delete
todos. Text-based tools (update_todo, delete_todo, mark_complete,
mark_incomplete) resolve the todo by matching the given text against titles
and descriptions; exact matches win over fuzzy ones.`

// Config contains server configuration.
type Config struct {
	Registry *agent.Registry
	Logger   *slog.Logger
}

// NewServer creates an MCP server exposing every registry tool.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "taskmind",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerTools(server, cfg.Registry)

	return server
}

type createTodoInput struct {
	Title       string `json:"title" jsonschema:"todo title"`
	Description string `json:"description,omitempty" jsonschema:"optional longer description"`
	Priority    string `json:"priority,omitempty" jsonschema:"priority level: low, medium, high or urgent"`
}

type pageInput struct {
	Page int `json:"page,omitempty" jsonschema:"page number, starting at 1"`
}

type completedInput struct {
	Completed bool `json:"completed" jsonschema:"completion status to filter by"`
	Page      int  `json:"page,omitempty" jsonschema:"page number, starting at 1"`
}

type priorityInput struct {
	Priority string `json:"priority" jsonschema:"priority level to filter by"`
	Page     int    `json:"page,omitempty" jsonschema:"page number, starting at 1"`
}

type searchInput struct {
	SearchText string `json:"search_text" jsonschema:"text to match against titles and descriptions"`
}

type updateTodoInput struct {
	Text        string  `json:"text" jsonschema:"text identifying the todo to update"`
	Title       *string `json:"title,omitempty" jsonschema:"new title"`
	Description *string `json:"description,omitempty" jsonschema:"new description"`
	Completed   *bool   `json:"completed,omitempty" jsonschema:"new completion status"`
	Priority    *string `json:"priority,omitempty" jsonschema:"new priority level"`
}

type textInput struct {
	Text string `json:"text" jsonschema:"text identifying the todo"`
}

func registerTools(server *sdkmcp.Server, registry *agent.Registry) {
	addTool[createTodoInput](server, registry, "create_todo",
		"Create a new todo item. Provide a title, optional description, and priority (low, medium, high, urgent).")
	addTool[pageInput](server, registry, "list_todos",
		"List all todo items with pagination (20 per page). Use page parameter to navigate: page=1, page=2, etc.")
	addTool[completedInput](server, registry, "get_completed_todos",
		"Get todos filtered by completion status with pagination. Set completed=true for completed todos, false for incomplete.")
	addTool[priorityInput](server, registry, "get_todos_by_priority",
		"Get todos filtered by priority level (low, medium, high, urgent) with pagination.")
	addTool[searchInput](server, registry, "search_todo",
		"Search for ALL todos matching the text in title or description. Returns all matching results.")
	addTool[updateTodoInput](server, registry, "update_todo",
		"Update a todo by matching its title or description. Provide the text to find the todo and fields to update.")
	addTool[textInput](server, registry, "delete_todo",
		"Delete a todo by matching its title or description.")
	addTool[textInput](server, registry, "mark_complete",
		"Mark a todo as completed by matching its title or description.")
	addTool[textInput](server, registry, "mark_incomplete",
		"Mark a todo as incomplete by matching its title or description.")
}

// addTool bridges one registry tool into the MCP server. The SDK decodes and
// validates the typed input; the registry handles everything past that and
// always answers with an observation string.
func addTool[In any](server *sdkmcp.Server, registry *agent.Registry, name, description string) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        name,
		Description: description,
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, input In) (*sdkmcp.CallToolResult, any, error) {
		args, err := json.Marshal(input)
		if err != nil {
			return nil, nil, err
		}
		obs := registry.Dispatch(ctx, name, string(args))
		return &sdkmcp.CallToolResult{
			Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: obs}},
		}, nil, nil
	})
}
