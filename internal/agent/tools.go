package agent

import "taskmind/internal/llm"

// buildToolCatalog returns the definitions of all tools exposed to the model.
func buildToolCatalog() []llm.Tool {
	defs := []llm.FunctionDefinition{
		{
			Name:        "create_todo",
			Description: "Create a new todo item. Provide a title, optional description, and priority (low, medium, high, urgent).",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title": map[string]any{
						"type":        "string",
						"description": "Todo title",
					},
					"description": map[string]any{
						"type":        "string",
						"description": "Optional longer description",
					},
					"priority": map[string]any{
						"type":        "string",
						"description": "Priority level",
						"enum":        []string{"low", "medium", "high", "urgent"},
					},
				},
				"required": []string{"title"},
			},
		},
		{
			Name:        "list_todos",
			Description: "List all todo items with pagination (20 per page). Use page parameter to navigate: page=1, page=2, etc.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"page": map[string]any{
						"type":        "integer",
						"description": "Page number, starting at 1",
					},
				},
			},
		},
		{
			Name:        "get_completed_todos",
			Description: "Get todos filtered by completion status with pagination. Set completed=true for completed todos, false for incomplete.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"completed": map[string]any{
						"type":        "boolean",
						"description": "Completion status to filter by",
					},
					"page": map[string]any{
						"type":        "integer",
						"description": "Page number, starting at 1",
					},
				},
				"required": []string{"completed"},
			},
		},
		{
			Name:        "get_todos_by_priority",
			Description: "Get todos filtered by priority level (low, medium, high, urgent) with pagination.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"priority": map[string]any{
						"type":        "string",
						"description": "Priority level to filter by",
						"enum":        []string{"low", "medium", "high", "urgent"},
					},
					"page": map[string]any{
						"type":        "integer",
						"description": "Page number, starting at 1",
					},
				},
				"required": []string{"priority"},
			},
		},
		{
			Name:        "search_todo",
			Description: "Search for ALL todos matching the text in title or description. Returns all matching results.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"search_text": map[string]any{
						"type":        "string",
						"description": "Text to match against titles and descriptions",
					},
				},
				"required": []string{"search_text"},
			},
		},
		{
			Name:        "update_todo",
			Description: "Update a todo by matching its title or description. Provide the text to find the todo and fields to update. Priority can be: low, medium, high, urgent.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"text": map[string]any{
						"type":        "string",
						"description": "Text identifying the todo to update",
					},
					"title": map[string]any{
						"type":        "string",
						"description": "New title",
					},
					"description": map[string]any{
						"type":        "string",
						"description": "New description",
					},
					"completed": map[string]any{
						"type":        "boolean",
						"description": "New completion status",
					},
					"priority": map[string]any{
						"type":        "string",
						"description": "New priority level",
						"enum":        []string{"low", "medium", "high", "urgent"},
					},
				},
				"required": []string{"text"},
			},
		},
		{
			Name:        "delete_todo",
			Description: "Delete a todo by matching its title or description.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"text": map[string]any{
						"type":        "string",
						"description": "Text identifying the todo to delete",
					},
				},
				"required": []string{"text"},
			},
		},
		{
			Name:        "mark_complete",
			Description: "Mark a todo as completed by matching its title or description.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"text": map[string]any{
						"type":        "string",
						"description": "Text identifying the todo",
					},
				},
				"required": []string{"text"},
			},
		},
		{
			Name:        "mark_incomplete",
			Description: "Mark a todo as incomplete by matching its title or description.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"text": map[string]any{
						"type":        "string",
						"description": "Text identifying the todo",
					},
				},
				"required": []string{"text"},
			},
		},
	}

	tools := make([]llm.Tool, 0, len(defs))
	for _, def := range defs {
		tools = append(tools, llm.Tool{Type: "function", Function: def})
	}
	return tools
}
