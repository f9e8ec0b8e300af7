package agent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"taskmind/internal/domain/todo"
)

type mockTodoService struct {
	mock.Mock
}

func (m *mockTodoService) Create(ctx context.Context, req todo.CreateRequest) (*todo.Todo, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*todo.Todo), args.Error(1)
}

func (m *mockTodoService) List(ctx context.Context) ([]todo.Todo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]todo.Todo), args.Error(1)
}

func (m *mockTodoService) ListByCompleted(ctx context.Context, completed bool) ([]todo.Todo, error) {
	args := m.Called(ctx, completed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]todo.Todo), args.Error(1)
}

func (m *mockTodoService) ListByPriority(ctx context.Context, priority todo.Priority) ([]todo.Todo, error) {
	args := m.Called(ctx, priority)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]todo.Todo), args.Error(1)
}

func (m *mockTodoService) FindByText(ctx context.Context, text string) (*todo.Todo, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*todo.Todo), args.Error(1)
}

func (m *mockTodoService) SearchByText(ctx context.Context, text string) ([]todo.Todo, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]todo.Todo), args.Error(1)
}

func (m *mockTodoService) UpdateByText(ctx context.Context, text string, req todo.UpdateRequest) (*todo.Todo, error) {
	args := m.Called(ctx, text, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*todo.Todo), args.Error(1)
}

func (m *mockTodoService) DeleteByText(ctx context.Context, text string) (*todo.Todo, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*todo.Todo), args.Error(1)
}

func TestRegistry_ToolCatalogIsClosed(t *testing.T) {
	registry := NewRegistry(new(mockTodoService), nil)

	tools := registry.Tools()
	assert.Len(t, tools, 9)

	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		assert.Equal(t, "function", tool.Type)
		names = append(names, tool.Function.Name)
	}
	assert.ElementsMatch(t, []string{
		"create_todo", "list_todos", "get_completed_todos", "get_todos_by_priority",
		"search_todo", "update_todo", "delete_todo", "mark_complete", "mark_incomplete",
	}, names)
}

func TestRegistry_UnknownTool(t *testing.T) {
	registry := NewRegistry(new(mockTodoService), nil)

	obs := registry.Dispatch(context.Background(), "drop_database", `{}`)
	assert.Equal(t, "✗ Unknown tool: drop_database", obs)
}

func TestRegistry_MalformedArguments(t *testing.T) {
	registry := NewRegistry(new(mockTodoService), nil)

	obs := registry.Dispatch(context.Background(), "create_todo", `{"title": `)
	assert.Contains(t, obs, "✗ Invalid arguments for create_todo")
}

func TestRegistry_CreateTodo(t *testing.T) {
	svc := new(mockTodoService)
	svc.On("FindByText", mock.Anything, "buy milk").Return(nil, todo.ErrNoMatch)
	svc.On("Create", mock.Anything, todo.CreateRequest{
		Title:    "buy milk",
		Priority: todo.PriorityHigh,
	}).Return(&todo.Todo{ID: 3, Title: "buy milk", Priority: todo.PriorityHigh}, nil)

	registry := NewRegistry(svc, nil)
	obs := registry.Dispatch(context.Background(), "create_todo", `{"title":"buy milk","priority":"high"}`)

	assert.Equal(t, "✓ Created todo: 'buy milk' [Priority: high]\nID: 3", obs)
	svc.AssertExpectations(t)
}

func TestRegistry_CreateTodo_InvalidPriorityDefaultsToMedium(t *testing.T) {
	svc := new(mockTodoService)
	svc.On("FindByText", mock.Anything, "buy milk").Return(nil, todo.ErrNoMatch)
	svc.On("Create", mock.Anything, todo.CreateRequest{
		Title:    "buy milk",
		Priority: todo.PriorityMedium,
	}).Return(&todo.Todo{ID: 1, Title: "buy milk", Priority: todo.PriorityMedium}, nil)

	registry := NewRegistry(svc, nil)
	obs := registry.Dispatch(context.Background(), "create_todo", `{"title":"buy milk","priority":"critical"}`)

	assert.Contains(t, obs, "✓ Created todo")
	svc.AssertExpectations(t)
}

func TestRegistry_CreateTodo_DuplicateTitle(t *testing.T) {
	svc := new(mockTodoService)
	svc.On("FindByText", mock.Anything, "Buy Milk").
		Return(&todo.Todo{ID: 5, Title: "buy milk"}, nil)

	registry := NewRegistry(svc, nil)
	obs := registry.Dispatch(context.Background(), "create_todo", `{"title":"Buy Milk"}`)

	assert.Equal(t, "✗ Todo with similar title already exists: 'buy milk' (ID: 5)", obs)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegistry_ListTodos_Empty(t *testing.T) {
	svc := new(mockTodoService)
	svc.On("List", mock.Anything).Return([]todo.Todo{}, nil)

	registry := NewRegistry(svc, nil)
	obs := registry.Dispatch(context.Background(), "list_todos", `{}`)

	assert.Equal(t, "✓ No todos found", obs)
}

func TestRegistry_ListTodos_Paginated(t *testing.T) {
	svc := new(mockTodoService)
	svc.On("List", mock.Anything).Return(makeTodos(25), nil)

	registry := NewRegistry(svc, nil)
	obs := registry.Dispatch(context.Background(), "list_todos", `{"page":2}`)

	assert.Contains(t, obs, "Found 25 todo(s) (showing 5):")
	assert.Contains(t, obs, "[21] task 21")
}

func TestRegistry_GetCompletedTodos(t *testing.T) {
	svc := new(mockTodoService)
	svc.On("ListByCompleted", mock.Anything, true).Return([]todo.Todo{}, nil)

	registry := NewRegistry(svc, nil)
	obs := registry.Dispatch(context.Background(), "get_completed_todos", `{"completed":true}`)

	assert.Equal(t, "✓ No completed todos found", obs)
}

func TestRegistry_GetTodosByPriority_Invalid(t *testing.T) {
	registry := NewRegistry(new(mockTodoService), nil)

	obs := registry.Dispatch(context.Background(), "get_todos_by_priority", `{"priority":"severe"}`)
	assert.Equal(t, "✗ Invalid priority 'severe'. Use: low, medium, high, urgent", obs)
}

func TestRegistry_SearchTodo_NoMatch(t *testing.T) {
	svc := new(mockTodoService)
	svc.On("SearchByText", mock.Anything, "vacuum").Return([]todo.Todo{}, nil)

	registry := NewRegistry(svc, nil)
	obs := registry.Dispatch(context.Background(), "search_todo", `{"search_text":"vacuum"}`)

	assert.Equal(t, "✗ No todos found matching 'vacuum'", obs)
}

func TestRegistry_SearchTodo_SingleHitDetailView(t *testing.T) {
	svc := new(mockTodoService)
	svc.On("SearchByText", mock.Anything, "milk").Return([]todo.Todo{{
		ID:        2,
		Title:     "buy milk",
		Priority:  todo.PriorityLow,
		CreatedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
	}}, nil)

	registry := NewRegistry(svc, nil)
	obs := registry.Dispatch(context.Background(), "search_todo", `{"search_text":"milk"}`)

	assert.Contains(t, obs, "Found 1 todo matching 'milk':")
	assert.Contains(t, obs, "🔵 [2] buy milk")
	assert.Contains(t, obs, "Created: 2026-01-02 10:00")
}

func TestRegistry_SearchTodo_MultipleHitsListView(t *testing.T) {
	svc := new(mockTodoService)
	svc.On("SearchByText", mock.Anything, "task").Return(makeTodos(3), nil)

	registry := NewRegistry(svc, nil)
	obs := registry.Dispatch(context.Background(), "search_todo", `{"search_text":"task"}`)

	assert.Contains(t, obs, "Found 3 todos matching 'task':")
	assert.Contains(t, obs, "[1] task 1")
	assert.Contains(t, obs, "[3] task 3")
}

func TestRegistry_UpdateTodo_NotFound(t *testing.T) {
	svc := new(mockTodoService)
	svc.On("FindByText", mock.Anything, "ghost").Return(nil, todo.ErrNoMatch)

	registry := NewRegistry(svc, nil)
	obs := registry.Dispatch(context.Background(), "update_todo", `{"text":"ghost","completed":true}`)

	assert.Equal(t, "✗ Todo not found matching: 'ghost'", obs)
}

func TestRegistry_UpdateTodo_TitleCollisionDisambiguates(t *testing.T) {
	svc := new(mockTodoService)
	svc.On("FindByText", mock.Anything, "groceries").
		Return(&todo.Todo{ID: 1, Title: "groceries"}, nil)
	svc.On("FindByText", mock.Anything, "buy milk").
		Return(&todo.Todo{ID: 2, Title: "buy milk"}, nil)

	registry := NewRegistry(svc, nil)
	obs := registry.Dispatch(context.Background(), "update_todo", `{"text":"groceries","title":"buy milk"}`)

	assert.Contains(t, obs, "✗ Another todo with title 'buy milk' already exists (ID: 2)")
	assert.Contains(t, obs, "1. Update existing 'buy milk' instead?")
	assert.Contains(t, obs, "2. Choose a different title for 'groceries'?")
	assert.Contains(t, obs, "3. Merge them by deleting one?")
	svc.AssertNotCalled(t, "UpdateByText", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegistry_UpdateTodo_Success(t *testing.T) {
	completed := true
	svc := new(mockTodoService)
	svc.On("FindByText", mock.Anything, "groceries").
		Return(&todo.Todo{ID: 1, Title: "groceries", Priority: todo.PriorityMedium}, nil)
	svc.On("UpdateByText", mock.Anything, "groceries", todo.UpdateRequest{Completed: &completed}).
		Return(&todo.Todo{ID: 1, Title: "groceries", Priority: todo.PriorityMedium, Completed: true}, nil)

	registry := NewRegistry(svc, nil)
	obs := registry.Dispatch(context.Background(), "update_todo", `{"text":"groceries","completed":true}`)

	assert.Equal(t, "✓ Updated todo: 'groceries'\nPriority: medium, Completed: true", obs)
	svc.AssertExpectations(t)
}

func TestRegistry_DeleteTodo(t *testing.T) {
	svc := new(mockTodoService)
	svc.On("DeleteByText", mock.Anything, "old task").
		Return(&todo.Todo{ID: 9, Title: "old task"}, nil)

	registry := NewRegistry(svc, nil)
	obs := registry.Dispatch(context.Background(), "delete_todo", `{"text":"old task"}`)

	assert.Equal(t, "✓ Deleted todo matching: 'old task'", obs)
}

func TestRegistry_DeleteTodo_NotFound(t *testing.T) {
	svc := new(mockTodoService)
	svc.On("DeleteByText", mock.Anything, "ghost").Return(nil, todo.ErrNoMatch)

	registry := NewRegistry(svc, nil)
	obs := registry.Dispatch(context.Background(), "delete_todo", `{"text":"ghost"}`)

	assert.Equal(t, "✗ Todo not found matching: 'ghost'", obs)
}

func TestRegistry_MarkCompleteAndIncomplete(t *testing.T) {
	yes, no := true, false
	svc := new(mockTodoService)
	svc.On("UpdateByText", mock.Anything, "groceries", todo.UpdateRequest{Completed: &yes}).
		Return(&todo.Todo{ID: 1, Title: "groceries", Completed: true}, nil)
	svc.On("UpdateByText", mock.Anything, "groceries", todo.UpdateRequest{Completed: &no}).
		Return(&todo.Todo{ID: 1, Title: "groceries"}, nil)

	registry := NewRegistry(svc, nil)

	obs := registry.Dispatch(context.Background(), "mark_complete", `{"text":"groceries"}`)
	assert.Equal(t, "✓ Marked as complete: 'groceries'", obs)

	obs = registry.Dispatch(context.Background(), "mark_incomplete", `{"text":"groceries"}`)
	assert.Equal(t, "✓ Marked as incomplete: 'groceries'", obs)
}

func TestRegistry_PanicReducedToObservation(t *testing.T) {
	// A nil service makes every handler panic on first use.
	registry := NewRegistry(nil, nil)

	obs := registry.Dispatch(context.Background(), "list_todos", `{}`)
	assert.Equal(t, "✗ Failed to execute list_todos: internal error", obs)
}
