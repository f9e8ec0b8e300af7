package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"taskmind/internal/domain/todo"
)

// TodoRepository implements todo.Repository for SQLite. Text matching is
// done store-side with LOWER() so all comparisons are case-insensitive, and
// result sets are ordered by ascending id so candidate order is stable.
type TodoRepository struct {
	db *DB
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *DB) *TodoRepository {
	return &TodoRepository{db: db}
}

const todoColumns = "id, title, description, completed, priority, created_at, updated_at"

// Create inserts a new todo and fills in its store-assigned id.
func (r *TodoRepository) Create(ctx context.Context, t *todo.Todo) error {
	query := `
		INSERT INTO todos (title, description, completed, priority, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		t.Title,
		nullableText(t.Description),
		t.Completed,
		t.Priority,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted id: %w", err)
	}
	t.ID = id

	return nil
}

// Get retrieves a todo by id.
func (r *TodoRepository) Get(ctx context.Context, id int64) (*todo.Todo, error) {
	query := fmt.Sprintf("SELECT %s FROM todos WHERE id = ?", todoColumns)

	t, err := scanTodo(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, todo.ErrTodoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return t, nil
}

// List returns all todos in ascending id order.
func (r *TodoRepository) List(ctx context.Context) ([]todo.Todo, error) {
	query := fmt.Sprintf("SELECT %s FROM todos ORDER BY id ASC", todoColumns)
	return r.queryTodos(ctx, query)
}

// ListByCompleted returns todos filtered by completion status.
func (r *TodoRepository) ListByCompleted(ctx context.Context, completed bool) ([]todo.Todo, error) {
	query := fmt.Sprintf("SELECT %s FROM todos WHERE completed = ? ORDER BY id ASC", todoColumns)
	return r.queryTodos(ctx, query, completed)
}

// ListByPriority returns todos filtered by priority level.
func (r *TodoRepository) ListByPriority(ctx context.Context, priority todo.Priority) ([]todo.Todo, error) {
	query := fmt.Sprintf("SELECT %s FROM todos WHERE priority = ? ORDER BY id ASC", todoColumns)
	return r.queryTodos(ctx, query, priority)
}

// FindExact returns the first todo whose title or description equals text
// case-insensitively, in id order.
func (r *TodoRepository) FindExact(ctx context.Context, text string) (*todo.Todo, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM todos
		WHERE LOWER(title) = LOWER(?) OR LOWER(COALESCE(description, '')) = LOWER(?)
		ORDER BY id ASC
		LIMIT 1
	`, todoColumns)

	t, err := scanTodo(r.db.QueryRowContext(ctx, query, text, text))
	if err == sql.ErrNoRows {
		return nil, todo.ErrTodoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find todo by exact text: %w", err)
	}

	return t, nil
}

// FindContaining returns all todos whose title or description contains text
// case-insensitively, in id order. An empty text matches every todo.
func (r *TodoRepository) FindContaining(ctx context.Context, text string) ([]todo.Todo, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM todos
		WHERE LOWER(title) LIKE ? ESCAPE '\' OR LOWER(COALESCE(description, '')) LIKE ? ESCAPE '\'
		ORDER BY id ASC
	`, todoColumns)

	like := "%" + escapeLike(strings.ToLower(text)) + "%"
	return r.queryTodos(ctx, query, like, like)
}

// Update overwrites all mutable fields of an existing todo.
func (r *TodoRepository) Update(ctx context.Context, t *todo.Todo) error {
	query := `
		UPDATE todos
		SET title = ?, description = ?, completed = ?, priority = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		t.Title,
		nullableText(t.Description),
		t.Completed,
		t.Priority,
		t.UpdatedAt,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return todo.ErrTodoNotFound
	}

	return nil
}

// Delete removes a todo by id.
func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return todo.ErrTodoNotFound
	}

	return nil
}

// DeleteAll removes every todo and returns the number deleted.
func (r *TodoRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todos`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete todos: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return count, nil
}

func (r *TodoRepository) queryTodos(ctx context.Context, query string, args ...any) ([]todo.Todo, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer rows.Close()

	var todos []todo.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, *t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todo rows: %w", err)
	}

	return todos, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*todo.Todo, error) {
	var (
		t           todo.Todo
		description sql.NullString
		createdAt   time.Time
		updatedAt   time.Time
	)
	err := row.Scan(
		&t.ID,
		&t.Title,
		&description,
		&t.Completed,
		&t.Priority,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Description = description.String
	t.CreatedAt = createdAt
	t.UpdatedAt = updatedAt
	return &t, nil
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// escapeLike escapes LIKE wildcards so user text is matched literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
