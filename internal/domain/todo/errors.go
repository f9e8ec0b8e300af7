package todo

import "errors"

var (
	// ErrTodoNotFound indicates the todo doesn't exist.
	ErrTodoNotFound = errors.New("todo not found")
	// ErrNoMatch indicates text resolution found no matching todo.
	ErrNoMatch = errors.New("no todo matches the given text")
	// ErrDuplicateTitle indicates a todo with the same title already exists.
	ErrDuplicateTitle = errors.New("todo with this title already exists")
	// ErrInvalidPriority indicates an unknown priority value.
	ErrInvalidPriority = errors.New("invalid priority: use low, medium, high or urgent")
	// ErrInvalidInput indicates invalid input for todo operations.
	ErrInvalidInput = errors.New("invalid todo input")
)
