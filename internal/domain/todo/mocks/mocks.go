// Package mocks provides testify mocks for todo persistence interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"taskmind/internal/domain/todo"
)

// Repository is a mock for todo.Repository.
type Repository struct {
	mock.Mock
}

func (m *Repository) Create(ctx context.Context, t *todo.Todo) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *Repository) Get(ctx context.Context, id int64) (*todo.Todo, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*todo.Todo); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) List(ctx context.Context) ([]todo.Todo, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]todo.Todo); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) ListByCompleted(ctx context.Context, completed bool) ([]todo.Todo, error) {
	args := m.Called(ctx, completed)
	if list, ok := args.Get(0).([]todo.Todo); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) ListByPriority(ctx context.Context, priority todo.Priority) ([]todo.Todo, error) {
	args := m.Called(ctx, priority)
	if list, ok := args.Get(0).([]todo.Todo); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) FindExact(ctx context.Context, text string) (*todo.Todo, error) {
	args := m.Called(ctx, text)
	if t, ok := args.Get(0).(*todo.Todo); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) FindContaining(ctx context.Context, text string) ([]todo.Todo, error) {
	args := m.Called(ctx, text)
	if list, ok := args.Get(0).([]todo.Todo); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) Update(ctx context.Context, t *todo.Todo) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *Repository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Repository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
