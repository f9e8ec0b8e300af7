package todo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Service handles todo business logic: validated CRUD plus the text-resolution
// operations the agent tools are built on.
type Service struct {
	repo     Repository
	resolver *Resolver
	logger   *slog.Logger
}

// NewService creates a new todo service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		resolver: NewResolver(repo),
		logger:   logger,
	}
}

// Create validates and stores a new todo. A case-insensitive title collision
// with an existing todo returns ErrDuplicateTitle.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Todo, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	if existing, err := s.resolver.ResolveOne(ctx, req.Title); err == nil {
		if strings.EqualFold(existing.Title, req.Title) {
			return nil, fmt.Errorf("%w: %q (id %d)", ErrDuplicateTitle, existing.Title, existing.ID)
		}
	} else if !errors.Is(err, ErrNoMatch) {
		return nil, err
	}

	now := time.Now().UTC()
	t := &Todo{
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}

	s.logger.Info("todo created", "id", t.ID, "priority", t.Priority)
	return t, nil
}

// Get returns a todo by id.
func (s *Service) Get(ctx context.Context, id int64) (*Todo, error) {
	return s.repo.Get(ctx, id)
}

// List returns all todos in store order.
func (s *Service) List(ctx context.Context) ([]Todo, error) {
	return s.repo.List(ctx)
}

// ListByCompleted returns todos filtered by completion status.
func (s *Service) ListByCompleted(ctx context.Context, completed bool) ([]Todo, error) {
	return s.repo.ListByCompleted(ctx, completed)
}

// ListByPriority returns todos filtered by priority level.
func (s *Service) ListByPriority(ctx context.Context, priority Priority) ([]Todo, error) {
	if _, err := ParsePriority(string(priority)); err != nil {
		return nil, err
	}
	return s.repo.ListByPriority(ctx, priority)
}

// FindByText resolves free text to the single best-matching todo.
func (s *Service) FindByText(ctx context.Context, text string) (*Todo, error) {
	return s.resolver.ResolveOne(ctx, text)
}

// SearchByText returns all todos matching text above the default similarity
// threshold, best match first.
func (s *Service) SearchByText(ctx context.Context, text string) ([]Todo, error) {
	return s.resolver.ResolveAll(ctx, text, DefaultSearchThreshold)
}

// UpdateByID applies a partial update to the todo with the given id.
func (s *Service) UpdateByID(ctx context.Context, id int64, req UpdateRequest) (*Todo, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, current, req)
}

// UpdateByText resolves text to a todo and applies a partial update to it.
// Returns ErrNoMatch when resolution fails.
func (s *Service) UpdateByText(ctx context.Context, text string, req UpdateRequest) (*Todo, error) {
	current, err := s.resolver.ResolveOne(ctx, text)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, current, req)
}

func (s *Service) apply(ctx context.Context, current *Todo, req UpdateRequest) (*Todo, error) {
	if err := ValidateUpdateInput(req); err != nil {
		return nil, err
	}

	updated := *current
	if req.Title != nil {
		updated.Title = *req.Title
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Completed != nil {
		updated.Completed = *req.Completed
	}
	if req.Priority != nil {
		updated.Priority = *req.Priority
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating todo: %w", err)
	}

	s.logger.Info("todo updated", "id", updated.ID)
	return &updated, nil
}

// DeleteByID deletes a todo by id.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// DeleteByText resolves text to a todo and deletes it. Returns ErrNoMatch
// when resolution fails.
func (s *Service) DeleteByText(ctx context.Context, text string) (*Todo, error) {
	t, err := s.resolver.ResolveOne(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, t.ID); err != nil {
		return nil, fmt.Errorf("deleting todo: %w", err)
	}

	s.logger.Info("todo deleted", "id", t.ID)
	return t, nil
}

// DeleteAll removes every todo and returns the number deleted.
func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	return s.repo.DeleteAll(ctx)
}
