package todo

import (
	"strings"
	"time"
)

// Priority categorizes todos by importance.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ParsePriority converts a user-supplied string into a Priority,
// case-insensitively. Returns ErrInvalidPriority for unknown values.
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	case PriorityUrgent:
		return PriorityUrgent, nil
	default:
		return "", ErrInvalidPriority
	}
}

// Todo is a single task record. Identity and timestamps are store-assigned;
// ids are never reused within a store lifetime.
type Todo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	Priority    Priority  `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	maxTitleLen       = 255
	maxDescriptionLen = 2000
)

// CreateRequest describes a todo creation request.
type CreateRequest struct {
	Title       string
	Description string
	Priority    Priority
}

// UpdateRequest describes a partial todo update. Nil fields are left
// unchanged.
type UpdateRequest struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *Priority
}

// ValidateCreateInput checks field constraints for creation.
func ValidateCreateInput(req CreateRequest) error {
	if req.Title == "" || len(req.Title) > maxTitleLen {
		return ErrInvalidInput
	}
	if len(req.Description) > maxDescriptionLen {
		return ErrInvalidInput
	}
	if req.Priority != "" {
		if _, err := ParsePriority(string(req.Priority)); err != nil {
			return err
		}
	}
	return nil
}

// ValidateUpdateInput checks field constraints for a partial update.
func ValidateUpdateInput(req UpdateRequest) error {
	if req.Title != nil && (*req.Title == "" || len(*req.Title) > maxTitleLen) {
		return ErrInvalidInput
	}
	if req.Description != nil && len(*req.Description) > maxDescriptionLen {
		return ErrInvalidInput
	}
	if req.Priority != nil {
		if _, err := ParsePriority(string(*req.Priority)); err != nil {
			return err
		}
	}
	return nil
}
