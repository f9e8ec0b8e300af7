package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"taskmind/internal/agent"
	"taskmind/internal/domain/todo"
)

// maxQueryLength bounds the agent query body.
const maxQueryLength = 1000

// TodoService defines the todo operations the REST API exposes.
type TodoService interface {
	Create(ctx context.Context, req todo.CreateRequest) (*todo.Todo, error)
	Get(ctx context.Context, id int64) (*todo.Todo, error)
	List(ctx context.Context) ([]todo.Todo, error)
	ListByCompleted(ctx context.Context, completed bool) ([]todo.Todo, error)
	UpdateByID(ctx context.Context, id int64, req todo.UpdateRequest) (*todo.Todo, error)
	DeleteByID(ctx context.Context, id int64) error
}

// AgentRunner processes one natural-language query.
type AgentRunner interface {
	Run(ctx context.Context, query string) (*agent.Result, error)
}

// Server wires HTTP handlers.
type Server struct {
	todos  TodoService
	agent  AgentRunner
	logger *slog.Logger
}

// NewServer creates an HTTP router over the todo service and agent.
func NewServer(todos TodoService, agentRunner AgentRunner, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(RequestLogging(logger))

	srv := &Server{todos: todos, agent: agentRunner, logger: logger}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/todos", func(r chi.Router) {
			r.Post("/", srv.handleCreateTodo)
			r.Get("/", srv.handleListTodos)
			r.Get("/{id}", srv.handleGetTodo)
			r.Put("/{id}", srv.handleUpdateTodo)
			r.Delete("/{id}", srv.handleDeleteTodo)
		})
		r.Post("/agent/query", srv.handleAgentQuery)
	})
	r.Get("/health", srv.handleHealth)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type createTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	priority := todo.PriorityMedium
	if req.Priority != "" {
		parsed, err := todo.ParsePriority(req.Priority)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		priority = parsed
	}

	created, err := s.todos.Create(r.Context(), todo.CreateRequest{
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	var (
		todos []todo.Todo
		err   error
	)

	if completedParam := r.URL.Query().Get("completed"); completedParam != "" {
		completed, parseErr := strconv.ParseBool(completedParam)
		if parseErr != nil {
			writeError(w, http.StatusBadRequest, "invalid completed filter")
			return
		}
		todos, err = s.todos.ListByCompleted(r.Context(), completed)
	} else {
		todos, err = s.todos.List(r.Context())
	}
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if todos == nil {
		todos = []todo.Todo{}
	}

	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) handleGetTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	found, err := s.todos.Get(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, found)
}

type updateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Priority    *string `json:"priority"`
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var priority *todo.Priority
	if req.Priority != nil {
		parsed, err := todo.ParsePriority(*req.Priority)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		priority = &parsed
	}

	updated, err := s.todos.UpdateByID(r.Context(), id, todo.UpdateRequest{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Priority:    priority,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := s.todos.DeleteByID(r.Context(), id); err != nil {
		s.writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type agentQueryRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleAgentQuery(w http.ResponseWriter, r *http.Request) {
	var req agentQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	if len(req.Query) > maxQueryLength {
		writeError(w, http.StatusBadRequest, "query exceeds maximum length")
		return
	}

	result, err := s.agent.Run(r.Context(), req.Query)
	if err != nil {
		// Orchestration faults carry no partial payload and no internals.
		s.logger.Error("agent query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to process query")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid todo id")
		return 0, false
	}
	return id, true
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, todo.ErrTodoNotFound), errors.Is(err, todo.ErrNoMatch):
		writeError(w, http.StatusNotFound, "todo not found")
	case errors.Is(err, todo.ErrDuplicateTitle):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, todo.ErrInvalidInput), errors.Is(err, todo.ErrInvalidPriority):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
