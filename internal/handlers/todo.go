package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gotodo/apiserver/internal/services"
	"github.com/gotodo/apiserver/internal/store"
	"github.com/gotodo/apiserver/types"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
	maxOffset    = math.MaxInt32
)

// TodoHandler provides HTTP handlers for todo items. Every route is
// behind the auth middleware; the owner is always the authenticated
// caller.
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler constructs a handler with the provided service.
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// TodoRouter registers todo routes on the given router.
func TodoRouter(
	r chi.Router,
	todoService *services.TodoService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewTodoHandler(todoService)

	r.Use(authMiddleware)
	r.Get("/", handler.ListTodos)
	r.Post("/", handler.CreateTodo)
	r.Route("/{todoID}", func(r chi.Router) {
		r.Put("/", handler.UpdateTodo)
		r.Delete("/", handler.DeleteTodo)
	})
}

func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	req, err := parseTodoBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.todoService.Create(r.Context(), user.ID, req.Title, req.Description)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create todo")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseTodoID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, err := parseTodoBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.todoService.Update(r.Context(), id, user.ID, req.Title, req.Description)
	if err != nil {
		// Missing and foreign items are the same outcome so that the
		// existence of other users' items is not leaked.
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update todo")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseTodoID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.todoService.Delete(r.Context(), id, user.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete todo")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "todo deleted"})
}

func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	page, limit, offset := parsePagination(r)

	items, total, err := h.todoService.ListByOwner(r.Context(), user.ID, offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list todos")
		return
	}

	writeJSON(w, http.StatusOK, TodoListResponse{
		Data:  items,
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// TodoUpsertRequest is the JSON payload for create and update.
type TodoUpsertRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TodoListResponse is the paginated list response payload.
type TodoListResponse struct {
	Data  []types.Todo `json:"data"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
	Total int          `json:"total"`
}

// MessageResponse is a simple confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is a simple error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// parsePagination reads page and limit from the query. Absent or
// invalid values fall back to the defaults rather than erroring.
func parsePagination(r *http.Request) (page, limit, offset int) {
	page = defaultPage
	limit = defaultLimit

	if raw := strings.TrimSpace(r.URL.Query().Get("page")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 1 {
			page = parsed
		}
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 1 {
			limit = parsed
		}
	}

	if limit > maxLimit {
		limit = maxLimit
	}

	// The offset computation must not overflow for absurd page values;
	// any page that far out is beyond every real list anyway.
	if page-1 > maxOffset/limit {
		offset = maxOffset
	} else {
		offset = (page - 1) * limit
	}
	return page, limit, offset
}

func parseTodoID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "todoID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid todo id")
	}
	return id, nil
}

func parseTodoBody(r *http.Request) (TodoUpsertRequest, error) {
	var req TodoUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return TodoUpsertRequest{}, errors.New("invalid request")
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" {
		return TodoUpsertRequest{}, errors.New("title is required")
	}
	if req.Description == "" {
		return TodoUpsertRequest{}, errors.New("description is required")
	}
	return req, nil
}
