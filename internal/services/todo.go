package services

import (
	"context"

	"github.com/gotodo/apiserver/types"
)

// TodoRepository defines persistence operations for todo items.
// Update and Delete enforce ownership: a missing item and an item owned
// by somebody else both surface as store.ErrNotFound.
type TodoRepository interface {
	Create(ctx context.Context, todo types.Todo) (types.Todo, error)
	Update(ctx context.Context, todo types.Todo) (types.Todo, error)
	Delete(ctx context.Context, id, ownerID int) error
	ListByOwner(ctx context.Context, ownerID, offset, limit int) ([]types.Todo, int, error)
}

// TodoService encapsulates todo use-cases.
type TodoService struct {
	repo TodoRepository
}

func NewTodoService(repo TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

func (s *TodoService) Create(ctx context.Context, ownerID int, title, description string) (types.Todo, error) {
	return s.repo.Create(ctx, types.Todo{
		Title:       title,
		Description: description,
		UserID:      ownerID,
	})
}

func (s *TodoService) Update(ctx context.Context, id, ownerID int, title, description string) (types.Todo, error) {
	return s.repo.Update(ctx, types.Todo{
		ID:          id,
		UserID:      ownerID,
		Title:       title,
		Description: description,
	})
}

func (s *TodoService) Delete(ctx context.Context, id, ownerID int) error {
	return s.repo.Delete(ctx, id, ownerID)
}

func (s *TodoService) ListByOwner(ctx context.Context, ownerID, offset, limit int) ([]types.Todo, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.ListByOwner(ctx, ownerID, offset, limit)
}
