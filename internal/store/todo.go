package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gotodo/apiserver/types"
)

// TodoRepository handles persistence for todo items.
type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, todo types.Todo) (types.Todo, error) {
	now := time.Now()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	const query = `
		INSERT INTO todo_items (title, description, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		todo.Title,
		todo.Description,
		todo.UserID,
		todo.CreatedAt,
		todo.UpdatedAt,
	).Scan(&todo.ID); err != nil {
		return types.Todo{}, err
	}
	return todo, nil
}

// Update overwrites title and description. The ownership check is part
// of the WHERE clause, so a missing item and a foreign item both come
// back as ErrNotFound.
func (r *TodoRepository) Update(ctx context.Context, todo types.Todo) (types.Todo, error) {
	todo.UpdatedAt = time.Now()

	const query = `
		UPDATE todo_items
		SET title = $1,
			description = $2,
			updated_at = $3
		WHERE id = $4 AND user_id = $5
		RETURNING created_at`
	err := r.db.QueryRowContext(
		ctx,
		query,
		todo.Title,
		todo.Description,
		todo.UpdatedAt,
		todo.ID,
		todo.UserID,
	).Scan(&todo.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Todo{}, ErrNotFound
		}
		return types.Todo{}, err
	}
	return todo, nil
}

func (r *TodoRepository) Delete(ctx context.Context, id, ownerID int) error {
	const query = `DELETE FROM todo_items WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByOwner returns one page of the owner's items in ascending id
// order, plus the total count across all pages. A page past the end
// yields an empty slice, not an error.
func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID, offset, limit int) ([]types.Todo, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 10
	}

	const countQuery = `SELECT COUNT(1) FROM todo_items WHERE user_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const listQuery = `
		SELECT id, title, description, user_id, created_at, updated_at
		FROM todo_items
		WHERE user_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3`
	rows, err := r.db.QueryContext(ctx, listQuery, ownerID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	todos := make([]types.Todo, 0, limit)
	for rows.Next() {
		var todo types.Todo
		if err := rows.Scan(
			&todo.ID,
			&todo.Title,
			&todo.Description,
			&todo.UserID,
			&todo.CreatedAt,
			&todo.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return todos, total, nil
}
