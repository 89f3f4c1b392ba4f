package types

import "time"

// Todo represents a single task owned by a user.
// The owner is set at creation and never changes.
type Todo struct {
	// ID is the unique identifier of the todo item.
	ID int `json:"id" db:"id"`

	// Title is the short name of the task.
	Title string `json:"title" db:"title"`

	// Description is the free-form body of the task.
	Description string `json:"description" db:"description"`

	// UserID is the identifier of the owning user. It is not part of
	// API responses; callers only ever see their own items.
	UserID int `json:"-" db:"user_id"`

	// CreatedAt is the timestamp at which the item was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the item.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
