package models

import "time"

type Task struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Completed bool      `db:"completed" json:"completed"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// TaskPatch carries the mutable fields of a partial update.
// A nil field is left untouched.
type TaskPatch struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}
