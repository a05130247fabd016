package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"todolist/models"
)

// ErrTaskNotFound is returned when an id matches no stored task. A repeated
// delete of the same id gets the same answer.
var ErrTaskNotFound = errors.New("task not found")

const storeTimeout = 10 * time.Second

// PGTaskStore holds the task collection in Postgres. Ids are assigned here,
// at insert time; created_at comes from the database clock.
type PGTaskStore struct {
	DB *pgxpool.Pool
}

func NewPGTaskStore(db *pgxpool.Pool) *PGTaskStore {
	return &PGTaskStore{DB: db}
}

func (s *PGTaskStore) List(ctx context.Context) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	stmt := "SELECT id, title, completed, created_at FROM tasks ORDER BY created_at, id"
	rows, err := s.DB.Query(ctx, stmt)
	if err != nil {
		log.Println("Error querying tasks:", err)
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t := models.Task{}
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed, &t.CreatedAt); err != nil {
			log.Println("Error scanning task row:", err)
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		log.Println("Error after scanning all rows:", err)
		return nil, fmt.Errorf("reading task rows: %w", err)
	}
	return tasks, nil
}

func (s *PGTaskStore) Create(ctx context.Context, title string, completed bool) (models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	t := models.Task{ID: uuid.New().String(), Title: title, Completed: completed}
	stmt := "INSERT INTO tasks (id, title, completed) VALUES ($1, $2, $3) RETURNING created_at"
	if err := s.DB.QueryRow(ctx, stmt, t.ID, t.Title, t.Completed).Scan(&t.CreatedAt); err != nil {
		log.Println("Error inserting task:", err)
		return models.Task{}, fmt.Errorf("inserting task: %w", err)
	}
	return t, nil
}

func (s *PGTaskStore) Update(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	stmt := `UPDATE tasks
		SET title = COALESCE($2, title), completed = COALESCE($3, completed)
		WHERE id = $1
		RETURNING id, title, completed, created_at`

	t := models.Task{}
	err := s.DB.QueryRow(ctx, stmt, id, patch.Title, patch.Completed).
		Scan(&t.ID, &t.Title, &t.Completed, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Task{}, ErrTaskNotFound
		}
		log.Println("Error updating task:", err)
		return models.Task{}, fmt.Errorf("updating task: %w", err)
	}
	return t, nil
}

func (s *PGTaskStore) Delete(ctx context.Context, id string) (models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	stmt := "DELETE FROM tasks WHERE id = $1 RETURNING id, title, completed, created_at"
	t := models.Task{}
	err := s.DB.QueryRow(ctx, stmt, id).Scan(&t.ID, &t.Title, &t.Completed, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Task{}, ErrTaskNotFound
		}
		log.Println("Failed to delete task:", err)
		return models.Task{}, fmt.Errorf("deleting task: %w", err)
	}
	return t, nil
}
