package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path"

	"todolist/models"
	"todolist/utils"
)

// TaskStore is the storage boundary the handlers talk to. utils.PGTaskStore
// is the production implementation.
type TaskStore interface {
	List(ctx context.Context) ([]models.Task, error)
	Create(ctx context.Context, title string, completed bool) (models.Task, error)
	Update(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error)
	Delete(ctx context.Context, id string) (models.Task, error)
}

type createTaskRequest struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("Error encoding response:", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Tasks serves the collection endpoint: GET lists, POST creates.
func Tasks(w http.ResponseWriter, r *http.Request, store TaskStore, cache *utils.ListCache) {
	switch r.Method {
	case http.MethodGet:
		listTasks(w, r, store, cache)
	case http.MethodPost:
		createTask(w, r, store, cache)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func listTasks(w http.ResponseWriter, r *http.Request, store TaskStore, cache *utils.ListCache) {
	if tasks, ok := cache.Get(r.Context()); ok {
		writeJSON(w, http.StatusOK, tasks)
		return
	}

	tasks, err := store.List(r.Context())
	if err != nil {
		log.Println("Error listing tasks:", err)
		writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	cache.Set(r.Context(), tasks)
	writeJSON(w, http.StatusOK, tasks)
}

func createTask(w http.ResponseWriter, r *http.Request, store TaskStore, cache *utils.ListCache) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	title, err := utils.ValidateTaskTitle(req.Title)
	if err != nil {
		log.Println("Rejected task title:", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := store.Create(r.Context(), title, req.Completed)
	if err != nil {
		log.Println("Error creating task:", err)
		writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	cache.Invalidate(r.Context())
	writeJSON(w, http.StatusCreated, task)
}

// TaskByID serves the item endpoint: PUT updates, DELETE removes. The id is
// the last path segment.
func TaskByID(w http.ResponseWriter, r *http.Request, store TaskStore, cache *utils.ListCache) {
	id := path.Base(r.URL.Path)
	if id == "" || id == "todos" {
		writeError(w, http.StatusBadRequest, "missing task id")
		return
	}

	switch r.Method {
	case http.MethodPut:
		updateTask(w, r, id, store, cache)
	case http.MethodDelete:
		deleteTask(w, r, id, store, cache)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func updateTask(w http.ResponseWriter, r *http.Request, id string, store TaskStore, cache *utils.ListCache) {
	var patch models.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if patch.Title != nil {
		title, err := utils.ValidateTaskTitle(*patch.Title)
		if err != nil {
			log.Println("Rejected task title:", err)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		patch.Title = &title
	}

	task, err := store.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, utils.ErrTaskNotFound) {
			writeError(w, http.StatusNotFound, "task not found")
			return
		}
		log.Println("Error updating task:", err)
		writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	cache.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, task)
}

func deleteTask(w http.ResponseWriter, r *http.Request, id string, store TaskStore, cache *utils.ListCache) {
	task, err := store.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, utils.ErrTaskNotFound) {
			writeError(w, http.StatusNotFound, "task not found")
			return
		}
		log.Println("Error deleting task:", err)
		writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	cache.Invalidate(r.Context())
	writeJSON(w, http.StatusOK, task)
}
