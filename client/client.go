package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"todolist/models"
)

// Gateway is what the controller needs from the server. APIClient is the
// real implementation; tests substitute a fake.
type Gateway interface {
	List(ctx context.Context) ([]models.Task, error)
	Create(ctx context.Context, title string) (models.Task, error)
	Update(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error)
	Delete(ctx context.Context, id string) (models.Task, error)
}

// APIClient talks JSON to the task API.
type APIClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
	}
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
			return fmt.Errorf("server: %s", e.Error)
		}
		return fmt.Errorf("server: unexpected status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *APIClient) List(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *APIClient) Create(ctx context.Context, title string) (models.Task, error) {
	var t models.Task
	body := map[string]any{"title": title}
	if err := c.do(ctx, http.MethodPost, "/api/todos", body, &t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

func (c *APIClient) Update(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	var t models.Task
	if err := c.do(ctx, http.MethodPut, "/api/todos/"+id, patch, &t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

func (c *APIClient) Delete(ctx context.Context, id string) (models.Task, error) {
	var t models.Task
	if err := c.do(ctx, http.MethodDelete, "/api/todos/"+id, nil, &t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}
