package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/me/taskplan/pkg/model"
)

// Client is an HTTP client for the taskplan API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewClient creates a taskplan API client.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Logger:     logger,
	}
}

// envelope is the parsed response wrapper shared by all endpoints.
type envelope struct {
	Status    string          `json:"status"`
	RequestID string          `json:"request_id"`
	Data      json.RawMessage `json:"data"`
	Error     *model.APIError `json:"error"`
}

// call performs a request and decodes the envelope's data into out (when
// non-nil). API-level failures come back as *model.APIError.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.Logger.Debug("HTTP request", "method", method, "path", path)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	c.Logger.Debug("HTTP response", "status", resp.StatusCode, "bytes", len(raw))

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("parse response (status %d): %w", resp.StatusCode, err)
	}
	if env.Status == "error" && env.Error != nil {
		return env.Error
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// ListTasks returns all tasks by priority, then deadline.
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := c.call(ctx, http.MethodGet, "/api/v1/tasks/", nil, &tasks)
	return tasks, err
}

// AddTask stores or replaces a task.
func (c *Client) AddTask(ctx context.Context, req model.AddTaskRequest) (model.Task, error) {
	var task model.Task
	err := c.call(ctx, http.MethodPost, "/api/v1/tasks/", req, &task)
	return task, err
}

// DeleteTask removes a task; unknown names succeed.
func (c *Client) DeleteTask(ctx context.Context, name string) error {
	return c.call(ctx, http.MethodDelete, "/api/v1/tasks/"+url.PathEscape(name), nil, nil)
}

// Order returns the dependency order of all tasks.
func (c *Client) Order(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := c.call(ctx, http.MethodGet, "/api/v1/order", nil, &tasks)
	return tasks, err
}

// Plan computes the schedule on the server.
func (c *Client) Plan(ctx context.Context) (model.Plan, error) {
	var plan model.Plan
	err := c.call(ctx, http.MethodGet, "/api/v1/schedule", nil, &plan)
	return plan, err
}
