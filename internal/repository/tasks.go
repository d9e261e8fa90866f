// Package repository issues the per-user task CRUD calls. Every operation
// resolves the caller's identity first and touches the network only after
// local preconditions pass.
package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"task-manager/client/internal/identity"
	"task-manager/client/internal/models"
	"task-manager/client/internal/transport"
)

// ValidationError is a local precondition failure raised before any request
// is sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type TaskRepository struct {
	resolver *identity.Resolver
	client   *transport.Client
}

func NewTaskRepository(resolver *identity.Resolver, client *transport.Client) *TaskRepository {
	return &TaskRepository{resolver: resolver, client: client}
}

// ListTasks returns the resolved user's tasks in server order. A non-nil
// completed filters by completion status.
func (r *TaskRepository) ListTasks(ctx context.Context, completed *bool) ([]models.Task, error) {
	userID, err := r.resolver.UserID(ctx)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/%d/tasks", userID)
	if completed != nil {
		path += fmt.Sprintf("?completed=%t", *completed)
	}

	var tasks []models.Task
	if err := r.client.Do(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) GetTask(ctx context.Context, id int64) (models.Task, error) {
	userID, err := r.resolver.UserID(ctx)
	if err != nil {
		return models.Task{}, err
	}

	var task models.Task
	path := fmt.Sprintf("/%d/tasks/%d", userID, id)
	if err := r.client.Do(ctx, http.MethodGet, path, nil, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// CreateTask submits a new task and returns the server-assigned record. The
// title must be non-blank; that check never reaches the network.
func (r *TaskRepository) CreateTask(ctx context.Context, input models.TaskCreate) (models.Task, error) {
	userID, err := r.resolver.UserID(ctx)
	if err != nil {
		return models.Task{}, err
	}

	if strings.TrimSpace(input.Title) == "" {
		return models.Task{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !input.Priority.Valid() {
		return models.Task{}, &ValidationError{Field: "priority", Reason: "must be low, medium or high"}
	}

	var task models.Task
	path := fmt.Sprintf("/%d/tasks", userID)
	if err := r.client.Do(ctx, http.MethodPost, path, input, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// UpdateTask applies a partial edit and returns the updated record.
func (r *TaskRepository) UpdateTask(ctx context.Context, id int64, input models.TaskUpdate) (models.Task, error) {
	userID, err := r.resolver.UserID(ctx)
	if err != nil {
		return models.Task{}, err
	}

	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return models.Task{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if input.Priority != nil && !input.Priority.Valid() {
		return models.Task{}, &ValidationError{Field: "priority", Reason: "must be low, medium or high"}
	}

	var task models.Task
	path := fmt.Sprintf("/%d/tasks/%d", userID, id)
	if err := r.client.Do(ctx, http.MethodPut, path, input, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (r *TaskRepository) DeleteTask(ctx context.Context, id int64) error {
	userID, err := r.resolver.UserID(ctx)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/%d/tasks/%d", userID, id)
	return r.client.Do(ctx, http.MethodDelete, path, nil, nil)
}

// ToggleComplete flips the task's completed flag on the server. The endpoint
// has flip semantics, not set semantics: calling it twice restores the
// original state, so a blind retry after an ambiguous failure can undo a flip
// that actually landed.
func (r *TaskRepository) ToggleComplete(ctx context.Context, id int64) (models.Task, error) {
	userID, err := r.resolver.UserID(ctx)
	if err != nil {
		return models.Task{}, err
	}

	var task models.Task
	path := fmt.Sprintf("/%d/tasks/%d/complete", userID, id)
	if err := r.client.Do(ctx, http.MethodPatch, path, nil, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}
