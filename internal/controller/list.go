// Package controller owns the in-memory task collection shown to the caller.
// Commits are pessimistic: the collection changes only after the server has
// confirmed an operation, and a failed operation leaves it exactly as it was.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"task-manager/client/internal/models"
	"task-manager/client/internal/transport"
)

// ErrOperationPending rejects a mutation for a task that already has one in
// flight. Toggling flips rather than sets, so overlapping submissions for the
// same task could otherwise cancel each other out.
var ErrOperationPending = errors.New("an operation for this task is already in flight")

// TaskRepository is the slice of the repository the controller needs.
type TaskRepository interface {
	ListTasks(ctx context.Context, completed *bool) ([]models.Task, error)
	CreateTask(ctx context.Context, input models.TaskCreate) (models.Task, error)
	UpdateTask(ctx context.Context, id int64, input models.TaskUpdate) (models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	ToggleComplete(ctx context.Context, id int64) (models.Task, error)
}

type ListController struct {
	repo TaskRepository
	log  *logrus.Logger

	mu      sync.Mutex
	tasks   []models.Task
	pending map[int64]string
}

func NewListController(repo TaskRepository, log *logrus.Logger) *ListController {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}
	return &ListController{
		repo:    repo,
		log:     log,
		pending: make(map[int64]string),
	}
}

// Tasks returns a snapshot of the collection in server arrival order.
func (l *ListController) Tasks() []models.Task {
	l.mu.Lock()
	defer l.mu.Unlock()
	snapshot := make([]models.Task, len(l.tasks))
	copy(snapshot, l.tasks)
	return snapshot
}

// Refresh replaces the collection with the server's current list.
func (l *ListController) Refresh(ctx context.Context) error {
	tasks, err := l.repo.ListTasks(ctx, nil)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.tasks = tasks
	l.mu.Unlock()
	return nil
}

// Add creates a task and appends the confirmed record. Nothing is inserted
// speculatively: on failure the collection is untouched.
func (l *ListController) Add(ctx context.Context, input models.TaskCreate) (models.Task, error) {
	task, err := l.repo.CreateTask(ctx, input)
	if err != nil {
		return models.Task{}, err
	}

	l.mu.Lock()
	l.tasks = append(l.tasks, task)
	l.mu.Unlock()

	l.log.WithFields(logrus.Fields{"task_id": task.ID, "title": task.Title}).Info("task created")
	return task, nil
}

// Edit applies a partial update and swaps in the server-returned record for
// the matching entry.
func (l *ListController) Edit(ctx context.Context, id int64, input models.TaskUpdate) (models.Task, error) {
	if err := l.begin(id, "edit"); err != nil {
		return models.Task{}, err
	}
	defer l.end(id)

	task, err := l.repo.UpdateTask(ctx, id, input)
	if err != nil {
		return models.Task{}, err
	}

	l.replace(task)
	return task, nil
}

// Toggle flips a task's completion. A second toggle for the same id while one
// is outstanding is rejected rather than queued: replaying a flip is not safe.
func (l *ListController) Toggle(ctx context.Context, id int64) (models.Task, error) {
	if err := l.begin(id, "toggle"); err != nil {
		return models.Task{}, err
	}
	defer l.end(id)

	task, err := l.repo.ToggleComplete(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	l.replace(task)
	return task, nil
}

// Remove deletes a task and drops exactly the matching entry.
func (l *ListController) Remove(ctx context.Context, id int64) error {
	if err := l.begin(id, "remove"); err != nil {
		return err
	}
	defer l.end(id)

	if err := l.repo.DeleteTask(ctx, id); err != nil {
		return err
	}

	l.mu.Lock()
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
			break
		}
	}
	l.mu.Unlock()

	l.log.WithField("task_id", id).Info("task deleted")
	return nil
}

func (l *ListController) begin(id int64, op string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if prev, busy := l.pending[id]; busy {
		l.log.WithFields(logrus.Fields{"task_id": id, "pending": prev, "rejected": op}).
			Warn("rejected overlapping task operation")
		return fmt.Errorf("%s for task %d: %w", op, id, ErrOperationPending)
	}
	l.pending[id] = op
	return nil
}

func (l *ListController) end(id int64) {
	l.mu.Lock()
	delete(l.pending, id)
	l.mu.Unlock()
}

func (l *ListController) replace(task models.Task) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.tasks {
		if l.tasks[i].ID == task.ID {
			l.tasks[i] = task
			return
		}
	}
}

// UserMessage derives the text shown to the caller for a failed operation:
// the structured payload's message if the server sent one, then the error's
// own text, then the fixed fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *transport.APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.Message(); msg != "" {
			return msg
		}
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
