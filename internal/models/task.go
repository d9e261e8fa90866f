package models

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is the server-owned record. ID, UserID, Version and the timestamps are
// assigned by the server and never written by this client.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	DueDate     string    `json:"due_date,omitempty"` // YYYY-MM-DD
	DueTime     string    `json:"due_time,omitempty"` // HH:MM
	Priority    Priority  `json:"priority"`
	Tags        string    `json:"tags,omitempty"` // serialized label list, server-encoded
	UserID      int64     `json:"user_id"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TaskCreate struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	DueTime     string   `json:"due_time,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// TaskUpdate carries a partial edit. Nil fields are omitted from the request
// body and left untouched by the server.
type TaskUpdate struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"`
	DueTime     *string   `json:"due_time,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
}
