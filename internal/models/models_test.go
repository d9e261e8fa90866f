package models_test

import (
	"encoding/json"
	"testing"

	"task-manager/client/internal/models"
)

func TestPriority_Valid(t *testing.T) {
	for _, p := range []models.Priority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh} {
		if !p.Valid() {
			t.Errorf("Expected priority '%s' to be valid", p)
		}
	}

	for _, p := range []models.Priority{"", "urgent", "Medium"} {
		if p.Valid() {
			t.Errorf("Expected priority '%s' to be invalid", p)
		}
	}
}

func TestTaskUpdate_OmitsUnsetFields(t *testing.T) {
	completed := true
	update := models.TaskUpdate{Completed: &completed}

	data, err := json.Marshal(update)
	if err != nil {
		t.Fatalf("Failed to marshal update: %v", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Failed to unmarshal update: %v", err)
	}

	if len(fields) != 1 {
		t.Errorf("Expected exactly one field in payload, got %v", fields)
	}
	if v, ok := fields["completed"].(bool); !ok || !v {
		t.Errorf("Expected completed=true in payload, got %v", fields["completed"])
	}
}

func TestTaskUpdate_EmptyStringsClearServerFields(t *testing.T) {
	title := ""
	update := models.TaskUpdate{Title: &title}

	data, err := json.Marshal(update)
	if err != nil {
		t.Fatalf("Failed to marshal update: %v", err)
	}

	// A set-but-empty pointer must still reach the wire so the server can
	// distinguish "clear" from "leave alone".
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Failed to unmarshal update: %v", err)
	}
	if _, ok := fields["title"]; !ok {
		t.Error("Expected title to be present in payload")
	}
}

func TestTask_RoundTrip(t *testing.T) {
	raw := `{"id":7,"title":"Buy milk","completed":false,"priority":"medium","user_id":42,"version":1,"created_at":"2025-01-02T10:00:00Z","updated_at":"2025-01-02T10:00:00Z"}`

	var task models.Task
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		t.Fatalf("Failed to unmarshal task: %v", err)
	}

	if task.ID != 7 {
		t.Errorf("Expected id 7, got %d", task.ID)
	}
	if task.Title != "Buy milk" {
		t.Errorf("Expected title 'Buy milk', got '%s'", task.Title)
	}
	if task.Priority != models.PriorityMedium {
		t.Errorf("Expected priority 'medium', got '%s'", task.Priority)
	}
	if task.UserID != 42 {
		t.Errorf("Expected user_id 42, got %d", task.UserID)
	}
	if task.Version != 1 {
		t.Errorf("Expected version 1, got %d", task.Version)
	}
}
