package model

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskOpen       TaskStatus = "open"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

func ParseTaskStatus(raw string) (TaskStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "open":
		return TaskOpen, true
	case "in_progress":
		return TaskInProgress, true
	case "done":
		return TaskDone, true
	default:
		return "", false
	}
}

type Task struct {
	ID          string     `json:"id"`
	TemplateID  string     `json:"template_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	AssigneeID  string     `json:"assignee_id,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type TaskList struct {
	Tasks []Task `json:"tasks"`
}
