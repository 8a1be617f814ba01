package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"team-dashboard/internal/model"
	"team-dashboard/pkg/apierror"
)

type TaskStore interface {
	FindByID(ctx context.Context, templateID string, id string) (model.Task, error)
	ListByTemplate(ctx context.Context, templateID string) ([]model.Task, error)
	Create(ctx context.Context, t model.Task) error
	Update(ctx context.Context, t model.Task) error
	Delete(ctx context.Context, templateID string, id string) error
}

type TaskService struct {
	tasks TaskStore
	now   func() time.Time
}

func NewTaskService(tasks TaskStore) *TaskService {
	return &TaskService{tasks: tasks, now: time.Now}
}

func (s *TaskService) List(ctx context.Context, templateID string) ([]model.Task, error) {
	return s.tasks.ListByTemplate(ctx, templateID)
}

func (s *TaskService) Get(ctx context.Context, templateID string, id string) (model.Task, error) {
	return s.tasks.FindByID(ctx, templateID, id)
}

func (s *TaskService) Create(ctx context.Context, templateID string, req model.CreateTaskRequest) (model.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return model.Task{}, apierror.New("BAD_REQUEST", "task title is required", "title", http.StatusBadRequest)
	}

	status, ok := model.ParseTaskStatus(req.Status)
	if !ok {
		return model.Task{}, apierror.New("BAD_REQUEST", "invalid task status", req.Status, http.StatusBadRequest)
	}

	dueAt, err := parseDueAt(req.DueAt)
	if err != nil {
		return model.Task{}, err
	}

	now := s.now().UTC()
	task := model.Task{
		ID:          uuid.NewString(),
		TemplateID:  templateID,
		Title:       title,
		Description: req.Description,
		Status:      status,
		AssigneeID:  strings.TrimSpace(req.AssigneeID),
		DueAt:       dueAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return model.Task{}, err
	}

	return task, nil
}

func (s *TaskService) Update(ctx context.Context, templateID string, id string, req model.UpdateTaskRequest) (model.Task, error) {
	task, err := s.tasks.FindByID(ctx, templateID, id)
	if err != nil {
		return model.Task{}, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return model.Task{}, apierror.New("BAD_REQUEST", "task title is required", "title", http.StatusBadRequest)
	}

	status, ok := model.ParseTaskStatus(req.Status)
	if !ok {
		return model.Task{}, apierror.New("BAD_REQUEST", "invalid task status", req.Status, http.StatusBadRequest)
	}

	dueAt, err := parseDueAt(req.DueAt)
	if err != nil {
		return model.Task{}, err
	}

	task.Title = title
	task.Description = req.Description
	task.Status = status
	task.AssigneeID = strings.TrimSpace(req.AssigneeID)
	task.DueAt = dueAt

	if err := s.tasks.Update(ctx, task); err != nil {
		return model.Task{}, err
	}

	return s.tasks.FindByID(ctx, templateID, id)
}

func (s *TaskService) Delete(ctx context.Context, templateID string, id string) error {
	return s.tasks.Delete(ctx, templateID, id)
}

func parseDueAt(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, apierror.New("BAD_REQUEST", "due_at must be RFC3339", raw, http.StatusBadRequest)
	}

	utc := parsed.UTC()
	return &utc, nil
}
