package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"team-dashboard/internal/model"
	"team-dashboard/pkg/apierror"
)

type TemplateStore interface {
	FindByID(ctx context.Context, id string) (model.Template, error)
	List(ctx context.Context) ([]model.Template, error)
	ListVisible(ctx context.Context, userID string) ([]model.Template, error)
	Create(ctx context.Context, t model.Template) error
	Update(ctx context.Context, t model.Template) error
	Delete(ctx context.Context, id string) error
	IsMember(ctx context.Context, templateID string, userID string) (bool, error)
	AddMember(ctx context.Context, templateID string, userID string) error
	RemoveMember(ctx context.Context, templateID string, userID string) error
	ListMembers(ctx context.Context, templateID string) ([]string, error)
}

type TemplateService struct {
	templates TemplateStore
	now       func() time.Time
}

func NewTemplateService(templates TemplateStore) *TemplateService {
	return &TemplateService{templates: templates, now: time.Now}
}

// HasAccess decides whether userID may enter the template's work-area. An
// unknown template surfaces as model.ErrTemplateNotFound so callers can route
// it to the not-found flow instead of the access-denied one.
func (s *TemplateService) HasAccess(ctx context.Context, templateID string, userID string) (bool, error) {
	template, err := s.templates.FindByID(ctx, templateID)
	if err != nil {
		return false, err
	}

	if template.Open {
		return true, nil
	}

	return s.templates.IsMember(ctx, templateID, userID)
}

func (s *TemplateService) Get(ctx context.Context, templateID string) (model.Template, error) {
	return s.templates.FindByID(ctx, templateID)
}

// ListVisible returns the templates the user may enter; admins listing for
// management purposes use ListAll instead.
func (s *TemplateService) ListVisible(ctx context.Context, userID string) ([]model.Template, error) {
	return s.templates.ListVisible(ctx, userID)
}

func (s *TemplateService) ListAll(ctx context.Context) ([]model.Template, error) {
	return s.templates.List(ctx)
}

func (s *TemplateService) Create(ctx context.Context, req model.CreateTemplateRequest) (model.Template, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.Template{}, apierror.New("BAD_REQUEST", "template name is required", "name", http.StatusBadRequest)
	}

	now := s.now().UTC()
	template := model.Template{
		ID:        uuid.NewString(),
		Name:      name,
		Open:      req.Open,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.templates.Create(ctx, template); err != nil {
		return model.Template{}, err
	}

	return template, nil
}

func (s *TemplateService) Update(ctx context.Context, templateID string, req model.UpdateTemplateRequest) (model.Template, error) {
	template, err := s.templates.FindByID(ctx, templateID)
	if err != nil {
		return model.Template{}, err
	}

	template.Name = strings.TrimSpace(req.Name)
	template.Open = req.Open
	if template.Name == "" {
		return model.Template{}, apierror.New("BAD_REQUEST", "template name is required", "name", http.StatusBadRequest)
	}

	if err := s.templates.Update(ctx, template); err != nil {
		return model.Template{}, err
	}

	return s.templates.FindByID(ctx, templateID)
}

func (s *TemplateService) Delete(ctx context.Context, templateID string) error {
	return s.templates.Delete(ctx, templateID)
}

func (s *TemplateService) AddMember(ctx context.Context, templateID string, userID string) error {
	if _, err := s.templates.FindByID(ctx, templateID); err != nil {
		return err
	}
	return s.templates.AddMember(ctx, templateID, userID)
}

func (s *TemplateService) RemoveMember(ctx context.Context, templateID string, userID string) error {
	if _, err := s.templates.FindByID(ctx, templateID); err != nil {
		return err
	}
	return s.templates.RemoveMember(ctx, templateID, userID)
}

func (s *TemplateService) Members(ctx context.Context, templateID string) (model.TemplateMembers, error) {
	if _, err := s.templates.FindByID(ctx, templateID); err != nil {
		return model.TemplateMembers{}, err
	}

	ids, err := s.templates.ListMembers(ctx, templateID)
	if err != nil {
		return model.TemplateMembers{}, fmt.Errorf("list members: %w", err)
	}

	return model.TemplateMembers{TemplateID: templateID, UserIDs: ids}, nil
}
