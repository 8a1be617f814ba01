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

type PlayerStore interface {
	FindByID(ctx context.Context, templateID string, id string) (model.Player, error)
	ListByTemplate(ctx context.Context, templateID string) ([]model.Player, error)
	Create(ctx context.Context, p model.Player) error
	Update(ctx context.Context, p model.Player) error
	Delete(ctx context.Context, templateID string, id string) error
}

type PlayerService struct {
	players PlayerStore
	now     func() time.Time
}

func NewPlayerService(players PlayerStore) *PlayerService {
	return &PlayerService{players: players, now: time.Now}
}

func (s *PlayerService) List(ctx context.Context, templateID string) ([]model.Player, error) {
	return s.players.ListByTemplate(ctx, templateID)
}

func (s *PlayerService) Get(ctx context.Context, templateID string, id string) (model.Player, error) {
	return s.players.FindByID(ctx, templateID, id)
}

func (s *PlayerService) Create(ctx context.Context, templateID string, req model.CreatePlayerRequest) (model.Player, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.Player{}, apierror.New("BAD_REQUEST", "player name is required", "name", http.StatusBadRequest)
	}

	now := s.now().UTC()
	player := model.Player{
		ID:         uuid.NewString(),
		TemplateID: templateID,
		Name:       name,
		Position:   strings.TrimSpace(req.Position),
		Rating:     req.Rating,
		Notes:      req.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.players.Create(ctx, player); err != nil {
		return model.Player{}, err
	}

	return player, nil
}

func (s *PlayerService) Update(ctx context.Context, templateID string, id string, req model.UpdatePlayerRequest) (model.Player, error) {
	player, err := s.players.FindByID(ctx, templateID, id)
	if err != nil {
		return model.Player{}, err
	}

	player.Name = strings.TrimSpace(req.Name)
	player.Position = strings.TrimSpace(req.Position)
	player.Rating = req.Rating
	player.Notes = req.Notes
	if player.Name == "" {
		return model.Player{}, apierror.New("BAD_REQUEST", "player name is required", "name", http.StatusBadRequest)
	}

	if err := s.players.Update(ctx, player); err != nil {
		return model.Player{}, err
	}

	return s.players.FindByID(ctx, templateID, id)
}

func (s *PlayerService) Delete(ctx context.Context, templateID string, id string) error {
	return s.players.Delete(ctx, templateID, id)
}
