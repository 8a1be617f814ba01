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

type MessageStore interface {
	List(ctx context.Context, limit int) ([]model.Message, error)
	FindByID(ctx context.Context, id string) (model.Message, error)
	Create(ctx context.Context, m model.Message) error
	Delete(ctx context.Context, id string) error
}

type QuoteStore interface {
	List(ctx context.Context) ([]model.Quote, error)
	Create(ctx context.Context, q model.Quote) error
	Delete(ctx context.Context, id string) error
}

type CommendationStore interface {
	List(ctx context.Context) ([]model.Commendation, error)
	Create(ctx context.Context, c model.Commendation) error
}

// FeedService covers the collaboration feeds: chat messages, the quote board
// and commendations.
type FeedService struct {
	messages      MessageStore
	quotes        QuoteStore
	commendations CommendationStore
	users         UserStore
	now           func() time.Time
}

func NewFeedService(messages MessageStore, quotes QuoteStore, commendations CommendationStore, users UserStore) *FeedService {
	return &FeedService{
		messages:      messages,
		quotes:        quotes,
		commendations: commendations,
		users:         users,
		now:           time.Now,
	}
}

func (s *FeedService) ListMessages(ctx context.Context, limit int) ([]model.Message, error) {
	return s.messages.List(ctx, limit)
}

func (s *FeedService) PostMessage(ctx context.Context, author model.AuthUser, body string) (model.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return model.Message{}, apierror.New("BAD_REQUEST", "message body is required", "body", http.StatusBadRequest)
	}

	message := model.Message{
		ID:         uuid.NewString(),
		AuthorID:   author.ID,
		AuthorName: author.DisplayName,
		Body:       body,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.messages.Create(ctx, message); err != nil {
		return model.Message{}, err
	}

	return message, nil
}

// DeleteMessage lets authors remove their own messages; admins may remove any.
func (s *FeedService) DeleteMessage(ctx context.Context, actor model.AuthUser, id string) error {
	message, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if message.AuthorID != actor.ID && actor.Role != model.RoleAdmin {
		return model.ErrForbidden
	}

	return s.messages.Delete(ctx, id)
}

func (s *FeedService) ListQuotes(ctx context.Context) ([]model.Quote, error) {
	return s.quotes.List(ctx)
}

func (s *FeedService) AddQuote(ctx context.Context, actor model.AuthUser, req model.CreateQuoteRequest) (model.Quote, error) {
	saidBy := strings.TrimSpace(req.SaidBy)
	body := strings.TrimSpace(req.Body)
	if saidBy == "" || body == "" {
		return model.Quote{}, apierror.New("BAD_REQUEST", "said_by and body are required", "", http.StatusBadRequest)
	}

	quote := model.Quote{
		ID:        uuid.NewString(),
		SaidBy:    saidBy,
		Body:      body,
		AddedByID: actor.ID,
		CreatedAt: s.now().UTC(),
	}

	if err := s.quotes.Create(ctx, quote); err != nil {
		return model.Quote{}, err
	}

	return quote, nil
}

func (s *FeedService) DeleteQuote(ctx context.Context, id string) error {
	return s.quotes.Delete(ctx, id)
}

func (s *FeedService) ListCommendations(ctx context.Context) ([]model.Commendation, error) {
	return s.commendations.List(ctx)
}

func (s *FeedService) AddCommendation(ctx context.Context, actor model.AuthUser, req model.CreateCommendationRequest) (model.Commendation, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return model.Commendation{}, apierror.New("BAD_REQUEST", "reason is required", "reason", http.StatusBadRequest)
	}
	if req.ToUserID == actor.ID {
		return model.Commendation{}, apierror.New("BAD_REQUEST", "cannot commend yourself", "to_user_id", http.StatusBadRequest)
	}

	// The recipient must be a real staff member.
	if _, err := s.users.FindByID(ctx, req.ToUserID); err != nil {
		return model.Commendation{}, err
	}

	commendation := model.Commendation{
		ID:         uuid.NewString(),
		FromUserID: actor.ID,
		ToUserID:   req.ToUserID,
		Reason:     reason,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.commendations.Create(ctx, commendation); err != nil {
		return model.Commendation{}, err
	}

	return commendation, nil
}
