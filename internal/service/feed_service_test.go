package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"team-dashboard/internal/model"
)

type fakeMessageStore struct {
	mu       sync.Mutex
	messages map[string]model.Message
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{messages: map[string]model.Message{}}
}

func (s *fakeMessageStore) List(_ context.Context, limit int) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Message, 0, len(s.messages))
	for _, m := range s.messages {
		if len(out) == limit {
			break
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *fakeMessageStore) FindByID(_ context.Context, id string) (model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.messages[id]
	if !ok {
		return model.Message{}, model.ErrMessageNotFound
	}
	return m, nil
}

func (s *fakeMessageStore) Create(_ context.Context, m model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[m.ID] = m
	return nil
}

func (s *fakeMessageStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.messages, id)
	return nil
}

type fakeQuoteStore struct {
	mu     sync.Mutex
	quotes map[string]model.Quote
}

func newFakeQuoteStore() *fakeQuoteStore {
	return &fakeQuoteStore{quotes: map[string]model.Quote{}}
}

func (s *fakeQuoteStore) List(_ context.Context) ([]model.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		out = append(out, q)
	}
	return out, nil
}

func (s *fakeQuoteStore) Create(_ context.Context, q model.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[q.ID] = q
	return nil
}

func (s *fakeQuoteStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.quotes, id)
	return nil
}

type fakeCommendationStore struct {
	mu            sync.Mutex
	commendations []model.Commendation
}

func (s *fakeCommendationStore) List(_ context.Context) ([]model.Commendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Commendation(nil), s.commendations...), nil
}

func (s *fakeCommendationStore) Create(_ context.Context, c model.Commendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commendations = append(s.commendations, c)
	return nil
}

func newTestFeedService(users *fakeUserStore) *FeedService {
	return NewFeedService(newFakeMessageStore(), newFakeQuoteStore(), &fakeCommendationStore{}, users)
}

func TestMessageDeletion(t *testing.T) {
	t.Parallel()

	author := model.AuthUser{ID: "author-1", Role: model.RoleStaff, DisplayName: "Author"}
	other := model.AuthUser{ID: "other-1", Role: model.RoleStaff}
	admin := model.AuthUser{ID: "admin-1", Role: model.RoleAdmin}

	t.Run("author deletes own message", func(t *testing.T) {
		service := newTestFeedService(newFakeUserStore())

		message, err := service.PostMessage(context.Background(), author, "hello")
		require.NoError(t, err)

		require.NoError(t, service.DeleteMessage(context.Background(), author, message.ID))
	})

	t.Run("other staff cannot delete", func(t *testing.T) {
		service := newTestFeedService(newFakeUserStore())

		message, err := service.PostMessage(context.Background(), author, "hello")
		require.NoError(t, err)

		err = service.DeleteMessage(context.Background(), other, message.ID)
		require.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("admin deletes any message", func(t *testing.T) {
		service := newTestFeedService(newFakeUserStore())

		message, err := service.PostMessage(context.Background(), author, "hello")
		require.NoError(t, err)

		require.NoError(t, service.DeleteMessage(context.Background(), admin, message.ID))
	})

	t.Run("blank message body rejected", func(t *testing.T) {
		service := newTestFeedService(newFakeUserStore())

		_, err := service.PostMessage(context.Background(), author, "   ")
		require.Error(t, err)
	})
}

func TestCommendations(t *testing.T) {
	t.Parallel()

	recipient := model.User{ID: "user-to", Username: "to", Role: model.RoleStaff}
	actor := model.AuthUser{ID: "user-from", Role: model.RoleStaff}

	t.Run("records a commendation for an existing recipient", func(t *testing.T) {
		service := newTestFeedService(newFakeUserStore(recipient))

		commendation, err := service.AddCommendation(context.Background(), actor, model.CreateCommendationRequest{
			ToUserID: recipient.ID,
			Reason:   "covered the weekend shift",
		})
		require.NoError(t, err)
		require.Equal(t, actor.ID, commendation.FromUserID)
		require.Equal(t, recipient.ID, commendation.ToUserID)
	})

	t.Run("cannot commend yourself", func(t *testing.T) {
		service := newTestFeedService(newFakeUserStore(recipient))

		_, err := service.AddCommendation(context.Background(), actor, model.CreateCommendationRequest{
			ToUserID: actor.ID,
			Reason:   "great work",
		})
		require.Error(t, err)
	})

	t.Run("unknown recipient rejected", func(t *testing.T) {
		service := newTestFeedService(newFakeUserStore())

		_, err := service.AddCommendation(context.Background(), actor, model.CreateCommendationRequest{
			ToUserID: "missing",
			Reason:   "great work",
		})
		require.ErrorIs(t, err, model.ErrUserNotFound)
	})
}
