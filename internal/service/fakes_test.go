package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"team-dashboard/internal/model"
)

// fakeUserStore is the in-memory stand-in for the pgx-backed repository so
// service tests run without a database.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]model.User

	findByIDErr error
}

func newFakeUserStore(users ...model.User) *fakeUserStore {
	store := &fakeUserStore{users: map[string]model.User{}}
	for _, user := range users {
		store.users[user.ID] = user
	}
	return store
}

func (s *fakeUserStore) FindByID(_ context.Context, id string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findByIDErr != nil {
		return model.User{}, s.findByIDErr
	}

	user, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Username, username) {
			return user, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (s *fakeUserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := s.FindByUsername(ctx, username)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (s *fakeUserStore) Create(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return nil
}

func (s *fakeUserStore) UpdateRole(_ context.Context, id string, role model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	user.Role = role
	s.users[id] = user
	return nil
}

func (s *fakeUserStore) SetSuspended(_ context.Context, id string, suspended bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	user.Suspended = suspended
	s.users[id] = user
	return nil
}

func (s *fakeUserStore) List(_ context.Context) ([]model.AuthUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.AuthUser, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, user.Public())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (s *fakeUserStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users), nil
}

type fakeTemplateStore struct {
	mu        sync.Mutex
	templates map[string]model.Template
	members   map[string]map[string]struct{}

	findByIDErr error
	isMemberErr error
}

func newFakeTemplateStore(templates ...model.Template) *fakeTemplateStore {
	store := &fakeTemplateStore{
		templates: map[string]model.Template{},
		members:   map[string]map[string]struct{}{},
	}
	for _, template := range templates {
		store.templates[template.ID] = template
		store.members[template.ID] = map[string]struct{}{}
	}
	return store
}

func (s *fakeTemplateStore) FindByID(_ context.Context, id string) (model.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findByIDErr != nil {
		return model.Template{}, s.findByIDErr
	}

	template, ok := s.templates[id]
	if !ok {
		return model.Template{}, model.ErrTemplateNotFound
	}
	return template, nil
}

func (s *fakeTemplateStore) List(_ context.Context) ([]model.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Template, 0, len(s.templates))
	for _, template := range s.templates {
		out = append(out, template)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *fakeTemplateStore) ListVisible(ctx context.Context, userID string) ([]model.Template, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Template, 0, len(all))
	for _, template := range all {
		if template.Open {
			out = append(out, template)
			continue
		}
		if _, ok := s.members[template.ID][userID]; ok {
			out = append(out, template)
		}
	}
	return out, nil
}

func (s *fakeTemplateStore) Create(_ context.Context, t model.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[t.ID] = t
	s.members[t.ID] = map[string]struct{}{}
	return nil
}

func (s *fakeTemplateStore) Update(_ context.Context, t model.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[t.ID]; !ok {
		return model.ErrTemplateNotFound
	}
	s.templates[t.ID] = t
	return nil
}

func (s *fakeTemplateStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[id]; !ok {
		return model.ErrTemplateNotFound
	}
	delete(s.templates, id)
	delete(s.members, id)
	return nil
}

func (s *fakeTemplateStore) IsMember(_ context.Context, templateID string, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isMemberErr != nil {
		return false, s.isMemberErr
	}

	_, ok := s.members[templateID][userID]
	return ok, nil
}

func (s *fakeTemplateStore) AddMember(_ context.Context, templateID string, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.members[templateID] == nil {
		s.members[templateID] = map[string]struct{}{}
	}
	s.members[templateID][userID] = struct{}{}
	return nil
}

func (s *fakeTemplateStore) RemoveMember(_ context.Context, templateID string, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members[templateID], userID)
	return nil
}

func (s *fakeTemplateStore) ListMembers(_ context.Context, templateID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.members[templateID]))
	for id := range s.members[templateID] {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
