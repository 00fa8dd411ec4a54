package service

import (
	"context"
	"sort"
	"sync"

	"github.com/inkpost/inkpost-go/internal/model"
	"github.com/inkpost/inkpost-go/internal/repository"
)

// In-memory stores standing in for the MySQL repositories. They honor
// the same sentinel errors and the same update semantics (author_id is
// never written back).

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]model.User // keyed by username
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]model.User)}
}

func (s *fakeUserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return repository.ErrDuplicateUsername
	}
	s.users[user.Username] = *user
	return nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type fakePostStore struct {
	mu    sync.Mutex
	posts map[string]model.Post
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: make(map[string]model.Post)}
}

func (s *fakePostStore) Create(_ context.Context, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts[post.ID] = *post
	return nil
}

func (s *fakePostStore) GetByID(_ context.Context, id string) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	return &p, nil
}

func (s *fakePostStore) Update(_ context.Context, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.posts[post.ID]
	if !ok {
		return nil // same as SQL: zero rows affected, no error
	}

	existing.Title = post.Title
	existing.Summary = post.Summary
	existing.Content = post.Content
	existing.Cover = post.Cover
	existing.UpdatedAt = post.UpdatedAt
	s.posts[post.ID] = existing
	return nil
}

func (s *fakePostStore) ListRecent(_ context.Context, limit int) ([]model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// get returns the raw stored post for assertions.
func (s *fakePostStore) get(id string) (model.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	return p, ok
}

// put seeds a post directly, bypassing the service.
func (s *fakePostStore) put(p model.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts[p.ID] = p
}
