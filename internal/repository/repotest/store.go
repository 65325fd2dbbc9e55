// Package repotest provides an in-memory store with the same method set and
// error semantics as repository.Repository, for use in tests.
package repotest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Dan9191/post-service/internal/models"
	"github.com/Dan9191/post-service/internal/repository"
)

// Store keeps users and posts in memory. Insertion order is preserved so
// listings are deterministic.
type Store struct {
	mu     sync.Mutex
	nextID int64
	users  []models.User
	posts  []models.Post
	now    func() time.Time

	// Err, when set, is returned by every call.
	Err error
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{now: time.Now}
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, u := range s.users {
		if u.PhoneNumber == user.PhoneNumber {
			return fmt.Errorf("failed to create user: %w", repository.ErrDuplicate)
		}
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = s.now()
	s.users = append(s.users, *user)
	return nil
}

func (s *Store) FindUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.PhoneNumber == phone {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("failed to find user: %w", repository.ErrNoRecord)
}

func (s *Store) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("failed to find user: %w", repository.ErrNoRecord)
}

func (s *Store) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]models.User, 0, limit)
	for _, i := range window(len(s.users), limit, offset) {
		u := s.users[i]
		u.PasswordHash = ""
		out = append(out, u)
	}
	return out, nil
}

func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, p := range s.posts {
		if p.ID == post.ID {
			return fmt.Errorf("failed to create post: %w", repository.ErrDuplicate)
		}
	}
	post.CreatedAt = s.now()
	post.UpdatedAt = post.CreatedAt
	s.posts = append(s.posts, *post)
	return nil
}

func (s *Store) FindPost(ctx context.Context, id string, ownerID int64) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if i := s.postIndex(id, ownerID); i >= 0 {
		p := s.posts[i]
		return &p, nil
	}
	return nil, fmt.Errorf("failed to find post: %w", repository.ErrNoRecord)
}

func (s *Store) ListPostsByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var owned []models.Post
	for _, p := range s.posts {
		if p.UserID == ownerID {
			owned = append(owned, p)
		}
	}
	out := make([]models.Post, 0, limit)
	for _, i := range window(len(owned), limit, offset) {
		out = append(out, owned[i])
	}
	return out, nil
}

func (s *Store) UpdatePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	i := s.postIndex(post.ID, post.UserID)
	if i < 0 {
		return fmt.Errorf("failed to update post: %w", repository.ErrNoRecord)
	}
	s.posts[i].Title = post.Title
	s.posts[i].Description = post.Description
	s.posts[i].UpdatedAt = s.now()
	post.CreatedAt = s.posts[i].CreatedAt
	post.UpdatedAt = s.posts[i].UpdatedAt
	return nil
}

func (s *Store) DeletePost(ctx context.Context, id string, ownerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	i := s.postIndex(id, ownerID)
	if i < 0 {
		return fmt.Errorf("failed to delete post: %w", repository.ErrNoRecord)
	}
	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	return nil
}

func (s *Store) postIndex(id string, ownerID int64) int {
	for i, p := range s.posts {
		if p.ID == id && p.UserID == ownerID {
			return i
		}
	}
	return -1
}

// window returns the indexes of [offset, offset+limit) clipped to n
func window(n, limit, offset int) []int {
	if offset >= n || limit <= 0 {
		return nil
	}
	end := offset + limit
	if end > n {
		end = n
	}
	idx := make([]int, 0, end-offset)
	for i := offset; i < end; i++ {
		idx = append(idx, i)
	}
	return idx
}
