package service

import (
	"context"

	"github.com/Dan9191/post-service/internal/models"
)

// PageSize is the fixed number of items per listing page
const PageSize = 25

// UserService exposes the public user directory
type UserService struct {
	users UserStore
}

// NewUserService initializes a new user service
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// ListUsers returns the given 1-indexed page of users. Pages past the end
// are empty.
func (s *UserService) ListUsers(ctx context.Context, page int) ([]models.User, error) {
	offset, ok := pageOffset(page)
	if !ok {
		return []models.User{}, nil
	}
	users, err := s.users.ListUsers(ctx, PageSize, offset)
	if err != nil {
		return nil, storeError(err, "")
	}
	return users, nil
}

// pageOffset converts a 1-indexed page into a row offset. Pages below 1 are
// treated as the first page; ok is false when the offset would overflow.
func pageOffset(page int) (offset int, ok bool) {
	if page < 1 {
		page = 1
	}
	if page-1 > maxOffset/PageSize {
		return 0, false
	}
	return (page - 1) * PageSize, true
}

// maxOffset bounds row offsets so they fit a 32-bit int.
const maxOffset = 1<<31 - 1
