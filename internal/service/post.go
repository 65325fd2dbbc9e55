package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/post-service/internal/models"
)

// PostStore persists posts. Every lookup and mutation is scoped to an owner.
type PostStore interface {
	CreatePost(ctx context.Context, post *models.Post) error
	FindPost(ctx context.Context, id string, ownerID int64) (*models.Post, error)
	ListPostsByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id string, ownerID int64) error
}

const postNotFound = "Post not found"

// PostService handles post CRUD on behalf of an authenticated user
type PostService struct {
	posts PostStore
	log   *logrus.Logger
	newID func() string
}

// NewPostService initializes a new post service
func NewPostService(posts PostStore, log *logrus.Logger) *PostService {
	return &PostService{posts: posts, log: log, newID: uuid.NewString}
}

// CreatePost creates a post owned by the acting user
func (s *PostService) CreatePost(ctx context.Context, owner *models.User, title, description string) (*models.Post, error) {
	if strings.TrimSpace(title) == "" {
		return nil, validationError("Title is required")
	}

	post := &models.Post{
		ID:          s.newID(),
		Title:       title,
		Description: description,
		UserID:      owner.ID,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, storeError(err, "")
	}

	s.log.Infof("Post created for user %d: %s", owner.ID, post.ID)
	return post, nil
}

// ListPosts returns the given 1-indexed page of the acting user's posts
func (s *PostService) ListPosts(ctx context.Context, owner *models.User, page int) ([]models.Post, error) {
	offset, ok := pageOffset(page)
	if !ok {
		return []models.Post{}, nil
	}
	posts, err := s.posts.ListPostsByOwner(ctx, owner.ID, PageSize, offset)
	if err != nil {
		return nil, storeError(err, "")
	}
	return posts, nil
}

// GetPost returns a post of the acting user. Posts of other users are
// reported exactly like missing ones.
func (s *PostService) GetPost(ctx context.Context, owner *models.User, id string) (*models.Post, error) {
	post, err := s.posts.FindPost(ctx, id, owner.ID)
	if err != nil {
		return nil, storeError(err, postNotFound)
	}
	return post, nil
}

// UpdatePost replaces title and description of a post of the acting user
func (s *PostService) UpdatePost(ctx context.Context, owner *models.User, id, title, description string) (*models.Post, error) {
	if strings.TrimSpace(title) == "" {
		return nil, validationError("Title is required")
	}

	post := &models.Post{
		ID:          id,
		Title:       title,
		Description: description,
		UserID:      owner.ID,
	}
	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, storeError(err, postNotFound)
	}

	s.log.Infof("Post updated for user %d: %s", owner.ID, post.ID)
	return post, nil
}

// DeletePost removes a post of the acting user
func (s *PostService) DeletePost(ctx context.Context, owner *models.User, id string) error {
	if err := s.posts.DeletePost(ctx, id, owner.ID); err != nil {
		return storeError(err, postNotFound)
	}

	s.log.Infof("Post deleted for user %d: %s", owner.ID, id)
	return nil
}
