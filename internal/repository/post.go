package repository

import (
	"context"

	"github.com/Dan9191/post-service/internal/models"
)

// CreatePost inserts a post. ID and UserID must already be set.
func (r *Repository) CreatePost(ctx context.Context, post *models.Post) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO posts (id, title, description, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, post.ID, post.Title, post.Description, post.UserID).
		Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return classify(ctx, "failed to create post", err)
	}
	return nil
}

// FindPost retrieves a post by id, scoped to its owner.
// A post owned by someone else is reported as ErrNoRecord.
func (r *Repository) FindPost(ctx context.Context, id string, ownerID int64) (*models.Post, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	post := &models.Post{}
	query := `
		SELECT id, title, description, user_id, created_at, updated_at
		FROM posts
		WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, id, ownerID).
		Scan(&post.ID, &post.Title, &post.Description, &post.UserID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, classify(ctx, "failed to find post", err)
	}
	return post, nil
}

// ListPostsByOwner returns a window of the owner's posts, oldest first
func (r *Repository) ListPostsByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]models.Post, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, title, description, user_id, created_at, updated_at
		FROM posts
		WHERE user_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, classify(ctx, "failed to list posts", err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0, limit)
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, classify(ctx, "failed to scan post", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(ctx, "failed to list posts", err)
	}
	return posts, nil
}

// UpdatePost overwrites title and description of a post owned by post.UserID
// in a single statement, refreshing the timestamps on post.
func (r *Repository) UpdatePost(ctx context.Context, post *models.Post) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE posts
		SET title = $1, description = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3 AND user_id = $4
		RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, post.Title, post.Description, post.ID, post.UserID).
		Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return classify(ctx, "failed to update post", err)
	}
	return nil
}

// DeletePost removes a post owned by ownerID
func (r *Repository) DeletePost(ctx context.Context, id string, ownerID int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return classify(ctx, "failed to delete post", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classify(ctx, "failed to delete post", err)
	}
	if n == 0 {
		return classify(ctx, "failed to delete post", ErrNoRecord)
	}
	return nil
}
