package repository

import (
	"context"

	"github.com/Dan9191/post-service/internal/models"
)

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO users (name, phone_number, password_hash, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, user.Name, user.PhoneNumber, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return classify(ctx, "failed to create user", err)
	}
	return nil
}

// FindUserByPhone retrieves a user by phone number
func (r *Repository) FindUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	user := &models.User{}
	query := `
		SELECT id, name, phone_number, password_hash, created_at
		FROM users
		WHERE phone_number = $1`
	err := r.db.QueryRowContext(ctx, query, phone).
		Scan(&user.ID, &user.Name, &user.PhoneNumber, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, classify(ctx, "failed to find user", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	user := &models.User{}
	query := `
		SELECT id, name, phone_number, password_hash, created_at
		FROM users
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Name, &user.PhoneNumber, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, classify(ctx, "failed to find user", err)
	}
	return user, nil
}

// ListUsers returns a window of users ordered by id
func (r *Repository) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, phone_number, created_at
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, classify(ctx, "failed to list users", err)
	}
	defer rows.Close()

	users := make([]models.User, 0, limit)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.PhoneNumber, &u.CreatedAt); err != nil {
			return nil, classify(ctx, "failed to scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(ctx, "failed to list users", err)
	}
	return users, nil
}
