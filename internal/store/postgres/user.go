package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/filippkowalski/heywish/internal/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.DB}
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, email, display_name, created_at
		FROM users
		WHERE id = $1`

	u := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID,
		&u.Email,
		&u.DisplayName,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, display_name, created_at
		FROM users
		WHERE email = $1`

	u := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID,
		&u.Email,
		&u.DisplayName,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user %q: %w", email, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// UpsertByEmail inserts the user or refreshes the display name of an
// existing row. Used by the seed bootstrap.
func (r *UserRepository) UpsertByEmail(ctx context.Context, u *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (email, display_name, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET display_name = EXCLUDED.display_name
		RETURNING id, created_at`

	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	err := r.db.QueryRowContext(ctx, query, u.Email, u.DisplayName, u.CreatedAt).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return u, nil
}
