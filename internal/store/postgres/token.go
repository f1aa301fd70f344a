package postgres

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/filippkowalski/heywish/internal/domain"
)

// TokenRepository verifies bearer tokens against the api_tokens table.
// Only a sha256 digest of the token is stored.
type TokenRepository struct {
	db *sql.DB
}

func NewTokenRepository(db *DB) *TokenRepository {
	return &TokenRepository{db: db.DB}
}

// Verify resolves a bearer token to its user. Unknown tokens come back as
// ErrNotFound; the auth middleware maps any error to 401.
func (r *TokenRepository) Verify(ctx context.Context, token string) (*domain.User, error) {
	query := `
		SELECT u.id, u.email, u.display_name, u.created_at
		FROM api_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.token_hash = $1`

	u := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, hashToken(token)).Scan(
		&u.ID,
		&u.Email,
		&u.DisplayName,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("unknown token: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	return u, nil
}

// Put registers a token for a user. Used by the seed bootstrap; re-seeding
// the same token is a no-op.
func (r *TokenRepository) Put(ctx context.Context, userID int64, token string) error {
	query := `
		INSERT INTO api_tokens (token_hash, user_id)
		VALUES ($1, $2)
		ON CONFLICT (token_hash) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, hashToken(token), userID); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
