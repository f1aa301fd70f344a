package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/filippkowalski/heywish/internal/domain"
)

type WishlistRepository struct {
	db *sql.DB
}

func NewWishlistRepository(db *DB) *WishlistRepository {
	return &WishlistRepository{db: db.DB}
}

const wishlistColumns = `id, owner_id, name, description, visibility, share_token, created_at, updated_at`

func scanWishlist(row interface{ Scan(...any) error }) (*domain.Wishlist, error) {
	list := &domain.Wishlist{}
	err := row.Scan(
		&list.ID,
		&list.OwnerID,
		&list.Name,
		&list.Description,
		&list.Visibility,
		&list.ShareToken,
		&list.CreatedAt,
		&list.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *WishlistRepository) Create(ctx context.Context, list *domain.Wishlist) (*domain.Wishlist, error) {
	query := `
		INSERT INTO wishlists (owner_id, name, description, visibility, share_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	if list.CreatedAt.IsZero() {
		list.CreatedAt = time.Now()
		list.UpdatedAt = list.CreatedAt
	}
	err := r.db.QueryRowContext(ctx, query,
		list.OwnerID,
		list.Name,
		list.Description,
		list.Visibility,
		list.ShareToken,
		list.CreatedAt,
		list.UpdatedAt,
	).Scan(&list.ID, &list.CreatedAt, &list.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create wishlist: %w", err)
	}
	return list, nil
}

func (r *WishlistRepository) GetByID(ctx context.Context, id int64) (*domain.Wishlist, error) {
	query := `
		SELECT ` + wishlistColumns + `
		FROM wishlists
		WHERE id = $1 AND deleted_at IS NULL`

	list, err := scanWishlist(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("wishlist %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}
	return list, nil
}

func (r *WishlistRepository) GetByToken(ctx context.Context, token string) (*domain.Wishlist, error) {
	query := `
		SELECT ` + wishlistColumns + `
		FROM wishlists
		WHERE share_token = $1 AND deleted_at IS NULL`

	list, err := scanWishlist(r.db.QueryRowContext(ctx, query, token))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("wishlist token: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get wishlist by token: %w", err)
	}
	return list, nil
}

func (r *WishlistRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Wishlist, error) {
	query := `
		SELECT ` + wishlistColumns + `
		FROM wishlists
		WHERE owner_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wishlists: %w", err)
	}
	defer rows.Close()

	var lists []*domain.Wishlist
	for rows.Next() {
		list, err := scanWishlist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wishlist: %w", err)
		}
		lists = append(lists, list)
	}
	return lists, rows.Err()
}

func (r *WishlistRepository) Update(ctx context.Context, list *domain.Wishlist) (*domain.Wishlist, error) {
	query := `
		UPDATE wishlists
		SET name = $2, description = $3, visibility = $4, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		list.ID,
		list.Name,
		list.Description,
		list.Visibility,
		time.Now(),
	).Scan(&list.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("wishlist %d: %w", list.ID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update wishlist: %w", err)
	}
	return list, nil
}

func (r *WishlistRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	query := `
		UPDATE wishlists
		SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("wishlist %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
