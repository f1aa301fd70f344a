package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/filippkowalski/heywish/internal/domain"
)

type WishRepository struct {
	db *sql.DB
}

func NewWishRepository(db *DB) *WishRepository {
	return &WishRepository{db: db.DB}
}

const wishColumns = `id, wishlist_id, title, url, price, image_url, notes,
	reserved_by, reserver_name, reserver_email, reserved_at, created_at, updated_at`

func scanWish(row interface{ Scan(...any) error }) (*domain.Wish, error) {
	wish := &domain.Wish{}
	var reservedBy, reserverName, reserverEmail sql.NullString
	var reservedAt sql.NullTime

	err := row.Scan(
		&wish.ID,
		&wish.WishlistID,
		&wish.Title,
		&wish.URL,
		&wish.Price,
		&wish.ImageURL,
		&wish.Notes,
		&reservedBy,
		&reserverName,
		&reserverEmail,
		&reservedAt,
		&wish.CreatedAt,
		&wish.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	wish.ReservedBy = fromNull(reservedBy)
	wish.ReserverName = fromNull(reserverName)
	wish.ReserverEmail = fromNull(reserverEmail)
	wish.ReservedAt = fromNullTime(reservedAt)
	return wish, nil
}

func (r *WishRepository) Create(ctx context.Context, wish *domain.Wish) (*domain.Wish, error) {
	query := `
		INSERT INTO wishes (wishlist_id, title, url, price, image_url, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	if wish.CreatedAt.IsZero() {
		wish.CreatedAt = time.Now()
		wish.UpdatedAt = wish.CreatedAt
	}
	err := r.db.QueryRowContext(ctx, query,
		wish.WishlistID,
		wish.Title,
		wish.URL,
		wish.Price,
		wish.ImageURL,
		wish.Notes,
		wish.CreatedAt,
		wish.UpdatedAt,
	).Scan(&wish.ID, &wish.CreatedAt, &wish.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create wish: %w", err)
	}
	return wish, nil
}

func (r *WishRepository) GetByID(ctx context.Context, id int64) (*domain.Wish, error) {
	query := `
		SELECT ` + wishColumns + `
		FROM wishes
		WHERE id = $1 AND deleted_at IS NULL`

	wish, err := scanWish(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("wish %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get wish: %w", err)
	}
	return wish, nil
}

func (r *WishRepository) ListByWishlist(ctx context.Context, wishlistID int64) ([]*domain.Wish, error) {
	query := `
		SELECT ` + wishColumns + `
		FROM wishes
		WHERE wishlist_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, wishlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wishes: %w", err)
	}
	defer rows.Close()

	var wishes []*domain.Wish
	for rows.Next() {
		wish, err := scanWish(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wish: %w", err)
		}
		wishes = append(wishes, wish)
	}
	return wishes, rows.Err()
}

func (r *WishRepository) Update(ctx context.Context, wish *domain.Wish) (*domain.Wish, error) {
	query := `
		UPDATE wishes
		SET title = $2, url = $3, price = $4, image_url = $5, notes = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		wish.ID,
		wish.Title,
		wish.URL,
		wish.Price,
		wish.ImageURL,
		wish.Notes,
		time.Now(),
	).Scan(&wish.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("wish %d: %w", wish.ID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update wish: %w", err)
	}
	return wish, nil
}

func (r *WishRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	query := `
		UPDATE wishes
		SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to delete wish: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("wish %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Reserve performs the guard-and-set as one conditional update. Under
// concurrent attempts on the same wish exactly one statement matches the
// reserved_by IS NULL predicate; the losers observe zero rows affected.
func (r *WishRepository) Reserve(ctx context.Context, wishID int64, res domain.Reservation) error {
	query := `
		UPDATE wishes
		SET reserved_by = $2, reserver_name = $3, reserver_email = $4, reserved_at = $5, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL AND reserved_by IS NULL`

	result, err := r.db.ExecContext(ctx, query,
		wishID,
		res.ReserverID,
		res.Name,
		nullString(res.Email),
		res.At,
	)
	if err != nil {
		return fmt.Errorf("failed to reserve wish: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		// Zero rows means either a lost race or a vanished wish.
		if _, err := r.GetByID(ctx, wishID); err != nil {
			return err
		}
		return fmt.Errorf("wish %d: %w", wishID, domain.ErrAlreadyReserved)
	}
	return nil
}

// Release clears the reservation only when reserverID matches the stored
// reserved_by exactly.
func (r *WishRepository) Release(ctx context.Context, wishID int64, reserverID string, at time.Time) error {
	query := `
		UPDATE wishes
		SET reserved_by = NULL, reserver_name = NULL, reserver_email = NULL, reserved_at = NULL, updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL AND reserved_by = $2`

	result, err := r.db.ExecContext(ctx, query, wishID, reserverID, at)
	if err != nil {
		return fmt.Errorf("failed to release wish: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		if _, err := r.GetByID(ctx, wishID); err != nil {
			return err
		}
		return fmt.Errorf("wish %d: %w", wishID, domain.ErrNotReserver)
	}
	return nil
}
