package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/filippkowalski/heywish/internal/domain"
)

// ActivityRepository appends audit records. There is deliberately no
// update or delete: the table is append-only history.
type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db.DB}
}

func (r *ActivityRepository) Append(ctx context.Context, a *domain.Activity) error {
	query := `
		INSERT INTO activities (actor_id, action, wish_id, wishlist_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	payload := a.Payload
	if len(payload) == 0 {
		payload = []byte(`{}`)
	}
	err := r.db.QueryRowContext(ctx, query,
		a.ActorID,
		a.Action,
		a.WishID,
		a.WishlistID,
		[]byte(payload),
		a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}
	return nil
}

// ListByActor returns the actor's history, newest first.
func (r *ActivityRepository) ListByActor(ctx context.Context, actorID int64, limit int) ([]*domain.Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, actor_id, action, wish_id, wishlist_id, payload, created_at
		FROM activities
		WHERE actor_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, actorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var list []*domain.Activity
	for rows.Next() {
		a := &domain.Activity{}
		var payload []byte
		if err := rows.Scan(
			&a.ID,
			&a.ActorID,
			&a.Action,
			&a.WishID,
			&a.WishlistID,
			&payload,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Payload = payload
		list = append(list, a)
	}
	return list, rows.Err()
}
