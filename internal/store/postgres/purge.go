package postgres

import (
	"context"
	"fmt"
	"time"
)

// PurgeDeleted hard-deletes rows that were soft-deleted before olderThan.
// Wishes go first so wishlist rows never leave dangling children behind;
// wishes of a purged wishlist are removed regardless of their own marker.
func (d *DB) PurgeDeleted(ctx context.Context, olderThan time.Time) (int64, error) {
	var total int64

	res, err := d.ExecContext(ctx, `
		DELETE FROM wishes
		WHERE deleted_at < $1
		   OR wishlist_id IN (SELECT id FROM wishlists WHERE deleted_at < $1)`,
		olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to purge wishes: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		total += n
	}

	res, err = d.ExecContext(ctx, `DELETE FROM wishlists WHERE deleted_at < $1`, olderThan)
	if err != nil {
		return total, fmt.Errorf("failed to purge wishlists: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		total += n
	}

	return total, nil
}
