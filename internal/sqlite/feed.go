package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rpggio/feedwire/internal/domain/activity"
	"github.com/rpggio/feedwire/internal/repository"
)

// FeedRepository implements activity.Repository for SQLite
type FeedRepository struct {
	db *DB
}

var _ activity.Repository = (*FeedRepository)(nil)

// NewFeedRepository creates a new FeedRepository
func NewFeedRepository(db *DB) *FeedRepository {
	return &FeedRepository{db: db}
}

// Add inserts a serialized activity into its feed
func (r *FeedRepository) Add(ctx context.Context, entry *activity.StoredActivity) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO feed_activities (
			id, feed_key, serialization_id, serialized, created_at
		) VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.FeedKey,
		entry.SerializationID,
		entry.Serialized,
		createdAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to add activity: %w", err)
	}

	entry.CreatedAt = createdAt
	return nil
}

// List returns a feed's activities ordered by serialization id, newest first
func (r *FeedRepository) List(ctx context.Context, feedKey string, opts activity.ListOptions) ([]activity.StoredActivity, error) {
	query := `
		SELECT id, feed_key, serialization_id, serialized, created_at
		FROM feed_activities
		WHERE feed_key = ?
		ORDER BY length(serialization_id) DESC, serialization_id DESC
	`
	args := []interface{}{feedKey}

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	} else if opts.Offset > 0 {
		query += " LIMIT -1"
	}
	if opts.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed: %w", err)
	}
	defer rows.Close()

	var entries []activity.StoredActivity
	for rows.Next() {
		var entry activity.StoredActivity
		if err := rows.Scan(
			&entry.ID,
			&entry.FeedKey,
			&entry.SerializationID,
			&entry.Serialized,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan feed entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feed rows: %w", err)
	}

	return entries, nil
}

// Remove deletes an activity from a feed
func (r *FeedRepository) Remove(ctx context.Context, feedKey, serializationID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM feed_activities WHERE feed_key = ? AND serialization_id = ?`,
		feedKey, serializationID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove activity: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check removal: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
