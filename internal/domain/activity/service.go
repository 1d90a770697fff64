package activity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/feedwire/internal/repository"
)

// Service stores and reads feed activities through a serializer.
type Service struct {
	repo       Repository
	serializer Serializer
	logger     *slog.Logger
}

// NewService creates a new feed activity service.
func NewService(repo Repository, serializer Serializer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, serializer: serializer, logger: logger}
}

// Add serializes the activity and stores it in the feed. A missing time is
// stamped with the current time on a copy; the caller's activity is not modified.
func (s *Service) Add(ctx context.Context, feedKey string, act *Activity) (*StoredActivity, error) {
	if strings.TrimSpace(feedKey) == "" || act == nil {
		return nil, ErrInvalidInput
	}
	if act.Time.IsZero() {
		stamped := *act
		stamped.Time = time.Now().UTC().Truncate(time.Microsecond)
		act = &stamped
	}

	serializationID, err := act.SerializationID()
	if err != nil {
		return nil, err
	}
	serialized, err := s.serializer.Dumps(act)
	if err != nil {
		return nil, fmt.Errorf("serializing activity: %w", err)
	}

	entry := &StoredActivity{
		ID:              uuid.NewString(),
		FeedKey:         feedKey,
		SerializationID: serializationID,
		Serialized:      serialized,
		CreatedAt:       time.Now(),
	}
	if err := s.repo.Add(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrDuplicateActivity
		}
		return nil, fmt.Errorf("storing activity: %w", err)
	}

	s.logger.Debug("activity added", "feed", feedKey, "serialization_id", serializationID)
	return entry, nil
}

// List returns the feed's activities, newest first.
func (s *Service) List(ctx context.Context, feedKey string, opts ListOptions) ([]Activity, error) {
	if strings.TrimSpace(feedKey) == "" {
		return nil, ErrInvalidInput
	}

	entries, err := s.repo.List(ctx, feedKey, opts)
	if err != nil {
		return nil, fmt.Errorf("listing feed: %w", err)
	}

	out := make([]Activity, 0, len(entries))
	for _, entry := range entries {
		act, err := s.serializer.Loads(entry.Serialized)
		if err != nil {
			return nil, fmt.Errorf("loading activity %s: %w", entry.SerializationID, err)
		}
		out = append(out, *act)
	}
	return out, nil
}

// Remove deletes an activity from the feed.
func (s *Service) Remove(ctx context.Context, feedKey, serializationID string) error {
	if strings.TrimSpace(feedKey) == "" || strings.TrimSpace(serializationID) == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Remove(ctx, feedKey, serializationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrActivityNotFound
		}
		return fmt.Errorf("removing activity: %w", err)
	}
	return nil
}
