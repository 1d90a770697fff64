package activity

import "context"

// Repository provides persistence for serialized feed activities.
type Repository interface {
	Add(ctx context.Context, entry *StoredActivity) error
	List(ctx context.Context, feedKey string, opts ListOptions) ([]StoredActivity, error)
	Remove(ctx context.Context, feedKey, serializationID string) error
}

// Serializer converts activities to and from their stored text form.
type Serializer interface {
	Dumps(v any) (string, error)
	Loads(serialized string) (*Activity, error)
}
