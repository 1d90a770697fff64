package activity

import (
	"fmt"
	"time"

	"github.com/rpggio/feedwire/internal/domain/verb"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	maxObjectID = 10_000_000_000
	maxVerbID   = 1_000
)

// Activity is a single feed event: an actor performing a verb on an object,
// optionally towards a target.
type Activity struct {
	ActorID      uint64         `json:"actor_id"`
	Verb         verb.Verb      `json:"verb"`
	ObjectID     uint64         `json:"object_id"`
	TargetID     *uint64        `json:"target_id,omitempty"`
	Time         time.Time      `json:"time"`
	ExtraContext map[string]any `json:"extra_context,omitempty"`
}

// HasTarget reports whether the activity carries a real target id. Zero is
// reserved and counts as no target.
func (a *Activity) HasTarget() bool {
	return a.TargetID != nil && *a.TargetID != 0
}

// SerializationID returns the time-ordered key of the activity inside a feed:
// epoch milliseconds, the object id padded to 10 digits and the verb id padded
// to 3 digits.
func (a *Activity) SerializationID() (string, error) {
	if a.ObjectID >= maxObjectID || a.Verb.ID < 0 || a.Verb.ID >= maxVerbID {
		return "", fmt.Errorf("%w: object id %d or verb id %d has too many digits", ErrSerializationID, a.ObjectID, a.Verb.ID)
	}
	if a.Time.IsZero() {
		return "", fmt.Errorf("%w: activity has no time", ErrSerializationID)
	}
	return fmt.Sprintf("%d%010d%03d", a.Time.UnixMilli(), a.ObjectID, a.Verb.ID), nil
}

// StoredActivity is a serialized activity persisted in a feed.
type StoredActivity struct {
	ID              string    `json:"id"`
	FeedKey         string    `json:"feed_key"`
	SerializationID string    `json:"serialization_id"`
	Serialized      string    `json:"serialized"`
	CreatedAt       time.Time `json:"created_at"`
}

// Ref points at another entity from inside an activity's extra context.
type Ref struct {
	Kind string `json:"kind"`
	ID   uint64 `json:"id"`
}

type refWire struct {
	Kind string `msgpack:"k"`
	ID   uint64 `msgpack:"i"`
}

// MarshalMsgpack implements msgpack.Marshaler.
func (r *Ref) MarshalMsgpack() ([]byte, error) {
	return msgpack.Marshal(refWire{Kind: r.Kind, ID: r.ID})
}

// UnmarshalMsgpack implements msgpack.Unmarshaler.
func (r *Ref) UnmarshalMsgpack(b []byte) error {
	var w refWire
	if err := msgpack.Unmarshal(b, &w); err != nil {
		return err
	}
	r.Kind, r.ID = w.Kind, w.ID
	return nil
}
