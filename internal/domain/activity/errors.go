package activity

import "errors"

var (
	// ErrActivityNotFound indicates the activity is not stored in the feed.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrDuplicateActivity indicates the feed already holds an activity with the same serialization id.
	ErrDuplicateActivity = errors.New("activity already in feed")
	// ErrSerializationID indicates the activity cannot produce a serialization id.
	ErrSerializationID = errors.New("cannot build serialization id")
	// ErrInvalidInput indicates invalid input for feed operations.
	ErrInvalidInput = errors.New("invalid activity input")
)
