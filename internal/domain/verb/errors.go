package verb

import "errors"

var (
	// ErrUnknownVerb indicates no verb is registered under the requested id.
	ErrUnknownVerb = errors.New("unknown verb")
	// ErrVerbConflict indicates the id is already taken by a different verb.
	ErrVerbConflict = errors.New("verb id already registered")
	// ErrInvalidInput indicates an invalid verb definition.
	ErrInvalidInput = errors.New("invalid verb input")
)
