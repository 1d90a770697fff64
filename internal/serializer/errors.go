package serializer

import (
	"errors"
	"fmt"

	"github.com/rpggio/feedwire/internal/domain/verb"
)

var (
	// ErrTypeMismatch indicates Dumps was called with something other than an activity.
	ErrTypeMismatch = errors.New("value is not an activity")
	// ErrMalformedField indicates a record field could not be parsed.
	ErrMalformedField = errors.New("malformed field")
	// ErrUnknownVerb indicates the record references an unregistered verb.
	ErrUnknownVerb = verb.ErrUnknownVerb
	// ErrPayloadDecode indicates the context blob could not be decoded by either format.
	ErrPayloadDecode = errors.New("context payload decode failure")
	// ErrPayloadEncode indicates the context map holds a value that cannot be encoded.
	ErrPayloadEncode = errors.New("context payload encode failure")
)

// FieldError reports which record field failed to parse.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s %q", ErrMalformedField, e.Field, e.Value)
	}
	return fmt.Sprintf("%s: %s %q: %v", ErrMalformedField, e.Field, e.Value, e.Err)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrMalformedField
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func malformed(field, value string, err error) error {
	return &FieldError{Field: field, Value: value, Err: err}
}
