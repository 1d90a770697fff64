package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/feedwire/internal/domain/activity"
	"github.com/rpggio/feedwire/internal/domain/verb"
	"github.com/rpggio/feedwire/internal/serializer"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var fieldErr *serializer.FieldError
	switch {
	case errors.As(err, &fieldErr):
		return &APIError{Code: "MALFORMED_FIELD", Message: err.Error(), Details: map[string]string{"field": fieldErr.Field}, RecoveryHint: "Check the record has six comma separated fields"}
	case errors.Is(err, serializer.ErrMalformedField):
		return &APIError{Code: "MALFORMED_FIELD", Message: err.Error()}
	case errors.Is(err, serializer.ErrTypeMismatch):
		return &APIError{Code: "TYPE_MISMATCH", Message: err.Error()}
	case errors.Is(err, verb.ErrUnknownVerb):
		return &APIError{Code: "UNKNOWN_VERB", Message: err.Error(), RecoveryHint: "Call list_verbs for registered ids"}
	case errors.Is(err, serializer.ErrPayloadDecode):
		return &APIError{Code: "PAYLOAD_DECODE_FAILURE", Message: err.Error()}
	case errors.Is(err, serializer.ErrPayloadEncode):
		return &APIError{Code: "PAYLOAD_ENCODE_FAILURE", Message: err.Error()}
	case errors.Is(err, activity.ErrActivityNotFound):
		return &APIError{Code: "ACTIVITY_NOT_FOUND", Message: "activity not found", RecoveryHint: "Call list_feed for stored serialization ids"}
	case errors.Is(err, activity.ErrDuplicateActivity):
		return &APIError{Code: "DUPLICATE_ACTIVITY", Message: "activity already in feed"}
	case errors.Is(err, activity.ErrSerializationID), errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return nil
	}
}

// toolError converts a domain error into the error returned from a tool handler.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
