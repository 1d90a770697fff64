// Package serializer converts feed activities to and from their compact
// stored text form.
//
// A record is six comma separated fields:
//
//	actor_id,verb_id,object_id,target_id,epoch_seconds,extra_context
//
// target_id 0 means "no target" and epoch_seconds always carries six fractional
// digits. extra_context is base64 over MessagePack, or empty when the activity
// has no context. Records are split with at most five splits, so the last field
// may contain commas.
package serializer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rpggio/feedwire/internal/domain/activity"
	"github.com/rpggio/feedwire/internal/domain/verb"
)

const (
	fieldDelimiter = ","
	fieldCount     = 6
)

// ActivitySerializer implements activity.Serializer.
type ActivitySerializer struct {
	verbs  verb.Lookup
	logger *slog.Logger
}

var _ activity.Serializer = (*ActivitySerializer)(nil)

// NewActivitySerializer creates a serializer resolving verb ids through verbs.
func NewActivitySerializer(verbs verb.Lookup, logger *slog.Logger) *ActivitySerializer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ActivitySerializer{verbs: verbs, logger: logger}
}

// Dumps serializes an activity.Activity or *activity.Activity.
func (s *ActivitySerializer) Dumps(v any) (string, error) {
	act, err := asActivity(v)
	if err != nil {
		recordError("type_mismatch")
		return "", err
	}
	if act.Verb.ID < 0 {
		recordError("malformed_field")
		return "", malformed("verb_id", strconv.Itoa(act.Verb.ID), errors.New("negative verb id"))
	}

	blob, err := EncodeContext(act.ExtraContext)
	if err != nil {
		recordError("payload_encode")
		return "", err
	}

	var targetID uint64
	if act.TargetID != nil {
		targetID = *act.TargetID
	}

	parts := []string{
		strconv.FormatUint(act.ActorID, 10),
		strconv.Itoa(act.Verb.ID),
		strconv.FormatUint(act.ObjectID, 10),
		strconv.FormatUint(targetID, 10),
		FormatEpoch(act.Time),
		blob,
	}
	dumpsCounter.Inc()
	return strings.Join(parts, fieldDelimiter), nil
}

// Loads parses a serialized activity. It returns nil and an error on any failure.
func (s *ActivitySerializer) Loads(serialized string) (*activity.Activity, error) {
	act, err := s.loads(serialized)
	if err != nil {
		recordError(errorKind(err))
		return nil, err
	}
	loadsCounter.Inc()
	return act, nil
}

func (s *ActivitySerializer) loads(serialized string) (*activity.Activity, error) {
	parts := strings.SplitN(serialized, fieldDelimiter, fieldCount)
	if len(parts) != fieldCount {
		return nil, malformed("record", serialized, fmt.Errorf("want %d fields, got %d", fieldCount, len(parts)))
	}

	actorID, err := parseID("actor_id", parts[0])
	if err != nil {
		return nil, err
	}
	verbID, err := parseID("verb_id", parts[1])
	if err != nil {
		return nil, err
	}
	objectID, err := parseID("object_id", parts[2])
	if err != nil {
		return nil, err
	}
	targetID, err := parseID("target_id", parts[3])
	if err != nil {
		return nil, err
	}
	if verbID > uint64(maxVerbID) {
		return nil, malformed("verb_id", parts[1], strconv.ErrRange)
	}

	at, err := ParseEpoch(parts[4])
	if err != nil {
		return nil, malformed("time", parts[4], err)
	}

	v, err := s.verbs.Lookup(int(verbID))
	if err != nil {
		if errors.Is(err, verb.ErrUnknownVerb) {
			return nil, err
		}
		return nil, fmt.Errorf("looking up verb %d: %w", verbID, err)
	}

	extra, format, err := decodeContext(parts[5])
	if err != nil {
		return nil, err
	}
	recordContextDecode(format)
	if format == formatLegacy {
		s.logger.Debug("decoded legacy context blob", "actor_id", actorID, "verb_id", verbID, "object_id", objectID)
	}

	act := &activity.Activity{
		ActorID:      actorID,
		Verb:         v,
		ObjectID:     objectID,
		Time:         at,
		ExtraContext: extra,
	}
	if targetID != 0 {
		act.TargetID = &targetID
	}
	return act, nil
}

const maxVerbID = int(^uint(0) >> 1)

func parseID(field, value string) (uint64, error) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, malformed(field, value, err)
	}
	return id, nil
}

func asActivity(v any) (*activity.Activity, error) {
	switch act := v.(type) {
	case *activity.Activity:
		if act == nil {
			return nil, fmt.Errorf("%w: nil *activity.Activity", ErrTypeMismatch)
		}
		return act, nil
	case activity.Activity:
		return &act, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrTypeMismatch, v)
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrMalformedField):
		return "malformed_field"
	case errors.Is(err, ErrUnknownVerb):
		return "unknown_verb"
	case errors.Is(err, ErrPayloadDecode):
		return "payload_decode"
	default:
		return "other"
	}
}
