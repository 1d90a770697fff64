package mcp

import (
	"time"

	"github.com/rpggio/feedwire/internal/domain/activity"
	"github.com/rpggio/feedwire/internal/domain/verb"
	"github.com/rpggio/feedwire/internal/serializer"
)

// ActivityParams describes an activity in tool arguments.
type ActivityParams struct {
	ActorID      uint64         `json:"actor_id" jsonschema:"id of the acting entity"`
	VerbID       int            `json:"verb_id" jsonschema:"id of a registered verb"`
	ObjectID     uint64         `json:"object_id" jsonschema:"id of the object acted upon"`
	TargetID     *uint64        `json:"target_id,omitempty" jsonschema:"optional target id; 0 means no target"`
	Time         string         `json:"time,omitempty" jsonschema:"RFC 3339 timestamp; defaults to now"`
	ExtraContext map[string]any `json:"extra_context,omitempty" jsonschema:"free-form context stored with the activity"`
}

// SerializeParams are the arguments of serialize_activity.
type SerializeParams struct {
	Activity ActivityParams `json:"activity"`
}

// SerializeResult is the output of serialize_activity.
type SerializeResult struct {
	Serialized string `json:"serialized"`
}

// DeserializeParams are the arguments of deserialize_activity.
type DeserializeParams struct {
	Serialized string `json:"serialized" jsonschema:"stored activity record"`
}

// DeserializeResult is the output of deserialize_activity.
type DeserializeResult struct {
	Activity ActivityView `json:"activity"`
}

// AddActivityParams are the arguments of add_activity.
type AddActivityParams struct {
	Feed     string         `json:"feed" jsonschema:"feed key, for example user:42"`
	Activity ActivityParams `json:"activity"`
}

// AddActivityResult is the output of add_activity.
type AddActivityResult struct {
	ID              string `json:"id"`
	SerializationID string `json:"serialization_id"`
	Serialized      string `json:"serialized"`
}

// ListFeedParams are the arguments of list_feed.
type ListFeedParams struct {
	Feed   string `json:"feed" jsonschema:"feed key"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of activities"`
	Offset int    `json:"offset,omitempty" jsonschema:"number of newest activities to skip"`
}

// ListFeedResult is the output of list_feed.
type ListFeedResult struct {
	Activities []ActivityView `json:"activities"`
}

// RemoveActivityParams are the arguments of remove_activity.
type RemoveActivityParams struct {
	Feed            string `json:"feed" jsonschema:"feed key"`
	SerializationID string `json:"serialization_id" jsonschema:"serialization id returned by add_activity"`
}

// RemoveActivityResult is the output of remove_activity.
type RemoveActivityResult struct {
	Removed bool `json:"removed"`
}

// ListVerbsParams are the arguments of list_verbs.
type ListVerbsParams struct{}

// ListVerbsResult is the output of list_verbs.
type ListVerbsResult struct {
	Verbs []verb.Verb `json:"verbs"`
}

// ActivityView is the JSON rendering of an activity.
type ActivityView struct {
	SerializationID string         `json:"serialization_id,omitempty"`
	ActorID         uint64         `json:"actor_id"`
	VerbID          int            `json:"verb_id"`
	Verb            string         `json:"verb"`
	ObjectID        uint64         `json:"object_id"`
	TargetID        *uint64        `json:"target_id,omitempty"`
	Time            string         `json:"time"`
	Epoch           string         `json:"epoch"`
	ExtraContext    map[string]any `json:"extra_context,omitempty"`
}

func newActivityView(act *activity.Activity) ActivityView {
	view := ActivityView{
		ActorID:      act.ActorID,
		VerbID:       act.Verb.ID,
		Verb:         act.Verb.Infinitive,
		ObjectID:     act.ObjectID,
		Time:         act.Time.UTC().Format(time.RFC3339Nano),
		Epoch:        serializer.FormatEpoch(act.Time),
		ExtraContext: act.ExtraContext,
	}
	if act.HasTarget() {
		view.TargetID = act.TargetID
	}
	if id, err := act.SerializationID(); err == nil {
		view.SerializationID = id
	}
	return view
}
