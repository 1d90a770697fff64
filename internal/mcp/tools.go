package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/feedwire/internal/domain/activity"
)

func registerTools(server *sdkmcp.Server, services Services, logger *slog.Logger) {
	h := &toolHandlers{services: services, logger: logger}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "serialize_activity",
		Description: "Encode an activity into its stored record form without saving it",
	}, h.serializeActivity)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "deserialize_activity",
		Description: "Decode a stored activity record, including legacy context blobs",
	}, h.deserializeActivity)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_activity",
		Description: "Serialize an activity and store it in a feed",
	}, h.addActivity)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_feed",
		Description: "List a feed's activities, newest first",
	}, h.listFeed)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_activity",
		Description: "Remove an activity from a feed by serialization id",
	}, h.removeActivity)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_verbs",
		Description: "List the registered verbs",
	}, h.listVerbs)
}

type toolHandlers struct {
	services Services
	logger   *slog.Logger
}

func (h *toolHandlers) serializeActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in SerializeParams) (*sdkmcp.CallToolResult, SerializeResult, error) {
	act, err := h.buildActivity(in.Activity)
	if err != nil {
		return nil, SerializeResult{}, toolError(err)
	}
	if act.Time.IsZero() {
		act.Time = time.Now().UTC().Truncate(time.Microsecond)
	}
	serialized, err := h.services.Codec.Dumps(act)
	if err != nil {
		return nil, SerializeResult{}, toolError(err)
	}
	return nil, SerializeResult{Serialized: serialized}, nil
}

func (h *toolHandlers) deserializeActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeserializeParams) (*sdkmcp.CallToolResult, DeserializeResult, error) {
	act, err := h.services.Codec.Loads(in.Serialized)
	if err != nil {
		h.logger.Debug("deserialize failed", "error", err)
		return nil, DeserializeResult{}, toolError(err)
	}
	return nil, DeserializeResult{Activity: newActivityView(act)}, nil
}

func (h *toolHandlers) addActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddActivityParams) (*sdkmcp.CallToolResult, AddActivityResult, error) {
	act, err := h.buildActivity(in.Activity)
	if err != nil {
		return nil, AddActivityResult{}, toolError(err)
	}
	entry, err := h.services.Feed.Add(ctx, in.Feed, act)
	if err != nil {
		return nil, AddActivityResult{}, toolError(err)
	}
	return nil, AddActivityResult{
		ID:              entry.ID,
		SerializationID: entry.SerializationID,
		Serialized:      entry.Serialized,
	}, nil
}

func (h *toolHandlers) listFeed(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListFeedParams) (*sdkmcp.CallToolResult, ListFeedResult, error) {
	if in.Limit < 0 || in.Offset < 0 {
		return nil, ListFeedResult{}, toolError(fmt.Errorf("%w: limit and offset must not be negative", activity.ErrInvalidInput))
	}
	acts, err := h.services.Feed.List(ctx, in.Feed, activity.ListOptions{Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		return nil, ListFeedResult{}, toolError(err)
	}
	views := make([]ActivityView, 0, len(acts))
	for i := range acts {
		views = append(views, newActivityView(&acts[i]))
	}
	return nil, ListFeedResult{Activities: views}, nil
}

func (h *toolHandlers) removeActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in RemoveActivityParams) (*sdkmcp.CallToolResult, RemoveActivityResult, error) {
	if err := h.services.Feed.Remove(ctx, in.Feed, in.SerializationID); err != nil {
		return nil, RemoveActivityResult{}, toolError(err)
	}
	return nil, RemoveActivityResult{Removed: true}, nil
}

func (h *toolHandlers) listVerbs(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListVerbsParams) (*sdkmcp.CallToolResult, ListVerbsResult, error) {
	return nil, ListVerbsResult{Verbs: h.services.Verbs.List()}, nil
}

// buildActivity resolves the verb and parses the time of tool arguments.
// A missing time is left zero.
func (h *toolHandlers) buildActivity(in ActivityParams) (*activity.Activity, error) {
	v, err := h.services.Verbs.Lookup(in.VerbID)
	if err != nil {
		return nil, err
	}

	act := &activity.Activity{
		ActorID:      in.ActorID,
		Verb:         v,
		ObjectID:     in.ObjectID,
		ExtraContext: in.ExtraContext,
	}
	if in.TargetID != nil && *in.TargetID != 0 {
		target := *in.TargetID
		act.TargetID = &target
	}
	if ts := strings.TrimSpace(in.Time); ts != "" {
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("%w: time must be RFC 3339: %v", activity.ErrInvalidInput, err)
		}
		act.Time = parsed.UTC()
	}
	if act.ExtraContext == nil {
		act.ExtraContext = map[string]any{}
	}
	return act, nil
}
