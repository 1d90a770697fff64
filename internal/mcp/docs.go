package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `feedwire stores activity feeds as compact text records.

Core concepts:
- Activity: actor did verb to object (optionally to a target) at a time, plus free-form extra_context.
- Verb: registered by numeric id. Call list_verbs before creating activities.
- Serialized record: six comma separated fields, actor,verb,object,target,epoch,context.
- Serialization id: sortable per-feed key; newer activities sort first.

Tools:
- serialize_activity / deserialize_activity convert between activities and stored records.
- add_activity / list_feed / remove_activity manage a feed keyed by any string.

Docs:
- feedwire://docs/wire-format
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "feedwire://docs/wire-format",
		Name:        "docs_wire_format",
		Title:       "Activity record format",
		Description: "Field layout, timestamp precision and context blob encodings of stored activity records.",
		Content: `# Activity record format

A record is one line of six fields joined by commas:

    actor_id,verb_id,object_id,target_id,epoch,context

- ` + "`target_id`" + ` is 0 when the activity has no target.
- ` + "`epoch`" + ` is seconds since the Unix epoch with exactly six decimals (microseconds, UTC).
- ` + "`context`" + ` is empty when extra_context is empty, otherwise base64 over a MessagePack map.

Only the first five commas split fields. The context field may contain commas in legacy records.

## Legacy records

Older records store the MessagePack bytes directly as text. These are still read, and are never written.

## Errors

- MALFORMED_FIELD: a numeric or time field did not parse, or fewer than six fields.
- UNKNOWN_VERB: the verb id is not registered.
- PAYLOAD_DECODE_FAILURE: the context field is neither valid base64 MessagePack nor a legacy map.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
