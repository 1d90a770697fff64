package mcp

import (
	"context"
	"io"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/feedwire/internal/domain/activity"
	"github.com/rpggio/feedwire/internal/domain/verb"
)

// FeedService defines feed operations needed by MCP.
type FeedService interface {
	Add(ctx context.Context, feedKey string, act *activity.Activity) (*activity.StoredActivity, error)
	List(ctx context.Context, feedKey string, opts activity.ListOptions) ([]activity.Activity, error)
	Remove(ctx context.Context, feedKey, serializationID string) error
}

// VerbCatalog defines verb operations needed by MCP.
type VerbCatalog interface {
	verb.Lookup
	List() []verb.Verb
}

// Services contains all domain services needed by MCP.
type Services struct {
	Codec activity.Serializer
	Feed  FeedService
	Verbs VerbCatalog
}

// Config contains server configuration.
type Config struct {
	Services Services
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "feedwire",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, cfg.Services, logger)

	return server
}
