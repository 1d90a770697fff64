package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/feedwire/internal/domain/activity"
	"github.com/rpggio/feedwire/internal/domain/verb"
	"github.com/rpggio/feedwire/internal/mcp"
	"github.com/rpggio/feedwire/internal/serializer"
	"github.com/rpggio/feedwire/internal/sqlite"
	"github.com/stretchr/testify/require"
)

// TestServer runs the full feedwire stack behind an httptest server.
type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Registry *verb.Registry
}

// New starts a test server backed by a fresh in-memory database and the
// default verbs.
func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	registry, err := verb.NewRegistry(verb.DefaultVerbs()...)
	require.NoError(t, err)

	codec := serializer.NewActivitySerializer(registry, nil)
	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Codec: codec,
			Feed:  activity.NewService(sqlite.NewFeedRepository(db), codec, nil),
			Verbs: registry,
		},
	})

	server := httptest.NewServer(mcp.NewHTTPHandler(mcpServer))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{Server: server, DB: db, Registry: registry}
}

// Connect opens an MCP client session over streamable HTTP.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint: ts.Server.URL + "/mcp",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

// InsertRaw stores a serialized record directly, bypassing the serializer.
func (ts *TestServer) InsertRaw(t *testing.T, feedKey, serializationID, serialized string) {
	t.Helper()

	_, err := ts.DB.Exec(
		`INSERT INTO feed_activities (id, feed_key, serialization_id, serialized) VALUES (?, ?, ?, ?)`,
		feedKey+"/"+serializationID, feedKey, serializationID, serialized,
	)
	require.NoError(t, err)
}
