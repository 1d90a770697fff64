package functional_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// newStdioSession starts the server binary in stdio mode and connects to it.
func newStdioSession(t *testing.T, extraEnv ...string) *sdkmcp.ClientSession {
	t.Helper()

	binaryPath := "./bin/feedwire"
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		binaryPath = "../../bin/feedwire"
		if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
			t.Skip("Server binary not found. Build it with 'go build -o bin/feedwire ./cmd/server' first.")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	cmd := exec.CommandContext(ctx, binaryPath)
	cmd.Env = append(os.Environ(),
		"FEEDWIRE_TRANSPORT_MODE=stdio",
		"FEEDWIRE_DB_PATH=:memory:",
	)
	cmd.Env = append(cmd.Env, extraEnv...)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		cancel()
		t.Fatalf("Failed to connect: %v", err)
	}

	t.Cleanup(func() {
		session.Close()
		cancel()
	})

	return session
}

func TestStdioFunctional_ProtocolCompliance(t *testing.T) {
	session := newStdioSession(t)

	initResult := session.InitializeResult()
	require.NotNil(t, initResult)
	require.NotNil(t, initResult.ServerInfo)
	require.Equal(t, "feedwire", initResult.ServerInfo.Name)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)

	toolMap := make(map[string]*sdkmcp.Tool)
	for _, tool := range tools.Tools {
		toolMap[tool.Name] = tool
	}
	for _, name := range []string{"serialize_activity", "deserialize_activity", "add_activity", "list_feed", "remove_activity", "list_verbs"} {
		require.Contains(t, toolMap, name)
		require.NotEmpty(t, toolMap[name].Description)
		require.NotNil(t, toolMap[name].InputSchema)
	}
}

func TestStdioFunctional_RoundTrip(t *testing.T) {
	session := newStdioSession(t)

	var serialized struct {
		Serialized string `json:"serialized"`
	}
	callTool(t, session, "serialize_activity", map[string]any{
		"activity": map[string]any{
			"actor_id":      1,
			"verb_id":       4,
			"object_id":     2,
			"time":          "2020-02-29T23:59:59.999999Z",
			"extra_context": map[string]any{"emoji": "🙂"},
		},
	}, &serialized)
	require.True(t, strings.HasPrefix(serialized.Serialized, "1,4,2,0,1583020799.999999,"))

	var decoded struct {
		Activity activityView `json:"activity"`
	}
	callTool(t, session, "deserialize_activity", map[string]any{"serialized": serialized.Serialized}, &decoded)
	require.Equal(t, "add", decoded.Activity.Verb)
	require.Equal(t, "🙂", decoded.Activity.ExtraContext["emoji"])
}

func TestStdioFunctional_LogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "feedwire.log")
	session := newStdioSession(t,
		"FEEDWIRE_LOG_PATH="+logPath,
		"FEEDWIRE_LOG_LEVEL=debug",
	)

	var verbs map[string]any
	callTool(t, session, "list_verbs", map[string]any{}, &verbs)

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(logPath)
		if err != nil {
			return false
		}
		text := string(data)
		return strings.Contains(text, `msg="mcp traffic"`) &&
			strings.Contains(text, "stage=request") &&
			strings.Contains(text, "stage=response")
	}, 5*time.Second, 100*time.Millisecond)
}

func TestStdioFunctional_DocumentationResources(t *testing.T) {
	session := newStdioSession(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resources, err := session.ListResources(ctx, nil)
	require.NoError(t, err)

	var found *sdkmcp.Resource
	for _, r := range resources.Resources {
		if r.URI == "feedwire://docs/wire-format" {
			found = r
		}
	}
	require.NotNil(t, found)
	require.Equal(t, "text/markdown", found.MIMEType)
	require.Positive(t, found.Size)
}
