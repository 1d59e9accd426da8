package mcpserver

import (
	"context"
	"slices"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestSession creates an in-process MCP server/client pair and returns
// the connected client session. The server is shut down when the test ends.
func startTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(
		&mcp.Implementation{Name: "cadrefs-test", Version: "test"},
		nil,
	)
	registerAllTools(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	// Start server in background; it blocks until the connection closes.
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(
		&mcp.Implementation{Name: "test-client", Version: "test"},
		nil,
	)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})

	return session
}

func TestIntegration_ListTools(t *testing.T) {
	session := startTestSession(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Len(t, result.Tools, 3, "expected 3 registered tools")

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	for _, name := range []string{"count_references", "list_configurations", "document_info"} {
		assert.True(t, slices.Contains(names, name), "missing tool: %s", name)
	}

	for _, tool := range result.Tools {
		assert.NotEmpty(t, tool.Description, "tool %q has empty description", tool.Name)
	}
}

func TestIntegration_CallTool_CountReferences(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "count_references",
		Arguments: map[string]any{
			"snapshot": map[string]any{
				"content":  vaultSnapshot,
				"document": topAssembly,
			},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError, "count_references should succeed")

	structured := unmarshalStructured(t, result)
	assert.Equal(t, "Default", structured["configuration"])
	assert.Equal(t, true, structured["defaulted"])
	assert.Equal(t, float64(2), structured["unique"])
	assert.Equal(t, float64(3), structured["total"])

	refs, ok := structured["references"].([]any)
	require.True(t, ok, "expected references array")
	require.Len(t, refs, 2)
	first, ok := refs[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "bracket.sldprt", first["name"])
	assert.Equal(t, float64(2), first["count"])
}

func TestIntegration_CallTool_CountReferencesError(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "count_references",
		Arguments: map[string]any{
			"snapshot": map[string]any{
				"content":  vaultSnapshot,
				"document": topAssembly,
			},
			"configuration": "Missing",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Contains(t, errorText(t, result), "ConfigurationNotFound")
}

func TestIntegration_CallTool_ListConfigurations(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "list_configurations",
		Arguments: map[string]any{
			"snapshot": map[string]any{
				"content":  vaultSnapshot,
				"document": topAssembly,
			},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, "Default", structured["default"])
	assert.Equal(t, []any{"Default", "Simplified", "Broken"}, structured["configurations"])
}

func TestIntegration_CallTool_DocumentInfo(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "document_info",
		Arguments: map[string]any{
			"snapshot": map[string]any{
				"content":  vaultSnapshot,
				"document": `C:\Vault\Legacy\Old.SLDPRT`,
			},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, "part", structured["type"])
	assert.Equal(t, false, structured["supported"])
	assert.Equal(t, float64(1500), structured["version"])
}
