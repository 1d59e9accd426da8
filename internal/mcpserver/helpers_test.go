package mcpserver

import (
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// vaultSnapshot is a small document library used across tool tests.
const vaultSnapshot = `documents:
  - path: C:\Vault\Top.SLDASM
    version: 5000
    configurations:
      - name: Default
        components:
          - path: C:\Vault\Parts\Bracket.SLDPRT
          - path: C:\Vault\Purchased\BRACKET.sldprt
          - path: C:\Vault\Parts\Shaft.sldprt
          - path: C:\Vault\Parts\Pin.sldprt
            suppressed: true
      - name: Simplified
        components:
          - path: C:\Vault\Parts\Shaft.sldprt
      - name: Broken
        unresolvable: true
  - path: C:\Vault\Legacy\Old.SLDPRT
    version: 1500
    configurations:
      - name: Default
  - path: C:\Vault\Drawings\Top.SLDDRW
    version: 5000
`

const topAssembly = `C:\Vault\Top.SLDASM`

func topInput() documentInput {
	return documentInput{Content: vaultSnapshot, Document: topAssembly}
}

// unmarshalStructured returns the structured output of a tool call as a map.
func unmarshalStructured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	// Prefer structured content if available.
	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	// Fall back to parsing text content.
	require.NotEmpty(t, result.Content, "expected at least one content item")
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &m), "failed to parse text content as JSON")
	return m
}

// errorText returns the text of an error result.
func errorText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.True(t, result.IsError, "expected an error result")
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return text.Text
}
