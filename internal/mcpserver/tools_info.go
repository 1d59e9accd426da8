package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/cadrefs/docmgr"
	"github.com/erraggy/cadrefs/refcount"
)

type documentInfoInput struct {
	Snapshot documentInput `json:"snapshot" jsonschema:"The document snapshot and the document to describe"`
}

type documentInfoOutput struct {
	Document       string   `json:"document"`
	Type           string   `json:"type"`
	Version        int      `json:"version"`
	MinimumVersion int      `json:"minimum_version"`
	Supported      bool     `json:"supported"`
	Configurations []string `json:"configurations,omitempty"`
}

func handleDocumentInfo(_ context.Context, _ *mcp.CallToolRequest, input documentInfoInput) (*mcp.CallToolResult, any, error) {
	doc, closeDoc, err := input.Snapshot.open()
	if err != nil {
		return errResult(err), nil, nil
	}
	defer closeDoc()

	// An absent configuration list is reported as an empty field, not an error.
	names, _ := docmgr.ConfigurationNames(doc)

	output := documentInfoOutput{
		Document:       doc.FullName(),
		Type:           docmgr.DocumentTypeFromPath(doc.FullName()).String(),
		Version:        doc.Version(),
		MinimumVersion: refcount.MinimumVersion,
		Supported:      doc.Version() >= refcount.MinimumVersion,
		Configurations: names,
	}
	return nil, output, nil
}
