package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/cadrefs/dmerrors"
	"github.com/erraggy/cadrefs/docmgr"
)

type listConfigurationsInput struct {
	Snapshot documentInput `json:"snapshot" jsonschema:"The document snapshot and the document to inspect"`
}

type listConfigurationsOutput struct {
	Document       string   `json:"document"`
	Configurations []string `json:"configurations"`
	Default        string   `json:"default"`
}

func handleListConfigurations(_ context.Context, _ *mcp.CallToolRequest, input listConfigurationsInput) (*mcp.CallToolResult, any, error) {
	doc, closeDoc, err := input.Snapshot.open()
	if err != nil {
		return errResult(err), nil, nil
	}
	defer closeDoc()

	names, err := docmgr.ConfigurationNames(doc)
	if err != nil || len(names) == 0 {
		return errResult(&dmerrors.ReferenceError{
			Kind:     dmerrors.KindConfigurationListUnavailable,
			Document: doc.FullName(),
			Cause:    err,
		}), nil, nil
	}

	output := listConfigurationsOutput{
		Document:       doc.FullName(),
		Configurations: names,
		Default:        names[0],
	}
	return nil, output, nil
}
