package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/cadrefs/refcount"
)

type countReferencesInput struct {
	Snapshot          documentInput `json:"snapshot"                     jsonschema:"The document snapshot and the document to count"`
	Configuration     string        `json:"configuration,omitempty"      jsonschema:"Configuration to count (default: first configuration of the document)"`
	IncludeSuppressed bool          `json:"include_suppressed,omitempty" jsonschema:"Count suppressed components too"`
	Strict            bool          `json:"strict,omitempty"             jsonschema:"Reject the request when no configuration name is given"`
	Limit             int           `json:"limit,omitempty"              jsonschema:"Maximum number of references to return (default 100)"`
	Offset            int           `json:"offset,omitempty"             jsonschema:"Skip the first N references (for pagination)"`
}

// countReferencesOutput holds the tally of one configuration. Unique and
// Total describe the whole tally; References holds the requested page.
type countReferencesOutput struct {
	Document        string               `json:"document"`
	Configuration   string               `json:"configuration"`
	Defaulted       bool                 `json:"defaulted,omitempty"`
	ComponentCount  int                  `json:"component_count"`
	SuppressedCount int                  `json:"suppressed_count"`
	UnnamedCount    int                  `json:"unnamed_count,omitempty"`
	Unique          int                  `json:"unique"`
	Total           int                  `json:"total"`
	Returned        int                  `json:"returned"`
	References      []refcount.Reference `json:"references,omitempty"`
}

func handleCountReferences(_ context.Context, _ *mcp.CallToolRequest, input countReferencesInput) (*mcp.CallToolResult, any, error) {
	doc, closeDoc, err := input.Snapshot.open()
	if err != nil {
		return errResult(err), nil, nil
	}
	defer closeDoc()

	counter := refcount.New()
	counter.IgnoreSuppressed = !input.IncludeSuppressed
	counter.Configuration = input.Configuration
	counter.StrictConfiguration = input.Strict || cfg.StrictConfiguration
	counter.Logger = logger.With("tool", "count_references")
	counter.Metrics = recorder

	res, err := counter.CountDetailed(doc)
	if err != nil {
		return errResult(err), nil, nil
	}

	sorted := res.References.Sorted()
	paged := paginate(sorted, input.Offset, input.Limit)
	output := countReferencesOutput{
		Document:        res.Document,
		Configuration:   res.Configuration,
		Defaulted:       res.Defaulted,
		ComponentCount:  res.ComponentCount,
		SuppressedCount: res.SuppressedCount,
		UnnamedCount:    res.UnnamedCount,
		Unique:          len(sorted),
		Total:           res.References.Total(),
		Returned:        len(paged),
		References:      makeSlice[refcount.Reference](len(paged)),
	}
	output.References = append(output.References, paged...)
	return nil, output, nil
}
