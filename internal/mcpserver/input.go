package mcpserver

import (
	"fmt"
	"strings"

	"github.com/erraggy/cadrefs/docmgr"
	"github.com/erraggy/cadrefs/internal/options"
	"github.com/erraggy/cadrefs/snapshot"
)

// documentInput identifies a document inside a metadata snapshot.
// Exactly one of File or Content must be set.
type documentInput struct {
	File     string `json:"file,omitempty"     jsonschema:"Path to a document metadata snapshot (YAML or JSON) on disk"`
	Content  string `json:"content,omitempty"  jsonschema:"Inline document metadata snapshot (YAML or JSON)"`
	Document string `json:"document,omitempty" jsonschema:"Path of the document within the snapshot; may be omitted when the snapshot holds one document"`
}

// library loads the snapshot from whichever input was provided.
func (s documentInput) library() (*snapshot.Library, error) {
	if err := options.ValidateSingleInputSource(
		"exactly one of file or content must be provided (got 0)",
		"exactly one of file or content must be provided (got 2)",
		s.File != "", s.Content != "",
	); err != nil {
		return nil, err
	}

	if s.Content != "" {
		if len(s.Content) > snapshot.MaxSnapshotSize {
			return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead",
				len(s.Content), snapshot.MaxSnapshotSize)
		}
		return snapshot.LoadReader(strings.NewReader(s.Content))
	}
	return snapshot.LoadFile(s.File)
}

// open loads the snapshot and opens the selected document read-only through
// the document manager. The returned close function must be called when the
// caller is done with the document.
func (s documentInput) open() (docmgr.Document, func(), error) {
	lib, err := s.library()
	if err != nil {
		return nil, nil, err
	}
	path, err := lib.DocumentPath(s.Document)
	if err != nil {
		return nil, nil, err
	}

	app, err := docmgr.GetApplication(snapshot.NewFactory(lib), cfg.LicenseKey)
	if err != nil {
		return nil, nil, err
	}
	doc, err := docmgr.OpenDocument(app, path, true)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		if err := docmgr.CloseDocument(app, doc); err != nil {
			logger.Warn("closing document failed", "document", path, "error", err)
		}
	}
	return doc, closeFn, nil
}
