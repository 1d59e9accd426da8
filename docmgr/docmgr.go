// Package docmgr defines the document-manager boundary used by cadrefs.
//
// The interfaces mirror the subset of a CAD document-manager SDK that cadrefs
// consumes: an application obtained from a licensed class factory, documents
// opened through that application, and the configurations and components a
// document exposes. Implementations are supplied by the caller; the snapshot
// package provides one backed by a metadata file.
//
// The helpers in this package are thin pass-throughs that add argument
// validation and typed errors from dmerrors.
package docmgr

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/erraggy/cadrefs/dmerrors"
)

// ClassFactory creates licensed document-manager applications.
type ClassFactory interface {
	GetApplication(licenseKey string) (Application, error)
}

// Application opens and closes documents.
type Application interface {
	// GetDocument opens the document at path as the given type.
	GetDocument(path string, docType DocumentType, readOnly bool) (Document, error)
	// CloseDocument releases a document returned by GetDocument.
	CloseDocument(doc Document) error
}

// Document is an opened CAD document.
//
// A nil slice from ConfigurationNames, or a nil Configuration from
// ConfigurationByName, means the document manager returned no data.
type Document interface {
	FullName() string
	Version() int
	ConfigurationNames() ([]string, error)
	ConfigurationByName(name string) (Configuration, error)
}

// Configuration is a named variant of a document that owns a component list.
type Configuration interface {
	Name() string
	// Components returns the configuration's components; nil and empty are equivalent.
	Components() []Component
}

// Component references an external file from a configuration.
type Component interface {
	PathName() string
	IsSuppressed() bool
}

// DocumentType identifies the kind of CAD document.
type DocumentType int

const (
	// DocumentUnknown is a file the document manager cannot open.
	DocumentUnknown DocumentType = iota
	// DocumentPart is a part file (.sldprt).
	DocumentPart
	// DocumentAssembly is an assembly file (.sldasm).
	DocumentAssembly
	// DocumentDrawing is a drawing file (.slddrw).
	DocumentDrawing
)

// String returns the lowercase type name.
func (t DocumentType) String() string {
	switch t {
	case DocumentPart:
		return "part"
	case DocumentAssembly:
		return "assembly"
	case DocumentDrawing:
		return "drawing"
	default:
		return "unknown"
	}
}

var extensionTypes = map[string]DocumentType{
	".sldprt": DocumentPart,
	".sldasm": DocumentAssembly,
	".slddrw": DocumentDrawing,
}

// DocumentTypeFromPath determines the document type from the file extension.
// Matching is case-insensitive; unrecognised extensions yield DocumentUnknown.
func DocumentTypeFromPath(path string) DocumentType {
	ext := strings.ToLower(filepath.Ext(BaseName(path)))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return DocumentUnknown
}

// BaseName returns the final element of a document-manager path.
// Both '/' and '\' are treated as separators because SDK paths are Windows
// paths regardless of the host platform. A path ending in a separator has an
// empty base name.
func BaseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// GetApplication obtains a document-manager application from factory.
func GetApplication(factory ClassFactory, licenseKey string) (Application, error) {
	if factory == nil {
		return nil, &dmerrors.ArgumentError{Argument: "factory", Message: "must not be nil"}
	}
	if strings.TrimSpace(licenseKey) == "" {
		return nil, &dmerrors.ArgumentError{Argument: "licenseKey", Message: "must not be blank"}
	}
	app, err := factory.GetApplication(licenseKey)
	if err != nil {
		return nil, fmt.Errorf("docmgr: getting application: %w", err)
	}
	if app == nil {
		return nil, fmt.Errorf("docmgr: factory returned no application")
	}
	return app, nil
}

// OpenDocument opens the document at path through app.
// The document type is derived from the file extension; paths that are not
// part, assembly, or drawing files fail with an error matching
// dmerrors.ErrUnknownDocumentType without contacting the document manager.
func OpenDocument(app Application, path string, readOnly bool) (Document, error) {
	if app == nil {
		return nil, &dmerrors.ArgumentError{Argument: "app", Message: "must not be nil"}
	}
	docType := DocumentTypeFromPath(path)
	if docType == DocumentUnknown {
		return nil, &dmerrors.OpenError{Path: path, Type: docType.String(), Message: "not a CAD document"}
	}
	doc, err := app.GetDocument(path, docType, readOnly)
	if err != nil {
		return nil, &dmerrors.OpenError{Path: path, Type: docType.String(), Cause: err}
	}
	if doc == nil {
		return nil, &dmerrors.OpenError{Path: path, Type: docType.String(), Message: "document manager returned no document"}
	}
	return doc, nil
}

// CloseDocument closes doc through app. A nil doc is ignored.
func CloseDocument(app Application, doc Document) error {
	if app == nil {
		return &dmerrors.ArgumentError{Argument: "app", Message: "must not be nil"}
	}
	if doc == nil {
		return nil
	}
	if err := app.CloseDocument(doc); err != nil {
		return fmt.Errorf("docmgr: closing %s: %w", doc.FullName(), err)
	}
	return nil
}

// ConfigurationNames returns the configuration names of doc in document-manager order.
func ConfigurationNames(doc Document) ([]string, error) {
	if doc == nil {
		return nil, &dmerrors.ArgumentError{Argument: "document", Message: "must not be nil"}
	}
	return doc.ConfigurationNames()
}
