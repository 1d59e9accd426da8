package snapshot

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/erraggy/cadrefs/docmgr"
)

// ErrLicense is returned by Factory.GetApplication for a rejected license key.
var ErrLicense = errors.New("snapshot: invalid license key")

// Factory is a docmgr.ClassFactory serving documents from a Library.
type Factory struct {
	lib *Library
	// Accept validates license keys. Nil accepts any non-blank key.
	Accept func(licenseKey string) bool
}

// NewFactory returns a Factory for lib.
func NewFactory(lib *Library) *Factory {
	return &Factory{lib: lib}
}

// GetApplication implements docmgr.ClassFactory.
func (f *Factory) GetApplication(licenseKey string) (docmgr.Application, error) {
	if strings.TrimSpace(licenseKey) == "" {
		return nil, ErrLicense
	}
	if f.Accept != nil && !f.Accept(licenseKey) {
		return nil, ErrLicense
	}
	return NewApplication(f.lib), nil
}

var _ docmgr.ClassFactory = (*Factory)(nil)

// Application is a docmgr.Application over a Library.
// It is safe for concurrent use.
type Application struct {
	lib *Library

	mu   sync.Mutex
	open map[*Document]struct{}
}

// NewApplication returns an Application serving documents from lib.
func NewApplication(lib *Library) *Application {
	if lib == nil {
		lib = &Library{}
	}
	return &Application{lib: lib, open: make(map[*Document]struct{})}
}

// GetDocument implements docmgr.Application.
// The requested type must match the type implied by the document's path.
func (a *Application) GetDocument(path string, docType docmgr.DocumentType, _ bool) (docmgr.Document, error) {
	spec, ok := a.lib.Find(path)
	if !ok {
		return nil, fmt.Errorf("snapshot: %s: %w", path, fs.ErrNotExist)
	}
	if actual := docmgr.DocumentTypeFromPath(spec.Path); actual != docType {
		return nil, fmt.Errorf("snapshot: %s is of type %s, not %s", spec.Path, actual, docType)
	}

	doc := &Document{spec: spec}
	a.mu.Lock()
	a.open[doc] = struct{}{}
	a.mu.Unlock()
	return doc, nil
}

// CloseDocument implements docmgr.Application.
func (a *Application) CloseDocument(doc docmgr.Document) error {
	d, ok := doc.(*Document)
	if !ok {
		return fmt.Errorf("snapshot: cannot close foreign document %T", doc)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.open[d]; !ok {
		return fmt.Errorf("snapshot: %s is not open", d.FullName())
	}
	delete(a.open, d)
	return nil
}

// OpenCount returns the number of documents currently open.
func (a *Application) OpenCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.open)
}

var _ docmgr.Application = (*Application)(nil)
