// Package cadrefs provides tools for inspecting CAD documents through a
// document-manager SDK without loading geometry.
//
// The library reads metadata the document manager already exposes and derives
// a de-duplicated tally of the external files a configuration references.
//
// # Overview
//
// The library consists of the following packages:
//
//   - docmgr: the document-manager boundary (application factory, open/close,
//     documents, configurations and components)
//   - refcount: count external references for a configuration
//   - snapshot: an in-memory document manager backed by a YAML or JSON
//     metadata snapshot
//   - dmerrors: structured error types for errors.Is / errors.As
//
// # Installation
//
//	go get github.com/erraggy/cadrefs
//
// # Quick Start
//
// Open a document and count the files referenced by its default configuration:
//
//	import (
//		"github.com/erraggy/cadrefs/docmgr"
//		"github.com/erraggy/cadrefs/refcount"
//		"github.com/erraggy/cadrefs/snapshot"
//	)
//
//	lib, err := snapshot.LoadFile("vault.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	app, err := docmgr.GetApplication(snapshot.NewFactory(lib), licenseKey)
//	if err != nil {
//		log.Fatal(err)
//	}
//	doc, err := docmgr.OpenDocument(app, `C:\Vault\Top.SLDASM`, true)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer docmgr.CloseDocument(app, doc)
//
//	refs, err := refcount.New().Count(doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, r := range refs.Sorted() {
//		fmt.Printf("%-40s %d\n", r.Name, r.Count)
//	}
//
// # Configuration Selection
//
// When no configuration name is given the first name reported by the
// document manager is used. That order belongs to the document manager and
// may differ between SDK versions; set refcount.Counter.Configuration, or
// StrictConfiguration to reject blank names, when the result must be
// reproducible.
//
// # Error Handling
//
// Failures are reported as typed errors from the dmerrors package:
//
//	refs, err := refcount.New().Count(doc)
//	switch {
//	case errors.Is(err, dmerrors.ErrUnsupportedVersion):
//		// document predates the supported format generation
//	case errors.Is(err, dmerrors.ErrConfigurationNotFound):
//		// the requested configuration does not exist
//	}
package cadrefs
