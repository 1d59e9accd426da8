// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/cadrefs/docmgr"
	"github.com/erraggy/cadrefs/snapshot"
)

// SupportedVersion is a document version accepted by refcount.
const SupportedVersion = 5000

// TopAssemblyPath is the path of the assembly in NewAssemblyLibrary.
const TopAssemblyPath = `C:\Vault\Top.SLDASM`

// NewAssemblyDocument creates an assembly with a "Default" configuration
// referencing Bracket twice (differing in case and directory) and Shaft once,
// and a "Simplified" configuration in which Bracket is suppressed.
func NewAssemblyDocument() *snapshot.DocumentSpec {
	return &snapshot.DocumentSpec{
		Path:    TopAssemblyPath,
		Version: SupportedVersion,
		Configurations: []*snapshot.ConfigurationSpec{
			{
				Name: "Default",
				Components: []*snapshot.ComponentSpec{
					{Path: `C:\Vault\Parts\Bracket.SLDPRT`},
					{Path: `C:\Vault\Purchased\BRACKET.sldprt`},
					{Path: `C:\Vault\Parts\Shaft.sldprt`},
				},
			},
			{
				Name: "Simplified",
				Components: []*snapshot.ComponentSpec{
					{Path: `C:\Vault\Parts\Bracket.SLDPRT`, Suppressed: true},
					{Path: `C:\Vault\Parts\Shaft.sldprt`},
				},
			},
		},
	}
}

// NewAssemblyLibrary creates a library holding NewAssemblyDocument and a
// legacy part saved before the minimum supported version.
func NewAssemblyLibrary() *snapshot.Library {
	return &snapshot.Library{
		Documents: []*snapshot.DocumentSpec{
			NewAssemblyDocument(),
			{
				Path:    `C:\Vault\Legacy\Old.SLDPRT`,
				Version: 1500,
				Configurations: []*snapshot.ConfigurationSpec{
					{Name: "Default"},
				},
			},
		},
	}
}

// NewDocument wraps spec as a docmgr.Document.
func NewDocument(spec *snapshot.DocumentSpec) docmgr.Document {
	return snapshot.NewDocument(spec)
}

// FakeDocument is a docmgr.Document whose provider calls are supplied by the
// test, for simulating document-manager failures a snapshot cannot express.
type FakeDocument struct {
	Name         string
	DocVersion   int
	Names        []string
	NamesErr     error
	Configs      map[string]docmgr.Configuration
	ResolveErr   error
	NamesCalls   int
	ResolveCalls int
}

// FullName implements docmgr.Document.
func (f *FakeDocument) FullName() string { return f.Name }

// Version implements docmgr.Document.
func (f *FakeDocument) Version() int { return f.DocVersion }

// ConfigurationNames implements docmgr.Document.
func (f *FakeDocument) ConfigurationNames() ([]string, error) {
	f.NamesCalls++
	return f.Names, f.NamesErr
}

// ConfigurationByName implements docmgr.Document.
func (f *FakeDocument) ConfigurationByName(name string) (docmgr.Configuration, error) {
	f.ResolveCalls++
	if f.ResolveErr != nil {
		return nil, f.ResolveErr
	}
	return f.Configs[name], nil
}

var _ docmgr.Document = (*FakeDocument)(nil)

// FakeConfiguration is a docmgr.Configuration with a fixed component list.
type FakeConfiguration struct {
	ConfigName string
	Comps      []docmgr.Component
}

// Name implements docmgr.Configuration.
func (c *FakeConfiguration) Name() string { return c.ConfigName }

// Components implements docmgr.Configuration.
func (c *FakeConfiguration) Components() []docmgr.Component { return c.Comps }

// FakeComponent is a docmgr.Component.
type FakeComponent struct {
	Path       string
	Suppressed bool
}

// PathName implements docmgr.Component.
func (c FakeComponent) PathName() string { return c.Path }

// IsSuppressed implements docmgr.Component.
func (c FakeComponent) IsSuppressed() bool { return c.Suppressed }

// WriteTempYAML marshals a value to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, v any) string {
	t.Helper()

	data, err := yaml.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal to YAML: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}

	return tmpFile
}

// WriteTempJSON marshals a value to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, v any) string {
	t.Helper()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal to JSON: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary JSON file: %v", err)
	}

	return tmpFile
}
