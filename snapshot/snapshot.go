// Package snapshot implements the docmgr interfaces over a metadata snapshot.
//
// A snapshot is a YAML or JSON file describing the documents a document
// manager would expose: their versions, configuration names, and the
// components of each configuration. Snapshots are typically exported once from
// a machine with the vendor SDK installed and then inspected anywhere.
//
//	documents:
//	  - path: C:\Vault\Top.SLDASM
//	    version: 5000
//	    configurations:
//	      - name: Default
//	        components:
//	          - path: C:\Vault\Bracket.SLDPRT
//	          - path: C:\Vault\Shaft.sldprt
//	            suppressed: true
//
// A document without a configurations key reports no configuration names. A
// configuration marked unresolvable is listed by name but cannot be obtained.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/cadrefs/docmgr"
)

// MaxSnapshotSize is the largest snapshot LoadReader and LoadFile accept.
const MaxSnapshotSize = 16 << 20

// DefaultLicenseKey is the key used when none is configured. Snapshot
// factories accept any non-blank key.
const DefaultLicenseKey = "snapshot"

// Library is a set of documents loaded from a snapshot.
type Library struct {
	Documents []*DocumentSpec `yaml:"documents" json:"documents"`
}

// DocumentSpec describes one document.
type DocumentSpec struct {
	Path           string               `yaml:"path" json:"path"`
	Version        int                  `yaml:"version" json:"version"`
	Configurations []*ConfigurationSpec `yaml:"configurations,omitempty" json:"configurations,omitempty"`
}

// ConfigurationSpec describes one configuration of a document.
type ConfigurationSpec struct {
	Name         string           `yaml:"name" json:"name"`
	Unresolvable bool             `yaml:"unresolvable,omitempty" json:"unresolvable,omitempty"`
	Components   []*ComponentSpec `yaml:"components,omitempty" json:"components,omitempty"`
}

// ComponentSpec describes one component of a configuration.
type ComponentSpec struct {
	Path       string `yaml:"path" json:"path"`
	Suppressed bool   `yaml:"suppressed,omitempty" json:"suppressed,omitempty"`
}

// Load parses a YAML or JSON snapshot.
func Load(data []byte) (*Library, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("snapshot: empty input")
	}
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("snapshot: decoding: %w", err)
	}
	if err := lib.validate(); err != nil {
		return nil, err
	}
	return &lib, nil
}

// LoadReader reads and parses a snapshot from r.
func LoadReader(r io.Reader) (*Library, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSnapshotSize+1))
	if err != nil {
		return nil, fmt.Errorf("snapshot: reading: %w", err)
	}
	if len(data) > MaxSnapshotSize {
		return nil, fmt.Errorf("snapshot: input exceeds %d bytes", MaxSnapshotSize)
	}
	return Load(data)
}

// LoadFile reads and parses the snapshot at path.
func LoadFile(path string) (*Library, error) {
	f, err := os.Open(path) //nolint:gosec // G304 - path is supplied by the user
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadReader(f)
}

func (l *Library) validate() error {
	seen := make(map[string]bool, len(l.Documents))
	for i, d := range l.Documents {
		if d == nil || strings.TrimSpace(d.Path) == "" {
			return fmt.Errorf("snapshot: documents[%d]: path is required", i)
		}
		key := pathKey(d.Path)
		if seen[key] {
			return fmt.Errorf("snapshot: duplicate document %s", d.Path)
		}
		seen[key] = true

		names := make(map[string]bool, len(d.Configurations))
		for j, c := range d.Configurations {
			if c == nil || c.Name == "" {
				return fmt.Errorf("snapshot: %s: configurations[%d]: name is required", d.Path, j)
			}
			if names[c.Name] {
				return fmt.Errorf("snapshot: %s: duplicate configuration %q", d.Path, c.Name)
			}
			names[c.Name] = true
			for k, comp := range c.Components {
				if comp == nil {
					return fmt.Errorf("snapshot: %s: %s: components[%d] is empty", d.Path, c.Name, k)
				}
			}
		}
	}
	return nil
}

// Find returns the document whose path matches path, ignoring case and
// separator style.
func (l *Library) Find(path string) (*DocumentSpec, bool) {
	key := pathKey(path)
	for _, d := range l.Documents {
		if pathKey(d.Path) == key {
			return d, true
		}
	}
	return nil, false
}

// DocumentPath resolves path to the path of a document in the library. A
// blank path selects the only document of a single-document library.
func (l *Library) DocumentPath(path string) (string, error) {
	if strings.TrimSpace(path) != "" {
		d, ok := l.Find(path)
		if !ok {
			return "", fmt.Errorf("snapshot: document %s not found", path)
		}
		return d.Path, nil
	}
	switch len(l.Documents) {
	case 0:
		return "", errors.New("snapshot: library has no documents")
	case 1:
		return l.Documents[0].Path, nil
	default:
		return "", fmt.Errorf("snapshot: library has %d documents, select one of: %s",
			len(l.Documents), strings.Join(l.Paths(), ", "))
	}
}

// Paths returns the document paths in snapshot order.
func (l *Library) Paths() []string {
	paths := make([]string, 0, len(l.Documents))
	for _, d := range l.Documents {
		paths = append(paths, d.Path)
	}
	return paths
}

func pathKey(path string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(path), `\`, "/"))
}

// Document adapts a DocumentSpec to docmgr.Document.
type Document struct {
	spec *DocumentSpec
}

// NewDocument wraps spec without going through an Application.
func NewDocument(spec *DocumentSpec) *Document {
	return &Document{spec: spec}
}

// errNilDocument is returned by the methods of a nil *Document.
var errNilDocument = errors.New("snapshot: nil document")

// FullName implements docmgr.Document.
func (d *Document) FullName() string {
	if d == nil || d.spec == nil {
		return ""
	}
	return d.spec.Path
}

// Version implements docmgr.Document. A nil *Document reports version 0.
func (d *Document) Version() int {
	if d == nil || d.spec == nil {
		return 0
	}
	return d.spec.Version
}

// ConfigurationNames implements docmgr.Document.
// It returns nil when the snapshot recorded no configurations.
func (d *Document) ConfigurationNames() ([]string, error) {
	if d == nil || d.spec == nil {
		return nil, errNilDocument
	}
	if d.spec.Configurations == nil {
		return nil, nil
	}
	names := make([]string, 0, len(d.spec.Configurations))
	for _, c := range d.spec.Configurations {
		names = append(names, c.Name)
	}
	return names, nil
}

// ConfigurationByName implements docmgr.Document.
func (d *Document) ConfigurationByName(name string) (docmgr.Configuration, error) {
	if d == nil || d.spec == nil {
		return nil, errNilDocument
	}
	for _, c := range d.spec.Configurations {
		if c.Name == name {
			if c.Unresolvable {
				return nil, nil
			}
			return &Configuration{spec: c}, nil
		}
	}
	return nil, nil
}

var _ docmgr.Document = (*Document)(nil)

// Configuration adapts a ConfigurationSpec to docmgr.Configuration.
type Configuration struct {
	spec *ConfigurationSpec
}

// Name implements docmgr.Configuration.
func (c *Configuration) Name() string { return c.spec.Name }

// Components implements docmgr.Configuration.
func (c *Configuration) Components() []docmgr.Component {
	if len(c.spec.Components) == 0 {
		return nil
	}
	comps := make([]docmgr.Component, 0, len(c.spec.Components))
	for _, s := range c.spec.Components {
		comps = append(comps, component{spec: s})
	}
	return comps
}

var _ docmgr.Configuration = (*Configuration)(nil)

type component struct {
	spec *ComponentSpec
}

func (c component) PathName() string   { return c.spec.Path }
func (c component) IsSuppressed() bool { return c.spec.Suppressed }
