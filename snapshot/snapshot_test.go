package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const librarySnapshot = `documents:
  - path: C:\Vault\Top.SLDASM
    version: 5000
    configurations:
      - name: Default
        components:
          - path: C:\Vault\Bracket.SLDPRT
          - path: C:\Vault\Shaft.sldprt
            suppressed: true
      - name: Broken
        unresolvable: true
      - name: Empty
  - path: C:\Vault\NoConfigs.SLDPRT
    version: 4000
`

func TestLoad(t *testing.T) {
	lib, err := Load([]byte(librarySnapshot))
	require.NoError(t, err)
	require.Len(t, lib.Documents, 2)

	top := lib.Documents[0]
	assert.Equal(t, `C:\Vault\Top.SLDASM`, top.Path)
	assert.Equal(t, 5000, top.Version)
	require.Len(t, top.Configurations, 3)
	assert.True(t, top.Configurations[0].Components[1].Suppressed)
	assert.True(t, top.Configurations[1].Unresolvable)

	assert.Nil(t, lib.Documents[1].Configurations)
	assert.Equal(t, []string{`C:\Vault\Top.SLDASM`, `C:\Vault\NoConfigs.SLDPRT`}, lib.Paths())
}

func TestLoad_JSON(t *testing.T) {
	data := `{"documents":[{"path":"C:\\Vault\\A.SLDPRT","version":3000,"configurations":[{"name":"Default","components":[{"path":"b.sldprt"}]}]}]}`
	lib, err := Load([]byte(data))
	require.NoError(t, err)
	require.Len(t, lib.Documents, 1)
	assert.Equal(t, `C:\Vault\A.SLDPRT`, lib.Documents[0].Path)
	assert.Equal(t, "b.sldprt", lib.Documents[0].Configurations[0].Components[0].Path)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "empty", input: "  \n", wantErr: "empty input"},
		{name: "malformed", input: "documents: [", wantErr: "decoding"},
		{name: "missing path", input: "documents:\n  - version: 1\n", wantErr: "path is required"},
		{name: "duplicate document", input: "documents:\n  - path: a.sldprt\n  - path: A.SLDPRT\n", wantErr: "duplicate document"},
		{name: "missing configuration name", input: "documents:\n  - path: a.sldprt\n    configurations:\n      - components: []\n", wantErr: "name is required"},
		{name: "duplicate configuration", input: "documents:\n  - path: a.sldprt\n    configurations:\n      - name: X\n      - name: X\n", wantErr: "duplicate configuration"},
		{name: "null component", input: "documents:\n  - path: a.sldprt\n    configurations:\n      - name: X\n        components:\n          - null\n", wantErr: "components[0] is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.yaml")
	require.NoError(t, os.WriteFile(path, []byte(librarySnapshot), 0o600))

	lib, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, lib.Documents, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadReader_TooLarge(t *testing.T) {
	r := strings.NewReader(strings.Repeat(" ", MaxSnapshotSize+1))
	_, err := LoadReader(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestFind(t *testing.T) {
	lib, err := Load([]byte(librarySnapshot))
	require.NoError(t, err)

	for _, path := range []string{`C:\Vault\Top.SLDASM`, `c:\vault\top.sldasm`, "C:/Vault/Top.SLDASM", ` C:\Vault\Top.SLDASM `} {
		doc, ok := lib.Find(path)
		require.True(t, ok, "expected to find %q", path)
		assert.Equal(t, 5000, doc.Version)
	}

	_, ok := lib.Find(`C:\Vault\Other.SLDASM`)
	assert.False(t, ok)
}

func TestDocument(t *testing.T) {
	lib, err := Load([]byte(librarySnapshot))
	require.NoError(t, err)

	doc := NewDocument(lib.Documents[0])
	assert.Equal(t, `C:\Vault\Top.SLDASM`, doc.FullName())
	assert.Equal(t, 5000, doc.Version())

	names, err := doc.ConfigurationNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Default", "Broken", "Empty"}, names)

	t.Run("resolvable configuration", func(t *testing.T) {
		config, err := doc.ConfigurationByName("Default")
		require.NoError(t, err)
		require.NotNil(t, config)
		assert.Equal(t, "Default", config.Name())

		comps := config.Components()
		require.Len(t, comps, 2)
		assert.Equal(t, `C:\Vault\Bracket.SLDPRT`, comps[0].PathName())
		assert.False(t, comps[0].IsSuppressed())
		assert.True(t, comps[1].IsSuppressed())
	})

	t.Run("unresolvable configuration", func(t *testing.T) {
		config, err := doc.ConfigurationByName("Broken")
		require.NoError(t, err)
		assert.Nil(t, config)
	})

	t.Run("unknown configuration", func(t *testing.T) {
		config, err := doc.ConfigurationByName("Missing")
		require.NoError(t, err)
		assert.Nil(t, config)
	})

	t.Run("empty configuration", func(t *testing.T) {
		config, err := doc.ConfigurationByName("Empty")
		require.NoError(t, err)
		require.NotNil(t, config)
		assert.Empty(t, config.Components())
	})

	t.Run("document without configurations", func(t *testing.T) {
		names, err := NewDocument(lib.Documents[1]).ConfigurationNames()
		require.NoError(t, err)
		assert.Nil(t, names)
	})
}

func TestDocumentPath(t *testing.T) {
	lib, err := Load([]byte(librarySnapshot))
	require.NoError(t, err)

	t.Run("explicit path is normalized to the library path", func(t *testing.T) {
		path, err := lib.DocumentPath("c:/vault/top.sldasm")
		require.NoError(t, err)
		assert.Equal(t, `C:\Vault\Top.SLDASM`, path)
	})

	t.Run("unknown path", func(t *testing.T) {
		_, err := lib.DocumentPath(`C:\Vault\Other.SLDASM`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("blank path with several documents", func(t *testing.T) {
		_, err := lib.DocumentPath("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "select one of")
	})

	t.Run("blank path with one document", func(t *testing.T) {
		single := &Library{Documents: lib.Documents[:1]}
		path, err := single.DocumentPath(" ")
		require.NoError(t, err)
		assert.Equal(t, `C:\Vault\Top.SLDASM`, path)
	})

	t.Run("empty library", func(t *testing.T) {
		_, err := (&Library{}).DocumentPath("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no documents")
	})
}

func TestDocument_NilReceiver(t *testing.T) {
	var doc *Document

	assert.Empty(t, doc.FullName())
	assert.Equal(t, 0, doc.Version())

	names, err := doc.ConfigurationNames()
	require.Error(t, err)
	assert.Nil(t, names)

	config, err := doc.ConfigurationByName("Default")
	require.Error(t, err)
	assert.Nil(t, config)
}
