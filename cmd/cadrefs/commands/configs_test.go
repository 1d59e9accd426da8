package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/cadrefs/dmerrors"
	"github.com/erraggy/cadrefs/internal/testutil"
	"github.com/erraggy/cadrefs/snapshot"
)

func TestSetupConfigsFlags(t *testing.T) {
	t.Setenv(LicenseKeyEnv, "")
	fs, flags := SetupConfigsFlags()

	assert.Equal(t, FormatText, flags.Format)
	assert.Equal(t, "snapshot", flags.LicenseKey)

	require.NoError(t, fs.Parse([]string{"--format", "yaml", "vault.yaml"}))
	assert.Equal(t, FormatYAML, flags.Format)
	assert.Equal(t, "vault.yaml", fs.Arg(0))
}

func TestHandleConfigs_NoArgs(t *testing.T) {
	captureOutput(t)
	assert.Error(t, HandleConfigs([]string{}))
}

func TestHandleConfigs_Help(t *testing.T) {
	assert.NoError(t, HandleConfigs([]string{"--help"}))
}

func TestHandleConfigs_Text(t *testing.T) {
	out, _ := captureOutput(t)

	require.NoError(t, HandleConfigs([]string{writeLibrary(t), testutil.TopAssemblyPath}))
	assert.Equal(t, "Default (default)\nSimplified\n", out.String())
}

func TestHandleConfigs_JSON(t *testing.T) {
	out, _ := captureOutput(t)

	require.NoError(t, HandleConfigs([]string{"--format", "json", writeLibrary(t), testutil.TopAssemblyPath}))

	var got ConfigsOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, testutil.TopAssemblyPath, got.Document)
	assert.Equal(t, []string{"Default", "Simplified"}, got.Configurations)
	assert.Equal(t, "Default", got.Default)
}

func TestHandleConfigs_Unavailable(t *testing.T) {
	captureOutput(t)
	lib := &snapshot.Library{Documents: []*snapshot.DocumentSpec{
		{Path: `C:\Vault\Top.SLDDRW`, Version: testutil.SupportedVersion},
	}}

	err := HandleConfigs([]string{testutil.WriteTempYAML(t, lib)})
	require.Error(t, err)
	assert.ErrorIs(t, err, dmerrors.ErrConfigurationListUnavailable)
}
