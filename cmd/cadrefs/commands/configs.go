package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/cadrefs/dmerrors"
	"github.com/erraggy/cadrefs/docmgr"
)

// ConfigsFlags contains flags for the configs command
type ConfigsFlags struct {
	Format     string
	LicenseKey string
}

// ConfigsOutput is the structured output of the configs command.
type ConfigsOutput struct {
	Document       string   `json:"document" yaml:"document"`
	Configurations []string `json:"configurations" yaml:"configurations"`
	Default        string   `json:"default" yaml:"default"`
}

// SetupConfigsFlags creates and configures a FlagSet for the configs command.
// Returns the FlagSet and a ConfigsFlags struct with bound flag variables.
func SetupConfigsFlags() (*flag.FlagSet, *ConfigsFlags) {
	fs := flag.NewFlagSet("configs", flag.ContinueOnError)
	flags := &ConfigsFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.LicenseKey, "license", DefaultLicenseKey(), "document manager license key (env "+LicenseKeyEnv+")")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: cadrefs configs [flags] <library|-> [document]\n\n")
		Writef(output, "List the configuration names of a document in document-manager order.\n")
		Writef(output, "The first name is the one refs counts when --config is not given.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  cadrefs configs vault.yaml 'C:\\Vault\\Top.SLDASM'\n")
		Writef(output, "  cadrefs configs --format yaml part.yaml\n")
	}

	return fs, flags
}

// HandleConfigs executes the configs command
func HandleConfigs(args []string) error {
	fs, flags := SetupConfigsFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return fmt.Errorf("configs command requires a library file (or '-' for stdin) and an optional document path")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	s, err := openSession(fs.Args(), flags.LicenseKey)
	if err != nil {
		return err
	}

	var output ConfigsOutput
	err = s.withDocument(func(doc docmgr.Document) error {
		names, err := docmgr.ConfigurationNames(doc)
		if err != nil || len(names) == 0 {
			return &dmerrors.ReferenceError{
				Kind:     dmerrors.KindConfigurationListUnavailable,
				Document: doc.FullName(),
				Cause:    err,
			}
		}
		output = ConfigsOutput{Document: doc.FullName(), Configurations: names, Default: names[0]}
		return nil
	})
	if err != nil {
		return err
	}

	if flags.Format != FormatText {
		return OutputStructured(output, flags.Format)
	}

	for _, name := range output.Configurations {
		if name == output.Default {
			Writef(stdout, "%s (default)\n", name)
			continue
		}
		Writef(stdout, "%s\n", name)
	}
	return nil
}
