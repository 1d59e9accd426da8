package commands

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/erraggy/cadrefs/docmgr"
	"github.com/erraggy/cadrefs/refcount"
)

// InfoFlags contains flags for the info command
type InfoFlags struct {
	Format     string
	LicenseKey string
}

// InfoOutput is the structured output of the info command.
type InfoOutput struct {
	Document       string   `json:"document" yaml:"document"`
	Type           string   `json:"type" yaml:"type"`
	Version        int      `json:"version" yaml:"version"`
	MinimumVersion int      `json:"minimum_version" yaml:"minimum_version"`
	Supported      bool     `json:"supported" yaml:"supported"`
	Configurations []string `json:"configurations,omitempty" yaml:"configurations,omitempty"`
}

// SetupInfoFlags creates and configures a FlagSet for the info command.
// Returns the FlagSet and an InfoFlags struct with bound flag variables.
func SetupInfoFlags() (*flag.FlagSet, *InfoFlags) {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	flags := &InfoFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.LicenseKey, "license", DefaultLicenseKey(), "document manager license key (env "+LicenseKeyEnv+")")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: cadrefs info [flags] <library|-> [document]\n\n")
		Writef(output, "Describe a document: type, version, support status and configurations.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  cadrefs info vault.yaml 'C:\\Vault\\Top.SLDASM'\n")
		Writef(output, "  cadrefs info --format json part.yaml\n")
	}

	return fs, flags
}

// HandleInfo executes the info command
func HandleInfo(args []string) error {
	fs, flags := SetupInfoFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return fmt.Errorf("info command requires a library file (or '-' for stdin) and an optional document path")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	s, err := openSession(fs.Args(), flags.LicenseKey)
	if err != nil {
		return err
	}

	var output InfoOutput
	err = s.withDocument(func(doc docmgr.Document) error {
		// An absent configuration list is shown as empty.
		names, _ := docmgr.ConfigurationNames(doc)
		output = InfoOutput{
			Document:       doc.FullName(),
			Type:           docmgr.DocumentTypeFromPath(doc.FullName()).String(),
			Version:        doc.Version(),
			MinimumVersion: refcount.MinimumVersion,
			Supported:      doc.Version() >= refcount.MinimumVersion,
			Configurations: names,
		}
		return nil
	})
	if err != nil {
		return err
	}

	if flags.Format != FormatText {
		return OutputStructured(output, flags.Format)
	}

	supported := "yes"
	if !output.Supported {
		supported = fmt.Sprintf("no (minimum version %d)", output.MinimumVersion)
	}
	configurations := "<none>"
	if len(output.Configurations) > 0 {
		configurations = strings.Join(output.Configurations, ", ")
	}
	Writef(stdout, "Document: %s\n", output.Document)
	Writef(stdout, "Type: %s\n", output.Type)
	Writef(stdout, "Version: %d\n", output.Version)
	Writef(stdout, "Supported: %s\n", supported)
	Writef(stdout, "Configurations: %s\n", configurations)
	return nil
}
