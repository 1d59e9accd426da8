package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/cadrefs/refcount"
)

// RefsFlags contains flags for the refs command
type RefsFlags struct {
	Configuration     string
	IncludeSuppressed bool
	Strict            bool
	Format            string
	LicenseKey        string
	Verbose           bool
}

// RefsOutput is the structured output of the refs command.
type RefsOutput struct {
	Document        string               `json:"document" yaml:"document"`
	Configuration   string               `json:"configuration" yaml:"configuration"`
	Defaulted       bool                 `json:"defaulted" yaml:"defaulted"`
	ComponentCount  int                  `json:"component_count" yaml:"component_count"`
	SuppressedCount int                  `json:"suppressed_count" yaml:"suppressed_count"`
	UnnamedCount    int                  `json:"unnamed_count,omitempty" yaml:"unnamed_count,omitempty"`
	Unique          int                  `json:"unique" yaml:"unique"`
	Total           int                  `json:"total" yaml:"total"`
	References      []refcount.Reference `json:"references" yaml:"references"`
}

// SetupRefsFlags creates and configures a FlagSet for the refs command.
// Returns the FlagSet and a RefsFlags struct with bound flag variables.
func SetupRefsFlags() (*flag.FlagSet, *RefsFlags) {
	fs := flag.NewFlagSet("refs", flag.ContinueOnError)
	flags := &RefsFlags{}

	fs.StringVar(&flags.Configuration, "config", "", "configuration to count (default: first configuration of the document)")
	fs.BoolVar(&flags.IncludeSuppressed, "include-suppressed", false, "count suppressed components too")
	fs.BoolVar(&flags.Strict, "strict", false, "require --config instead of defaulting to the first configuration")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.LicenseKey, "license", DefaultLicenseKey(), "document manager license key (env "+LicenseKeyEnv+")")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log diagnostics to stderr")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: cadrefs refs [flags] <library|-> [document]\n\n")
		Writef(output, "Count the external files referenced by a document configuration.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  cadrefs refs vault.yaml 'C:\\Vault\\Top.SLDASM'\n")
		Writef(output, "  cadrefs refs --config Simplified vault.yaml 'C:\\Vault\\Top.SLDASM'\n")
		Writef(output, "  cadrefs refs --format json --include-suppressed part.yaml\n")
		Writef(output, "  cat vault.yaml | cadrefs refs - 'C:\\Vault\\Top.SLDASM'\n")
		Writef(output, "\nThe document may be omitted when the library holds a single document.\n")
		Writef(output, "\nExit Codes:\n")
		Writef(output, "  0    References counted\n")
		Writef(output, "  1    The document could not be opened or counted\n")
	}

	return fs, flags
}

// HandleRefs executes the refs command
func HandleRefs(args []string) error {
	fs, flags := SetupRefsFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return fmt.Errorf("refs command requires a library file (or '-' for stdin) and an optional document path")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	s, err := openSession(fs.Args(), flags.LicenseKey)
	if err != nil {
		return err
	}

	res, err := refcount.CountDetailedWithOptions(
		refcount.WithDocumentPath(s.app, s.path),
		refcount.WithConfiguration(flags.Configuration),
		refcount.WithIgnoreSuppressed(!flags.IncludeSuppressed),
		refcount.WithStrictConfiguration(flags.Strict),
		refcount.WithLogger(newLogger(flags.Verbose)),
	)
	if err != nil {
		return err
	}

	sorted := res.References.Sorted()
	output := RefsOutput{
		Document:        res.Document,
		Configuration:   res.Configuration,
		Defaulted:       res.Defaulted,
		ComponentCount:  res.ComponentCount,
		SuppressedCount: res.SuppressedCount,
		UnnamedCount:    res.UnnamedCount,
		Unique:          len(sorted),
		Total:           res.References.Total(),
		References:      sorted,
	}

	if flags.Format != FormatText {
		return OutputStructured(output, flags.Format)
	}

	configuration := output.Configuration
	if output.Defaulted {
		configuration += " (default)"
	}
	Writef(stdout, "Document: %s\n", output.Document)
	Writef(stdout, "Configuration: %s\n", configuration)
	Writef(stdout, "Components: %d (%d suppressed)\n\n", output.ComponentCount, output.SuppressedCount)
	for _, ref := range output.References {
		Writef(stdout, "%6d  %s\n", ref.Count, ref.Name)
	}
	if len(output.References) > 0 {
		Writef(stdout, "\n")
	}
	Writef(stdout, "Unique files: %d\n", output.Unique)
	Writef(stdout, "Total references: %d\n", output.Total)
	if output.UnnamedCount > 0 {
		Writef(stderr, "Warning: %d component(s) had no file name and were skipped\n", output.UnnamedCount)
	}
	return nil
}
