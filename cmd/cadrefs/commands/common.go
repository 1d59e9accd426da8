// Package commands provides CLI command handlers for cadrefs.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/cadrefs/docmgr"
	"github.com/erraggy/cadrefs/refcount"
	"github.com/erraggy/cadrefs/snapshot"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// LicenseKeyEnv names the environment variable holding the default license key.
const LicenseKeyEnv = "CADREFS_LICENSE_KEY"

// Standard streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin  io.Reader = os.Stdin
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
// Returns an error if marshaling fails.
func OutputStructured(data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(stdout, "%s\n", bytes)
	return nil
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool, not a web server
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// FormatLibraryPath returns a display-friendly path for the snapshot.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatLibraryPath(libraryPath string) string {
	if libraryPath == StdinFilePath {
		return "<stdin>"
	}
	return libraryPath
}

// DefaultLicenseKey returns the license key from the environment, falling
// back to the key accepted by snapshot libraries.
func DefaultLicenseKey() string {
	if key := os.Getenv(LicenseKeyEnv); key != "" {
		return key
	}
	return snapshot.DefaultLicenseKey
}

// LoadLibrary reads the snapshot at libraryPath, or from stdin for StdinFilePath.
func LoadLibrary(libraryPath string) (*snapshot.Library, error) {
	var lib *snapshot.Library
	var err error
	if libraryPath == StdinFilePath {
		lib, err = snapshot.LoadReader(stdin)
	} else {
		lib, err = snapshot.LoadFile(libraryPath)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", FormatLibraryPath(libraryPath), err)
	}
	return lib, nil
}

// session is an application with the document a command operates on.
type session struct {
	app  docmgr.Application
	path string
}

// openSession loads the library, resolves the document argument and
// acquires an application with licenseKey. The document itself is not opened.
func openSession(args []string, licenseKey string) (*session, error) {
	lib, err := LoadLibrary(args[0])
	if err != nil {
		return nil, err
	}
	var docArg string
	if len(args) > 1 {
		docArg = args[1]
	}
	path, err := lib.DocumentPath(docArg)
	if err != nil {
		return nil, err
	}
	app, err := docmgr.GetApplication(snapshot.NewFactory(lib), licenseKey)
	if err != nil {
		return nil, err
	}
	return &session{app: app, path: path}, nil
}

// withDocument opens the session's document read-only, calls fn and closes it.
func (s *session) withDocument(fn func(docmgr.Document) error) (err error) {
	doc, err := docmgr.OpenDocument(s.app, s.path, true)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := docmgr.CloseDocument(s.app, doc); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(doc)
}

// newLogger returns a debug-level slog logger on stderr when verbose is set.
func newLogger(verbose bool) refcount.Logger {
	if !verbose {
		return refcount.NopLogger{}
	}
	handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return refcount.NewSlogAdapter(slog.New(handler))
}
