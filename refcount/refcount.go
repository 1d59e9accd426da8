// Package refcount counts the external files referenced by a CAD document
// configuration.
//
// A count selects a configuration (the caller's choice, or the first name the
// document manager reports), lists that configuration's components, drops
// suppressed components unless told otherwise, and tallies the remaining
// components by lowercase base filename:
//
//	c := refcount.New()
//	c.Configuration = "Default"
//	refs, err := c.Count(doc)
//
// Failures are *dmerrors.ReferenceError values tagged with the failed stage,
// or *dmerrors.ArgumentError when no document is supplied. No partial result
// is returned on error.
//
// A Counter holds no state between calls and performs no locking; callers
// sharing a document across goroutines must serialize access themselves.
package refcount

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/cadrefs/dmerrors"
	"github.com/erraggy/cadrefs/docmgr"
)

// MinimumVersion is the oldest document version that reports configuration
// components. Documents below it were saved by SOLIDWORKS 2002 or earlier.
const MinimumVersion = 2200

// Counter counts external references. The zero value counts suppressed
// components and uses MinimumVersion; use New for the usual defaults.
type Counter struct {
	// IgnoreSuppressed skips components the document reports as suppressed.
	IgnoreSuppressed bool
	// Configuration is the configuration to count. Blank selects the first
	// configuration in document-manager order.
	Configuration string
	// StrictConfiguration rejects a blank Configuration instead of defaulting.
	StrictConfiguration bool
	// MinimumVersion overrides the minimum supported document version when positive.
	MinimumVersion int
	// Logger receives debug output. Nil discards it.
	Logger Logger
	// Metrics records per-call outcomes. Nil discards them.
	Metrics MetricsRecorder
}

// New returns a Counter that ignores suppressed components and defaults to the
// first configuration.
func New() *Counter {
	return &Counter{
		IgnoreSuppressed: true,
		MinimumVersion:   MinimumVersion,
		Logger:           NopLogger{},
	}
}

// Result describes a completed count.
type Result struct {
	// Document is the document's full name.
	Document string `json:"document" yaml:"document"`
	// Version is the document version.
	Version int `json:"version" yaml:"version"`
	// Configuration is the configuration that was counted.
	Configuration string `json:"configuration" yaml:"configuration"`
	// Defaulted is true when Configuration came from document-manager order.
	Defaulted bool `json:"defaulted" yaml:"defaulted"`
	// ComponentCount is the number of components the configuration listed.
	ComponentCount int `json:"component_count" yaml:"component_count"`
	// SuppressedCount is the number of components skipped as suppressed.
	SuppressedCount int `json:"suppressed_count" yaml:"suppressed_count"`
	// UnnamedCount is the number of components whose path had no file name.
	UnnamedCount int `json:"unnamed_count,omitempty" yaml:"unnamed_count,omitempty"`
	// References maps lowercase base filenames to occurrence counts.
	References References `json:"references" yaml:"references"`
}

// Count returns the reference tally for doc.
//
// A nil interface value is rejected with an InvalidArgument error. A non-nil
// interface holding a nil pointer is passed to the provider as is; providers
// in this module answer such documents without panicking.
func (c *Counter) Count(doc docmgr.Document) (References, error) {
	res, err := c.CountDetailed(doc)
	if err != nil {
		return nil, err
	}
	return res.References, nil
}

// CountDetailed returns the reference tally for doc together with the
// configuration that was used and component statistics.
func (c *Counter) CountDetailed(doc docmgr.Document) (*Result, error) {
	start := time.Now()
	res, err := c.count(doc)
	if err != nil {
		c.metrics().RecordCount(Outcome(err), 0, 0, time.Since(start))
		return nil, err
	}
	c.metrics().RecordCount(OutcomeSuccess, res.ComponentCount, res.SuppressedCount, time.Since(start))
	c.logger().Debug("counted external references",
		"document", res.Document,
		"configuration", res.Configuration,
		"components", res.ComponentCount,
		"suppressed", res.SuppressedCount,
		"unique", len(res.References),
	)
	return res, nil
}

func (c *Counter) count(doc docmgr.Document) (*Result, error) {
	if doc == nil {
		return nil, &dmerrors.ArgumentError{Argument: "document", Message: "must not be nil"}
	}
	name := doc.FullName()

	minimum := c.MinimumVersion
	if minimum <= 0 {
		minimum = MinimumVersion
	}
	version := doc.Version()
	if version < minimum {
		return nil, &dmerrors.ReferenceError{
			Kind:     dmerrors.KindUnsupportedVersion,
			Document: name,
			Version:  version,
			Minimum:  minimum,
			Message:  "document was created with SOLIDWORKS 2002 or older",
		}
	}

	configName, defaulted, err := c.selectConfiguration(doc)
	if err != nil {
		return nil, err
	}

	config, err := doc.ConfigurationByName(configName)
	if err != nil || config == nil {
		return nil, &dmerrors.ReferenceError{
			Kind:          dmerrors.KindConfigurationResolutionFailed,
			Document:      name,
			Configuration: configName,
			Cause:         err,
		}
	}

	res := &Result{
		Document:      name,
		Version:       version,
		Configuration: configName,
		Defaulted:     defaulted,
		References:    make(References),
	}
	lower := cases.Lower(language.Und)
	for _, comp := range config.Components() {
		res.ComponentCount++
		if c.IgnoreSuppressed && comp.IsSuppressed() {
			res.SuppressedCount++
			continue
		}
		base := docmgr.BaseName(comp.PathName())
		if base == "" {
			res.UnnamedCount++
			c.logger().Warn("component has no file name", "document", name, "path", comp.PathName())
			continue
		}
		res.References[lower.String(base)]++
	}
	return res, nil
}

// selectConfiguration discovers the document's configuration names and
// resolves the requested name against them.
func (c *Counter) selectConfiguration(doc docmgr.Document) (string, bool, error) {
	names, err := doc.ConfigurationNames()
	if err != nil || len(names) == 0 {
		return "", false, &dmerrors.ReferenceError{
			Kind:     dmerrors.KindConfigurationListUnavailable,
			Document: doc.FullName(),
			Cause:    err,
		}
	}

	requested := c.Configuration
	defaulted := false
	if strings.TrimSpace(requested) == "" {
		if c.StrictConfiguration {
			return "", false, &dmerrors.ArgumentError{
				Argument: "configuration",
				Message:  "a configuration name is required",
			}
		}
		requested = names[0]
		defaulted = true
		c.logger().Debug("defaulted to first configuration", "document", doc.FullName(), "configuration", requested)
	}

	for _, n := range names {
		if n == requested {
			return requested, defaulted, nil
		}
	}
	return "", false, &dmerrors.ReferenceError{
		Kind:          dmerrors.KindConfigurationNotFound,
		Document:      doc.FullName(),
		Configuration: requested,
		Available:     append([]string(nil), names...),
	}
}

func (c *Counter) logger() Logger {
	if c.Logger == nil {
		return NopLogger{}
	}
	return c.Logger
}

func (c *Counter) metrics() MetricsRecorder {
	if c.Metrics == nil {
		return nopRecorder{}
	}
	return c.Metrics
}

// Outcome labels for MetricsRecorder.
const (
	OutcomeSuccess         = "success"
	OutcomeInvalidArgument = "InvalidArgument"
	OutcomeError           = "error"
)

// Outcome classifies err for metrics and tool output: OutcomeSuccess for nil,
// the dmerrors.Kind name for reference errors, OutcomeInvalidArgument for
// argument errors, and OutcomeError otherwise.
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	var refErr *dmerrors.ReferenceError
	if errors.As(err, &refErr) {
		return refErr.Kind.String()
	}
	if errors.Is(err, dmerrors.ErrInvalidArgument) {
		return OutcomeInvalidArgument
	}
	return OutcomeError
}

// MetricsRecorder receives one observation per count.
type MetricsRecorder interface {
	RecordCount(outcome string, components, suppressed int, duration time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordCount(string, int, int, time.Duration) {}
