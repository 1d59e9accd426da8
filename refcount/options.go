package refcount

import (
	"fmt"

	"github.com/erraggy/cadrefs/dmerrors"
	"github.com/erraggy/cadrefs/docmgr"
	"github.com/erraggy/cadrefs/internal/options"
)

// Option is a function that configures a count operation
type Option func(*countConfig) error

// countConfig holds configuration for a count operation
type countConfig struct {
	// Input source (exactly one must be set)
	document docmgr.Document
	app      docmgr.Application
	path     string

	ignoreSuppressed    bool
	configuration       string
	strictConfiguration bool
	minimumVersion      int
	logger              Logger
	metrics             MetricsRecorder
}

// CountWithOptions counts external references using functional options.
//
// Example:
//
//	refs, err := refcount.CountWithOptions(
//	    refcount.WithDocument(doc),
//	    refcount.WithConfiguration("Default"),
//	)
func CountWithOptions(opts ...Option) (References, error) {
	res, err := CountDetailedWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	return res.References, nil
}

// CountDetailedWithOptions is CountWithOptions returning the full Result.
// With WithDocumentPath the document is opened read-only and closed before
// returning.
func CountDetailedWithOptions(opts ...Option) (res *Result, err error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("refcount: invalid options: %w", err)
	}

	c := &Counter{
		IgnoreSuppressed:    cfg.ignoreSuppressed,
		Configuration:       cfg.configuration,
		StrictConfiguration: cfg.strictConfiguration,
		MinimumVersion:      cfg.minimumVersion,
		Logger:              cfg.logger,
		Metrics:             cfg.metrics,
	}

	doc := cfg.document
	if cfg.app != nil {
		doc, err = docmgr.OpenDocument(cfg.app, cfg.path, true)
		if err != nil {
			return nil, err
		}
		defer func() {
			if closeErr := docmgr.CloseDocument(cfg.app, doc); closeErr != nil && err == nil {
				res, err = nil, closeErr
			}
		}()
	}

	return c.CountDetailed(doc)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*countConfig, error) {
	cfg := &countConfig{
		ignoreSuppressed: true,
		minimumVersion:   MinimumVersion,
		logger:           NopLogger{},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"refcount: must specify an input source (use WithDocument or WithDocumentPath)",
		"refcount: must specify exactly one input source",
		cfg.document != nil, cfg.app != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithDocument specifies an already opened document as the input source
func WithDocument(doc docmgr.Document) Option {
	return func(cfg *countConfig) error {
		if doc == nil {
			return &dmerrors.ArgumentError{Argument: "document", Message: "must not be nil"}
		}
		cfg.document = doc
		return nil
	}
}

// WithDocumentPath opens the document at path through app as the input source
func WithDocumentPath(app docmgr.Application, path string) Option {
	return func(cfg *countConfig) error {
		if app == nil {
			return &dmerrors.ArgumentError{Argument: "app", Message: "must not be nil"}
		}
		cfg.app = app
		cfg.path = path
		return nil
	}
}

// WithIgnoreSuppressed controls whether suppressed components are skipped (default: true)
func WithIgnoreSuppressed(enabled bool) Option {
	return func(cfg *countConfig) error {
		cfg.ignoreSuppressed = enabled
		return nil
	}
}

// WithConfiguration selects the configuration to count (default: first configuration)
func WithConfiguration(name string) Option {
	return func(cfg *countConfig) error {
		cfg.configuration = name
		return nil
	}
}

// WithStrictConfiguration rejects a blank configuration name instead of defaulting
func WithStrictConfiguration(enabled bool) Option {
	return func(cfg *countConfig) error {
		cfg.strictConfiguration = enabled
		return nil
	}
}

// WithMinimumVersion overrides the minimum supported document version
func WithMinimumVersion(version int) Option {
	return func(cfg *countConfig) error {
		if version <= 0 {
			return &dmerrors.ConfigError{Option: "minimum_version", Value: version, Message: "must be positive"}
		}
		cfg.minimumVersion = version
		return nil
	}
}

// WithLogger sets the logger for the count
func WithLogger(l Logger) Option {
	return func(cfg *countConfig) error {
		if l == nil {
			l = NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}

// WithMetrics sets the metrics recorder for the count
func WithMetrics(m MetricsRecorder) Option {
	return func(cfg *countConfig) error {
		cfg.metrics = m
		return nil
	}
}
