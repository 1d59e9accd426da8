// Package dmerrors provides structured error types for cadrefs.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to tell apart the distinct reasons a
// configuration could not be used and present an actionable message.
//
// # Error Categories
//
//   - ReferenceError: reference counting failures, tagged with a Kind
//   - ArgumentError: a required handle or argument was missing
//   - OpenError: a document could not be opened
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.Is
//
//	refs, err := refcount.New().Count(doc)
//	if err != nil {
//	    var refErr *dmerrors.ReferenceError
//	    if errors.As(err, &refErr) && refErr.Kind == dmerrors.KindConfigurationNotFound {
//	        fmt.Println("available:", refErr.Available)
//	    }
//	}
package dmerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrReference indicates reference counting failed.
	ErrReference = errors.New("failed to get references and count")

	// ErrUnsupportedVersion indicates the document predates the minimum supported format.
	ErrUnsupportedVersion = errors.New("unsupported document version")

	// ErrConfigurationListUnavailable indicates configuration names could not be enumerated.
	ErrConfigurationListUnavailable = errors.New("configuration list unavailable")

	// ErrConfigurationNotFound indicates the requested configuration does not exist.
	ErrConfigurationNotFound = errors.New("configuration not found")

	// ErrConfigurationResolution indicates a listed configuration could not be obtained.
	ErrConfigurationResolution = errors.New("configuration resolution failed")

	// ErrInvalidArgument indicates a required argument was missing or blank.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDocumentOpen indicates a document could not be opened.
	ErrDocumentOpen = errors.New("document open error")

	// ErrUnknownDocumentType indicates the document type could not be determined from its path.
	ErrUnknownDocumentType = errors.New("unknown document type")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// Kind identifies which precondition of a reference count failed.
type Kind int

const (
	// KindUnsupportedVersion means the document format is older than the minimum supported version.
	KindUnsupportedVersion Kind = iota + 1
	// KindConfigurationListUnavailable means the document reported no configuration names.
	KindConfigurationListUnavailable
	// KindConfigurationNotFound means the selected name is not among the document's configurations.
	KindConfigurationNotFound
	// KindConfigurationResolutionFailed means the name was valid but the configuration could not be obtained.
	KindConfigurationResolutionFailed
)

// String returns the kind name used in logs and tool output.
func (k Kind) String() string {
	switch k {
	case KindUnsupportedVersion:
		return "UnsupportedDocumentVersion"
	case KindConfigurationListUnavailable:
		return "ConfigurationListUnavailable"
	case KindConfigurationNotFound:
		return "ConfigurationNotFound"
	case KindConfigurationResolutionFailed:
		return "ConfigurationResolutionFailed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// sentinel returns the sentinel error matching the kind.
func (k Kind) sentinel() error {
	switch k {
	case KindUnsupportedVersion:
		return ErrUnsupportedVersion
	case KindConfigurationListUnavailable:
		return ErrConfigurationListUnavailable
	case KindConfigurationNotFound:
		return ErrConfigurationNotFound
	case KindConfigurationResolutionFailed:
		return ErrConfigurationResolution
	default:
		return nil
	}
}

// ReferenceError represents a failed reference count.
// Kind records which stage of the pipeline rejected the document.
type ReferenceError struct {
	// Kind identifies the failed precondition
	Kind Kind
	// Document is the full name of the document, if known
	Document string
	// Configuration is the configuration name that was selected (may be empty)
	Configuration string
	// Version is the document version (set for KindUnsupportedVersion)
	Version int
	// Minimum is the minimum supported version (set for KindUnsupportedVersion)
	Minimum int
	// Available lists the configuration names the document reported (set for KindConfigurationNotFound)
	Available []string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := ErrReference.Error()
	if e.Document != "" {
		msg += " for " + e.Document
	}
	if detail := e.detail(); detail != "" {
		msg += ": " + detail
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ReferenceError) detail() string {
	switch e.Kind {
	case KindUnsupportedVersion:
		if e.Minimum > 0 {
			return fmt.Sprintf("unsupported document version %d (minimum %d)", e.Version, e.Minimum)
		}
		return "unsupported document version"
	case KindConfigurationListUnavailable:
		return "failed to get configuration names"
	case KindConfigurationNotFound:
		msg := "configuration not found"
		if e.Configuration != "" {
			msg = fmt.Sprintf("configuration %q not found", e.Configuration)
		}
		if len(e.Available) > 0 {
			msg += " (available: " + strings.Join(e.Available, ", ") + ")"
		}
		return msg
	case KindConfigurationResolutionFailed:
		if e.Configuration != "" {
			return fmt.Sprintf("failed to get configuration %q", e.Configuration)
		}
		return "failed to get configuration"
	default:
		return ""
	}
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also the sentinel for the error's Kind.
func (e *ReferenceError) Is(target error) bool {
	if target == ErrReference {
		return true
	}
	if s := e.Kind.sentinel(); s != nil && target == s {
		return true
	}
	return false
}

// ArgumentError represents a missing or blank required argument.
type ArgumentError struct {
	// Argument is the name of the offending argument
	Argument string
	// Message describes the problem
	Message string
}

// Error returns a human-readable error message.
func (e *ArgumentError) Error() string {
	msg := "invalid argument"
	if e.Argument != "" {
		msg += " " + e.Argument
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as ArgumentError has no underlying cause.
func (e *ArgumentError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// OpenError represents a failure to open a document.
type OpenError struct {
	// Path is the requested document path
	Path string
	// Type is the detected document type name ("part", "assembly", "drawing", or "unknown")
	Type string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *OpenError) Error() string {
	msg := "failed to open document"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Type != "" {
		msg += " (" + e.Type + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *OpenError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrDocumentOpen, and also ErrUnknownDocumentType when Type is "unknown".
func (e *OpenError) Is(target error) bool {
	if target == ErrDocumentOpen {
		return true
	}
	return target == ErrUnknownDocumentType && e.Type == "unknown"
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
