package domain

import (
	"errors"
	"fmt"
)

// Kind categorizes a failure the way §7 of the design taxonomy names it. Callers
// should branch on Kind via errors.As(err, &kzErr) rather than string-matching
// Error().
type Kind string

const (
	// KindIO is a system I/O failure. Always bubbled — never swallowed, since an
	// operator needs it to diagnose a broken filesystem or permissions problem.
	KindIO Kind = "io"

	// KindParsing is a malformed document or document part.
	KindParsing Kind = "parsing"

	// KindValidation covers invalid config, invalid inputs, or a validator
	// rejecting a result.
	KindValidation Kind = "validation"

	// KindUnsupportedFormat means no extractor claims the resolved MIME type.
	KindUnsupportedFormat Kind = "unsupported_format"

	// KindMissingDependency means a declared optional dependency (an OCR engine,
	// a native library) is absent at runtime.
	KindMissingDependency Kind = "missing_dependency"

	// KindOCR is an OCR backend failure.
	KindOCR Kind = "ocr"

	// KindImageProcessing is a raster conversion failure.
	KindImageProcessing Kind = "image_processing"

	// KindCache is a cache read/write/meta failure. Swallowed at the cache
	// boundary and degraded to a cache miss; never surfaced past Context.extract.
	KindCache Kind = "cache"

	// KindSerialization is a result encode/decode failure. Bubbled to callers of
	// the cache's public Get/Put; swallowed when it originates inside the cache's
	// own read path (a corrupt artifact degrades to a miss).
	KindSerialization Kind = "serialization"

	// KindPlugin is an error a registered plugin reported itself.
	KindPlugin Kind = "plugin"

	// KindLockPoisoned indicates an internal invariant was violated — a registry
	// reader-writer lock observed a panic mid-write. Indicates a bug, not bad
	// input.
	KindLockPoisoned Kind = "lock_poisoned"
)

// Error is the single error type every exported kreuzberg function returns.
// It always carries a Kind and a human-readable Message, and optionally wraps
// a lower-level Cause plus the Plugin that raised it.
type Error struct {
	Kind    Kind
	Message string
	Plugin  string // set only for KindPlugin
	Field   string // set only for KindValidation: the offending config/input field
	Cause   error
}

func (e *Error) Error() string {
	switch {
	case e.Plugin != "":
		if e.Cause != nil {
			return fmt.Sprintf("kreuzberg: %s: plugin %q: %s: %v", e.Kind, e.Plugin, e.Message, e.Cause)
		}
		return fmt.Sprintf("kreuzberg: %s: plugin %q: %s", e.Kind, e.Plugin, e.Message)
	case e.Field != "":
		return fmt.Sprintf("kreuzberg: %s: field %q: %s", e.Kind, e.Field, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("kreuzberg: %s: %s: %v", e.Kind, e.Message, e.Cause)
	default:
		return fmt.Sprintf("kreuzberg: %s: %s", e.Kind, e.Message)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error of the same Kind, so callers can write
// errors.Is(err, &kreuzberg.Error{Kind: kreuzberg.KindUnsupportedFormat}).
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind
}

// NewError builds an *Error of the given kind with a formatted message.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError builds an *Error of the given kind wrapping cause.
func WrapError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// ValidationError builds a KindValidation error naming the offending field.
func ValidationError(field, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: fmt.Sprintf(format, args...)}
}

// PluginError builds a KindPlugin error naming the plugin that raised it.
func PluginError(plugin string, cause error) *Error {
	return &Error{Kind: KindPlugin, Plugin: plugin, Message: "plugin reported an error", Cause: cause}
}

// IsKind reports whether err is a *Error of the given kind, anywhere in its chain.
func IsKind(err error, kind Kind) bool {
	var kzErr *Error
	if !errors.As(err, &kzErr) {
		return false
	}
	return kzErr.Kind == kind
}
