package kreuzberg

import "github.com/kreuzberg-go/kreuzberg/internal/domain"

// Kind categorizes a failure per §7. Callers branch on Kind via
// errors.As(err, &kzErr) rather than string-matching Error().
type Kind = domain.Kind

const (
	KindIO                Kind = domain.KindIO
	KindParsing           Kind = domain.KindParsing
	KindValidation        Kind = domain.KindValidation
	KindUnsupportedFormat Kind = domain.KindUnsupportedFormat
	KindMissingDependency Kind = domain.KindMissingDependency
	KindOCR               Kind = domain.KindOCR
	KindImageProcessing   Kind = domain.KindImageProcessing
	KindCache             Kind = domain.KindCache
	KindSerialization     Kind = domain.KindSerialization
	KindPlugin            Kind = domain.KindPlugin
	KindLockPoisoned      Kind = domain.KindLockPoisoned
)

// Error is the single error type every exported kreuzberg function returns.
type Error = domain.Error

// NewError, WrapError, ValidationError, PluginError and IsKind are re-exported
// constructors/helpers for domain.Error.
var (
	NewError        = domain.NewError
	WrapError       = domain.WrapError
	ValidationError = domain.ValidationError
	PluginError     = domain.PluginError
	IsKind          = domain.IsKind
)
