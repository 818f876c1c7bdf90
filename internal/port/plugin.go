// Package port declares the capability interfaces plugins implement and the
// orchestrator dispatches against: Extractor, OCRBackend, PostProcessor,
// Validator, all sharing the Plugin lifecycle. This is the stable contract
// between the core and the outside world — concrete implementations (the
// registries, the PPTX extractor) live in sibling internal packages and the
// public kreuzberg package re-exports these types verbatim for callers writing
// their own plugins.
package port

import (
	"context"

	"github.com/kreuzberg-go/kreuzberg/internal/domain"
)

// Plugin is the capability set shared by every plugin kind.
type Plugin interface {
	Name() string
	Version() string
	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Source is the normalized input handed to an Extractor: either a filesystem
// path or an in-memory byte buffer, never both.
type Source struct {
	Path  string
	Bytes []byte
	Mime  string
}

// IsBytes reports whether this Source wraps an in-memory buffer rather than a
// filesystem path.
func (s Source) IsBytes() bool { return s.Path == "" }

// Extractor turns a source document of a specific MIME family into an
// ExtractionResult. Dispatch picks the highest-Priority claimant, ties broken
// by registration order (§4.2).
type Extractor interface {
	Plugin
	Claims(mimeType string) bool
	Priority() int
	Extract(ctx context.Context, src Source, cfg domain.ExtractionConfig) (*domain.ExtractionResult, error)
}

// OCRBackend runs optical character recognition over a single image or file.
type OCRBackend interface {
	Plugin
	BackendType() string
	SupportedLanguages() []string
	SupportsLanguage(tag string) bool
	ProcessImage(ctx context.Context, data []byte, cfg domain.OCRConfig) (*domain.ExtractionResult, error)
	ProcessFile(ctx context.Context, path string, cfg domain.OCRConfig) (*domain.ExtractionResult, error)
}

// ProcessingStage names when within the pipeline a PostProcessor runs (§4.3).
type ProcessingStage string

const (
	StageEarly  ProcessingStage = "early"
	StageMiddle ProcessingStage = "middle"
	StageLate   ProcessingStage = "late"
)

// PostProcessor mutates an in-progress ExtractionResult. It must not change
// MimeType or replace the result wholesale.
type PostProcessor interface {
	Plugin
	Stage() ProcessingStage
	Priority() int
	Fatal() bool
	Process(ctx context.Context, result *domain.ExtractionResult, cfg domain.ExtractionConfig) error
}

// Validator inspects a completed-enough ExtractionResult and may reject it.
// Validators run in descending Priority order; the first failure short-circuits
// the pipeline with a KindValidation error.
type Validator interface {
	Plugin
	Priority() int
	ShouldValidate(result *domain.ExtractionResult, cfg domain.ExtractionConfig) bool
	Validate(result *domain.ExtractionResult, cfg domain.ExtractionConfig) error
}
