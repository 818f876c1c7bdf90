package kreuzberg

import (
	"runtime"

	"github.com/kreuzberg-go/kreuzberg/internal/domain"
)

// ExtractionConfig (§3) and its nested option structs are defined in
// internal/domain and re-exported here.
type (
	ExtractionConfig        = domain.ExtractionConfig
	OCRConfig               = domain.OCRConfig
	ChunkerType             = domain.ChunkerType
	ChunkingConfig          = domain.ChunkingConfig
	LanguageDetectionConfig = domain.LanguageDetectionConfig
	PDFOptions              = domain.PDFOptions
	ImageOptions            = domain.ImageOptions
	HTMLOptions             = domain.HTMLOptions
	PostProcessorConfig     = domain.PostProcessorConfig
	TokenReductionMode      = domain.TokenReductionMode
	TokenReductionConfig    = domain.TokenReductionConfig
)

const (
	ChunkerText     = domain.ChunkerText
	ChunkerMarkdown = domain.ChunkerMarkdown

	TokenReductionOff        = domain.TokenReductionOff
	TokenReductionLight      = domain.TokenReductionLight
	TokenReductionModerate   = domain.TokenReductionModerate
	TokenReductionAggressive = domain.TokenReductionAggressive
)

// effectiveConfig returns cfg with defaults filled in. It never mutates cfg.
func effectiveConfig(cfg ExtractionConfig) ExtractionConfig {
	out := cfg
	if out.MaxConcurrentExtractions <= 0 {
		out.MaxConcurrentExtractions = runtime.GOMAXPROCS(0)
	}
	return out
}
