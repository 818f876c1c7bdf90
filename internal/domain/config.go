package domain

// ExtractionConfig is a value the caller owns and passes to every extraction
// call. Zero value is the documented default configuration. Struct tags cover
// JSON, TOML and YAML so the same type doubles as the project config file's
// decode target (internal/configfile) without a separate overlay type.
type ExtractionConfig struct {
	// UseCache enables consulting and writing the content-addressed cache (§4.4).
	UseCache bool `json:"use_cache" toml:"use_cache" yaml:"use_cache"`

	// ForceOCR requires OCR even when the source already carries a text layer.
	ForceOCR bool `json:"force_ocr" toml:"force_ocr" yaml:"force_ocr"`

	OCR               *OCRConfig               `json:"ocr,omitempty" toml:"ocr,omitempty" yaml:"ocr,omitempty"`
	Chunking          *ChunkingConfig          `json:"chunking,omitempty" toml:"chunking,omitempty" yaml:"chunking,omitempty"`
	LanguageDetection *LanguageDetectionConfig `json:"language_detection,omitempty" toml:"language_detection,omitempty" yaml:"language_detection,omitempty"`
	PDFOptions        *PDFOptions              `json:"pdf_options,omitempty" toml:"pdf_options,omitempty" yaml:"pdf_options,omitempty"`
	Images            *ImageOptions            `json:"images,omitempty" toml:"images,omitempty" yaml:"images,omitempty"`
	HTMLOptions       *HTMLOptions             `json:"html_options,omitempty" toml:"html_options,omitempty" yaml:"html_options,omitempty"`
	Postprocessor     *PostProcessorConfig     `json:"postprocessor,omitempty" toml:"postprocessor,omitempty" yaml:"postprocessor,omitempty"`
	TokenReduction    *TokenReductionConfig    `json:"token_reduction,omitempty" toml:"token_reduction,omitempty" yaml:"token_reduction,omitempty"`

	// MaxConcurrentExtractions bounds pipeline parallelism for batch calls.
	// Zero means "use runtime.GOMAXPROCS(0)".
	MaxConcurrentExtractions int `json:"max_concurrent_extractions,omitempty" toml:"max_concurrent_extractions,omitempty" yaml:"max_concurrent_extractions,omitempty"`
}

// OCRConfig selects and configures an OCR backend.
type OCRConfig struct {
	Backend  string         `json:"backend" toml:"backend" yaml:"backend"`
	Language string         `json:"language,omitempty" toml:"language,omitempty" yaml:"language,omitempty"`
	Settings map[string]any `json:"settings,omitempty" toml:"settings,omitempty" yaml:"settings,omitempty"`
}

// ChunkerType selects the chunking engine's splitting strategy (§4.5).
type ChunkerType string

const (
	ChunkerText     ChunkerType = "text"
	ChunkerMarkdown ChunkerType = "markdown"
)

// ChunkingConfig enables and configures the chunking engine.
type ChunkingConfig struct {
	MaxCharacters int         `json:"max_characters" toml:"max_characters" yaml:"max_characters"`
	Overlap       int         `json:"overlap" toml:"overlap" yaml:"overlap"`
	Type          ChunkerType `json:"type" toml:"type" yaml:"type"`
	Trim          bool        `json:"trim" toml:"trim" yaml:"trim"`
	Preset        string      `json:"preset,omitempty" toml:"preset,omitempty" yaml:"preset,omitempty"`
}

// LanguageDetectionConfig enables automatic language detection (§4.3 stage 2).
type LanguageDetectionConfig struct {
	Enabled       bool    `json:"enabled" toml:"enabled" yaml:"enabled"`
	MinConfidence float64 `json:"min_confidence" toml:"min_confidence" yaml:"min_confidence"`
	Multi         bool    `json:"multi" toml:"multi" yaml:"multi"`
}

// PDFOptions carries PDF-specific extraction knobs (opaque beyond the core —
// PDF is a plug-in extractor, not part of this module's budget).
type PDFOptions struct {
	Passwords       []string `json:"passwords,omitempty" toml:"passwords,omitempty" yaml:"passwords,omitempty"`
	ExtractMetadata bool     `json:"extract_metadata" toml:"extract_metadata" yaml:"extract_metadata"`
}

// ImageOptions controls inline image extraction from container formats.
type ImageOptions struct {
	ExtractImages bool `json:"extract_images" toml:"extract_images" yaml:"extract_images"`
	MaxDimension  int  `json:"max_image_dimension,omitempty" toml:"max_image_dimension,omitempty" yaml:"max_image_dimension,omitempty"`
}

// HTMLOptions carries HTML-specific extraction knobs.
type HTMLOptions struct {
	Preset string `json:"preset,omitempty" toml:"preset,omitempty" yaml:"preset,omitempty"`
}

// PostProcessorConfig selects which registered post-processors run.
type PostProcessorConfig struct {
	Enable  []string `json:"enable,omitempty" toml:"enable,omitempty" yaml:"enable,omitempty"`
	Disable []string `json:"disable,omitempty" toml:"disable,omitempty" yaml:"disable,omitempty"`
}

// TokenReductionMode selects a deterministic lossy transform of Content (§9 open
// question: modes are not formally specified upstream, so this implementation
// picks and documents one fixed mapping — see internal/pipeline/tokenreduction.go).
type TokenReductionMode string

const (
	TokenReductionOff        TokenReductionMode = "off"
	TokenReductionLight      TokenReductionMode = "light"
	TokenReductionModerate   TokenReductionMode = "moderate"
	TokenReductionAggressive TokenReductionMode = "aggressive"
)

// TokenReductionConfig configures the token-reduction pipeline stage.
type TokenReductionConfig struct {
	Mode                   TokenReductionMode `json:"mode" toml:"mode" yaml:"mode"`
	PreserveImportantWords bool               `json:"preserve_important_words" toml:"preserve_important_words" yaml:"preserve_important_words"`
}
