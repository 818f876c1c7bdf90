package domain

import "encoding/json"

// ExtractionResult is the immutable value returned by a successful extraction.
// Once returned by Context.extract, nothing further mutates it — pipeline stages
// only ever operate on the interim result while it is still being built.
type ExtractionResult struct {
	Content           string           `json:"content"`
	MimeType          string           `json:"mime_type"`
	Metadata          Metadata         `json:"metadata"`
	Tables            []Table          `json:"tables"`
	DetectedLanguages []string         `json:"detected_languages,omitempty"`
	Chunks            []Chunk          `json:"chunks,omitempty"`
	Images            []ExtractedImage `json:"images,omitempty"`

	// PageBoundaries locates each source page within Content. Populated by
	// extractors that have a native page concept (PPTX slides, PDF pages);
	// left empty otherwise. See PageBoundary for the ordering invariant.
	PageBoundaries []PageBoundary `json:"page_boundaries,omitempty"`

	// Warnings accumulates non-fatal issues surfaced during the pipeline
	// (a non-fatal post-processor's error, a validator that merely warns).
	// Never populated by a failure that aborted the extraction outright.
	Warnings []string `json:"warnings,omitempty"`
}

// Table is a table detected within a source document.
type Table struct {
	Cells      [][]string `json:"cells"`
	Markdown   string     `json:"markdown"`
	PageNumber int        `json:"page_number"`
}

// Chunk is one span produced by the chunking engine (§4.5), plus an optional
// embedding vector a caller-supplied post-processor may have attached.
type Chunk struct {
	Content   string        `json:"content"`
	Embedding []float32     `json:"embedding,omitempty"`
	Metadata  ChunkMetadata `json:"metadata"`
}

// ChunkMetadata locates a Chunk within the source content and, when page
// boundaries were supplied, within the source document's pages.
type ChunkMetadata struct {
	ByteStart   int  `json:"byte_start"`
	ByteEnd     int  `json:"byte_end"`
	TokenCount  *int `json:"token_count,omitempty"`
	ChunkIndex  int  `json:"chunk_index"`
	TotalChunks int  `json:"total_chunks"`
	FirstPage   *int `json:"first_page,omitempty"`
	LastPage    *int `json:"last_page,omitempty"`
}

// ImageFormat tags the raster format sniffed from an ExtractedImage's magic
// bytes (§4.6 step 5).
type ImageFormat string

const (
	ImageFormatJPEG    ImageFormat = "jpeg"
	ImageFormatPNG     ImageFormat = "png"
	ImageFormatGIF     ImageFormat = "gif"
	ImageFormatBMP     ImageFormat = "bmp"
	ImageFormatSVG     ImageFormat = "svg"
	ImageFormatTIFF    ImageFormat = "tiff"
	ImageFormatUnknown ImageFormat = "unknown"
)

// ExtractedImage is a raster or vector asset pulled out of a source document.
type ExtractedImage struct {
	Data       []byte      `json:"data"`
	Format     ImageFormat `json:"format"`
	ImageIndex int         `json:"image_index"`
	PageNumber *int        `json:"page_number,omitempty"`
	Width      *int        `json:"width,omitempty"`
	Height     *int        `json:"height,omitempty"`

	// OCRResult is a recursively owned child result: when an OCR backend was run
	// against this image inline, its full extraction is nested here rather than
	// flattened into the parent. Owned by value-of-pointer, never shared, so no
	// cycle is possible — an image's OCR result never references back up to the
	// document that contains the image.
	OCRResult *ExtractionResult `json:"ocr_result,omitempty"`
}

// PageBoundary marks where one source page lives within the extracted content.
// A sequence of boundaries must be sorted by ByteStart and non-overlapping:
// b[i].ByteEnd <= b[i+1].ByteStart. Gaps between boundaries are permitted.
type PageBoundary struct {
	ByteStart  int `json:"byte_start"`
	ByteEnd    int `json:"byte_end"`
	PageNumber int `json:"page_number"`
}

// Metadata aggregates cross-format metadata plus a format-specific subtree.
type Metadata struct {
	Format             FormatMetadata              `json:"format"`
	Language           *string                     `json:"language,omitempty"`
	Date               *string                     `json:"date,omitempty"`
	Subject            *string                     `json:"subject,omitempty"`
	ImagePreprocessing *ImagePreprocessingMetadata `json:"image_preprocessing,omitempty"`
	JSONSchema         json.RawMessage             `json:"json_schema,omitempty"`
	Error              *ErrorMetadata              `json:"error,omitempty"`
	Additional         map[string]any              `json:"additional,omitempty"`
}

// FormatType discriminates FormatMetadata's tagged union.
type FormatType string

const (
	FormatUnknown FormatType = ""
	FormatPDF     FormatType = "pdf"
	FormatDOCX    FormatType = "docx"
	FormatXLSX    FormatType = "xlsx"
	FormatPPTX    FormatType = "pptx"
	FormatEmail   FormatType = "email"
	FormatArchive FormatType = "archive"
	FormatImage   FormatType = "image"
	FormatHTML    FormatType = "html"
	FormatText    FormatType = "text"
	FormatOCR     FormatType = "ocr"
)

// FormatMetadata is a tagged union over the format-specific metadata payloads.
// Exactly one field other than Type is populated, matching Type.
type FormatMetadata struct {
	Type  FormatType
	Pptx  *PptxMetadata
	Image *ImageMetadata
	Text  *TextMetadata
	OCR   *OCRMetadata
}

// formatMetadataWire is FormatMetadata's JSON representation. A plain struct
// tag can't express a discriminated union, so MarshalJSON/UnmarshalJSON do it
// explicitly — otherwise the cache's round-trip through encoding/json would
// silently drop whichever format subtree was populated.
type formatMetadataWire struct {
	Type  FormatType     `json:"type,omitempty"`
	Pptx  *PptxMetadata  `json:"pptx,omitempty"`
	Image *ImageMetadata `json:"image,omitempty"`
	Text  *TextMetadata  `json:"text,omitempty"`
	OCR   *OCRMetadata   `json:"ocr,omitempty"`
}

func (f FormatMetadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(formatMetadataWire{
		Type:  f.Type,
		Pptx:  f.Pptx,
		Image: f.Image,
		Text:  f.Text,
		OCR:   f.OCR,
	})
}

func (f *FormatMetadata) UnmarshalJSON(data []byte) error {
	var wire formatMetadataWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	f.Type = wire.Type
	f.Pptx = wire.Pptx
	f.Image = wire.Image
	f.Text = wire.Text
	f.OCR = wire.OCR
	return nil
}

// PptxMetadata summarizes a PPTX slide deck (§4.6).
type PptxMetadata struct {
	Title      *string  `json:"title,omitempty"`
	Author     *string  `json:"author,omitempty"`
	Subject    *string  `json:"subject,omitempty"`
	Fonts      []string `json:"fonts,omitempty"`
	SlideCount int      `json:"slide_count"`
	ImageCount int      `json:"image_count"`
	TableCount int      `json:"table_count"`
}

// ImageMetadata describes a standalone raster document.
type ImageMetadata struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

// TextMetadata holds simple statistics for plain-text/Markdown documents.
type TextMetadata struct {
	LineCount      int `json:"line_count"`
	WordCount      int `json:"word_count"`
	CharacterCount int `json:"character_count"`
}

// OCRMetadata records the OCR settings/outcome attached to an inline OCR result.
type OCRMetadata struct {
	Backend    string  `json:"backend"`
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// ImagePreprocessingMetadata tracks DPI normalization performed before OCR.
type ImagePreprocessingMetadata struct {
	OriginalDPI  [2]float64 `json:"original_dpi"`
	TargetDPI    int        `json:"target_dpi"`
	ScaleFactor  float64    `json:"scale_factor"`
	AutoAdjusted bool       `json:"auto_adjusted"`
}

// ErrorMetadata describes a non-fatal failure recorded against a result — e.g. a
// post-processor declared non-fatal that failed and was swallowed (§4.3).
type ErrorMetadata struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}
