package kreuzberg

import "github.com/kreuzberg-go/kreuzberg/internal/domain"

// The data model (§3) is defined in internal/domain and re-exported here
// verbatim so callers never need to import an internal package.
type (
	ExtractionResult           = domain.ExtractionResult
	Table                      = domain.Table
	Chunk                      = domain.Chunk
	ChunkMetadata              = domain.ChunkMetadata
	ExtractedImage             = domain.ExtractedImage
	ImageFormat                = domain.ImageFormat
	PageBoundary               = domain.PageBoundary
	Metadata                   = domain.Metadata
	FormatType                 = domain.FormatType
	FormatMetadata             = domain.FormatMetadata
	PptxMetadata               = domain.PptxMetadata
	ImageMetadata              = domain.ImageMetadata
	TextMetadata               = domain.TextMetadata
	OCRMetadata                = domain.OCRMetadata
	ImagePreprocessingMetadata = domain.ImagePreprocessingMetadata
	ErrorMetadata              = domain.ErrorMetadata
)

const (
	ImageFormatJPEG    = domain.ImageFormatJPEG
	ImageFormatPNG     = domain.ImageFormatPNG
	ImageFormatGIF     = domain.ImageFormatGIF
	ImageFormatBMP     = domain.ImageFormatBMP
	ImageFormatSVG     = domain.ImageFormatSVG
	ImageFormatTIFF    = domain.ImageFormatTIFF
	ImageFormatUnknown = domain.ImageFormatUnknown

	FormatUnknown = domain.FormatUnknown
	FormatPDF     = domain.FormatPDF
	FormatDOCX    = domain.FormatDOCX
	FormatXLSX    = domain.FormatXLSX
	FormatPPTX    = domain.FormatPPTX
	FormatEmail   = domain.FormatEmail
	FormatArchive = domain.FormatArchive
	FormatImage   = domain.FormatImage
	FormatHTML    = domain.FormatHTML
	FormatText    = domain.FormatText
	FormatOCR     = domain.FormatOCR
)
