// Package pptx implements the PPTX extractor (§4.6): it reads a PowerPoint
// container directly as a ZIP of Office Open XML parts, with no dependency on
// a native PowerPoint library, and renders each slide's shape tree to
// Markdown in visual reading order.
package pptx

import (
	"bytes"
	"context"
	"os"

	"github.com/kreuzberg-go/kreuzberg/internal/domain"
	"github.com/kreuzberg-go/kreuzberg/internal/imgformat"
	"github.com/kreuzberg-go/kreuzberg/internal/port"
)

const (
	mimePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	mimePPTM = "application/vnd.ms-powerpoint.presentation.macroEnabled.12"
	mimePPSX = "application/vnd.openxmlformats-officedocument.presentationml.slideshow"
)

// Extractor implements port.Extractor for PPTX/PPTM/PPSX containers.
type Extractor struct{}

func New() *Extractor { return &Extractor{} }

func (e *Extractor) Name() string    { return "pptx" }
func (e *Extractor) Version() string { return "1.0.0" }

func (e *Extractor) Initialize(ctx context.Context) error { return nil }
func (e *Extractor) Shutdown(ctx context.Context) error   { return nil }

func (e *Extractor) Priority() int { return 0 }

func (e *Extractor) Claims(mimeType string) bool {
	switch mimeType {
	case mimePPTX, mimePPTM, mimePPSX:
		return true
	default:
		return false
	}
}

// Extract opens src as a ZIP container and renders it per §4.6.
func (e *Extractor) Extract(ctx context.Context, src port.Source, cfg domain.ExtractionConfig) (*domain.ExtractionResult, error) {
	data, err := readSource(src)
	if err != nil {
		return nil, err
	}

	c, err := openContainer(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	slidePaths, err := c.slidePaths()
	if err != nil {
		return nil, err
	}

	extractImages := cfg.Images != nil && cfg.Images.ExtractImages

	var content bytes.Buffer
	var boundaries []domain.PageBoundary
	var images []domain.ExtractedImage
	var totalImages, totalTables int

	for i, slidePath := range slidePaths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		slideNumber := i + 1
		xmlData, ok := c.read(slidePath)
		if !ok {
			return nil, domain.NewError(domain.KindParsing, "slide part %q referenced but missing from archive", slidePath)
		}

		elems, err := parseSlideXML(xmlData)
		if err != nil {
			return nil, domain.WrapError(domain.KindParsing, err, "parse slide %d", slideNumber)
		}

		start := content.Len()
		content.WriteString(renderSlideMarkdown(slideNumber, elems))

		if notesData, ok := c.read(notesPath(slidePath)); ok {
			content.WriteString(renderNotes(extractNotesText(notesData)))
		}
		content.WriteString("\n\n")

		boundaries = append(boundaries, domain.PageBoundary{
			ByteStart:  start,
			ByteEnd:    content.Len(),
			PageNumber: slideNumber,
		})

		totalTables += len(elems.tables)
		totalImages += len(elems.images)

		if extractImages && len(elems.images) > 0 {
			rels := imageRelsForSlide(c, slidePath)
			for _, img := range elems.images {
				target, ok := rels[img.relID]
				if !ok {
					continue
				}
				raw, ok := c.read(target)
				if !ok {
					continue
				}
				page := slideNumber
				images = append(images, domain.ExtractedImage{
					Data:       raw,
					Format:     imgformat.Sniff(raw),
					ImageIndex: len(images),
					PageNumber: &page,
				})
			}
		}
	}

	core := extractCoreProperties(c)

	text := trimTrailingBlank(content.String())
	// Trimming shortens the final slides' ranges: keep every boundary inside
	// text and drop any left empty.
	kept := boundaries[:0]
	for _, b := range boundaries {
		if b.ByteEnd > len(text) {
			b.ByteEnd = len(text)
		}
		if b.ByteStart < b.ByteEnd {
			kept = append(kept, b)
		}
	}

	return &domain.ExtractionResult{
		Content:        text,
		MimeType:       mimePPTX,
		Images:         images,
		PageBoundaries: kept,
		Metadata: domain.Metadata{
			Format: domain.FormatMetadata{
				Type: domain.FormatPPTX,
				Pptx: &domain.PptxMetadata{
					Title:      stringPtr(core.Title),
					Author:     stringPtr(core.Creator),
					Subject:    stringPtr(core.Subject),
					SlideCount: len(slidePaths),
					ImageCount: totalImages,
					TableCount: totalTables,
				},
			},
		},
	}, nil
}

func readSource(src port.Source) ([]byte, error) {
	if src.IsBytes() {
		return src.Bytes, nil
	}
	data, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, domain.WrapError(domain.KindIO, err, "read %s", src.Path)
	}
	return data, nil
}

func trimTrailingBlank(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == ' ') {
		s = s[:len(s)-1]
	}
	return s
}
