package kreuzberg

import (
	"path/filepath"
	"strings"

	"github.com/kreuzberg-go/kreuzberg/internal/domain"
	"github.com/kreuzberg-go/kreuzberg/internal/imgformat"
)

// extensionMimeTypes maps common document extensions to MIME types. This is
// the fallback table consulted by resolveMime when content magic bytes are
// ambiguous or the caller only handed us a path with no hint.
var extensionMimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".pptm": "application/vnd.ms-powerpoint.presentation.macroEnabled.12",
	".ppsx": "application/vnd.openxmlformats-officedocument.presentationml.slideshow",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".html": "text/html",
	".htm":  "text/html",
	".xml":  "application/xml",
	".eml":  "message/rfc822",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".zip":  "application/zip",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".svg":  "image/svg+xml",
}

// magicSniffers are checked in order against the leading bytes of a document.
// A PPTX/DOCX/XLSX/generic-zip file all share the ZIP local-file-header magic,
// so a ZIP match only yields "application/zip"; resolveMime lets a path's
// extension refine it into the specific OOXML type.
var magicSniffers = []struct {
	prefix []byte
	mime   string
}{
	{[]byte("%PDF-"), "application/pdf"},
	{[]byte{0x50, 0x4B, 0x03, 0x04}, "application/zip"}, // PK\x03\x04
	{[]byte{0x50, 0x4B, 0x05, 0x06}, "application/zip"}, // empty archive
	{[]byte{0xFF, 0xD8, 0xFF}, "image/jpeg"},
	{[]byte{0x89, 0x50, 0x4E, 0x47}, "image/png"},
	{[]byte("GIF87a"), "image/gif"},
	{[]byte("GIF89a"), "image/gif"},
	{[]byte("BM"), "image/bmp"},
	{[]byte{0x49, 0x49, 0x2A, 0x00}, "image/tiff"},
	{[]byte{0x4D, 0x4D, 0x00, 0x2A}, "image/tiff"},
}

// sniffMagic inspects the leading bytes of data and returns a MIME type, or ""
// if nothing matched.
func sniffMagic(data []byte) string {
	for _, s := range magicSniffers {
		if len(data) >= len(s.prefix) && string(data[:len(s.prefix)]) == string(s.prefix) {
			return s.mime
		}
	}
	trimmed := strings.TrimLeft(string(data), " \t\r\n"+string(rune(0xFEFF)))
	if strings.HasPrefix(trimmed, "<svg") || strings.HasPrefix(trimmed, "<?xml") {
		return "image/svg+xml"
	}
	return ""
}

// mimeByExtension looks up a MIME type purely from a path's extension.
func mimeByExtension(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	return extensionMimeTypes[ext]
}

// sniffImageFormat classifies raw image bytes by magic number for ExtractedImage
// tagging (§4.6 step 5). Distinct from sniffMagic: narrower domain (raster/SVG
// only), and defaults to ImageFormatUnknown rather than "".
func sniffImageFormat(data []byte) ImageFormat {
	return imgformat.Sniff(data)
}

// resolveMime determines the MIME type for a source per §4.1 step 1: an
// explicit hint wins outright, otherwise content magic bytes are tried before
// falling back to the path's extension. A generic ZIP match is ambiguous, so
// there the extension (when it maps to a type) takes precedence. Returns
// KindUnsupportedFormat only when none of the three sources yields anything
// usable.
func resolveMime(hint string, path string, content []byte) (string, error) {
	if hint != "" {
		return hint, nil
	}
	sniffed := sniffMagic(content)
	if path != "" && (sniffed == "" || sniffed == "application/zip") {
		if mime := mimeByExtension(path); mime != "" {
			return mime, nil
		}
	}
	if sniffed != "" {
		return sniffed, nil
	}
	return "", domain.NewError(domain.KindUnsupportedFormat, "could not determine mime type for %q", path)
}
