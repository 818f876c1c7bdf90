// Package imgformat classifies raw image bytes by magic number (§4.6 step 5).
// Shared by the root package's generic MIME sniffing and the PPTX extractor's
// inline image tagging so the two never drift out of sync.
package imgformat

import (
	"strings"

	"github.com/kreuzberg-go/kreuzberg/internal/domain"
)

// Sniff classifies data, defaulting to domain.ImageFormatUnknown.
func Sniff(data []byte) domain.ImageFormat {
	switch {
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return domain.ImageFormatJPEG
	case len(data) >= 4 && data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47:
		return domain.ImageFormatPNG
	case len(data) >= 3 && string(data[:3]) == "GIF":
		return domain.ImageFormatGIF
	case len(data) >= 2 && string(data[:2]) == "BM":
		return domain.ImageFormatBMP
	case len(data) >= 4 && data[0] == 0x49 && data[1] == 0x49 && data[2] == 0x2A && data[3] == 0x00:
		return domain.ImageFormatTIFF
	case len(data) >= 4 && data[0] == 0x4D && data[1] == 0x4D && data[2] == 0x00 && data[3] == 0x2A:
		return domain.ImageFormatTIFF
	default:
		trimmed := strings.TrimLeft(string(data), " \t\r\n"+string(rune(0xFEFF)))
		if strings.HasPrefix(trimmed, "<svg") || strings.HasPrefix(trimmed, "<?xml") {
			return domain.ImageFormatSVG
		}
		return domain.ImageFormatUnknown
	}
}
