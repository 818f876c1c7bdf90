// Package chunking splits extracted text into overlapping, UTF-8-safe spans
// (§4.5). Two splitters share one overlap/windowing algorithm: Text, which
// only respects whitespace/sentence boundaries, and Markdown, which
// additionally prefers breaking before headings and avoids splitting fenced
// code blocks; lists and tables are not treated specially.
// Grounded on the teacher's postprocessors.Chunker (sentence/paragraph
// break-point search, overlap-by-subtraction windowing) generalized to
// operate on byte offsets with an explicit UTF-8-boundary guarantee.
package chunking

import (
	"unicode/utf8"

	"github.com/kreuzberg-go/kreuzberg/internal/domain"
)

// Chunk splits text per cfg and, when boundaries is non-empty, annotates each
// resulting Chunk with the slide/page range it falls within.
func Chunk(text string, boundaries []domain.PageBoundary, cfg domain.ChunkingConfig) ([]domain.Chunk, error) {
	if cfg.Overlap > cfg.MaxCharacters {
		return nil, domain.ValidationError("overlap", "overlap %d exceeds max_characters %d", cfg.Overlap, cfg.MaxCharacters)
	}
	if err := validateBoundaries(text, boundaries); err != nil {
		return nil, err
	}
	if len(text) == 0 {
		return nil, nil
	}

	var spans []span
	switch cfg.Type {
	case domain.ChunkerMarkdown:
		spans = splitMarkdown(text, cfg.MaxCharacters, cfg.Overlap)
	default:
		spans = splitText(text, cfg.MaxCharacters, cfg.Overlap)
	}

	chunks := make([]domain.Chunk, 0, len(spans))
	for i, s := range spans {
		content := text[s.start:s.end]
		if cfg.Trim {
			content = trimSpan(content)
		}
		meta := domain.ChunkMetadata{
			ByteStart:   s.start,
			ByteEnd:     s.end,
			ChunkIndex:  i,
			TotalChunks: len(spans),
		}
		if len(boundaries) > 0 {
			meta.FirstPage, meta.LastPage = pagesFor(boundaries, s.start, s.end)
		}
		chunks = append(chunks, domain.Chunk{Content: content, Metadata: meta})
	}
	for i := range chunks {
		chunks[i].Metadata.TotalChunks = len(chunks)
	}
	return chunks, nil
}

type span struct {
	start, end int
}

// windowSpans walks text in windows of at most maxChars bytes, starting each
// window overlap bytes before the previous window's end (never less than 1
// byte of forward progress), calling breakAt to pull each window's right edge
// back to a safe boundary.
// This is the teacher's Chunker.splitContent loop, generalized over the
// break-point function and made byte-offset based.
func windowSpans(text string, maxChars, overlap int, breakAt func(s string, start, maxEnd int) int) []span {
	n := len(text)
	if n <= maxChars {
		return []span{{0, n}}
	}

	var spans []span
	start := 0
	for start < n {
		end := start + maxChars
		if end > n {
			end = n
		}
		if end < n {
			if bp := breakAt(text, start, end); bp > start {
				end = bp
			}
		}
		end = backUpToRuneBoundary(text, end)
		if end <= start {
			end = forwardToRuneBoundary(text, start+1)
			if end > n {
				end = n
			}
		}

		spans = append(spans, span{start, end})
		if end >= n {
			break
		}

		next := end - overlap
		if next <= start {
			next = start + runeLenAt(text, start)
		}
		next = backUpToRuneBoundary(text, next)
		if next <= start {
			next = forwardToRuneBoundary(text, start+1)
		}
		start = next
	}
	return spans
}

func runeLenAt(text string, i int) int {
	if i >= len(text) {
		return 1
	}
	_, size := utf8.DecodeRuneInString(text[i:])
	if size == 0 {
		return 1
	}
	return size
}

func backUpToRuneBoundary(text string, i int) int {
	if i <= 0 {
		return 0
	}
	if i >= len(text) {
		return len(text)
	}
	for i > 0 && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}

func forwardToRuneBoundary(text string, i int) int {
	if i >= len(text) {
		return len(text)
	}
	for i < len(text) && !utf8.RuneStart(text[i]) {
		i++
	}
	return i
}

func trimSpan(s string) string {
	start, end := 0, len(s)
	for start < end && isTrimByte(s[start]) {
		start++
	}
	for end > start && isTrimByte(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isTrimByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func pagesFor(boundaries []domain.PageBoundary, start, end int) (*int, *int) {
	var first, last *int
	for _, b := range boundaries {
		if b.ByteEnd <= start || b.ByteStart >= end {
			continue
		}
		n := b.PageNumber
		if first == nil || n < *first {
			first = &n
		}
		if last == nil || n > *last {
			last = &n
		}
	}
	return first, last
}

func validateBoundaries(text string, boundaries []domain.PageBoundary) error {
	prevEnd := -1
	for _, b := range boundaries {
		if b.ByteStart >= b.ByteEnd || b.ByteEnd > len(text) {
			return domain.ValidationError("page_boundaries", "boundary [%d,%d) out of range for text of length %d", b.ByteStart, b.ByteEnd, len(text))
		}
		if !utf8.RuneStart(byteOrZero(text, b.ByteStart)) || (b.ByteEnd < len(text) && !utf8.RuneStart(byteOrZero(text, b.ByteEnd))) {
			return domain.ValidationError("page_boundaries", "boundary [%d,%d) does not lie on a UTF-8 character boundary", b.ByteStart, b.ByteEnd)
		}
		if b.ByteStart < prevEnd {
			return domain.ValidationError("page_boundaries", "boundaries are not sorted/non-overlapping at byte %d", b.ByteStart)
		}
		prevEnd = b.ByteEnd
	}
	return nil
}

func byteOrZero(text string, i int) byte {
	if i < 0 || i >= len(text) {
		return 0
	}
	return text[i]
}
