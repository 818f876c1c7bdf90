package chunking

import "strings"

// sentenceEnders mirrors the teacher's findBreakPoint search list.
var sentenceEnders = []string{". ", "! ", "? ", ".\n", "!\n", "?\n"}

// splitText windows text respecting, in priority order, paragraph breaks
// (double newline), sentence endings, then word boundaries, falling back to a
// hard cut at maxChars only when none of those exist nearby.
func splitText(text string, maxChars, overlap int) []span {
	return windowSpans(text, maxChars, overlap, textBreakPoint)
}

func textBreakPoint(text string, start, maxEnd int) int {
	searchStart := maxEnd - 200
	if searchStart < start {
		searchStart = start
	}
	window := text[searchStart:maxEnd]

	if idx := strings.LastIndex(window, "\n\n"); idx != -1 {
		return searchStart + idx + 2
	}

	best := -1
	for _, ender := range sentenceEnders {
		if idx := strings.LastIndex(window, ender); idx != -1 {
			end := idx + len(ender)
			if end > best {
				best = end
			}
		}
	}
	if best > 0 {
		return searchStart + best
	}

	if idx := strings.LastIndex(window, " "); idx != -1 {
		return searchStart + idx + 1
	}

	return maxEnd
}
