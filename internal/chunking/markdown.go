package chunking

import "strings"

// splitMarkdown windows text the same way splitText does, but its break-point
// search prefers breaking immediately before a heading line over a plain
// sentence boundary, and avoids landing inside a fenced code block when the
// fence opens after the window's start. Lists and tables get no special
// treatment: they break wherever splitText's paragraph/sentence/word search
// lands.
func splitMarkdown(text string, maxChars, overlap int) []span {
	return windowSpans(text, maxChars, overlap, markdownBreakPoint)
}

func markdownBreakPoint(text string, start, maxEnd int) int {
	if bp := headingBreakBefore(text, start, maxEnd); bp > start {
		return pushOutOfFence(text, start, bp)
	}
	bp := textBreakPoint(text, start, maxEnd)
	return pushOutOfFence(text, start, bp)
}

// headingBreakBefore finds the last ATX heading ("#", "##", …) that starts a
// line within (start, maxEnd], returning the offset right before it, or -1 if
// none exists in that window.
func headingBreakBefore(text string, start, maxEnd int) int {
	window := text[start:maxEnd]
	lines := strings.Split(window, "\n")
	offset := 0
	lastHeading := -1
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimLeft(line, " "), "#") {
			lastHeading = offset
		}
		offset += len(line) + 1
	}
	if lastHeading > 0 {
		return start + lastHeading
	}
	return -1
}

// pushOutOfFence moves bp back to just before a fenced code block ("```")
// that would otherwise be split in two, by counting fence markers between
// start and bp: an odd count means bp lands inside an open fence, so we break
// right before that fence's opening marker instead. bp never moves forward,
// so the window's maxChars limit holds; when the open fence starts at start
// itself, bp is returned unchanged.
func pushOutOfFence(text string, start, bp int) int {
	if bp <= start || bp >= len(text) {
		return bp
	}
	window := text[start:bp]
	if strings.Count(window, "```")%2 == 0 {
		return bp
	}
	if idx := strings.LastIndex(window, "```"); idx > 0 {
		return start + idx
	}
	return bp
}
