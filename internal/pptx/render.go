package pptx

import (
	"fmt"
	"sort"
	"strings"
)

// renderedElement is a (position, markdown) pair so the renderer can sort
// every element kind together into one reading-order sequence (§4.6 step 4).
type renderedElement struct {
	pos position
	md  string
}

// renderSlideMarkdown sorts every element by (y, x) and concatenates their
// rendered form. Ties break by x, then by the original document order
// (stable sort), matching §4.6's determinism rule.
func renderSlideMarkdown(slideNumber int, elems slideElements) string {
	var all []renderedElement

	for _, t := range elems.texts {
		all = append(all, renderedElement{pos: t.pos, md: renderTextElement(t)})
	}
	for _, l := range elems.lists {
		all = append(all, renderedElement{pos: l.pos, md: renderListElement(l)})
	}
	for _, tb := range elems.tables {
		all = append(all, renderedElement{pos: tb.pos, md: renderTableElement(tb)})
	}
	for _, img := range elems.images {
		all = append(all, renderedElement{pos: img.pos, md: renderImageElement(slideNumber, img)})
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].pos.y != all[j].pos.y {
			return all[i].pos.y < all[j].pos.y
		}
		return all[i].pos.x < all[j].pos.x
	})

	var b strings.Builder
	for _, e := range all {
		b.WriteString(e.md)
	}
	return strings.TrimSpace(b.String())
}

// renderRun applies bold/italic/underline Markdown, combining all three as
// ***bold-italic*** wrapped in <u>…</u> when every flag is set (§4.6 step 5).
func renderRun(r run) string {
	text := r.text
	switch {
	case r.bold && r.italic:
		text = "***" + text + "***"
	case r.bold:
		text = "**" + text + "**"
	case r.italic:
		text = "*" + text + "*"
	}
	if r.underline {
		text = "<u>" + text + "</u>"
	}
	return text
}

func renderRuns(runs []run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(renderRun(r))
	}
	return b.String()
}

// renderTextElement treats short, non-empty runs of text as a slide title —
// the original implementation's 100-character heuristic, not a structural
// placeholder hint, since PresentationML has no reliable machine-readable
// "this is the title" marker across authoring tools.
func renderTextElement(t textElement) string {
	text := renderRuns(t.runs)
	normalized := strings.ReplaceAll(text, "\n", " ")
	trimmed := strings.TrimSpace(normalized)
	if trimmed == "" {
		return ""
	}
	if len(normalized) < 100 {
		return "# " + trimmed + "\n"
	}
	return text + "\n"
}

func renderListElement(l listElement) string {
	var b strings.Builder
	for _, item := range l.items {
		indent := strings.Repeat("  ", maxInt(item.level-1, 0))
		marker := "-"
		if item.isOrdered {
			marker = "1."
		}
		b.WriteString(indent)
		b.WriteString(marker)
		b.WriteString(" ")
		b.WriteString(strings.TrimSpace(renderRuns(item.runs)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderTableElement(t tableElement) string {
	if len(t.rows) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n<table>")
	for i, row := range t.rows {
		b.WriteString("<tr>")
		tag := "td"
		if i == 0 {
			tag = "th"
		}
		for _, cell := range row {
			b.WriteString("<")
			b.WriteString(tag)
			b.WriteString(">")
			b.WriteString(htmlEscape(cell))
			b.WriteString("</")
			b.WriteString(tag)
			b.WriteString(">")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table>\n")
	return b.String()
}

func renderImageElement(slideNumber int, img imageElement) string {
	filename := fmt.Sprintf("slide_%d_image_%s.jpg", slideNumber, img.relID)
	return fmt.Sprintf("![%s](%s)\n", img.relID, filename)
}

func renderNotes(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return "\n\n### Notes:\n" + text + "\n"
}

func htmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
	)
	return replacer.Replace(s)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
