package pipeline

import (
	"regexp"
	"strings"

	"github.com/kreuzberg-go/kreuzberg/internal/domain"
)

// reduceTokens rewrites result.Content under cfg.Mode. The three modes form a
// strictly increasing chain of lossiness; each documented mapping resolves
// the open question of what "light/moderate/aggressive" means concretely:
//
//   - light: collapse runs of whitespace, drop trailing blank lines.
//   - moderate: light, plus drop duplicate consecutive lines (common in OCR
//     output and repeated slide headers/footers).
//   - aggressive: moderate, plus strip stopwords token-by-token unless
//     cfg.PreserveImportantWords is set, in which case capitalized words and
//     numerals are kept regardless (treated as named entities/figures).
func reduceTokens(result *domain.ExtractionResult, cfg domain.TokenReductionConfig) {
	switch cfg.Mode {
	case domain.TokenReductionOff, "":
		return
	case domain.TokenReductionLight:
		result.Content = collapseWhitespace(result.Content)
	case domain.TokenReductionModerate:
		result.Content = dropDuplicateLines(collapseWhitespace(result.Content))
	case domain.TokenReductionAggressive:
		content := dropDuplicateLines(collapseWhitespace(result.Content))
		result.Content = stripStopwords(content, cfg.PreserveImportantWords)
	}
}

var runsOfBlank = regexp.MustCompile(`[ \t]+`)

func collapseWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := runsOfBlank.ReplaceAllString(strings.TrimRight(line, " \t"), " ")
		out = append(out, strings.TrimSpace(trimmed))
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func dropDuplicateLines(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if i > 0 && line != "" && line == lines[i-1] {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func stripStopwords(text string, preserveImportant bool) string {
	en := stopwords["en"]
	words := strings.Fields(text)
	out := make([]string, 0, len(words))
	for _, w := range words {
		lower := strings.ToLower(strings.Trim(w, ".,;:!?\"'()"))
		if _, isStop := en[lower]; isStop {
			if preserveImportant && isImportant(w) {
				out = append(out, w)
			}
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

func isImportant(word string) bool {
	for _, r := range word {
		if r >= '0' && r <= '9' {
			return true
		}
		if r >= 'A' && r <= 'Z' {
			return true
		}
		return false
	}
	return false
}
