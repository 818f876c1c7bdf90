package pipeline

import (
	"sort"
	"strings"
	"unicode"

	"github.com/kreuzberg-go/kreuzberg/internal/domain"
)

// stopwords maps an ISO 639-1 tag to a small set of closed-class words that
// are common in that language and rare outside it. No language-identification
// library exists anywhere in the dependency pack this module draws from, so
// detection here is a deliberately simple stopword-frequency heuristic (§9
// open question) rather than a statistical n-gram model — documented in
// DESIGN.md as the chosen resolution.
var stopwords = map[string]map[string]struct{}{
	"en": set("the", "and", "is", "of", "to", "in", "that", "it", "for", "on", "with", "as", "was", "are"),
	"fr": set("le", "la", "les", "et", "est", "de", "des", "un", "une", "que", "pour", "dans", "avec"),
	"de": set("der", "die", "das", "und", "ist", "von", "den", "ein", "eine", "mit", "für", "auf", "nicht"),
	"es": set("el", "la", "los", "las", "y", "es", "de", "un", "una", "que", "para", "con", "por"),
	"pt": set("o", "a", "os", "as", "e", "é", "de", "um", "uma", "que", "para", "com", "por"),
	"it": set("il", "lo", "la", "i", "gli", "le", "e", "è", "di", "un", "una", "che", "per", "con"),
	"nl": set("de", "het", "een", "en", "is", "van", "dat", "voor", "met", "op", "niet"),
}

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// detectLanguages tags result.DetectedLanguages with the tags scoring above
// cfg.MinConfidence, most confident first. When cfg.Multi is false only the
// single best match (if any) is kept.
func detectLanguages(result *domain.ExtractionResult, cfg domain.LanguageDetectionConfig) {
	tokens := tokenize(result.Content)
	if len(tokens) == 0 {
		return
	}

	type score struct {
		tag   string
		ratio float64
	}
	scores := make([]score, 0, len(stopwords))
	for tag, words := range stopwords {
		hits := 0
		for _, t := range tokens {
			if _, ok := words[t]; ok {
				hits++
			}
		}
		scores = append(scores, score{tag: tag, ratio: float64(hits) / float64(len(tokens))})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].ratio != scores[j].ratio {
			return scores[i].ratio > scores[j].ratio
		}
		return scores[i].tag < scores[j].tag
	})

	var matched []string
	for _, s := range scores {
		if s.ratio <= cfg.MinConfidence {
			continue
		}
		matched = append(matched, s.tag)
		if !cfg.Multi {
			break
		}
	}
	result.DetectedLanguages = matched
}

func tokenize(text string) []string {
	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, strings.ToLower(b.String()))
			b.Reset()
		}
	}
	for _, r := range text {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}
