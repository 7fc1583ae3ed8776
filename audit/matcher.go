package audit

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"brand-audit-pipeline/models"
)

// contextRadius is how many characters of surrounding text are kept on each
// side of a match.
const contextRadius = 50

// FindMentions locates every whole-word occurrence of every configured brand
// in text. The result maps each brand with at least one occurrence to its
// occurrences in ascending position order. Overlapping configured brands are
// matched independently. Offsets and context windows are counted in
// characters, not bytes.
func FindMentions(text string, set *BrandSet) map[string][]models.MentionOccurrence {
	mentions := make(map[string][]models.MentionOccurrence)

	for _, brand := range set.order {
		var occurrences []models.MentionOccurrence
		for _, loc := range set.patterns[brand].FindAllStringIndex(text, -1) {
			start, end := loc[0], loc[1]
			if !atWordBoundaries(text, start, end) {
				continue
			}
			occurrences = append(occurrences, models.MentionOccurrence{
				Brand:      brand,
				CharOffset: utf8.RuneCountInString(text[:start]),
				Context:    strings.TrimSpace(contextWindow(text, start, end)),
			})
		}
		if len(occurrences) > 0 {
			mentions[brand] = occurrences
		}
	}

	return mentions
}

// atWordBoundaries reports whether the match [start, end) is bounded by
// non-word runes (or the text edges). Unlike regexp's \b, this treats any
// Unicode letter or digit as a word rune.
func atWordBoundaries(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// contextWindow expands [start, end) by contextRadius characters on each
// side, clipped to the text bounds, stepping whole runes so the window never
// splits a multibyte character.
func contextWindow(text string, start, end int) string {
	ctxStart := start
	for i := 0; i < contextRadius && ctxStart > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:ctxStart])
		ctxStart -= size
	}
	ctxEnd := end
	for i := 0; i < contextRadius && ctxEnd < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[ctxEnd:])
		ctxEnd += size
	}
	return text[ctxStart:ctxEnd]
}
