// Package textnorm canonicalizes mention text for non-strict comparison.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// punctuation is the ASCII punctuation set removed before comparison.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Normalize lowercases text and removes punctuation, articles and extra whitespace.
// - Lowercases with Unicode case mapping
// - Deletes ASCII punctuation
// - Replaces the whole words "a", "an" and "the" with a space
// - Collapses whitespace runs and trims
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// A Caser keeps state between calls, so each call gets its own.
	text = cases.Lower(language.Und).String(text)
	text = stripPunctuation(text)
	text = removeArticles(text)
	return strings.Join(strings.Fields(text), " ")
}

func stripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, text)
}

// removeArticles replaces article words with a space. A word is a maximal
// run of Unicode letters and digits, matching a Unicode-aware \b.
func removeArticles(text string) string {
	var builder strings.Builder
	builder.Grow(len(text))

	wordStart := -1
	flush := func(end int) {
		if wordStart < 0 {
			return
		}
		word := text[wordStart:end]
		if isArticle(word) {
			builder.WriteByte(' ')
		} else {
			builder.WriteString(word)
		}
		wordStart = -1
	}

	for i, r := range text {
		if isWordRune(r) {
			if wordStart < 0 {
				wordStart = i
			}
			continue
		}
		flush(i)
		builder.WriteRune(r)
	}
	flush(len(text))

	return builder.String()
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

func isArticle(word string) bool {
	switch word {
	case "a", "an", "the":
		return true
	}
	return false
}
