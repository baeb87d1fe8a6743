// Package wordlink finds source-language words marked up in translation HTML,
// counts them across the corpus and links them to lexicon entries.
package wordlink

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// quoteFolder maps curly single quotes and the prime to an ASCII apostrophe.
var quoteFolder = runes.Map(func(r rune) rune {
	switch r {
	case '\u2018', '\u2019', '\u2032':
		return '\''
	}
	return r
})

// corpusFolder additionally maps en and em dashes to an ASCII hyphen.
var corpusFolder = runes.Map(func(r rune) rune {
	switch r {
	case '\u2018', '\u2019', '\u2032':
		return '\''
	case '\u2013', '\u2014':
		return '-'
	}
	return r
})

// Normalize folds quote variants to an ASCII apostrophe.
func Normalize(s string) string {
	return fold(quoteFolder, s)
}

// NormalizeCorpus folds quote variants and dashes. Used on translation text.
func NormalizeCorpus(s string) string {
	return fold(corpusFolder, s)
}

func fold(t transform.Transformer, s string) string {
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// isWordByte reports whether b counts as part of a word for edge trimming
// and boundary checks: an ASCII letter or an apostrophe.
func isWordByte(b byte) bool {
	return b == '\'' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isWordRune(r rune) bool {
	return r < utf8.RuneSelf && isWordByte(byte(r))
}

// TrimEdges strips leading and trailing runes that are not ASCII letters or apostrophes.
func TrimEdges(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return !isWordRune(r) })
}

// LookupKey derives the matcher key for a piece of run text.
func LookupKey(s string) string {
	return strings.ToLower(TrimEdges(strings.TrimSpace(NormalizeCorpus(s))))
}

// ExtractTokens splits text into candidate word tokens in order of appearance.
// Tokens of one character or less after edge trimming are dropped.
func ExtractTokens(text string) []string {
	fields := strings.Fields(NormalizeCorpus(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := TrimEdges(f)
		if utf8.RuneCountInString(tok) <= 1 {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// TokenSet lowercases tokens and removes duplicates, keeping first appearance order.
func TokenSet(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		k := strings.ToLower(t)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// ParseWordList parses a pipe-delimited word list as sent by the lookup client.
// Malformed input yields an empty slice.
func ParseWordList(raw string) []string {
	raw = Normalize(raw)
	parts := strings.Split(raw, "|")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			words = append(words, p)
		}
	}
	return TokenSet(words)
}
