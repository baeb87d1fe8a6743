package wordlink

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Mode selects which markup counts as a word run when rendering.
type Mode int

const (
	// ModePublished treats only <i> elements as runs. Used for imported translations.
	ModePublished Mode = iota
	// ModeAuthored treats <i> and <span class="word"> alike. Used for editor content.
	ModeAuthored
)

// ParseMode maps "published" and "authored" to a Mode. Empty means published.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "published":
		return ModePublished, true
	case "authored":
		return ModeAuthored, true
	}
	return ModePublished, false
}

func (m Mode) String() string {
	if m == ModeAuthored {
		return "authored"
	}
	return "published"
}

// CorpusRuns returns the plain text of every marked run the frequency counter
// looks at: each <i> element and each <span> whose class is exactly "word".
// The two kinds are collected independently, so an <i> nested in a word span
// contributes twice. A run ends at the first matching end tag; runs left open
// at the end of the input are ignored.
func CorpusRuns(src string) []string {
	runs := collectRuns(src, "i", nil)
	return append(runs, collectRuns(src, "span", classIsExactly("word"))...)
}

func collectRuns(src, tag string, accept func(*html.Tokenizer) bool) []string {
	z := html.NewTokenizer(strings.NewReader(src))

	var (
		runs []string
		text strings.Builder
		open bool
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return runs
		case html.StartTagToken:
			if open {
				continue
			}
			name, hasAttr := z.TagName()
			if string(name) != tag {
				continue
			}
			if accept != nil && (!hasAttr || !accept(z)) {
				continue
			}
			open = true
			text.Reset()
		case html.EndTagToken:
			if !open {
				continue
			}
			if name, _ := z.TagName(); string(name) == tag {
				runs = append(runs, text.String())
				open = false
			}
		case html.TextToken:
			if open {
				text.Write(z.Text())
			}
		}
	}
}

func classIsExactly(class string) func(*html.Tokenizer) bool {
	return func(z *html.Tokenizer) bool {
		for {
			key, val, more := z.TagAttr()
			if string(key) == "class" && string(val) == class {
				return true
			}
			if !more {
				return false
			}
		}
	}
}

func hasClass(z *html.Tokenizer, class string) bool {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "class" {
			for _, c := range strings.Fields(string(val)) {
				if c == class {
					return true
				}
			}
		}
		if !more {
			return false
		}
	}
}

// run is one marked run found while rendering, with its raw bytes split
// into start tag, inner markup and end tag.
type run struct {
	tag   string
	start string
	inner strings.Builder
	end   string
	text  strings.Builder
	depth int
}

// walkRuns tokenizes src and reports every byte exactly once: bytes outside
// runs go to other, complete runs go to found. Runs nest by tag name, so a
// word span containing other spans closes at its own end tag. An unclosed run
// is reported through other unchanged.
func walkRuns(src string, mode Mode, other func(raw string), found func(r *run)) {
	z := html.NewTokenizer(strings.NewReader(src))

	var cur *run
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		// TagName, TagAttr and Text rewrite the token buffer in place,
		// so the raw bytes are copied first.
		raw := string(z.Raw())

		if cur == nil {
			if tt == html.StartTagToken {
				if tag, ok := opensRun(z, mode); ok {
					cur = &run{tag: tag, start: raw}
					continue
				}
			}
			other(raw)
			continue
		}

		switch tt {
		case html.StartTagToken:
			if name, _ := z.TagName(); string(name) == cur.tag {
				cur.depth++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == cur.tag {
				if cur.depth == 0 {
					cur.end = raw
					found(cur)
					cur = nil
					continue
				}
				cur.depth--
			}
		case html.TextToken:
			cur.text.Write(z.Text())
		}
		cur.inner.WriteString(raw)
	}

	if cur != nil {
		other(cur.start + cur.inner.String())
	}
}

func opensRun(z *html.Tokenizer, mode Mode) (string, bool) {
	name, hasAttr := z.TagName()
	switch string(name) {
	case "i":
		return "i", true
	case "span":
		if mode == ModeAuthored && hasAttr && hasClass(z, "word") {
			return "span", true
		}
	}
	return "", false
}

// RunTexts returns the plain text of each run that Annotate would consider.
func RunTexts(src string, mode Mode) []string {
	var texts []string
	walkRuns(src, mode, func(string) {}, func(r *run) {
		texts = append(texts, r.text.String())
	})
	return texts
}

// CandidateWords returns the lowercase lookup keys worth sending to the
// matcher for src: each run's whole key plus its individual tokens.
func CandidateWords(src string, mode Mode) []string {
	var words []string
	for _, text := range RunTexts(src, mode) {
		if key := LookupKey(text); utf8.RuneCountInString(key) > 1 {
			words = append(words, key)
		}
		words = append(words, ExtractTokens(text)...)
	}
	return TokenSet(words)
}

// PlainText returns the text content of src with markup removed and
// character references decoded.
func PlainText(src string) string {
	z := html.NewTokenizer(strings.NewReader(src))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
