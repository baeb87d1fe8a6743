package wordlink

import (
	"strconv"
	"strings"

	"github.com/yadascribe/scribe-backend/internal/domain"
)

// RefAttr is the attribute added to a linked run's start tag.
const RefAttr = "data-word-ref"

// Annotation is the result of one render pass.
type Annotation struct {
	HTML string
	// Refs maps the ids written into RefAttr to the matched entries.
	Refs   map[string]domain.MatchResult
	Linked int
}

// Annotator links marked runs in translation HTML to lexicon matches.
// Ids are IDPrefix followed by a counter local to each Annotate call.
type Annotator struct {
	Mode     Mode
	IDPrefix string
}

// Annotate renders src with a fresh id counter using the "w" prefix.
func Annotate(src string, lookup map[string]domain.MatchResult, mode Mode) Annotation {
	return Annotator{Mode: mode}.Annotate(src, lookup)
}

// Annotate walks the runs of src. A run is looked up by its whole text first,
// then by each whitespace-separated word in order; the first hit wins.
// Linked runs get RefAttr on their start tag. Everything else is copied
// through byte for byte.
func (a Annotator) Annotate(src string, lookup map[string]domain.MatchResult) Annotation {
	prefix := a.IDPrefix
	if prefix == "" {
		prefix = "w"
	}

	res := Annotation{Refs: make(map[string]domain.MatchResult)}
	var out strings.Builder
	out.Grow(len(src) + 32)

	walkRuns(src, a.Mode,
		func(raw string) { out.WriteString(raw) },
		func(r *run) {
			match, ok := resolve(r.text.String(), lookup)
			if !ok {
				out.WriteString(r.start)
				out.WriteString(r.inner.String())
				out.WriteString(r.end)
				return
			}
			res.Linked++
			id := prefix + strconv.Itoa(res.Linked)
			res.Refs[id] = match
			out.WriteString(withRefAttr(r.start, id))
			out.WriteString(r.inner.String())
			out.WriteString(r.end)
		},
	)

	res.HTML = out.String()
	return res
}

func resolve(text string, lookup map[string]domain.MatchResult) (domain.MatchResult, bool) {
	if len(lookup) == 0 {
		return domain.MatchResult{}, false
	}
	if key := LookupKey(text); key != "" {
		if m, ok := lookup[key]; ok {
			return m, true
		}
	}
	for _, word := range strings.Fields(NormalizeCorpus(text)) {
		key := LookupKey(word)
		if key == "" {
			continue
		}
		if m, ok := lookup[key]; ok {
			return m, true
		}
	}
	return domain.MatchResult{}, false
}

// withRefAttr inserts the ref attribute before the closing '>' of a raw start tag.
func withRefAttr(startTag, id string) string {
	i := strings.LastIndexByte(startTag, '>')
	if i < 0 {
		return startTag
	}
	return startTag[:i] + " " + RefAttr + `="` + id + `"` + startTag[i:]
}
