package wordlink

import "strings"

var pgRegexEscaper = strings.NewReplacer(
	`\`, `\\`, `.`, `\.`, `+`, `\+`, `*`, `\*`, `?`, `\?`,
	`[`, `\[`, `]`, `\]`, `^`, `\^`, `$`, `\$`,
	`(`, `\(`, `)`, `\)`, `{`, `\{`, `}`, `\}`, `|`, `\|`,
)

// PostgresWordPattern builds a PostgreSQL ARE matching any of the spellings as
// a whole word. Spellings that start or end with an apostrophe use letter
// lookarounds on that side, since \m and \M do not treat the apostrophe as
// part of a word. Returns "" when there is nothing to match.
func PostgresWordPattern(spellings []string) string {
	alts := make([]string, 0, len(spellings))
	for _, sp := range spellings {
		sp = strings.TrimSpace(sp)
		if sp == "" {
			continue
		}
		prefix, suffix := `\m`, `\M`
		if strings.HasPrefix(sp, "'") {
			prefix = `(?<![a-zA-Z])`
		}
		if strings.HasSuffix(sp, "'") {
			suffix = `(?![a-zA-Z])`
		}
		alts = append(alts, prefix+pgRegexEscaper.Replace(sp)+suffix)
	}
	if len(alts) == 0 {
		return ""
	}
	return "(" + strings.Join(alts, "|") + ")"
}
