package responder

import (
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// space matches one Unicode whitespace character. RE2's \s is ASCII only, so
// the separators (\p{Z}), vertical tab, the C0 information separators and NEL
// are listed explicitly.
const space = `[\s\v\x1c-\x1f\x85\p{Z}]`

// delimiter matches a run of whitespace, or one punctuation mark together
// with any whitespace that follows it.
var delimiter = regexp.MustCompile(space + `+|[,;?!.-]` + space + `*`)

// Lower lowercases s the way Tokenize does, including the final-sigma rule.
// Words that are compared against tokens must be lowered with it.
func Lower(s string) string {
	// Casers are stateful, so one is built per call.
	return cases.Lower(language.Und).String(s)
}

// Tokenize lowercases an utterance and splits it into words.
//
// Empty tokens produced by leading, trailing or adjacent delimiters are kept;
// they never match a recognized word. The empty string yields a single empty
// token.
func Tokenize(utterance string) []string {
	return delimiter.Split(Lower(utterance), -1)
}
