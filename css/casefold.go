package css

import "golang.org/x/text/cases"

// caseFolder normalizes case for the ASCII-case-insensitive keyword
// comparisons made through asciiEqualFold: "url" in the tokenizer,
// "important" in the grammar parser, and the "has" pseudo-class name
// in the selectors parser. cases.Fold performs full
// Unicode case folding, a superset of the ASCII folding the spec
// actually needs, so it is safe to use uniformly instead of hand
// rolling byte-range comparisons.
var caseFolder = cases.Fold()

// asciiEqualFold reports whether a and b are equal under CSS's
// ASCII-case-insensitive keyword matching.
func asciiEqualFold(a, b string) bool {
	return caseFolder.String(a) == caseFolder.String(b)
}
