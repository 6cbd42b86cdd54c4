package css

// preprocess implements the CSS Syntax Level 3 input preprocessing
// step (https://www.w3.org/TR/css-syntax-3/#input-preprocessing):
// every instance of "\r\n" or a lone "\r" or "\f" becomes "\n", and
// every U+0000 NULL becomes U+FFFD REPLACEMENT CHARACTER. Surrogate
// replacement is intentionally skipped (spec.md §4.1): the input is
// assumed to already be a sequence of Unicode scalar values, which Go
// guarantees for any string decoded as runes.
//
// The result is idempotent (invariant 4, spec.md §8): none of the
// three substituted sequences ("\r\n", "\r", "\f") can appear in an
// already-preprocessed sequence, so running preprocess again is a
// no-op.
func preprocess(input string) []rune {
	src := []rune(input)
	out := make([]rune, 0, len(src))
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch c {
		case '\r':
			out = append(out, '\n')
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
		case '\f':
			out = append(out, '\n')
		case 0:
			out = append(out, '�')
		default:
			out = append(out, c)
		}
	}
	return out
}
