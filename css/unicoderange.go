package css

import "github.com/dlclark/regexp2"

// unicodeRangeText validates the concatenated "u+..." text of a
// candidate unicode-range token. It is deliberately looser than the
// hand-written scan in tryUnicodeRange would need on its own — per
// spec.md §4.4/§9, acceptance must not rest on the state machine
// alone, so every candidate is re-checked against this text-level
// pattern before being accepted. Grounded on the open question in
// spec.md §9: "reject when the resulting concatenation fails the
// text-level regex rather than relying on the state machine alone."
//
// The first alternative covers plain hex ("26"), hex with trailing
// wildcards ("4??"), plain explicit ranges ("0-7F"), and wildcards
// followed by an explicit range end ("1F??-2FFF"); the second covers
// the all-wildcard form ("??????"), which has no leading hex digit.
var unicodeRangeText = regexp2.MustCompile(
	`^[0-9A-Fa-f]{1,6}\?{0,5}(-[0-9A-Fa-f]{1,6})?$|^\?{1,6}$`,
	regexp2.None,
)

func validUnicodeRangeText(s string) bool {
	ok, err := unicodeRangeText.MatchString(s)
	return err == nil && ok
}

// tryUnicodeRange speculatively consumes the "u+…" microsyntax
// (CSS Syntax §4.3.6, spec.md §4.4) starting at the tokenizer's
// current position, which must be 'u' or 'U'. It reports ok=false
// and leaves the cursor untouched when the input does not match,
// so the caller falls back to ordinary ident-like tokenization.
//
// The concatenated hex/'?'/'-' text is re-validated against
// unicodeRangeText before acceptance; a structurally-plausible but
// over-long or malformed match (more than 6 hex digits total, a
// dangling '-', etc.) is rejected here rather than trusted to the
// character-level scan.
//
// Wildcards and a trailing explicit range are not mutually exclusive
// (spec.md §4.4: "u+ HEX(1..6) ('?'*)? ( - HEX(1..6) )?"), so
// "1F??-2FFF" is scanned as hex "1F", wildcards "??", then the
// explicit end "2FFF"; its start still comes from zero-filling the
// wildcards, but its end comes from the explicit hex, not from
// one-filling the wildcards.
func (t *Tokenizer) tryUnicodeRange(start int) (Token, bool) {
	if t.peekAtN(1) != '+' || !(isHexDigit(t.peekAtN(2)) || t.peekAtN(2) == '?') {
		return Token{}, false
	}

	saved := t.pos
	t.advance() // 'u'/'U'
	t.advance() // '+'
	textStart := t.pos

	hexStart := t.pos
	hexDigits := 0
	for hexDigits < 6 && isHexDigit(t.cur()) {
		t.advance()
		hexDigits++
	}
	hexPart := string(t.src[hexStart:t.pos])

	questionMarks := 0
	for hexDigits+questionMarks < 6 && t.cur() == '?' {
		t.advance()
		questionMarks++
	}

	hasRange := false
	var hiPart string
	if t.cur() == '-' && isHexDigit(t.peekAtN(1)) {
		hasRange = true
		t.advance() // '-'
		hiStart := t.pos
		n := 0
		for n < 6 && isHexDigit(t.cur()) {
			t.advance()
			n++
		}
		hiPart = string(t.src[hiStart:t.pos])
	}

	text := string(t.src[textStart:t.pos])
	if !validUnicodeRangeText(text) {
		t.pos = saved
		return Token{}, false
	}

	base := parseHex(hexPart)
	rangeStart, rangeEnd := base, base
	for i := 0; i < questionMarks; i++ {
		rangeStart <<= 4
		rangeEnd = rangeEnd<<4 | 0xF
	}
	if hasRange {
		rangeEnd = parseHex(hiPart)
	}

	if rangeEnd > 0x10FFFF || rangeStart > rangeEnd {
		t.diags.add(StageMicrosyntax, Location{start, t.pos}, "unicode-range end out of bounds or start > end")
		t.pos = saved
		return Token{}, false
	}

	return Token{
		Kind:       KindUnicodeRange,
		RangeStart: rangeStart,
		RangeEnd:   rangeEnd,
		Loc:        Location{start, t.pos},
	}, true
}

func parseHex(s string) uint32 {
	var v uint32
	for i := 0; i < len(s); i++ {
		v = v<<4 | uint32(hexVal(rune(s[i])))
	}
	return v
}
