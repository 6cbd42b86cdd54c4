package css

import (
	"strconv"
	"strings"
)

const eof rune = -1

// Tokenizer is a lazy, single-pass, one-token-lookahead producer of
// Tokens over a preprocessed source sequence (CSS Syntax §4,
// spec.md §4.2). It never raises; recoverable tokenization problems
// are appended to its diagnostics and a best-effort token is still
// produced.
type Tokenizer struct {
	src    []rune
	pos    int
	diags  *diagnostics
	peeked *Token
	peekAt int // t.pos saved alongside peeked, restored when Next consumes it
}

// Tokenize returns a Tokenizer over source, ready to produce tokens
// starting at offset 0 of the preprocessed sequence.
func Tokenize(source string) *Tokenizer {
	return newTokenizer(preprocess(source), newDiagnostics(nil))
}

func newTokenizer(src []rune, diags *diagnostics) *Tokenizer {
	return &Tokenizer{src: src, diags: diags}
}

// Diagnostics returns the recoverable errors accumulated so far.
func (t *Tokenizer) Diagnostics() []*Diagnostic { return t.diags.items }

// Len reports the length, in runes, of the preprocessed source this
// tokenizer scans. Every emitted Location falls within [0, Len()].
func (t *Tokenizer) Len() int { return len(t.src) }

// peekAtN returns the rune n positions ahead of the current
// position, or eof past the end. tokenizerPeeker exposes it through
// the peeker interface used by the spec-derived lookahead predicates.
func (t *Tokenizer) peekAtN(n int) rune {
	i := t.pos + n
	if i < 0 || i >= len(t.src) {
		return eof
	}
	return t.src[i]
}

// adapt *Tokenizer to the peeker interface without exporting a
// confusing second peekAt name.
type tokenizerPeeker struct{ t *Tokenizer }

func (p tokenizerPeeker) peekAt(n int) rune { return p.t.peekAtN(n) }

func (t *Tokenizer) asPeeker() peeker { return tokenizerPeeker{t} }

func (t *Tokenizer) cur() rune  { return t.peekAtN(0) }
func (t *Tokenizer) advance()   { t.pos++ }

// Peek returns the next token without consuming it. Calling Peek
// multiple times in a row returns the same token.
func (t *Tokenizer) Peek() Token {
	if t.peeked == nil {
		saved := t.pos
		tok := t.next()
		t.peekAt = t.pos
		t.pos = saved
		t.peeked = &tok
	}
	return *t.peeked
}

// Next consumes and returns the next token, terminated by a
// synthetic EOF token at [Len(), Len()).
func (t *Tokenizer) Next() Token {
	if t.peeked != nil {
		tok := *t.peeked
		t.pos = t.peekAt
		t.peeked = nil
		return tok
	}
	return t.next()
}

// next implements CSS Syntax §4.3.1 "Consume a token".
func (t *Tokenizer) next() Token {
	start := t.pos
	c := t.cur()

	switch {
	case c == eof:
		return Token{Kind: KindEOF, Loc: Location{start, start}}
	case isWhitespace(c):
		return t.consumeWhitespace(start)
	case c == '"' || c == '\'':
		return t.consumeString(start, c)
	case c == '#':
		return t.consumeHash(start)
	case c == '(':
		t.advance()
		return Token{Kind: KindOpenParen, Loc: Location{start, t.pos}}
	case c == ')':
		t.advance()
		return Token{Kind: KindCloseParen, Loc: Location{start, t.pos}}
	case c == ',':
		t.advance()
		return Token{Kind: KindComma, Loc: Location{start, t.pos}}
	case c == '-':
		return t.consumeMinus(start)
	case c == '.':
		return t.consumeDot(start)
	case c == '/':
		return t.consumeSlash(start)
	case c == ':':
		t.advance()
		return Token{Kind: KindColon, Loc: Location{start, t.pos}}
	case c == ';':
		t.advance()
		return Token{Kind: KindSemicolon, Loc: Location{start, t.pos}}
	case c == '<':
		return t.consumeLessThan(start)
	case c == '@':
		return t.consumeAt(start)
	case c == '[':
		t.advance()
		return Token{Kind: KindOpenSquare, Loc: Location{start, t.pos}}
	case c == '\\':
		return t.consumeBackslash(start)
	case c == ']':
		t.advance()
		return Token{Kind: KindCloseSquare, Loc: Location{start, t.pos}}
	case c == '{':
		t.advance()
		return Token{Kind: KindOpenCurly, Loc: Location{start, t.pos}}
	case c == '}':
		t.advance()
		return Token{Kind: KindCloseCurly, Loc: Location{start, t.pos}}
	case c == '+':
		return t.consumePlus(start)
	case isDigit(c):
		return t.consumeNumeric(start)
	case c == 'u' || c == 'U':
		if tok, ok := t.tryUnicodeRange(start); ok {
			return tok
		}
		return t.consumeIdentLike(start)
	case isNameStart(c):
		return t.consumeIdentLike(start)
	default:
		t.advance()
		return Token{Kind: KindDelim, Delim: c, Loc: Location{start, t.pos}}
	}
}

func (t *Tokenizer) consumeWhitespace(start int) Token {
	for isWhitespace(t.cur()) {
		t.advance()
	}
	return Token{Kind: KindWhitespace, Text: string(t.src[start:t.pos]), Loc: Location{start, t.pos}}
}

// consumeComment implements CSS Syntax §4.3.2 comment consumption.
// Comments are not tokens in the formal grammar (CSS Syntax consumes
// them before the next real token is produced), but spec.md's data
// model keeps them as first-class Comment tokens, which consumeSlash
// returns, so
// no source text is ever silently discarded (spec.md §1: "it does
// not discard unknown tokens").
func (t *Tokenizer) consumeComment(start int) Token {
	t.advance() // '/'
	t.advance() // '*'
	for {
		c := t.cur()
		if c == eof {
			t.diags.add(StageTokenizer, Location{start, t.pos}, "unterminated comment")
			return Token{Kind: KindComment, Text: string(t.src[start+2 : t.pos]), Loc: Location{start, t.pos}}
		}
		if c == '*' && t.peekAtN(1) == '/' {
			t.advance()
			t.advance()
			return Token{Kind: KindComment, Text: string(t.src[start+2 : t.pos-2]), Loc: Location{start, t.pos}}
		}
		t.advance()
	}
}

func (t *Tokenizer) consumeSlash(start int) Token {
	if t.peekAtN(1) == '*' {
		return t.consumeComment(start)
	}
	t.advance()
	return Token{Kind: KindDelim, Delim: '/', Loc: Location{start, t.pos}}
}

func (t *Tokenizer) consumeString(start int, quote rune) Token {
	t.advance() // opening quote
	var sb strings.Builder
	for {
		c := t.cur()
		switch {
		case c == eof:
			t.diags.add(StageTokenizer, Location{start, t.pos}, "unterminated string")
			return Token{Kind: KindString, Text: sb.String(), Loc: Location{start, t.pos}}
		case c == quote:
			t.advance()
			return Token{Kind: KindString, Text: sb.String(), Loc: Location{start, t.pos}}
		case c == '\n':
			t.diags.add(StageTokenizer, Location{start, t.pos}, "newline in string")
			return Token{Kind: KindBadString, Text: sb.String(), Loc: Location{start, t.pos}}
		case c == '\\':
			if t.peekAtN(1) == eof {
				t.advance()
				continue
			}
			if t.peekAtN(1) == '\n' {
				t.advance()
				t.advance()
				continue
			}
			sb.WriteRune(t.consumeEscape())
		default:
			sb.WriteRune(c)
			t.advance()
		}
	}
}

// consumeEscape implements CSS Syntax §4.3.7, called with the cursor
// positioned at the leading backslash.
func (t *Tokenizer) consumeEscape() rune {
	t.advance() // backslash
	c := t.cur()
	if c == eof {
		return '�'
	}
	if isHexDigit(c) {
		var v uint32
		n := 0
		for n < 6 && isHexDigit(t.cur()) {
			v = v<<4 | uint32(hexVal(t.cur()))
			t.advance()
			n++
		}
		if isWhitespace(t.cur()) {
			t.advance()
		}
		if v == 0 || isSurrogate(rune(v)) || v > 0x10FFFF {
			return '�'
		}
		return rune(v)
	}
	t.advance()
	return c
}

func hexVal(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

func (t *Tokenizer) consumeHash(start int) Token {
	t.advance() // '#'
	p := t.asPeeker()
	if isNameCode(p.peekAt(0)) || isValidEscape(p) {
		kind := HashUnrestricted
		if wouldStartIdent(p) {
			kind = HashID
		}
		name := t.consumeName()
		return Token{Kind: KindHash, Text: name, HashKind: kind, Loc: Location{start, t.pos}}
	}
	return Token{Kind: KindDelim, Delim: '#', Loc: Location{start, t.pos}}
}

// consumeName implements CSS Syntax §4.3.11 "Consume a name".
func (t *Tokenizer) consumeName() string {
	var sb strings.Builder
	for {
		c := t.cur()
		switch {
		case isNameCode(c):
			sb.WriteRune(c)
			t.advance()
		case isValidEscape(t.asPeeker()):
			sb.WriteRune(t.consumeEscape())
		default:
			return sb.String()
		}
	}
}

func (t *Tokenizer) consumeMinus(start int) Token {
	p := t.asPeeker()
	if wouldStartNumber(p) {
		return t.consumeNumeric(start)
	}
	if t.peekAtN(1) == '-' && t.peekAtN(2) == '>' {
		t.advance()
		t.advance()
		t.advance()
		return Token{Kind: KindCDC, Loc: Location{start, t.pos}}
	}
	if wouldStartIdent(p) {
		return t.consumeIdentLike(start)
	}
	t.advance()
	return Token{Kind: KindDelim, Delim: '-', Loc: Location{start, t.pos}}
}

func (t *Tokenizer) consumeDot(start int) Token {
	if wouldStartNumber(t.asPeeker()) {
		return t.consumeNumeric(start)
	}
	t.advance()
	return Token{Kind: KindDelim, Delim: '.', Loc: Location{start, t.pos}}
}

func (t *Tokenizer) consumePlus(start int) Token {
	if wouldStartNumber(t.asPeeker()) {
		return t.consumeNumeric(start)
	}
	t.advance()
	return Token{Kind: KindDelim, Delim: '+', Loc: Location{start, t.pos}}
}

func (t *Tokenizer) consumeLessThan(start int) Token {
	if t.peekAtN(1) == '!' && t.peekAtN(2) == '-' && t.peekAtN(3) == '-' {
		t.advance()
		t.advance()
		t.advance()
		t.advance()
		return Token{Kind: KindCDO, Loc: Location{start, t.pos}}
	}
	t.advance()
	return Token{Kind: KindDelim, Delim: '<', Loc: Location{start, t.pos}}
}

func (t *Tokenizer) consumeAt(start int) Token {
	t.advance() // '@'
	if wouldStartIdent(t.asPeeker()) {
		name := t.consumeName()
		return Token{Kind: KindAtKeyword, Text: name, Loc: Location{start, t.pos}}
	}
	return Token{Kind: KindDelim, Delim: '@', Loc: Location{start, t.pos}}
}

func (t *Tokenizer) consumeBackslash(start int) Token {
	if isValidEscape(t.asPeeker()) {
		return t.consumeIdentLike(start)
	}
	t.diags.add(StageTokenizer, Location{start, start + 1}, "invalid escape")
	t.advance()
	return Token{Kind: KindDelim, Delim: '\\', Loc: Location{start, t.pos}}
}

// consumeNumeric implements CSS Syntax §4.3.2/§4.3.12.
func (t *Tokenizer) consumeNumeric(start int) Token {
	value, kind := t.consumeNumber()
	p := t.asPeeker()
	switch {
	case wouldStartIdent(p):
		unit := t.consumeName()
		return Token{Kind: KindDimension, Number: value, NumKind: kind, Unit: unit, Loc: Location{start, t.pos}}
	case t.cur() == '%':
		t.advance()
		return Token{Kind: KindPercentage, Number: value, NumKind: kind, Loc: Location{start, t.pos}}
	default:
		return Token{Kind: KindNumber, Number: value, NumKind: kind, Loc: Location{start, t.pos}}
	}
}

// consumeNumber implements CSS Syntax §4.3.13 "Consume a number".
// The CSS number grammar this produces (optional sign, digits,
// optional '.' digits, optional e/E optional-sign digits) is a
// syntactic subset of Go's float literal grammar, so the conversion
// formula spec.md §4.3 describes (sign * (integer + fraction) *
// 10^exponent) is delegated to strconv.ParseFloat on the captured
// representation rather than re-implemented digit by digit.
func (t *Tokenizer) consumeNumber() (float64, NumberKind) {
	start := t.pos
	kind := NumberInteger

	if c := t.cur(); c == '+' || c == '-' {
		t.advance()
	}
	for isDigit(t.cur()) {
		t.advance()
	}
	if t.cur() == '.' && isDigit(t.peekAtN(1)) {
		kind = NumberNumber
		t.advance()
		for isDigit(t.cur()) {
			t.advance()
		}
	}
	if c := t.cur(); c == 'e' || c == 'E' {
		n1 := t.peekAtN(1)
		n2 := t.peekAtN(2)
		if isDigit(n1) || ((n1 == '+' || n1 == '-') && isDigit(n2)) {
			kind = NumberNumber
			t.advance()
			if c := t.cur(); c == '+' || c == '-' {
				t.advance()
			}
			for isDigit(t.cur()) {
				t.advance()
			}
		}
	}

	repr := string(t.src[start:t.pos])
	value, err := strconv.ParseFloat(repr, 64)
	if err != nil {
		value = 0
	}
	return value, kind
}

// consumeIdentLike implements CSS Syntax §4.3.3.
func (t *Tokenizer) consumeIdentLike(start int) Token {
	name := t.consumeName()
	if t.cur() == '(' {
		if asciiEqualFold(name, "url") {
			t.advance()
			return t.consumeURL(start)
		}
		t.advance()
		return Token{Kind: KindFunction, Text: name, Loc: Location{start, t.pos}}
	}
	return Token{Kind: KindIdent, Text: name, Loc: Location{start, t.pos}}
}

// consumeURL implements CSS Syntax §4.3.6, entered just after the
// opening '(' of a url(...) has been consumed.
func (t *Tokenizer) consumeURL(start int) Token {
	for isWhitespace(t.cur()) {
		t.advance()
	}
	if t.cur() == eof {
		return Token{Kind: KindURL, Loc: Location{start, t.pos}}
	}
	if t.cur() == '"' || t.cur() == '\'' {
		quote := t.cur()
		str := t.consumeString(t.pos, quote)
		if str.Kind == KindBadString {
			return t.consumeBadURLRemnants(start)
		}
		for isWhitespace(t.cur()) {
			t.advance()
		}
		if t.cur() == ')' || t.cur() == eof {
			if t.cur() == ')' {
				t.advance()
			}
			return Token{Kind: KindURL, Text: str.Text, Loc: Location{start, t.pos}}
		}
		t.diags.add(StageTokenizer, Location{start, t.pos}, "invalid character in url")
		return t.consumeBadURLRemnants(start)
	}

	var sb strings.Builder
	for {
		c := t.cur()
		switch {
		case c == ')':
			t.advance()
			return Token{Kind: KindURL, Text: sb.String(), Loc: Location{start, t.pos}}
		case c == eof:
			t.diags.add(StageTokenizer, Location{start, t.pos}, "unterminated url")
			return Token{Kind: KindURL, Text: sb.String(), Loc: Location{start, t.pos}}
		case isWhitespace(c):
			for isWhitespace(t.cur()) {
				t.advance()
			}
			if t.cur() == ')' {
				t.advance()
				return Token{Kind: KindURL, Text: sb.String(), Loc: Location{start, t.pos}}
			}
			if t.cur() == eof {
				t.diags.add(StageTokenizer, Location{start, t.pos}, "unterminated url")
				return Token{Kind: KindURL, Text: sb.String(), Loc: Location{start, t.pos}}
			}
			t.diags.add(StageTokenizer, Location{start, t.pos}, "invalid character in url")
			return t.consumeBadURLRemnants(start)
		case c == '"' || c == '\'' || c == '(':
			t.diags.add(StageTokenizer, Location{start, t.pos}, "invalid character in url")
			return t.consumeBadURLRemnants(start)
		case isNonPrintable(c):
			t.diags.add(StageTokenizer, Location{start, t.pos}, "invalid character in url")
			return t.consumeBadURLRemnants(start)
		case c == '\\':
			if isValidEscape(t.asPeeker()) {
				sb.WriteRune(t.consumeEscape())
			} else {
				t.diags.add(StageTokenizer, Location{start, t.pos}, "invalid escape in url")
				return t.consumeBadURLRemnants(start)
			}
		default:
			sb.WriteRune(c)
			t.advance()
		}
	}
}

// consumeBadURLRemnants implements CSS Syntax §4.3.14.
func (t *Tokenizer) consumeBadURLRemnants(start int) Token {
	for {
		c := t.cur()
		switch {
		case c == ')' || c == eof:
			if c == ')' {
				t.advance()
			}
			return Token{Kind: KindBadURL, Loc: Location{start, t.pos}}
		case isValidEscape(t.asPeeker()):
			t.consumeEscape()
		default:
			t.advance()
		}
	}
}
