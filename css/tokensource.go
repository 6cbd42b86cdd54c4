package css

// tokenSource is satisfied by anything that can hand out raw tokens
// one at a time with one-token lookahead: the live Tokenizer, or any
// other producer of a flat Token stream. It is the level at which
// consumeComponentValue/consumeSimpleBlock/consumeFunction operate,
// since building a SimpleBlock or Function requires seeing individual
// bracket/punctuation tokens, not already-grouped component values.
type tokenSource interface {
	Next() Token
	Peek() Token
}

// cvSource is satisfied by anything that hands out already-grouped
// ComponentValue items (Token | *SimpleBlock | *Function) with one
// item of lookahead. Rule-list/at-rule/qualified-rule/declaration-list
// consumption all operate at this level: a `{`/`[`/`(` has already
// been folded into a SimpleBlock by the time these consumers see it,
// so "accumulate until the next `{`" becomes "accumulate until the
// next SimpleBlock with Opening == '{'" with no separate bracket
// matching required at this layer (spec.md §4.3/§4.6 — the grammar
// parser's internal consumers and the style-rule promoter share this
// same consumption logic over a prelude or block's component values).
type cvSource interface {
	PeekCV() ComponentValue
	NextCV() ComponentValue
}

// cvList is a cvSource over a fixed, already-materialized slice of
// component values, terminated by a synthetic EOF token at its own
// end. It is how a QualifiedRule's already-parsed Prelude/Block.Values
// are re-consumed during style-rule promotion (spec.md §4.6) and how
// a declaration's bounded run of values is isolated before
// consumeDeclaration parses it (spec.md §9 "bounded views over the
// owning vector").
type cvList struct {
	cvs []ComponentValue
	pos int
	eof Token
}

func newCVList(cvs []ComponentValue, eofLoc Location) *cvList {
	return &cvList{cvs: cvs, eof: Token{Kind: KindEOF, Loc: eofLoc}}
}

func (l *cvList) PeekCV() ComponentValue {
	if l.pos < len(l.cvs) {
		return l.cvs[l.pos]
	}
	return l.eof
}

func (l *cvList) NextCV() ComponentValue {
	v := l.PeekCV()
	if l.pos < len(l.cvs) {
		l.pos++
	}
	return v
}

// liveCV adapts a raw tokenSource into a cvSource by grouping each
// component value on demand via consumeComponentValue — the single
// point where bracket/function grouping happens. Everything above
// this adapter (rule lists, at-rules, qualified rules, declaration
// lists) consumes already-grouped ComponentValue items and never
// looks at individual bracket tokens.
type liveCV struct {
	s      tokenSource
	diags  *diagnostics
	cached ComponentValue
	has    bool
}

func newLiveCV(s tokenSource, diags *diagnostics) *liveCV {
	return &liveCV{s: s, diags: diags}
}

func (l *liveCV) PeekCV() ComponentValue {
	if !l.has {
		if l.s.Peek().Kind == KindEOF {
			l.cached = l.s.Peek()
		} else {
			l.cached = consumeComponentValue(l.s, l.diags)
		}
		l.has = true
	}
	return l.cached
}

func (l *liveCV) NextCV() ComponentValue {
	v := l.PeekCV()
	l.has = false
	return v
}

// asToken reports whether cv is a plain Token component (as opposed
// to a *SimpleBlock or *Function), which is how every punctuator,
// ident, and other leaf token is represented at the cvSource layer.
func asToken(cv ComponentValue) (Token, bool) {
	t, ok := cv.(Token)
	return t, ok
}

func isEOFCV(cv ComponentValue) bool {
	t, ok := asToken(cv)
	return ok && t.Kind == KindEOF
}

// describeCV renders a ComponentValue's shape for diagnostic messages.
func describeCV(cv ComponentValue) string {
	switch v := cv.(type) {
	case Token:
		return v.Kind.String()
	case *SimpleBlock:
		return "block(" + string(v.Opening) + ")"
	case *Function:
		return "function"
	default:
		return "component value"
	}
}
