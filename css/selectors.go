package css

// Selector is the union of every node CSS Selectors Level 4 §4.5
// produces: TypeSelector, IdSelector, ClassSelector,
// AttributeSelector, PseudoClassSelector, PseudoElementSelector, the
// five combinators, CompoundSelector, ComplexSelector, and
// RelativeSelector.
type Selector interface {
	location() Location
	selector()
}

func (*TypeSelector) selector()                {}
func (*IdSelector) selector()                  {}
func (*ClassSelector) selector()               {}
func (*AttributeSelector) selector()           {}
func (*PseudoClassSelector) selector()         {}
func (*PseudoElementSelector) selector()       {}
func (*DescendantCombinator) selector()        {}
func (*ChildCombinator) selector()             {}
func (*NextSiblingCombinator) selector()       {}
func (*SubsequentSiblingCombinator) selector() {}
func (*ColumnCombinator) selector()            {}
func (*CompoundSelector) selector()            {}
func (*ComplexSelector) selector()             {}
func (*RelativeSelector) selector()            {}

// NsPrefix is the optional `ident|` / `*|` / `|` namespace prefix
// attached to a TypeSelector or a wq-name. Value == "" && !Universal
// denotes the empty prefix form (bare `|name`, meaning "no
// namespace"); Universal denotes `*|name`.
type NsPrefix struct {
	Value     string
	Universal bool
	Loc       Location
}

func (p *NsPrefix) location() Location { return p.Loc }

// WqName is `[ns-prefix]? ident`, used by TypeSelector and
// AttributeSelector.
type WqName struct {
	Prefix *NsPrefix
	Name   string
	Loc    Location
}

func (w WqName) location() Location { return w.Loc }

// TypeSelector is `[ns-prefix]? (ident | '*')`. Universal is true for
// the `*` form, in which case Name is unused.
type TypeSelector struct {
	Prefix    *NsPrefix
	Name      string
	Universal bool
	Loc       Location
}

func (t *TypeSelector) location() Location { return t.Loc }

// IdSelector is a HashID-kind hash token used as a subclass selector.
type IdSelector struct {
	Name string
	Loc  Location
}

func (s *IdSelector) location() Location { return s.Loc }

// ClassSelector is `.` ident.
type ClassSelector struct {
	Name string
	Loc  Location
}

func (s *ClassSelector) location() Location { return s.Loc }

// AttributeMatcher is the optional `op value modifier?` tail of an
// attribute selector. Op is one of "=", "~=", "|=", "^=", "$=", "*=".
type AttributeMatcher struct {
	Op       string
	Value    string
	IsString bool
	Modifier byte // 0, 'i', or 's'
}

// AttributeSelector is `[ wq-name (matcher)? ]`.
type AttributeSelector struct {
	Name    WqName
	Matcher *AttributeMatcher
	Loc     Location
}

func (s *AttributeSelector) location() Location { return s.Loc }

// PseudoClassSelector is `:` followed by either a bare ident or a
// PseudoClassFunction. Exactly one of Name/Function is set.
type PseudoClassSelector struct {
	Name     string
	Function *PseudoClassFunction
	Loc      Location
}

func (s *PseudoClassSelector) location() Location { return s.Loc }

// PseudoClassFunction is `ident( arguments )`, where arguments is a
// selector list re-parsed from the function's inner component values
// — except for `:has(...)`, whose arguments are a relative-selector
// list (see ParseRelativeSelectorList).
type PseudoClassFunction struct {
	Name      string
	Arguments []Selector
	Loc       Location
}

// PseudoElementSelector is `:` followed by a nested
// PseudoClassSelector — i.e. the textual `::name` or `::name(...)`
// form, per the abridged grammar in spec.md §4.5.
type PseudoElementSelector struct {
	Pseudo *PseudoClassSelector
	Loc    Location
}

func (s *PseudoElementSelector) location() Location { return s.Loc }

// DescendantCombinator is the implicit whitespace combinator,
// promoted to an explicit node so formatters can reproduce canonical
// single-space output (spec.md §9).
type DescendantCombinator struct{ Loc Location }

func (c *DescendantCombinator) location() Location { return c.Loc }

// ChildCombinator is `>`.
type ChildCombinator struct{ Loc Location }

func (c *ChildCombinator) location() Location { return c.Loc }

// NextSiblingCombinator is `+`.
type NextSiblingCombinator struct{ Loc Location }

func (c *NextSiblingCombinator) location() Location { return c.Loc }

// SubsequentSiblingCombinator is `~`.
type SubsequentSiblingCombinator struct{ Loc Location }

func (c *SubsequentSiblingCombinator) location() Location { return c.Loc }

// ColumnCombinator is `||`.
type ColumnCombinator struct{ Loc Location }

func (c *ColumnCombinator) location() Location { return c.Loc }

// PseudoElementGroup is one `<pseudo-element> <pseudo-class>*` run
// inside a CompoundSelector.
type PseudoElementGroup struct {
	Element *PseudoElementSelector
	Classes []*PseudoClassSelector
}

// CompoundSelector is a type selector, subclass selectors, and
// pseudo-element groups with no intervening whitespace. A compound
// with exactly one piece and no pseudo-elements collapses to that
// piece instead of being wrapped (spec.md §3 invariant); this type is
// only produced when there is more than one piece, or at least one
// pseudo-element group.
type CompoundSelector struct {
	Type           *TypeSelector
	Subclasses     []Selector // IdSelector | ClassSelector | AttributeSelector | PseudoClassSelector
	PseudoElements []PseudoElementGroup
	Loc            Location
}

func (c *CompoundSelector) location() Location { return c.Loc }

// ComplexSelector is compound selectors joined by combinators. Odd
// indices are combinators, even indices are compound/simple
// selectors. A complex selector with exactly one child collapses to
// that child (spec.md §3 invariant); this type is only produced when
// there is more than one child.
type ComplexSelector struct {
	Children []Selector
	Loc      Location
}

func (c *ComplexSelector) location() Location { return c.Loc }

// RelativeSelector is `[combinator]? complex-selector`, produced by
// ParseRelativeSelectorList for `:has()`'s argument grammar. A nil
// Combinator denotes the implicit descendant relationship.
type RelativeSelector struct {
	Combinator Selector
	Complex    Selector
	Loc        Location
}

func (r *RelativeSelector) location() Location { return r.Loc }

// ParseSelectorList parses source as a comma-separated list of
// complex selectors (spec.md §4.5 `selectors(tokens) -> [Selector]`).
func (p *Parser) ParseSelectorList(source string) ([]Selector, error) {
	diags := newDiagnostics(p.log.Named("selectors"))
	cvs, eofLoc, tzErr := groupComponentValues(source, diags)
	if tzErr != nil {
		return nil, tzErr
	}
	sels, err := parseSelectorListFromComponentValues(cvs, eofLoc, diags)
	if err != nil {
		return nil, err
	}
	return sels, diags.err()
}

// ParseRelativeSelectorList parses source as a comma-separated list
// of relative selectors — the argument grammar `:has()` uses (CSS
// Selectors Level 4 §4.5; supplemented here because RelativeSelector
// is otherwise dead data in the type system, see SPEC_FULL.md).
func (p *Parser) ParseRelativeSelectorList(source string) ([]Selector, error) {
	diags := newDiagnostics(p.log.Named("relative-selectors"))
	cvs, eofLoc, tzErr := groupComponentValues(source, diags)
	if tzErr != nil {
		return nil, tzErr
	}
	sels, err := parseRelativeSelectorListFromComponentValues(cvs, eofLoc, diags)
	if err != nil {
		return nil, err
	}
	return sels, diags.err()
}

func groupComponentValues(source string, diags *diagnostics) ([]ComponentValue, Location, error) {
	tz := newTokenizer(preprocess(source), diags)
	var cvs []ComponentValue
	for {
		if tz.Peek().Kind == KindEOF {
			return cvs, tz.Peek().Loc, nil
		}
		cvs = append(cvs, consumeComponentValue(tz, diags))
	}
}

func parseSelectorListFromComponentValues(cvs []ComponentValue, eofLoc Location, diags *diagnostics) ([]Selector, error) {
	sp := &selectorParser{c: newSelectorCursor(cvs, eofLoc), diags: diags}
	return sp.selectorList()
}

func parseRelativeSelectorListFromComponentValues(cvs []ComponentValue, eofLoc Location, diags *diagnostics) ([]Selector, error) {
	sp := &selectorParser{c: newSelectorCursor(cvs, eofLoc), diags: diags}
	return sp.relativeSelectorList()
}

// selectorCursor is the transactional token cursor spec.md §4.5/§9
// describes: an integer position into an already-materialized
// []ComponentValue slice. Backtracking never copies data, only moves
// the integer (see tryConsumeTypeSelector for the save/restore
// pattern used throughout this file).
type selectorCursor struct {
	cvs []ComponentValue
	pos int
	eof Token
}

func newSelectorCursor(cvs []ComponentValue, eofLoc Location) *selectorCursor {
	return &selectorCursor{cvs: cvs, eof: Token{Kind: KindEOF, Loc: eofLoc}}
}

func (c *selectorCursor) peek() ComponentValue { return c.peekAt(0) }

func (c *selectorCursor) peekAt(n int) ComponentValue {
	idx := c.pos + n
	if idx < 0 || idx >= len(c.cvs) {
		return c.eof
	}
	return c.cvs[idx]
}

func (c *selectorCursor) next() ComponentValue {
	v := c.peek()
	if c.pos < len(c.cvs) {
		c.pos++
	}
	return v
}

// selectorParser is the hand-written recursive-descent selectors
// parser (spec.md §4.5). diags collects recoverable conditions;
// structural failures raise *missingToken. tryConsumeSubclassSelector
// catches one from a pseudo-class by restoring the cursor; the other
// try* helpers (tryConsumeNsPrefix, tryConsumeTypeSelector,
// tryConsumeExplicitCombinator) look ahead before consuming and leave
// the cursor where it was when they do not match. An unhandled
// occurrence at the entry points surfaces as a *ParseError.
type selectorParser struct {
	c     *selectorCursor
	diags *diagnostics
}

func (sp *selectorParser) skipWS() (Location, bool) {
	var loc Location
	saw := false
	for {
		tok, ok := asToken(sp.c.peek())
		if !ok || (tok.Kind != KindWhitespace && tok.Kind != KindComment) {
			break
		}
		sp.c.next()
		loc = loc.cover(tok.Loc)
		saw = true
	}
	return loc, saw
}

func isSelectorEOF(cv ComponentValue) bool {
	tok, ok := asToken(cv)
	return ok && tok.Kind == KindEOF
}

func isComma(cv ComponentValue) bool {
	tok, ok := asToken(cv)
	return ok && tok.Kind == KindComma
}

// selectorList implements `<selector-list> = <complex-selector> (
// ',' <complex-selector> )*`.
func (sp *selectorParser) selectorList() ([]Selector, error) {
	sp.skipWS()
	var result []Selector
	for {
		sel, err := sp.complexSelectorOrCollapse()
		if err != nil {
			return nil, toParseError(err)
		}
		result = append(result, sel)
		sp.skipWS()
		if isComma(sp.c.peek()) {
			sp.c.next()
			sp.skipWS()
			continue
		}
		if isSelectorEOF(sp.c.peek()) {
			return result, nil
		}
		return nil, &ParseError{Message: "expected ',' or end of selector list", Loc: sp.c.peek().location()}
	}
}

// relativeSelectorList implements `<relative-selector-list> =
// <relative-selector> ( ',' <relative-selector> )*`.
func (sp *selectorParser) relativeSelectorList() ([]Selector, error) {
	sp.skipWS()
	var result []Selector
	for {
		sel, err := sp.relativeSelector()
		if err != nil {
			return nil, toParseError(err)
		}
		result = append(result, sel)
		sp.skipWS()
		if isComma(sp.c.peek()) {
			sp.c.next()
			sp.skipWS()
			continue
		}
		if isSelectorEOF(sp.c.peek()) {
			return result, nil
		}
		return nil, &ParseError{Message: "expected ',' or end of relative selector list", Loc: sp.c.peek().location()}
	}
}

// relativeSelector implements `<relative-selector> = <combinator>?
// <complex-selector>`; an omitted combinator denotes the implicit
// descendant relationship (Combinator left nil).
func (sp *selectorParser) relativeSelector() (Selector, error) {
	comb, hasComb := sp.tryConsumeExplicitCombinator()
	if hasComb {
		sp.skipWS()
	}
	complex, err := sp.complexSelectorOrCollapse()
	if err != nil {
		return nil, err
	}
	loc := complex.location()
	if hasComb {
		loc = comb.location().cover(loc)
	}
	return &RelativeSelector{Combinator: comb, Complex: complex, Loc: loc}, nil
}

// complexSelectorOrCollapse implements `<complex-selector> =
// <compound-selector> ( <combinator>? <compound-selector> )*`,
// collapsing to the bare compound when there is only one (spec.md §3
// invariant).
func (sp *selectorParser) complexSelectorOrCollapse() (Selector, error) {
	first, err := sp.compoundSelector()
	if err != nil {
		return nil, err
	}
	children := []Selector{first}
	for {
		comb, ok := sp.consumeCombinatorStep()
		if !ok {
			break
		}
		next, err := sp.compoundSelector()
		if err != nil {
			return nil, err
		}
		children = append(children, comb, next)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	var loc Location
	for _, ch := range children {
		loc = loc.cover(ch.location())
	}
	return &ComplexSelector{Children: children, Loc: loc}, nil
}

// consumeCombinatorStep consumes one combinator between two compound
// selectors, or reports ok=false when the complex selector has ended
// (next non-whitespace is a comma, close, or EOF). Explicit
// combinators consume their own surrounding whitespace; a bare run of
// whitespace with a compound selector following is the implicit
// descendant combinator (spec.md §4.5 "Whitespace rule for
// combinators").
func (sp *selectorParser) consumeCombinatorStep() (Selector, bool) {
	wsLoc, sawWS := sp.skipWS()
	if comb, ok := sp.tryConsumeExplicitCombinator(); ok {
		sp.skipWS()
		return comb, true
	}
	if sawWS && isCompoundStart(sp.c.peek()) {
		return &DescendantCombinator{Loc: wsLoc}, true
	}
	return nil, false
}

func (sp *selectorParser) tryConsumeExplicitCombinator() (Selector, bool) {
	tok, ok := asToken(sp.c.peek())
	if !ok || tok.Kind != KindDelim {
		return nil, false
	}
	switch tok.Delim {
	case '>':
		sp.c.next()
		return &ChildCombinator{Loc: tok.Loc}, true
	case '+':
		sp.c.next()
		return &NextSiblingCombinator{Loc: tok.Loc}, true
	case '~':
		sp.c.next()
		return &SubsequentSiblingCombinator{Loc: tok.Loc}, true
	case '|':
		if nxt, ok := asToken(sp.c.peekAt(1)); ok && nxt.Kind == KindDelim && nxt.Delim == '|' {
			sp.c.next()
			sp.c.next()
			return &ColumnCombinator{Loc: tok.Loc.cover(nxt.Loc)}, true
		}
	}
	return nil, false
}

// isCompoundStart reports whether cv could begin a compound selector:
// a type selector, `*`, `.`, `|` (namespace prefix), a hash, an
// attribute block, or a pseudo-class/element colon.
func isCompoundStart(cv ComponentValue) bool {
	if blk, ok := cv.(*SimpleBlock); ok {
		return blk.Opening == '['
	}
	if _, ok := cv.(*Function); ok {
		return false
	}
	tok, ok := asToken(cv)
	if !ok {
		return false
	}
	switch tok.Kind {
	case KindIdent, KindHash, KindColon:
		return true
	case KindDelim:
		return tok.Delim == '*' || tok.Delim == '.' || tok.Delim == '|'
	}
	return false
}

// compoundSelector implements `<compound-selector> = <type-selector>?
// <subclass-selector>* ( <pseudo-element-selector>
// <pseudo-class-selector>* )*`, collapsing a lone piece to itself.
func (sp *selectorParser) compoundSelector() (Selector, error) {
	typeSel, hasType := sp.tryConsumeTypeSelector()

	var subclasses []Selector
	for {
		sc, ok := sp.tryConsumeSubclassSelector()
		if !ok {
			break
		}
		subclasses = append(subclasses, sc)
	}

	var groups []PseudoElementGroup
	for {
		cur, ok := asToken(sp.c.peek())
		if !ok || cur.Kind != KindColon {
			break
		}
		nxt, ok := asToken(sp.c.peekAt(1))
		if !ok || nxt.Kind != KindColon {
			break
		}
		outer := sp.c.next()
		inner, err := sp.consumePseudoClassSelector()
		if err != nil {
			return nil, err
		}
		group := PseudoElementGroup{Element: &PseudoElementSelector{Pseudo: inner, Loc: outer.Loc.cover(inner.Loc)}}
		for {
			c2, ok := asToken(sp.c.peek())
			if !ok || c2.Kind != KindColon {
				break
			}
			if n2, ok := asToken(sp.c.peekAt(1)); ok && n2.Kind == KindColon {
				break
			}
			pc, err := sp.consumePseudoClassSelector()
			if err != nil {
				return nil, err
			}
			group.Classes = append(group.Classes, pc)
		}
		groups = append(groups, group)
	}

	pieceCount := len(subclasses)
	if hasType {
		pieceCount++
	}
	if pieceCount == 0 && len(groups) == 0 {
		return nil, &missingToken{msg: "expected compound selector", loc: sp.c.peek().location()}
	}
	if pieceCount == 1 && len(groups) == 0 {
		if hasType {
			return typeSel, nil
		}
		return subclasses[0], nil
	}

	loc := Location{}
	if hasType {
		loc = loc.cover(typeSel.Loc)
	}
	for _, sc := range subclasses {
		loc = loc.cover(sc.location())
	}
	for _, g := range groups {
		loc = loc.cover(g.Element.Loc)
		for _, pc := range g.Classes {
			loc = loc.cover(pc.location())
		}
	}
	return &CompoundSelector{Type: typeSel, Subclasses: subclasses, PseudoElements: groups, Loc: loc}, nil
}

func (sp *selectorParser) tryConsumeTypeSelector() (*TypeSelector, bool) {
	saved := sp.c.pos
	prefix, hasPrefix := sp.tryConsumeNsPrefix()
	tok, ok := asToken(sp.c.peek())
	if !ok {
		sp.c.pos = saved
		return nil, false
	}
	switch {
	case tok.Kind == KindIdent:
		sp.c.next()
		loc := tok.Loc
		if hasPrefix {
			loc = prefix.Loc.cover(loc)
		}
		return &TypeSelector{Prefix: prefix, Name: tok.Text, Loc: loc}, true
	case tok.Kind == KindDelim && tok.Delim == '*':
		sp.c.next()
		loc := tok.Loc
		if hasPrefix {
			loc = prefix.Loc.cover(loc)
		}
		return &TypeSelector{Prefix: prefix, Universal: true, Loc: loc}, true
	default:
		sp.c.pos = saved
		return nil, false
	}
}

// tryConsumeNsPrefix implements `<ns-prefix> = [ <ident-token> | '*'
// ]? '|'`, taking care not to consume the first pipe of a `||` column
// combinator as an empty-name namespace prefix.
func (sp *selectorParser) tryConsumeNsPrefix() (*NsPrefix, bool) {
	cur, ok := asToken(sp.c.peek())
	if !ok {
		return nil, false
	}
	if cur.Kind == KindDelim && cur.Delim == '|' {
		if nxt, ok := asToken(sp.c.peekAt(1)); ok && nxt.Kind == KindDelim && nxt.Delim == '|' {
			return nil, false
		}
		sp.c.next()
		return &NsPrefix{Loc: cur.Loc}, true
	}
	if cur.Kind == KindIdent || (cur.Kind == KindDelim && cur.Delim == '*') {
		nxt, ok := asToken(sp.c.peekAt(1))
		if !ok || nxt.Kind != KindDelim || nxt.Delim != '|' {
			return nil, false
		}
		if after, ok := asToken(sp.c.peekAt(2)); ok && after.Kind == KindDelim && after.Delim == '|' {
			return nil, false
		}
		sp.c.next()
		pipe := sp.c.next()
		pipeTok, _ := asToken(pipe)
		if cur.Kind == KindIdent {
			return &NsPrefix{Value: cur.Text, Loc: cur.Loc.cover(pipeTok.Loc)}, true
		}
		return &NsPrefix{Universal: true, Loc: cur.Loc.cover(pipeTok.Loc)}, true
	}
	return nil, false
}

// tryConsumeSubclassSelector implements one iteration of
// `<subclass-selector>* = ( <id> | <class> | <attribute> |
// <pseudo-class> )*`. A malformed `[...]` attribute selector is a
// hard structural error (nothing else can start with `[`), so it is
// logged and treated as end-of-subclasses rather than silently
// backtracked.
func (sp *selectorParser) tryConsumeSubclassSelector() (Selector, bool) {
	cv := sp.c.peek()
	if blk, ok := cv.(*SimpleBlock); ok && blk.Opening == '[' {
		sp.c.next()
		attr, err := sp.consumeAttributeSelectorFromBlock(blk)
		if err != nil {
			sp.diags.add(StageSelector, blk.Loc, "%s", err.Error())
			return nil, false
		}
		return attr, true
	}
	tok, ok := asToken(cv)
	if !ok {
		return nil, false
	}
	switch {
	case tok.Kind == KindHash:
		if tok.HashKind != HashID {
			return nil, false
		}
		sp.c.next()
		return &IdSelector{Name: tok.Text, Loc: tok.Loc}, true
	case tok.Kind == KindDelim && tok.Delim == '.':
		saved := sp.c.pos
		sp.c.next()
		nameTok, ok := asToken(sp.c.peek())
		if !ok || nameTok.Kind != KindIdent {
			sp.c.pos = saved
			return nil, false
		}
		sp.c.next()
		return &ClassSelector{Name: nameTok.Text, Loc: tok.Loc.cover(nameTok.Loc)}, true
	case tok.Kind == KindColon:
		if nxt, ok := asToken(sp.c.peekAt(1)); ok && nxt.Kind == KindColon {
			return nil, false // start of a pseudo-element group, not a subclass selector
		}
		saved := sp.c.pos
		pc, err := sp.consumePseudoClassSelector()
		if err != nil {
			sp.c.pos = saved
			return nil, false
		}
		return pc, true
	}
	return nil, false
}

// consumeAttributeSelectorFromBlock implements `<attribute> = '['
// <wq-name> (<attr-matcher> (<string>|<ident>) <attr-modifier>?)?
// ']'` over a SimpleBlock's already-isolated Values.
func (sp *selectorParser) consumeAttributeSelectorFromBlock(blk *SimpleBlock) (*AttributeSelector, error) {
	inner := &selectorParser{c: newSelectorCursor(blk.Values, blk.Loc), diags: sp.diags}
	inner.skipWS()
	wq, err := inner.consumeWqName()
	if err != nil {
		return nil, err
	}
	inner.skipWS()

	var matcher *AttributeMatcher
	if !isSelectorEOF(inner.c.peek()) {
		op, ok := inner.tryConsumeAttrMatcherOp()
		if !ok {
			return nil, &missingToken{msg: "expected attribute matcher", loc: inner.c.peek().location()}
		}
		inner.skipWS()

		cv := inner.c.peek()
		tok, okTok := asToken(cv)
		var value string
		var isString bool
		switch {
		case okTok && tok.Kind == KindString:
			inner.c.next()
			value, isString = tok.Text, true
		case okTok && tok.Kind == KindIdent:
			inner.c.next()
			value = tok.Text
		default:
			return nil, &missingToken{msg: "expected string or ident in attribute value", loc: cv.location()}
		}
		inner.skipWS()

		var modifier byte
		if mt, ok := asToken(inner.c.peek()); ok && mt.Kind == KindIdent && len(mt.Text) == 1 {
			switch mt.Text[0] {
			case 'i', 'I':
				inner.c.next()
				modifier = 'i'
			case 's', 'S':
				inner.c.next()
				modifier = 's'
			}
		}
		inner.skipWS()
		matcher = &AttributeMatcher{Op: op, Value: value, IsString: isString, Modifier: modifier}
	}

	return &AttributeSelector{Name: wq, Matcher: matcher, Loc: blk.Loc}, nil
}

func (sp *selectorParser) consumeWqName() (WqName, error) {
	prefix, _ := sp.tryConsumeNsPrefix()
	tok, ok := asToken(sp.c.peek())
	if !ok || tok.Kind != KindIdent {
		return WqName{}, &missingToken{msg: "expected ident in wq-name", loc: sp.c.peek().location()}
	}
	sp.c.next()
	loc := tok.Loc
	if prefix != nil {
		loc = prefix.Loc.cover(loc)
	}
	return WqName{Prefix: prefix, Name: tok.Text, Loc: loc}, nil
}

func (sp *selectorParser) tryConsumeAttrMatcherOp() (string, bool) {
	tok, ok := asToken(sp.c.peek())
	if !ok || tok.Kind != KindDelim {
		return "", false
	}
	if tok.Delim == '=' {
		sp.c.next()
		return "=", true
	}
	switch tok.Delim {
	case '~', '|', '^', '$', '*':
		if nxt, ok := asToken(sp.c.peekAt(1)); ok && nxt.Kind == KindDelim && nxt.Delim == '=' {
			sp.c.next()
			sp.c.next()
			return string(tok.Delim) + "=", true
		}
	}
	return "", false
}

// consumePseudoClassSelector implements `<pseudo-class> = ':' (
// <ident> | <function-token> <any-value> ')' )`, assuming the cursor
// is positioned at the leading colon.
func (sp *selectorParser) consumePseudoClassSelector() (*PseudoClassSelector, error) {
	colonCV := sp.c.next()
	colon, _ := asToken(colonCV)

	cv := sp.c.peek()
	if tok, ok := asToken(cv); ok && tok.Kind == KindIdent {
		sp.c.next()
		return &PseudoClassSelector{Name: tok.Text, Loc: colon.Loc.cover(tok.Loc)}, nil
	}
	if fn, ok := cv.(*Function); ok {
		sp.c.next()
		var args []Selector
		var err error
		if asciiEqualFold(fn.Name, "has") {
			args, err = parseRelativeSelectorListFromComponentValues(fn.Values, fn.Loc, sp.diags)
		} else {
			args, err = parseSelectorListFromComponentValues(fn.Values, fn.Loc, sp.diags)
		}
		if err != nil {
			return nil, err
		}
		pf := &PseudoClassFunction{Name: fn.Name, Arguments: args, Loc: fn.Loc}
		return &PseudoClassSelector{Function: pf, Loc: colon.Loc.cover(fn.Loc)}, nil
	}
	return nil, &missingToken{msg: "expected pseudo-class name, got " + describeCV(cv), loc: cv.location()}
}

// toParseError normalizes a selectors-internal error into the
// *ParseError the entry points return; a *missingToken that escapes
// every backtracked scope means the top-level selector itself failed
// to parse (spec.md §7 "an unhandled missing token propagates as a
// ParseError from the selectors entry").
func toParseError(err error) error {
	if mt, ok := err.(*missingToken); ok {
		return &ParseError{Message: mt.msg, Loc: mt.loc}
	}
	return err
}
