package css

import (
	"github.com/lukehoban/csscore/internal/clog"
)

// Parser holds nothing but an optional logger: every entry point is
// a fresh, independent parse over its own source, mirroring
// benbjohnson/css's package-level ParseStyleSheet/ParseRule/...
// functions (each of which constructs its own throwaway *parser).
// Keeping a *Parser value around only matters for sharing a logger
// across calls.
type Parser struct {
	log *clog.Logger
}

// NewParser returns a Parser that traces recoverable diagnostics
// through log (nil is fine — it defaults to a no-op logger, as
// rupor-github-fb2cng/css.Parser does for its *zap.Logger).
func NewParser(log *clog.Logger) *Parser {
	return &Parser{log: clogOrNop(log)}
}

// Parse is the library's primary entry point (spec.md §6): parse
// source into a CssStylesheet with qualified rules promoted to
// StyleRule.
func Parse(source string) (*CssStylesheet, error) {
	return NewParser(nil).ParseCssStylesheet(source)
}

// ParseStylesheet parses the full source into an untouched rule list
// (spec.md §4.3): at-rules and qualified rules exactly as written,
// with no selector/declaration re-parsing.
func (p *Parser) ParseStylesheet(source string) (*Stylesheet, error) {
	diags := newDiagnostics(p.log.Named("stylesheet"))
	tz := newTokenizer(preprocess(source), diags)
	rules := consumeRuleList(newLiveCV(tz, diags), diags, true)
	return &Stylesheet{Rules: rules, Errors: diags.items, Loc: locationOfAll(rules)}, diags.err()
}

// ParseCssStylesheet parses source and promotes every top-level
// QualifiedRule into a StyleRule (spec.md §4.6).
func (p *Parser) ParseCssStylesheet(source string) (*CssStylesheet, error) {
	diags := newDiagnostics(p.log.Named("stylesheet"))
	tz := newTokenizer(preprocess(source), diags)
	rawRules := consumeRuleList(newLiveCV(tz, diags), diags, true)

	rules := make([]Rule, len(rawRules))
	for i, r := range rawRules {
		rules[i] = promoteRule(r, diags, p.log)
	}
	return &CssStylesheet{Rules: rules, Errors: diags.items, Loc: locationOfAll(rules)}, diags.err()
}

// ParseRuleList parses source as a nested (non-top-level) rule list:
// CDO/CDC tokens are treated as ordinary qualified-rule starters
// rather than discarded (spec.md §4.3).
func (p *Parser) ParseRuleList(source string) ([]Rule, error) {
	diags := newDiagnostics(p.log.Named("rule-list"))
	tz := newTokenizer(preprocess(source), diags)
	return consumeRuleList(newLiveCV(tz, diags), diags, false), diags.err()
}

// ParseRule parses exactly one rule from source. It is a hard-fail
// entry point: empty input, trailing input after the rule, or an
// invalid rule produce a *ParseError instead of a Rule.
func (p *Parser) ParseRule(source string) (Rule, error) {
	diags := newDiagnostics(p.log.Named("rule"))
	tz := newTokenizer(preprocess(source), diags)
	s := newLiveCV(tz, diags)

	skipCVWhitespace(s)
	tok, isTok := asToken(s.PeekCV())
	if isTok && tok.Kind == KindEOF {
		return nil, &ParseError{Message: "expected rule, got EOF", Loc: tok.Loc}
	}

	var rule Rule
	if isTok && tok.Kind == KindAtKeyword {
		rule = consumeAtRule(s, diags)
	} else {
		rule = consumeQualifiedRule(s, diags)
		if rule == nil {
			return nil, &ParseError{Message: "invalid rule", Loc: s.PeekCV().location()}
		}
	}

	skipCVWhitespace(s)
	if end, ok := asToken(s.PeekCV()); !ok || end.Kind != KindEOF {
		return nil, &ParseError{Message: "unexpected trailing input after rule", Loc: s.PeekCV().location()}
	}
	return rule, nil
}

// ParseDeclaration parses exactly one name: value declaration. It is
// a hard-fail entry point: empty input or input not starting with an
// ident produce a *ParseError.
func (p *Parser) ParseDeclaration(source string) (*PropertyDeclaration, error) {
	diags := newDiagnostics(p.log.Named("declaration"))
	tz := newTokenizer(preprocess(source), diags)
	s := newLiveCV(tz, diags)

	skipCVWhitespace(s)
	if tok, ok := asToken(s.PeekCV()); !ok || tok.Kind != KindIdent {
		return nil, &ParseError{Message: "expected ident, got " + describeCV(s.PeekCV()), Loc: s.PeekCV().location()}
	}

	d := consumeDeclaration(s, diags)
	if d == nil {
		return nil, &ParseError{Message: "expected declaration", Loc: s.PeekCV().location()}
	}
	return d, nil
}

// ParseDeclarationList parses source as a list of declarations and
// at-rules (spec.md §4.3).
func (p *Parser) ParseDeclarationList(source string) ([]Declaration, error) {
	diags := newDiagnostics(p.log.Named("declaration-list"))
	tz := newTokenizer(preprocess(source), diags)
	return consumeDeclarationList(newLiveCV(tz, diags), diags), diags.err()
}

// ParseComponentValue parses exactly one component value. Hard-fail
// on empty input or trailing input after the value.
func (p *Parser) ParseComponentValue(source string) (ComponentValue, error) {
	diags := newDiagnostics(p.log.Named("component-value"))
	tz := newTokenizer(preprocess(source), diags)

	skipWhitespace(tz)
	if tz.Peek().Kind == KindEOF {
		return nil, &ParseError{Message: "unexpected EOF", Loc: tz.Peek().Loc}
	}

	v := consumeComponentValue(tz, diags)

	skipWhitespace(tz)
	if tok := tz.Peek(); tok.Kind != KindEOF {
		return nil, &ParseError{Message: "expected EOF, got " + tok.Kind.String(), Loc: tok.Loc}
	}
	return v, nil
}

// ParseComponentValues parses source as a list of component values.
func (p *Parser) ParseComponentValues(source string) ([]ComponentValue, error) {
	diags := newDiagnostics(p.log.Named("component-values"))
	tz := newTokenizer(preprocess(source), diags)

	var values []ComponentValue
	for {
		if tz.Peek().Kind == KindEOF {
			tz.Next()
			break
		}
		values = append(values, consumeComponentValue(tz, diags))
	}
	return values, diags.err()
}

// --- internal consumers, all per CSS Syntax §5.4 / spec.md §4.3 ---

func skipWhitespace(s tokenSource) {
	for s.Peek().Kind == KindWhitespace {
		s.Next()
	}
}

// consumeRuleList implements "consume a list of rules" (§5.4.1), over
// already-grouped component values: a `{` has already been folded
// into a SimpleBlock by liveCV, so there is nothing bracket-specific
// left for this layer to do.
func consumeRuleList(s cvSource, diags *diagnostics, topLevel bool) []Rule {
	var rules []Rule
	for {
		tok, isTok := asToken(s.PeekCV())
		switch {
		case isTok && (tok.Kind == KindWhitespace || tok.Kind == KindComment):
			s.NextCV()
		case isTok && tok.Kind == KindEOF:
			return rules
		case isTok && (tok.Kind == KindCDO || tok.Kind == KindCDC):
			if topLevel {
				s.NextCV()
				continue
			}
			if r := consumeQualifiedRule(s, diags); r != nil {
				rules = append(rules, r)
			}
		case isTok && tok.Kind == KindAtKeyword:
			rules = append(rules, consumeAtRule(s, diags))
		default:
			if r := consumeQualifiedRule(s, diags); r != nil {
				rules = append(rules, r)
			}
		}
	}
}

// consumeAtRule implements "consume an at-rule" (§5.4.2).
func consumeAtRule(s cvSource, diags *diagnostics) *AtRule {
	nameTok, _ := asToken(s.NextCV()) // AtKeyword
	r := &AtRule{Name: nameTok.Text, Loc: nameTok.Loc}

	for {
		cv := s.PeekCV()
		if blk, ok := cv.(*SimpleBlock); ok && blk.Opening == '{' {
			s.NextCV()
			r.Block = blk
			r.Loc = r.Loc.cover(blk.Loc)
			return r
		}
		if tok, ok := asToken(cv); ok {
			switch tok.Kind {
			case KindSemicolon:
				s.NextCV()
				r.Loc = r.Loc.cover(tok.Loc)
				return r
			case KindEOF:
				diags.add(StageGrammar, tok.Loc, "unexpected EOF in at-rule")
				return r
			}
		}
		v := s.NextCV()
		r.Prelude = append(r.Prelude, v)
		r.Loc = r.Loc.cover(v.location())
	}
}

// consumeQualifiedRule implements "consume a qualified rule"
// (§5.4.3). Returns nil on unexpected EOF, recording an error.
func consumeQualifiedRule(s cvSource, diags *diagnostics) *QualifiedRule {
	r := &QualifiedRule{}
	for {
		cv := s.PeekCV()
		if blk, ok := cv.(*SimpleBlock); ok && blk.Opening == '{' {
			s.NextCV()
			r.Block = blk
			r.Loc = r.Loc.cover(blk.Loc)
			return r
		}
		if tok, ok := asToken(cv); ok && tok.Kind == KindEOF {
			diags.add(StageGrammar, tok.Loc, "unexpected EOF in qualified rule")
			return nil
		}
		v := s.NextCV()
		r.Prelude = append(r.Prelude, v)
		r.Loc = r.Loc.cover(v.location())
	}
}

var closerFor = map[byte]Kind{'(': KindCloseParen, '[': KindCloseSquare, '{': KindCloseCurly}

// consumeSimpleBlock implements "consume a simple block" (§5.4.7).
// opener is the bracket character already consumed by the caller;
// openLoc is that opening token's location, used to seed the block's
// own location so an empty block still has a non-zero span.
func consumeSimpleBlock(s tokenSource, diags *diagnostics, opener byte, openLoc Location) *SimpleBlock {
	b := &SimpleBlock{Opening: opener, Loc: openLoc}
	want := closerFor[opener]
	for {
		tok := s.Peek()
		switch {
		case tok.Kind == KindEOF:
			diags.add(StageGrammar, tok.Loc, "unexpected EOF in simple block")
			return b
		case tok.Kind == want:
			s.Next()
			b.Loc = b.Loc.cover(tok.Loc)
			return b
		default:
			v := consumeComponentValue(s, diags)
			b.Values = append(b.Values, v)
			b.Loc = b.Loc.cover(v.location())
		}
	}
}

// consumeFunction implements "consume a function" (§5.4.8). The
// Function token itself must already have been consumed by the
// caller and is passed in as fnTok.
func consumeFunction(s tokenSource, diags *diagnostics, fnTok Token) *Function {
	f := &Function{Name: fnTok.Text, Loc: fnTok.Loc}
	for {
		tok := s.Peek()
		switch tok.Kind {
		case KindEOF:
			diags.add(StageGrammar, tok.Loc, "unexpected EOF in function")
			return f
		case KindCloseParen:
			s.Next()
			f.Loc = f.Loc.cover(tok.Loc)
			return f
		default:
			v := consumeComponentValue(s, diags)
			f.Values = append(f.Values, v)
			f.Loc = f.Loc.cover(v.location())
		}
	}
}

// consumeComponentValue implements "consume a component value"
// (§5.4.6).
func consumeComponentValue(s tokenSource, diags *diagnostics) ComponentValue {
	tok := s.Next()
	switch tok.Kind {
	case KindOpenParen:
		return consumeSimpleBlock(s, diags, '(', tok.Loc)
	case KindOpenSquare:
		return consumeSimpleBlock(s, diags, '[', tok.Loc)
	case KindOpenCurly:
		return consumeSimpleBlock(s, diags, '{', tok.Loc)
	case KindFunction:
		return consumeFunction(s, diags, tok)
	default:
		return tok
	}
}

// consumeDeclarationList implements "consume a list of declarations"
// (§5.4.4), including the style.css convention that also accepts
// nested at-rules.
func consumeDeclarationList(s cvSource, diags *diagnostics) []Declaration {
	var decls []Declaration
	for {
		cv := s.PeekCV()
		tok, isTok := asToken(cv)
		switch {
		case isTok && (tok.Kind == KindWhitespace || tok.Kind == KindComment || tok.Kind == KindSemicolon):
			s.NextCV()
		case isTok && tok.Kind == KindEOF:
			return decls
		case isTok && tok.Kind == KindAtKeyword:
			decls = append(decls, consumeAtRule(s, diags))
		case isTok && tok.Kind == KindIdent:
			run, eofLoc := consumeDeclarationRun(s)
			if d := consumeDeclaration(newCVList(run, eofLoc), diags); d != nil {
				decls = append(decls, d)
			}
		default:
			diags.add(StageGrammar, cv.location(), "unexpected %s in declaration list", describeCV(cv))
			skipToNextSemicolon(s, diags)
		}
	}
}

// consumeStyleBlockContents implements the style-block variant of
// "consume a list of declarations" that also accepts Delim('&')
// -prefixed nested qualified rules (spec.md §4.3), returning
// declarations and nested rules as two separate, non-interleaved
// lists (spec.md §9).
func consumeStyleBlockContents(s cvSource, diags *diagnostics) (decls []Declaration, rules []Rule) {
	for {
		cv := s.PeekCV()
		tok, isTok := asToken(cv)
		switch {
		case isTok && (tok.Kind == KindWhitespace || tok.Kind == KindComment || tok.Kind == KindSemicolon):
			s.NextCV()
		case isTok && tok.Kind == KindEOF:
			return decls, rules
		case isTok && tok.Kind == KindAtKeyword:
			decls = append(decls, consumeAtRule(s, diags))
		case isTok && tok.Kind == KindDelim && tok.Delim == '&':
			if r := consumeQualifiedRule(s, diags); r != nil {
				rules = append(rules, r)
			}
		case isTok && tok.Kind == KindIdent:
			run, eofLoc := consumeDeclarationRun(s)
			if d := consumeDeclaration(newCVList(run, eofLoc), diags); d != nil {
				decls = append(decls, d)
			}
		default:
			diags.add(StageGrammar, cv.location(), "unexpected %s in style block", describeCV(cv))
			skipToNextSemicolon(s, diags)
		}
	}
}

// consumeDeclarationRun collects the contiguous run of component
// values (including the leading ident) up to (but not including) the
// next top-level ';' or EOF, per spec.md's "bounded token list
// delimited by a synthetic EOF".
func consumeDeclarationRun(s cvSource) ([]ComponentValue, Location) {
	var run []ComponentValue
	for {
		cv := s.PeekCV()
		if tok, ok := asToken(cv); ok {
			if tok.Kind == KindSemicolon {
				s.NextCV()
				return run, tok.Loc
			}
			if tok.Kind == KindEOF {
				return run, tok.Loc
			}
		}
		run = append(run, s.NextCV())
	}
}

// consumeDeclaration implements "consume a declaration" (§5.4.5),
// operating over a bounded EOF-terminated cvSource: a cvList sliced
// out by consumeDeclarationRun, or — for the ParseDeclaration entry
// point and style-rule promotion — a view whose real EOF plays the
// same role (spec.md §9 "bounded views over the owning vector").
func consumeDeclaration(s cvSource, diags *diagnostics) *PropertyDeclaration {
	nameTok, ok := asToken(s.NextCV())
	if !ok || nameTok.Kind != KindIdent {
		diags.add(StageGrammar, nameTok.Loc, "expected ident at start of declaration, got %s", nameTok.Kind)
		return nil
	}
	d := &PropertyDeclaration{Name: nameTok.Text, Loc: nameTok.Loc}

	skipCVWhitespace(s)
	colon, ok := asToken(s.NextCV())
	if !ok || colon.Kind != KindColon {
		diags.add(StageGrammar, colon.Loc, "expected colon in declaration, got %s", colon.Kind)
		return nil
	}
	d.Loc = d.Loc.cover(colon.Loc)

	skipCVWhitespace(s)
	for {
		cv := s.PeekCV()
		if tok, ok := asToken(cv); ok && tok.Kind == KindEOF {
			break
		}
		v := s.NextCV()
		d.Value = append(d.Value, v)
		d.Loc = d.Loc.cover(v.location())
	}

	d.Value = stripTrailingWhitespace(d.Value)
	d.Value, d.Important = extractImportant(d.Value)
	return d
}

func skipCVWhitespace(s cvSource) {
	for {
		tok, ok := asToken(s.PeekCV())
		if !ok || tok.Kind != KindWhitespace {
			return
		}
		s.NextCV()
	}
}

func stripTrailingWhitespace(values []ComponentValue) []ComponentValue {
	end := len(values)
	for end > 0 {
		if tok, ok := values[end-1].(Token); ok && tok.Kind == KindWhitespace {
			end--
			continue
		}
		break
	}
	return values[:end]
}

// extractImportant implements the "!important" tail check (spec.md
// §4.3/§8 invariant 7): if the last two non-whitespace values are
// Delim('!') then an Ident case-insensitively equal to "important",
// both are removed and Important is set.
func extractImportant(values []ComponentValue) ([]ComponentValue, bool) {
	values = stripTrailingWhitespace(values)
	if len(values) < 2 {
		return values, false
	}
	importantTok, ok := values[len(values)-1].(Token)
	if !ok || !importantTok.isIdentKeyword("important") {
		return values, false
	}
	bangTok, ok := values[len(values)-2].(Token)
	if !ok || bangTok.Kind != KindDelim || bangTok.Delim != '!' {
		return values, false
	}
	return stripTrailingWhitespace(values[:len(values)-2]), true
}

// skipToNextSemicolon consumes component values up to and including
// the next ';' or EOF, for grammar-level error recovery.
func skipToNextSemicolon(s cvSource, diags *diagnostics) {
	for {
		cv := s.PeekCV()
		if tok, ok := asToken(cv); ok && (tok.Kind == KindSemicolon || tok.Kind == KindEOF) {
			if tok.Kind == KindSemicolon {
				s.NextCV()
			}
			return
		}
		s.NextCV()
	}
}

func locationOfAll(rules []Rule) Location {
	var loc Location
	for _, r := range rules {
		loc = loc.cover(r.location())
	}
	return loc
}

// promoteRule lifts a *QualifiedRule into a *StyleRule by re-parsing
// its prelude as a selector list and its block as style-block
// contents (spec.md §4.6). Rules that are already an *AtRule pass
// through unchanged; there is nothing else to promote.
func promoteRule(r Rule, diags *diagnostics, log *clog.Logger) Rule {
	qr, ok := r.(*QualifiedRule)
	if !ok {
		return r
	}

	selDiags := newDiagnostics(log.Named("selectors"))
	preludeEOF := Location{Start: qr.Loc.End, End: qr.Loc.End}
	if qr.Block != nil {
		preludeEOF = Location{Start: qr.Block.Loc.Start, End: qr.Block.Loc.Start}
	}
	sels, err := parseSelectorListFromComponentValues(qr.Prelude, preludeEOF, selDiags)
	diags.items = append(diags.items, selDiags.items...)
	if err != nil {
		diags.add(StageSelector, preludeEOF, "invalid selector list: %s", err.Error())
	}

	var decls []Declaration
	var nested []Rule
	if qr.Block != nil {
		blockEOF := Location{Start: qr.Block.Loc.End, End: qr.Block.Loc.End}
		blockDiags := newDiagnostics(log.Named("style-block"))
		decls, nested = consumeStyleBlockContents(newCVList(qr.Block.Values, blockEOF), blockDiags)
		diags.items = append(diags.items, blockDiags.items...)
		for i, n := range nested {
			nested[i] = promoteRule(n, diags, log)
		}
	}

	return &StyleRule{Selectors: sels, Declarations: decls, NestedRules: nested, Loc: qr.Loc}
}
