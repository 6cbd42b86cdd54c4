package css

// ComponentValue is the union Token | *SimpleBlock | *Function — the
// smallest syntactic unit below a declaration (GLOSSARY, spec.md).
type ComponentValue interface {
	location() Location
	componentValue()
}

func (Token) componentValue()        {}
func (*SimpleBlock) componentValue() {}
func (*Function) componentValue()    {}

// Stylesheet is the untouched rule list produced by ParseStylesheet:
// at-rules and qualified rules exactly as written, with no selector
// or declaration re-parsing performed. Errors holds every recoverable
// Diagnostic raised along the way; the error a caller gets back from
// ParseStylesheet is the same diagnostics folded via multierr.Combine
// (spec.md §6 "sum type" / SPEC_FULL.md §6 Errors).
type Stylesheet struct {
	Rules  []Rule
	Errors []*Diagnostic
	Loc    Location
}

// CssStylesheet is a Stylesheet whose top-level qualified rules have
// been promoted to StyleRule (selectors parsed, declarations
// parsed). At-rules pass through unchanged (spec.md §4.6). Errors
// holds every recoverable Diagnostic from tokenization, grammar
// parsing, and selector/declaration promotion combined.
type CssStylesheet struct {
	Rules  []Rule
	Errors []*Diagnostic
	Loc    Location
}

// Rule is the union *AtRule | *QualifiedRule | *StyleRule.
type Rule interface {
	location() Location
	rule()
}

func (*AtRule) rule()        {}
func (*QualifiedRule) rule() {}
func (*StyleRule) rule()     {}

// AtRule is a rule introduced by an '@'-prefixed identifier,
// terminated by ';' or by a Block (GLOSSARY).
type AtRule struct {
	Name    string
	Prelude []ComponentValue
	Block   *SimpleBlock // nil if terminated by ';' or unexpected EOF
	Loc     Location
}

func (r *AtRule) location() Location { return r.Loc }

// QualifiedRule is a prelude followed by a block, before any
// selector/declaration re-parsing (GLOSSARY).
type QualifiedRule struct {
	Prelude []ComponentValue
	Block   *SimpleBlock
	Loc     Location
}

func (r *QualifiedRule) location() Location { return r.Loc }

// StyleRule is a QualifiedRule promoted by re-parsing its prelude as
// a selector list and its block as a declaration list (spec.md §4.6).
// Declarations and NestedRules are kept as separate fields (not
// interleaved by source position) because
// consumeStyleBlockContents returns "declarations ++ rules", not a
// positional merge — see spec.md §9 and DESIGN.md.
type StyleRule struct {
	Selectors    []Selector
	Declarations []Declaration // Declaration or nested *AtRule
	NestedRules  []Rule        // Delim('&')-prefixed nested qualified rules
	Loc          Location
}

func (r *StyleRule) location() Location { return r.Loc }

// Declaration is the union *PropertyDeclaration | *AtRule inside a
// style block's declaration list (spec.md §3 names this
// "Declaration | AtRule").
type Declaration interface {
	location() Location
	declaration()
}

func (*PropertyDeclaration) declaration() {}
func (*AtRule) declaration()              {}

// PropertyDeclaration is a name: value[!important]; pair.
type PropertyDeclaration struct {
	Name      string
	Value     []ComponentValue
	Important bool
	Loc       Location
}

func (d *PropertyDeclaration) location() Location { return d.Loc }

// SimpleBlock is a balanced ( ), [ ], or { } pair enclosing component
// values (GLOSSARY). Opening records which bracket pair was matched;
// the closer is discarded once matched (invariant 8, spec.md §8).
type SimpleBlock struct {
	Opening byte // '(', '[', or '{'
	Values  []ComponentValue
	Loc     Location
}

func (b *SimpleBlock) location() Location { return b.Loc }

// Function is a <function-token> name followed by component values
// up to the matching ')'.
type Function struct {
	Name   string
	Values []ComponentValue
	Loc    Location
}

func (f *Function) location() Location { return f.Loc }

// UnicodeRange is the decoded "u+…" microsyntax (spec.md §4.4). It
// is produced directly by the tokenizer as a KindUnicodeRange Token
// in the token stream; this node type is how the grammar parser and
// its consumers expose that token to callers that want a typed
// range rather than a raw Token.
type UnicodeRange struct {
	Start uint32
	End   uint32
	Loc   Location
}

func (r UnicodeRange) location() Location { return r.Loc }

// AsUnicodeRange reports whether cv is a KindUnicodeRange token and,
// if so, returns its decoded range.
func AsUnicodeRange(cv ComponentValue) (UnicodeRange, bool) {
	tok, ok := cv.(Token)
	if !ok || tok.Kind != KindUnicodeRange {
		return UnicodeRange{}, false
	}
	return UnicodeRange{Start: tok.RangeStart, End: tok.RangeEnd, Loc: tok.Loc}, true
}
