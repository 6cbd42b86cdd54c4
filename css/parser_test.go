package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCssStylesheetSimpleRule(t *testing.T) {
	sheet, err := Parse("div { color: red; }")
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 1)

	style, ok := sheet.Rules[0].(*StyleRule)
	require.True(t, ok)
	require.Len(t, style.Selectors, 1)
	ts, ok := style.Selectors[0].(*TypeSelector)
	require.True(t, ok)
	assert.Equal(t, "div", ts.Name)

	require.Len(t, style.Declarations, 1)
	decl, ok := style.Declarations[0].(*PropertyDeclaration)
	require.True(t, ok)
	assert.Equal(t, "color", decl.Name)
	require.Len(t, decl.Value, 1)
	valTok, ok := decl.Value[0].(Token)
	require.True(t, ok)
	assert.Equal(t, "red", valTok.Text)
	assert.False(t, decl.Important)
}

func TestParseImportantDeclaration(t *testing.T) {
	sheet, err := Parse("p { color: blue !important; }")
	require.NoError(t, err)
	style := sheet.Rules[0].(*StyleRule)
	decl := style.Declarations[0].(*PropertyDeclaration)
	assert.True(t, decl.Important)
	require.Len(t, decl.Value, 1)
}

func TestParseAtRuleWithBlock(t *testing.T) {
	sheet, err := Parse("@media screen { p { color: red; } }")
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 1)
	at, ok := sheet.Rules[0].(*AtRule)
	require.True(t, ok)
	assert.Equal(t, "media", at.Name)
	require.NotNil(t, at.Block)
	assert.Equal(t, byte('{'), at.Block.Opening)
}

func TestParseAtRuleWithSemicolon(t *testing.T) {
	sheet, err := Parse(`@import "foo.css";`)
	require.NoError(t, err)
	at := sheet.Rules[0].(*AtRule)
	assert.Equal(t, "import", at.Name)
	assert.Nil(t, at.Block)
}

func TestParseMultipleDeclarations(t *testing.T) {
	sheet, err := Parse("a { color: red; background: blue; }")
	require.NoError(t, err)
	style := sheet.Rules[0].(*StyleRule)
	require.Len(t, style.Declarations, 2)
}

func TestParseNestedAmpersandRule(t *testing.T) {
	sheet, err := Parse("a { color: red; & > b { color: blue; } }")
	// The nested rule is still collected, but its leading '&' has no
	// selector node, so promoting it raises a selector diagnostic.
	require.Error(t, err)
	style := sheet.Rules[0].(*StyleRule)
	require.Len(t, style.Declarations, 1)
	require.Len(t, style.NestedRules, 1)
}

func TestParseUnbalancedBlockRecovers(t *testing.T) {
	_, err := Parse("a { color: red; ")
	assert.Error(t, err)
}

func TestParseBlockBracketTypes(t *testing.T) {
	p := NewParser(nil)
	cv, err := p.ParseComponentValue("(1px solid red)")
	require.NoError(t, err)
	blk, ok := cv.(*SimpleBlock)
	require.True(t, ok)
	assert.Equal(t, byte('('), blk.Opening)
}

func TestParseFunctionComponentValue(t *testing.T) {
	p := NewParser(nil)
	cv, err := p.ParseComponentValue("rgb(1, 2, 3)")
	require.NoError(t, err)
	fn, ok := cv.(*Function)
	require.True(t, ok)
	assert.Equal(t, "rgb", fn.Name)
	require.NotEmpty(t, fn.Values)
	first, ok := fn.Values[0].(Token)
	require.True(t, ok)
	assert.Equal(t, KindNumber, first.Kind)
}

func TestParseDeclarationEntryPoint(t *testing.T) {
	p := NewParser(nil)
	d, err := p.ParseDeclaration("width: 10px")
	require.NoError(t, err)
	assert.Equal(t, "width", d.Name)
	require.Len(t, d.Value, 1)
	tok := d.Value[0].(Token)
	assert.Equal(t, KindDimension, tok.Kind)
}

func TestParseDeclarationRejectsNonIdentStart(t *testing.T) {
	p := NewParser(nil)
	_, err := p.ParseDeclaration(": 10px")
	assert.Error(t, err)
}

func TestParseRuleEntryPointTrailingInputFails(t *testing.T) {
	p := NewParser(nil)
	_, err := p.ParseRule("div {} span {}")
	assert.Error(t, err)
}

func TestParseRuleEntryPointSingleRule(t *testing.T) {
	p := NewParser(nil)
	r, err := p.ParseRule("div { color: red; }")
	require.NoError(t, err)
	_, ok := r.(*QualifiedRule)
	assert.True(t, ok)
}

func TestParseDeclarationListWithAtRule(t *testing.T) {
	p := NewParser(nil)
	decls, err := p.ParseDeclarationList("color: red; @media print { color: blue; }")
	require.NoError(t, err)
	require.Len(t, decls, 2)
	_, isAt := decls[1].(*AtRule)
	assert.True(t, isAt)
}

func TestParseStylesheetDoesNotPromote(t *testing.T) {
	p := NewParser(nil)
	sheet, err := p.ParseStylesheet("div { color: red; }")
	require.NoError(t, err)
	_, ok := sheet.Rules[0].(*QualifiedRule)
	assert.True(t, ok, "ParseStylesheet must not promote qualified rules to style rules")
}

func TestParseNumberIntegerVsNumberKind(t *testing.T) {
	p := NewParser(nil)
	d, err := p.ParseDeclaration("opacity: 1")
	require.NoError(t, err)
	tok := d.Value[0].(Token)
	assert.Equal(t, NumberInteger, tok.NumKind)

	d2, err := p.ParseDeclaration("opacity: 1.0")
	require.NoError(t, err)
	tok2 := d2.Value[0].(Token)
	assert.Equal(t, NumberNumber, tok2.NumKind)
}

func TestCssStylesheetCollectsErrors(t *testing.T) {
	sheet, err := Parse("a { color ")
	assert.Error(t, err)
	assert.NotEmpty(t, sheet.Errors)
}
