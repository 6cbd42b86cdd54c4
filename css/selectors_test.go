package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorListSingleType(t *testing.T) {
	p := NewParser(nil)
	sels, err := p.ParseSelectorList("div")
	require.NoError(t, err)
	require.Len(t, sels, 1)
	ts, ok := sels[0].(*TypeSelector)
	require.True(t, ok)
	assert.Equal(t, "div", ts.Name)
	assert.False(t, ts.Universal)
}

func TestSelectorListUniversal(t *testing.T) {
	p := NewParser(nil)
	sels, err := p.ParseSelectorList("*")
	require.NoError(t, err)
	ts := sels[0].(*TypeSelector)
	assert.True(t, ts.Universal)
}

func TestSelectorListIdAndClassCollapse(t *testing.T) {
	p := NewParser(nil)
	sels, err := p.ParseSelectorList("#header")
	require.NoError(t, err)
	id, ok := sels[0].(*IdSelector)
	require.True(t, ok)
	assert.Equal(t, "header", id.Name)

	sels2, err := p.ParseSelectorList(".container")
	require.NoError(t, err)
	cls, ok := sels2[0].(*ClassSelector)
	require.True(t, ok)
	assert.Equal(t, "container", cls.Name)
}

func TestSelectorCompoundMultiplePieces(t *testing.T) {
	p := NewParser(nil)
	sels, err := p.ParseSelectorList("div.container#main")
	require.NoError(t, err)
	cs, ok := sels[0].(*CompoundSelector)
	require.True(t, ok)
	require.NotNil(t, cs.Type)
	assert.Equal(t, "div", cs.Type.Name)
	require.Len(t, cs.Subclasses, 2)
}

func TestSelectorAttributeExistence(t *testing.T) {
	p := NewParser(nil)
	sels, err := p.ParseSelectorList("[disabled]")
	require.NoError(t, err)
	attr, ok := sels[0].(*AttributeSelector)
	require.True(t, ok)
	assert.Equal(t, "disabled", attr.Name.Name)
	assert.Nil(t, attr.Matcher)
}

func TestSelectorAttributeWithMatcher(t *testing.T) {
	p := NewParser(nil)
	sels, err := p.ParseSelectorList(`[href^="https://"]`)
	require.NoError(t, err)
	attr := sels[0].(*AttributeSelector)
	require.NotNil(t, attr.Matcher)
	assert.Equal(t, "^=", attr.Matcher.Op)
	assert.Equal(t, "https://", attr.Matcher.Value)
	assert.True(t, attr.Matcher.IsString)
}

func TestSelectorAttributeWithModifier(t *testing.T) {
	p := NewParser(nil)
	sels, err := p.ParseSelectorList(`[data-x="y" i]`)
	require.NoError(t, err)
	attr := sels[0].(*AttributeSelector)
	require.NotNil(t, attr.Matcher)
	assert.Equal(t, byte('i'), attr.Matcher.Modifier)
}

func TestSelectorPseudoClassSimple(t *testing.T) {
	p := NewParser(nil)
	sels, err := p.ParseSelectorList(":hover")
	require.NoError(t, err)
	pc, ok := sels[0].(*PseudoClassSelector)
	require.True(t, ok)
	assert.Equal(t, "hover", pc.Name)
}

func TestSelectorPseudoClassFunctionNot(t *testing.T) {
	p := NewParser(nil)
	sels, err := p.ParseSelectorList(":not(.hidden)")
	require.NoError(t, err)
	pc := sels[0].(*PseudoClassSelector)
	require.NotNil(t, pc.Function)
	assert.Equal(t, "not", pc.Function.Name)
	require.Len(t, pc.Function.Arguments, 1)
	_, ok := pc.Function.Arguments[0].(*ClassSelector)
	assert.True(t, ok)
}

func TestSelectorPseudoClassFunctionHasUsesRelativeSelectors(t *testing.T) {
	p := NewParser(nil)
	sels, err := p.ParseSelectorList(":has(> img)")
	require.NoError(t, err)
	pc := sels[0].(*PseudoClassSelector)
	require.NotNil(t, pc.Function)
	require.Len(t, pc.Function.Arguments, 1)
	rel, ok := pc.Function.Arguments[0].(*RelativeSelector)
	require.True(t, ok, "expected :has() argument to be a RelativeSelector, got %T", pc.Function.Arguments[0])
	_, ok = rel.Combinator.(*ChildCombinator)
	assert.True(t, ok)
}

func TestSelectorPseudoElement(t *testing.T) {
	p := NewParser(nil)
	sels, err := p.ParseSelectorList("p::before")
	require.NoError(t, err)
	cs, ok := sels[0].(*CompoundSelector)
	require.True(t, ok)
	require.Len(t, cs.PseudoElements, 1)
	assert.Equal(t, "before", cs.PseudoElements[0].Element.Pseudo.Name)
}

func TestSelectorCombinatorKinds(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a b", "descendant"},
		{"a > b", "child"},
		{"a + b", "next-sibling"},
		{"a ~ b", "subsequent-sibling"},
		{"a || b", "column"},
	}
	p := NewParser(nil)
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			sels, err := p.ParseSelectorList(tt.input)
			require.NoError(t, err)
			complex, ok := sels[0].(*ComplexSelector)
			require.True(t, ok)
			require.Len(t, complex.Children, 3)
			switch tt.want {
			case "descendant":
				_, ok := complex.Children[1].(*DescendantCombinator)
				assert.True(t, ok)
			case "child":
				_, ok := complex.Children[1].(*ChildCombinator)
				assert.True(t, ok)
			case "next-sibling":
				_, ok := complex.Children[1].(*NextSiblingCombinator)
				assert.True(t, ok)
			case "subsequent-sibling":
				_, ok := complex.Children[1].(*SubsequentSiblingCombinator)
				assert.True(t, ok)
			case "column":
				_, ok := complex.Children[1].(*ColumnCombinator)
				assert.True(t, ok)
			}
		})
	}
}

func TestSelectorNsPrefix(t *testing.T) {
	p := NewParser(nil)
	sels, err := p.ParseSelectorList("svg|rect")
	require.NoError(t, err)
	ts, ok := sels[0].(*TypeSelector)
	require.True(t, ok)
	require.NotNil(t, ts.Prefix)
	assert.Equal(t, "svg", ts.Prefix.Value)
	assert.Equal(t, "rect", ts.Name)
}

func TestSelectorNsPrefixUniversalAndEmpty(t *testing.T) {
	p := NewParser(nil)
	sels, err := p.ParseSelectorList("*|rect")
	require.NoError(t, err)
	ts := sels[0].(*TypeSelector)
	require.NotNil(t, ts.Prefix)
	assert.True(t, ts.Prefix.Universal)

	sels2, err := p.ParseSelectorList("|rect")
	require.NoError(t, err)
	ts2 := sels2[0].(*TypeSelector)
	require.NotNil(t, ts2.Prefix)
	assert.False(t, ts2.Prefix.Universal)
	assert.Equal(t, "", ts2.Prefix.Value)
}

func TestSelectorListCommaSeparated(t *testing.T) {
	p := NewParser(nil)
	sels, err := p.ParseSelectorList("a, b, c")
	require.NoError(t, err)
	assert.Len(t, sels, 3)
}

func TestSelectorListInvalidProducesParseError(t *testing.T) {
	p := NewParser(nil)
	_, err := p.ParseSelectorList(">")
	assert.Error(t, err)
	_, ok := err.(*ParseError)
	assert.True(t, ok)
}

func TestRelativeSelectorListImplicitDescendant(t *testing.T) {
	p := NewParser(nil)
	sels, err := p.ParseRelativeSelectorList("b")
	require.NoError(t, err)
	rel, ok := sels[0].(*RelativeSelector)
	require.True(t, ok)
	assert.Nil(t, rel.Combinator)
}

func TestStyleRuleSelectorPromotion(t *testing.T) {
	sheet, err := Parse("a.link:hover, #nav > li { color: red; }")
	require.NoError(t, err)
	style := sheet.Rules[0].(*StyleRule)
	require.Len(t, style.Selectors, 2)

	_, ok := style.Selectors[0].(*CompoundSelector)
	assert.True(t, ok)

	complex, ok := style.Selectors[1].(*ComplexSelector)
	require.True(t, ok)
	require.Len(t, complex.Children, 3)
}
