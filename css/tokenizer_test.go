package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizerIdent(t *testing.T) {
	tz := Tokenize("color")
	tok := tz.Next()
	require.Equal(t, KindIdent, tok.Kind)
	assert.Equal(t, "color", tok.Text)
}

func TestTokenizerString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"double quotes", `"hello"`, "hello"},
		{"single quotes", `'world'`, "world"},
		{"with spaces", `"hello world"`, "hello world"},
		{"with escape", `"a\62 c"`, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tz := Tokenize(tt.input)
			tok := tz.Next()
			require.Equal(t, KindString, tok.Kind)
			assert.Equal(t, tt.expected, tok.Text)
		})
	}
}

func TestTokenizerBadString(t *testing.T) {
	tz := Tokenize("\"unterminated\n")
	tok := tz.Next()
	assert.Equal(t, KindBadString, tok.Kind)
	assert.NotEmpty(t, tz.Diagnostics())
}

func TestTokenizerNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		kind     Kind
		number   float64
		numKind  NumberKind
		unit     string
	}{
		{"integer", "42", KindNumber, 42, NumberInteger, ""},
		{"decimal", "3.14", KindNumber, 3.14, NumberNumber, ""},
		{"negative", "-5", KindNumber, -5, NumberInteger, ""},
		{"exponent", "1e3", KindNumber, 1000, NumberNumber, ""},
		{"percentage", "50%", KindPercentage, 50, NumberInteger, ""},
		{"dimension px", "10px", KindDimension, 10, NumberInteger, "px"},
		{"dimension em", "1.5em", KindDimension, 1.5, NumberNumber, "em"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tz := Tokenize(tt.input)
			tok := tz.Next()
			require.Equal(t, tt.kind, tok.Kind)
			assert.InDelta(t, tt.number, tok.Number, 1e-9)
			assert.Equal(t, tt.numKind, tok.NumKind)
			assert.Equal(t, tt.unit, tok.Unit)
		})
	}
}

func TestTokenizerHash(t *testing.T) {
	tests := []struct {
		input string
		kind  HashKind
	}{
		{"#fff", HashID},
		{"#1fff", HashUnrestricted},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tz := Tokenize(tt.input)
			tok := tz.Next()
			require.Equal(t, KindHash, tok.Kind)
			assert.Equal(t, tt.kind, tok.HashKind)
		})
	}
}

func TestTokenizerCommentToken(t *testing.T) {
	tz := Tokenize("/* comment */ ident")
	tok := tz.Next()
	require.Equal(t, KindComment, tok.Kind)
	assert.Equal(t, " comment ", tok.Text)
}

func TestTokenizerURL(t *testing.T) {
	tz := Tokenize("url(foo.png)")
	tok := tz.Next()
	require.Equal(t, KindURL, tok.Kind)
	assert.Equal(t, "foo.png", tok.Text)
}

func TestTokenizerURLWhitespaceInsideBad(t *testing.T) {
	tz := Tokenize("url(foo bar)")
	tok := tz.Next()
	assert.Equal(t, KindBadURL, tok.Kind)
}

func TestTokenizerFunctionVsIdent(t *testing.T) {
	tz := Tokenize("rgb(")
	tok := tz.Next()
	require.Equal(t, KindFunction, tok.Kind)
	assert.Equal(t, "rgb", tok.Text)
}

func TestTokenizerAtKeyword(t *testing.T) {
	tz := Tokenize("@media")
	tok := tz.Next()
	require.Equal(t, KindAtKeyword, tok.Kind)
	assert.Equal(t, "media", tok.Text)
}

func TestTokenizerCDOCDC(t *testing.T) {
	tz := Tokenize("<!-- -->")
	cdo := tz.Next()
	assert.Equal(t, KindCDO, cdo.Kind)
	ws := tz.Next()
	assert.Equal(t, KindWhitespace, ws.Kind)
	cdc := tz.Next()
	assert.Equal(t, KindCDC, cdc.Kind)
}

func TestTokenizerDelim(t *testing.T) {
	tz := Tokenize("~")
	tok := tz.Next()
	require.Equal(t, KindDelim, tok.Kind)
	assert.Equal(t, '~', tok.Delim)
}

func TestTokenizerUnicodeRange(t *testing.T) {
	tests := []struct {
		input string
		start uint32
		end   uint32
	}{
		{"U+26", 0x26, 0x26},
		{"U+0-7F", 0x0, 0x7F},
		{"U+0025-00FF", 0x25, 0xFF},
		{"U+4??", 0x400, 0x4FF},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tz := Tokenize(tt.input)
			tok := tz.Next()
			require.Equal(t, KindUnicodeRange, tok.Kind)
			assert.Equal(t, tt.start, tok.RangeStart)
			assert.Equal(t, tt.end, tok.RangeEnd)
		})
	}
}

func TestTokenizerUnicodeRangeInvalidFallsBackToIdent(t *testing.T) {
	tz := Tokenize("U+GG")
	tok := tz.Next()
	assert.Equal(t, KindIdent, tok.Kind)
}

func TestPreprocessNewlineNormalization(t *testing.T) {
	out := preprocess("a\r\nb\rc\fd\x00e")
	assert.Equal(t, "a\nb\nc\nd�e", string(out))
}

func TestPreprocessIdempotent(t *testing.T) {
	once := preprocess("a\r\nb\rc\fd\x00e")
	twice := preprocess(string(once))
	assert.Equal(t, once, twice)
}

func TestTokenizerEOFIsStable(t *testing.T) {
	tz := Tokenize("")
	first := tz.Next()
	second := tz.Next()
	assert.Equal(t, KindEOF, first.Kind)
	assert.Equal(t, KindEOF, second.Kind)
}

func TestTokenizerPeekDoesNotConsume(t *testing.T) {
	tz := Tokenize("abc")
	peeked := tz.Peek()
	next := tz.Next()
	assert.Equal(t, peeked, next)
}
