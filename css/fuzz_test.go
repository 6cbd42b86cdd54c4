package css

import "testing"

// FuzzParseStylesheet checks the two invariants that must hold for
// every input, malformed or not (spec.md §8): parsing never panics,
// and re-running preprocess over its own output is a no-op.
func FuzzParseStylesheet(f *testing.F) {
	seeds := []string{
		"",
		"div { color: red; }",
		"@media screen { a { color: blue; } }",
		`a[href^="https://"]:not(.external)::before { content: "x"; }`,
		"a { color: red",
		"/* unterminated",
		`"unterminated string`,
		"url(unterminated",
		"U+?????? U+0-10FFFF",
		"a || b, a:has(> img) { color: green !important; }",
		"\r\n\r\f\x00",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, source string) {
		_, _ = Parse(source)

		once := preprocess(source)
		twice := preprocess(string(once))
		if string(once) != string(twice) {
			t.Fatalf("preprocess is not idempotent for %q", source)
		}
	})
}
