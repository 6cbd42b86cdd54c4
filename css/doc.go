// Package css implements the core of a CSS parsing pipeline: a CSS
// Syntax Level 3 tokenizer, a grammar-level parser that builds rules,
// declarations, blocks, functions, and unicode-range nodes from the
// token stream, and a CSS Selectors Level 4 parser that re-parses a
// qualified rule's prelude into a selector tree.
//
// Spec references:
//   - CSS Syntax Module Level 3: https://www.w3.org/TR/css-syntax-3/
//   - CSS Selectors Level 4 (7 May 2022): https://www.w3.org/TR/selectors-4/
//
// The package builds a concrete syntax tree: unknown tokens are never
// discarded, every node carries the range of source it covers (rune
// offsets into the preprocessed input, see Location),
// and malformed input is recovered from rather than rejected. It does
// not perform property/value validation, cascade, specificity, or any
// rendering concern — those are external collaborators.
package css
