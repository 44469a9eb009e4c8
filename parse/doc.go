// Package parse tokenizes template text. A Tokenizer walks
// the template once, yielding literal Str tokens that alias
// the input and Variable tokens for each {{ path }}
// placeholder. The first malformed placeholder stops the
// Tokenizer for good; it never resynchronizes.
package parse
