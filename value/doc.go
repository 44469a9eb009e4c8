// Package value holds the substitution tree rendered into
// templates. A Value is either a String leaf or an *Object
// mapping property names to further values. From converts
// native Go values (structs, maps, slices, primitives and
// Valuer implementations) into that tree, and DecodeJSON
// and DecodeYAML build it from data files.
package value
