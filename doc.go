// Package handybars is a minimal text templating engine.
//
// Templates are literal text interleaved with {{ variable.path }}
// placeholders. A Context maps top-level names to value trees built with
// the value package; Render tokenizes the template, resolves every
// placeholder against the tree and concatenates the result. Rendering is
// all-or-nothing: the first malformed placeholder, missing variable or
// object-valued variable aborts it.
//
// There are no conditionals, loops, helpers or escaping modes: each
// placeholder holds exactly one path.
package handybars
