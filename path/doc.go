// Package path implements dotted template variable paths. It classifies
// identifier bytes, slices single segments off a byte buffer, and parses
// whole paths such as "hello.world" into a Variable, reporting the first
// structural violation as an *Error carrying a zero-based Location.
package path
