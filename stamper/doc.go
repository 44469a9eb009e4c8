// Package stamper reads workspace status ("stamp") files. LoadStamps parses
// them into a key/value map, Stamp substitutes single-brace {KEY}
// placeholders in a format string, and Define exposes the stamps to a
// handybars Context so templates can reference them as {{ KEY }}.
package stamper
