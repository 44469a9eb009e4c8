// Package templating drives handybars from files. An Engine assembles a
// Context from workspace status files, JSON and YAML value files, dotenv
// files, NAME=VALUE definitions and rendered imports, then expands a
// template read from a file or stdin and writes the result to stdout or,
// atomically, to an output file.
package templating
