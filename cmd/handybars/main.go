// Command handybars renders a {{ path }} template read from
// a file or stdin, using variables from the command line,
// workspace status files, value files and dotenv files.
//
//	handybars [INPUT|-] [flags]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/chrsoo/handybars"
	"github.com/chrsoo/handybars/templating"
)

// arrayFlags implements flag.Value for repeatable string
// flags.
type arrayFlags []string

func (af *arrayFlags) String() string {
	if af == nil {
		return ""
	}

	return strings.Join(*af, ",")
}

func (af *arrayFlags) Set(value string) error {
	*af = append(*af, value)

	return nil
}

var errLabel = color.New(color.FgRed, color.Bold).SprintFunc()

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}

		report(os.Stderr, err)
		os.Exit(1)
	}
}

// report prints err on a single line. The label is colored
// only when w is a terminal.
func report(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errLabel("error:"), err)
}

//nolint:funlen // CLI flag setup is inherently long
func run(
	args []string,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
) error {
	const errCtx = "running handybars"

	fs := flag.NewFlagSet("handybars", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		defines    arrayFlags
		stampFiles arrayFlags
		valueFiles arrayFlags
		envFiles   arrayFlags
		imports    arrayFlags
	)

	fs.Var(
		&defines, "define",
		"Variable in NAME=VALUE format (repeatable)",
	)
	fs.Var(&defines, "D", "Shorthand for -define")
	fs.Var(
		&stampFiles, "stamp_info_file",
		"Stamp info file path (repeatable)",
	)
	fs.Var(
		&valueFiles, "values",
		"JSON or YAML value file (repeatable)",
	)
	fs.Var(
		&envFiles, "env_file",
		"Dotenv file (repeatable)",
	)
	fs.Var(
		&imports, "imports",
		"Import in NAME=filename format (repeatable)",
	)

	output := fs.String(
		"output", "",
		"Output file path (stdout if empty)",
	)
	executable := fs.Bool(
		"executable", false,
		"Set executable bit on output file",
	)
	deepMerge := fs.Bool(
		"deep_merge", false,
		"Deep-merge objects defined at the same path",
	)
	verbose := fs.Bool(
		"verbose", false,
		"Log loaded sources to stderr",
	)

	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: handybars [INPUT|-] [flags]")
		fs.PrintDefaults()
	}

	// INPUT may precede the flags.
	var input string
	if len(args) > 0 && (args[0] == "-" || !strings.HasPrefix(args[0], "-")) {
		input, args = args[0], args[1:]
	}

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	switch rest := fs.Args(); {
	case len(rest) == 1 && input == "":
		input = rest[0]
	case len(rest) > 0:
		return fmt.Errorf(
			"%s: unexpected arguments %q", errCtx, rest,
		)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}),
	)

	policy := handybars.MergeReplace
	if *deepMerge {
		policy = handybars.MergeDeep
	}

	en := templating.Engine{
		StampInfoFiles: stampFiles,
		ValueFiles:     valueFiles,
		EnvFiles:       envFiles,
		MergePolicy:    policy,
		Logger:         logger,
		In:             stdin,
		Out:            stdout,
	}

	logger.Debug("expanding", "input", input, "output", *output)

	if err := en.Expand(
		input, *output, defines, imports, *executable,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
