package templating

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/natefinch/atomic"

	"github.com/chrsoo/handybars"
	"github.com/chrsoo/handybars/path"
	"github.com/chrsoo/handybars/stamper"
	"github.com/chrsoo/handybars/value"
)

// Engine expands templates using stamp info files, value
// files and explicit variables.
type Engine struct {
	StampInfoFiles []string
	// ValueFiles are JSON (.json) or YAML (.yaml, .yml)
	// files whose top-level keys become variables.
	ValueFiles []string
	// EnvFiles are dotenv files whose keys become
	// variables.
	EnvFiles    []string
	MergePolicy handybars.MergePolicy
	Logger      *slog.Logger

	// In and Out replace stdin and stdout when set.
	In  io.Reader
	Out io.Writer
}

// Expand reads a template, renders it, and writes the
// result. An empty or "-" tplPath reads stdin; an empty
// outPath writes to stdout. When executable is true the
// output file is made executable.
func (en *Engine) Expand(
	tplPath string,
	outPath string,
	defines []string,
	imports []string,
	executable bool,
) error {
	const errCtx = "expanding template"

	ctx, err := en.Context(defines, imports)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	tplContent, err := en.readTemplate(tplPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	out, err := ctx.Render(string(tplContent))
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := en.writeOutput(outPath, out, executable); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// Context builds the rendering context. Sources are
// applied in order, later ones overriding earlier ones:
//  1. Stamp files; keys that are valid paths become
//     variables.
//  2. Value files, each top-level key being defined.
//  3. Env files.
//  4. Each NAME=VALUE define. VALUE is first expanded
//     against stamps with single-brace tags, then stored
//     at both NAME and variables.NAME.
//  5. Each NAME=filename import. The file is rendered
//     against the context so far, expanded against stamps,
//     and stored at imports.NAME.
func (en *Engine) Context(
	defines []string,
	imports []string,
) (*handybars.Context, error) {
	const errCtx = "building context"

	log := en.logger()

	stamps, err := stamper.LoadStamps(en.StampInfoFiles)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	ctx := handybars.New(handybars.WithMergePolicy(en.MergePolicy))

	if skipped := stamper.Define(ctx, stamps); len(skipped) > 0 {
		log.Debug("stamp keys are not variable paths", "keys", skipped)
	}

	if err := en.loadValueFiles(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := en.loadEnvFiles(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := resolveDefines(ctx, defines, stamps); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := resolveImports(ctx, imports, stamps); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	log.Debug("context ready", "names", ctx.Names())

	return ctx, nil
}

func (en *Engine) logger() *slog.Logger {
	if en.Logger != nil {
		return en.Logger
	}

	return slog.Default()
}

// loadValueFiles defines the top-level keys of every
// document of every value file.
func (en *Engine) loadValueFiles(ctx *handybars.Context) error {
	const errCtx = "loading value files"

	for _, vf := range en.ValueFiles {
		content, err := os.ReadFile(vf) //nolint:gosec // paths from CLI flags
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		docs, err := decodeValueFile(vf, content)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", errCtx, vf, err)
		}

		for i, doc := range docs {
			obj, ok := value.AsObject(doc)
			if !ok {
				return fmt.Errorf(
					"%s: %s: document %d is not a mapping",
					errCtx, vf, i,
				)
			}

			for k, v := range obj.All() {
				ctx.Define(path.Single(k), v)
			}
		}

		en.logger().Debug("loaded value file", "path", vf, "documents", len(docs))
	}

	return nil
}

func decodeValueFile(name string, content []byte) ([]value.Value, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".json":
		v, err := value.DecodeJSON(bytes.NewReader(content))
		if err != nil {
			return nil, err
		}

		return []value.Value{v}, nil
	case ".yaml", ".yml":
		return value.DecodeYAML(bytes.NewReader(content))
	default:
		return nil, fmt.Errorf("unsupported value file extension %q", ext)
	}
}

// loadEnvFiles defines the keys of every dotenv file that
// are valid variable paths.
func (en *Engine) loadEnvFiles(ctx *handybars.Context) error {
	const errCtx = "loading env files"

	for _, ef := range en.EnvFiles {
		env, err := godotenv.Read(ef)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		for _, k := range slices.Sorted(maps.Keys(env)) {
			v, err := path.Parse(k)
			if err != nil {
				en.logger().Debug(
					"env key is not a variable path",
					"path", ef, "key", k, "error", err,
				)

				continue
			}

			ctx.Define(v, value.String(env[k]))
		}
	}

	return nil
}

// resolveDefines processes NAME=VALUE definitions.
func resolveDefines(
	ctx *handybars.Context,
	defines []string,
	stamps map[string]interface{},
) error {
	const errCtx = "resolving variables"

	prefix := path.Single("variables")

	for _, def := range defines {
		name, val, ok := strings.Cut(def, "=")
		if !ok {
			return fmt.Errorf(
				"%s: variable must be VAR=value, got %s",
				errCtx, def,
			)
		}

		v, err := path.Parse(name)
		if err != nil {
			return fmt.Errorf(
				"%s: variable name %q: %w", errCtx, name, err,
			)
		}

		leaf := value.String(stamper.Apply(stamps, val))

		ctx.Define(v, leaf)
		ctx.Define(prefix.Join(v), leaf)
	}

	return nil
}

// resolveImports processes NAME=filename imports.
func resolveImports(
	ctx *handybars.Context,
	imports []string,
	stamps map[string]interface{},
) error {
	const errCtx = "resolving imports"

	prefix := path.Single("imports")

	for _, im := range imports {
		name, file, ok := strings.Cut(im, "=")
		if !ok {
			return fmt.Errorf(
				"%s: import must be NAME=filename, got %s",
				errCtx, im,
			)
		}

		v, err := path.Parse(name)
		if err != nil {
			return fmt.Errorf(
				"%s: import name %q: %w", errCtx, name, err,
			)
		}

		content, err := os.ReadFile(file) //nolint:gosec // paths from CLI flags
		if err != nil {
			return fmt.Errorf(
				"%s: reading %s: %w", errCtx, file, err,
			)
		}

		rendered, err := ctx.Render(string(content))
		if err != nil {
			return fmt.Errorf(
				"%s: %s: %w", errCtx, file, err,
			)
		}

		ctx.Define(
			prefix.Join(v),
			value.String(stamper.Apply(stamps, rendered)),
		)
	}

	return nil
}

// readTemplate reads the template from a file path, or
// from stdin when tplPath is empty or "-".
func (en *Engine) readTemplate(
	tplPath string,
) ([]byte, error) {
	const errCtx = "reading template"

	if tplPath != "" && tplPath != "-" {
		content, err := os.ReadFile(tplPath) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		return content, nil
	}

	in := en.In
	if in == nil {
		in = os.Stdin
	}

	content, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: reading stdin: %w", errCtx, err,
		)
	}

	return content, nil
}

// writeOutput writes the rendered text to stdout when
// outPath is empty. Otherwise the file is replaced
// atomically and given mode 0644, or 0755 if executable.
func (en *Engine) writeOutput(
	outPath string,
	content string,
	executable bool,
) error {
	const errCtx = "writing output"

	if outPath == "" {
		out := en.Out
		if out == nil {
			out = os.Stdout
		}

		if _, err := io.WriteString(out, content); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		return nil
	}

	if err := atomic.WriteFile(outPath, strings.NewReader(content)); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	var perm os.FileMode = 0o644
	if executable {
		perm = 0o755
	}

	if err := os.Chmod(outPath, perm); err != nil { //nolint:gosec // paths from CLI flags
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
