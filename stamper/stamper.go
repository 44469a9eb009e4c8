package stamper

import (
	"bufio"
	"bytes"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/chrsoo/handybars"
	"github.com/chrsoo/handybars/path"
	"github.com/chrsoo/handybars/value"
)

// LoadStamps reads status files and merges them into one
// map, later files overriding earlier ones. Each line is
// "KEY VALUE" split on the first space; lines without a
// space are skipped. The map is shaped for fasttemplate.
func LoadStamps(
	infoFiles []string,
) (map[string]interface{}, error) {
	const errCtx = "loading stamps"

	stamps := make(map[string]interface{})

	for _, sf := range infoFiles {
		content, err := os.ReadFile(sf) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		sc := bufio.NewScanner(bytes.NewReader(content))
		for sc.Scan() {
			key, val, ok := strings.Cut(
				strings.TrimSuffix(sc.Text(), "\r"), " ",
			)
			if ok {
				stamps[key] = val
			}
		}

		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf(
				"%s: scanning %s: %w", errCtx, sf, err,
			)
		}
	}

	return stamps, nil
}

// Stamp loads status variables from infoFiles and
// substitutes {KEY} placeholders in format. Unknown keys
// are preserved as is.
func Stamp(
	infoFiles []string,
	format string,
) (string, error) {
	const errCtx = "stamping"

	stamps, err := LoadStamps(infoFiles)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return Apply(stamps, format), nil
}

// Apply substitutes {KEY} placeholders in format from
// stamps.
func Apply(stamps map[string]interface{}, format string) string {
	return fasttemplate.ExecuteStringStd(format, "{", "}", stamps)
}

// Define adds every stamp whose key parses as a variable
// path to ctx, in key order. It returns the keys that
// could not be used, sorted.
func Define(
	ctx *handybars.Context,
	stamps map[string]interface{},
) []string {
	var skipped []string

	for _, key := range slices.Sorted(maps.Keys(stamps)) {
		raw := stamps[key]

		v, err := path.Parse(key)
		if err != nil {
			skipped = append(skipped, key)

			continue
		}

		val, err := value.From(raw)
		if err != nil {
			skipped = append(skipped, key)

			continue
		}

		ctx.Define(v, val)
	}

	return skipped
}
