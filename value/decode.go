package value

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// DecodeJSON reads one JSON document from r. Numbers keep
// their literal text.
func DecodeJSON(r io.Reader) (Value, error) {
	const errCtx = "decoding json value"

	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	v, err := From(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return v, nil
}

// DecodeYAML reads every document of a multi-document YAML
// stream from r. Empty documents are skipped.
func DecodeYAML(r io.Reader) ([]Value, error) {
	const errCtx = "decoding yaml values"

	dec := yaml.NewDecoder(r)

	var docs []Value

	for {
		var doc any

		err := dec.Decode(&doc)
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		if doc == nil {
			continue
		}

		v, err := From(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		docs = append(docs, v)
	}

	return docs, nil
}
