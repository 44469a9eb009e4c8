package path_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrsoo/handybars/path"
)

func TestIsNameChar(t *testing.T) {
	t.Parallel()

	for _, ch := range []byte("aZ09-_$:?") {
		assert.Truef(t, path.IsNameChar(ch), "%q", ch)
	}

	assert.True(t, path.IsNameChar("é"[0]), "non-ASCII lead byte")

	for _, ch := range []byte("!\"#%&'()*+|./;<=>@[]\\^`{},~ \t\n\r\f") {
		assert.Falsef(t, path.IsNameChar(ch), "%q", ch)
	}
}

func TestTryParseSegment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "stops on brace", input: "x}", want: "x"},
		{name: "stops on trailing space", input: "x ", want: "x"},
		{name: "whole input", input: "seg", want: "seg"},
		{name: "stops at separator", input: "seg.part.2", want: "seg"},
		{name: "unicode", input: "héllo wörld", want: "héllo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := path.TryParseSegment([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestTryParseSegment_errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		kind  path.ErrorKind
		col   int
	}{
		{name: "empty", input: "", kind: path.EmptyVariableSegment},
		{name: "leading dot", input: ".a", kind: path.EmptyVariableSegment},
		{name: "leading space", input: " a", kind: path.EmptyVariableSegment},
		{
			name:  "newline",
			input: "ab\ncd",
			kind:  path.NewlineInVariableSegment,
			col:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := path.TryParseSegment([]byte(tt.input))

			var perr *path.Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.kind, perr.Kind)
			assert.Equal(t, path.Location{Col: tt.col}, perr.Location)
		})
	}
}
