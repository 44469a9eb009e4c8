package path_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chrsoo/handybars/path"
)

func TestLocation_arithmetic(t *testing.T) {
	t.Parallel()

	a := path.Location{Line: 2, Col: 5}
	b := path.Location{Line: 1, Col: 3}

	assert.Equal(t, path.Location{Line: 3, Col: 8}, a.Add(b))
	assert.Equal(t, path.Location{Line: 1, Col: 2}, a.Sub(b))
	assert.Equal(t, a, a.Add(b).Sub(b))
}

func TestLocation_String_is_one_based(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "line 1 column 1", path.Location{}.String())
	assert.Equal(
		t,
		"line 3 column 10",
		path.Location{Line: 2, Col: 9}.String(),
	)
}

func TestError_message(t *testing.T) {
	t.Parallel()

	err := &path.Error{
		Location: path.Location{Col: 1},
		Kind:     path.SpaceInPath,
	}
	assert.Equal(
		t,
		"space in variable path at line 1 column 2",
		err.Error(),
	)

	err = &path.Error{
		Location: path.Location{Line: 1, Col: 4},
		Kind:     path.InvalidCharacter,
		Char:     '!',
	}
	assert.Equal(
		t,
		"invalid character: '!' at line 2 column 5",
		err.Error(),
	)
}

func TestError_Is_matches_kind(t *testing.T) {
	t.Parallel()

	_, err := path.Parse("a .b")

	assert.ErrorIs(t, err, &path.Error{Kind: path.SpaceInPath})
	assert.NotErrorIs(
		t, err, &path.Error{Kind: path.EmptyVariableSegment},
	)
	assert.False(t, errors.Is(err, errors.New("other")))
}

func TestError_WithOffset_copies(t *testing.T) {
	t.Parallel()

	orig := &path.Error{
		Location: path.Location{Col: 1},
		Kind:     path.EmptyVariableSegment,
	}
	moved := orig.WithOffset(path.Location{Line: 2, Col: 3})

	assert.Equal(t, path.Location{Line: 2, Col: 4}, moved.Location)
	assert.Equal(t, path.Location{Col: 1}, orig.Location)
}
