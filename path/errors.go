package path

import "fmt"

// ErrorKind discriminates parse failures.
type ErrorKind int

// Parse error kinds.
const (
	// EmptyVariableSegment is reported when a segment between
	// dots, or the whole path, has zero length.
	EmptyVariableSegment ErrorKind = iota + 1
	// NewlineInVariableSegment is reported when a literal
	// newline runs into a segment.
	NewlineInVariableSegment
	// SpaceInPath is reported for a space adjacent to a dot.
	SpaceInPath
	// InvalidCharacter is reported for a disallowed byte in a
	// bare path.
	InvalidCharacter
	// TooManyVariablesInBlock is reported when two space
	// separated paths share one placeholder.
	TooManyVariablesInBlock
)

func (k ErrorKind) String() string {
	switch k {
	case EmptyVariableSegment:
		return "empty variable segment name"
	case NewlineInVariableSegment:
		return "newline in variable segment"
	case SpaceInPath:
		return "space in variable path"
	case InvalidCharacter:
		return "invalid character"
	case TooManyVariablesInBlock:
		return "too many variables in block"
	default:
		return fmt.Sprintf("unknown parse error (%d)", int(k))
	}
}

// Error is a located parse failure. Char holds the
// offending byte for InvalidCharacter.
type Error struct {
	Location Location
	Kind     ErrorKind
	Char     byte
}

func newError(col int, kind ErrorKind) *Error {
	return &Error{Location: Location{Col: col}, Kind: kind}
}

func (e *Error) Error() string {
	if e.Kind == InvalidCharacter {
		return fmt.Sprintf(
			"%s: %q at %s", e.Kind, e.Char, e.Location,
		)
	}

	return fmt.Sprintf("%s at %s", e.Kind, e.Location)
}

// Is reports whether target is an *Error of the same kind,
// so callers can match with errors.Is(err, &Error{Kind: k}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

// WithOffset returns a copy of e shifted by offset.
func (e *Error) WithOffset(offset Location) *Error {
	cp := *e
	cp.Location = cp.Location.Add(offset)

	return &cp
}
