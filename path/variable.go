package path

import (
	"strings"
)

// Variable is a non-empty dotted path of non-empty
// segments. A single-segment path is stored without a
// slice; every constructor collapses one-part paths to
// that form so the two encodings never coexist for the
// same logical path.
//
// Segments may alias the string they were parsed from.
// Use Clone to obtain a Variable that owns its text.
type Variable struct {
	single   string
	segments []string
}

// Single builds a one-segment path. It panics if name is
// empty or contains a dot; use Parse for dotted input.
func Single(name string) Variable {
	if name == "" {
		panic("path: cannot construct a variable with an empty string")
	}

	if strings.Contains(name, ".") {
		panic("path: single cannot contain dot separator, use Parse")
	}

	return Variable{single: name}
}

// FromParts builds a path from its segments in order. It
// panics if parts is empty or any part is empty or dotted.
func FromParts(parts ...string) Variable {
	if len(parts) == 0 {
		panic("path: a variable needs at least one part")
	}

	for _, p := range parts {
		if p == "" {
			panic("path: variable part cannot be empty")
		}

		if strings.Contains(p, ".") {
			panic("path: variable part cannot contain dot separator")
		}
	}

	return fromSegments(append([]string(nil), parts...))
}

// fromSegments takes ownership of segs.
func fromSegments(segs []string) Variable {
	if len(segs) == 1 {
		return Variable{single: segs[0]}
	}

	return Variable{segments: segs}
}

// IsZero reports whether v is the zero Variable, which no
// constructor returns.
func (v Variable) IsZero() bool {
	return v.single == "" && len(v.segments) == 0
}

// Segments returns a fresh slice of the path's segments.
func (v Variable) Segments() []string {
	if v.segments == nil {
		if v.single == "" {
			return nil
		}

		return []string{v.single}
	}

	return append([]string(nil), v.segments...)
}

// NumSegments returns the number of segments in v.
func (v Variable) NumSegments() int {
	if v.segments == nil {
		if v.single == "" {
			return 0
		}

		return 1
	}

	return len(v.segments)
}

// Segment returns the i-th segment.
func (v Variable) Segment(i int) string {
	if v.segments == nil {
		if i != 0 {
			panic("path: segment index out of range")
		}

		return v.single
	}

	return v.segments[i]
}

// Head returns the first segment.
func (v Variable) Head() string {
	if v.segments == nil {
		return v.single
	}

	return v.segments[0]
}

// Len is the byte length of the dotted form, separators
// included.
func (v Variable) Len() int {
	if v.segments == nil {
		return len(v.single)
	}

	n := len(v.segments) - 1
	for _, s := range v.segments {
		n += len(s)
	}

	return n
}

// Join returns the path made of v's segments followed by
// other's. Neither operand is modified.
func (v Variable) Join(other Variable) Variable {
	segs := make([]string, 0, v.NumSegments()+other.NumSegments())
	segs = append(segs, v.Segments()...)
	segs = append(segs, other.Segments()...)

	return fromSegments(segs)
}

// Equal reports whether v and other name the same path.
func (v Variable) Equal(other Variable) bool {
	if v.NumSegments() != other.NumSegments() {
		return false
	}

	if v.segments == nil {
		return v.single == other.single
	}

	for i, s := range v.segments {
		if s != other.segments[i] {
			return false
		}
	}

	return true
}

// Clone returns a copy of v whose segments share no
// memory with the input v was parsed from.
func (v Variable) Clone() Variable {
	if v.segments == nil {
		return Variable{single: strings.Clone(v.single)}
	}

	segs := make([]string, len(v.segments))
	for i, s := range v.segments {
		segs[i] = strings.Clone(s)
	}

	return Variable{segments: segs}
}

func (v Variable) String() string {
	if v.segments == nil {
		return v.single
	}

	return strings.Join(v.segments, ".")
}

// MarshalText implements encoding.TextMarshaler.
func (v Variable) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using
// Parse.
func (v *Variable) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*v = parsed

	return nil
}
