package path

// Parse parses a complete dotted path such as "a.b.c".
// Trailing spaces are tolerated; any byte outside the name
// characters, space and '.' is an InvalidCharacter error.
func Parse(s string) (Variable, error) {
	v, _, err := parseRun(s, isPathChar, true)
	if err != nil {
		return Variable{}, err
	}

	return v, nil
}

// MustParse is like Parse but panics on error. It is meant
// for paths known at compile time.
func MustParse(s string) Variable {
	v, err := Parse(s)
	if err != nil {
		panic("path: MustParse(" + s + "): " + err.Error())
	}

	return v
}

// ParsePrefix parses the path at the start of s, which is
// the inside of a placeholder: the path ends at the first
// '}' or at the end of s. It returns the number of bytes
// consumed, trailing spaces included.
func ParsePrefix(s string) (Variable, int, error) {
	v, n, err := parseRun(s, notCloseBrace, false)
	if err != nil {
		return Variable{}, 0, err
	}

	return v, n, nil
}

func isPathChar(ch byte) bool {
	return ch == ' ' || ch == '.' || IsNameChar(ch)
}

func notCloseBrace(ch byte) bool {
	return ch != '}'
}

// segmentLen is TryParseSegment over strings and byte
// slices alike, reporting a length instead of a slice.
func segmentLen[T ~string | ~[]byte](input T) (int, *Error) {
	if len(input) == 0 {
		return 0, newError(0, EmptyVariableSegment)
	}

	for offset := 0; offset < len(input); offset++ {
		ch := input[offset]
		if ch == '\n' {
			return 0, newError(offset, NewlineInVariableSegment)
		}

		if !IsNameChar(ch) {
			if offset == 0 {
				return 0, newError(0, EmptyVariableSegment)
			}

			return offset, nil
		}
	}

	return len(input), nil
}

// parseRun parses the path inside the maximal prefix of s
// accepted by valid. In strict mode the prefix must cover
// all of s.
func parseRun(
	s string,
	valid func(byte) bool,
	strict bool,
) (Variable, int, *Error) {
	run := 0
	for run < len(s) && valid(s[run]) {
		run++
	}

	if strict && run != len(s) {
		return Variable{}, 0, &Error{
			Location: Location{Col: run},
			Kind:     InvalidCharacter,
			Char:     s[run],
		}
	}

	if run == 0 {
		return Variable{}, 0, newError(0, EmptyVariableSegment)
	}

	first, err := segmentLen(s[:run])
	if err != nil {
		return Variable{}, 0, err
	}

	head := first

	var segs []string

	for head < run && s[head] == '.' {
		dot := head
		head++

		for head < run && s[head] == ' ' {
			head++
		}

		if head == run {
			return Variable{}, 0, newError(dot, EmptyVariableSegment)
		}

		n, err := segmentLen(s[head:run])
		if err != nil {
			return Variable{}, 0, err.WithOffset(Location{Col: head})
		}

		if segs == nil {
			segs = append(segs, s[:first])
		}

		segs = append(segs, s[head:head+n])
		head += n
	}

	if err := checkTrailer(s[:run], head); err != nil {
		return Variable{}, 0, err
	}

	if segs == nil {
		return Variable{single: s[:first]}, run, nil
	}

	return Variable{segments: segs}, run, nil
}

// checkTrailer validates what follows the last segment,
// which ends at head: only spaces may remain in run.
func checkTrailer(run string, head int) *Error {
	if head == len(run) {
		return nil
	}

	if run[head] != ' ' {
		return &Error{
			Location: Location{Col: head},
			Kind:     InvalidCharacter,
			Char:     run[head],
		}
	}

	next := head
	for next < len(run) && run[next] == ' ' {
		next++
	}

	if next == len(run) {
		return nil
	}

	switch ch := run[next]; {
	case ch == '.':
		return newError(head, SpaceInPath)
	case ch == '\n':
		return newError(next, NewlineInVariableSegment)
	case IsNameChar(ch):
		return newError(next, TooManyVariablesInBlock)
	default:
		return &Error{
			Location: Location{Col: next},
			Kind:     InvalidCharacter,
			Char:     ch,
		}
	}
}
