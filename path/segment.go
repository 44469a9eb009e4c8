package path

// reserved holds the punctuation bytes that template syntax
// and path separation claim for themselves.
var reserved = [256]bool{
	'!': true, '"': true, '#': true, '%': true, '&': true,
	'\'': true, '(': true, ')': true, '*': true, '+': true,
	'|': true, '.': true, '/': true, ';': true, '<': true,
	'=': true, '>': true, '@': true, '[': true, ']': true,
	'\\': true, '^': true, '`': true, '{': true, '}': true,
	',': true, '~': true,
}

// IsNameChar reports whether ch may appear in a path
// segment. ASCII whitespace and the reserved punctuation
// set are excluded; '-', '_', digits and non-ASCII bytes
// are allowed.
func IsNameChar(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f':
		return false
	}

	return !reserved[ch]
}

// TryParseSegment returns the longest leading run of name
// characters in input. It fails with EmptyVariableSegment
// when input is empty or starts with a non-name byte, and
// with NewlineInVariableSegment when a newline is reached
// before any other terminator.
func TryParseSegment(input []byte) ([]byte, error) {
	n, err := segmentLen(input)
	if err != nil {
		return nil, err
	}

	return input[:n], nil
}
