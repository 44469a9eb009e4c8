package path

import "fmt"

// Location is a zero-based line and column pair used to
// annotate parse errors.
type Location struct {
	Line int
	Col  int
}

// Add returns the componentwise sum of lo and other.
func (lo Location) Add(other Location) Location {
	return Location{Line: lo.Line + other.Line, Col: lo.Col + other.Col}
}

// Sub returns the componentwise difference of lo and other.
func (lo Location) Sub(other Location) Location {
	return Location{Line: lo.Line - other.Line, Col: lo.Col - other.Col}
}

// String renders the location 1-based, the way editors
// number lines and columns.
func (lo Location) String() string {
	return fmt.Sprintf("line %d column %d", lo.Line+1, lo.Col+1)
}
