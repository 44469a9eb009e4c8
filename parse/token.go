package parse

import (
	"fmt"

	"github.com/chrsoo/handybars/path"
)

// TokenKind tells literal text from placeholders.
type TokenKind int

// Token kinds.
const (
	TokenStr TokenKind = iota + 1
	TokenVariable
)

func (k TokenKind) String() string {
	switch k {
	case TokenStr:
		return "Str"
	case TokenVariable:
		return "Variable"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is one piece of a template. Text is set for
// TokenStr and is a substring of the template; Variable is
// set for TokenVariable. Location is where the token
// starts.
type Token struct {
	Kind     TokenKind
	Text     string
	Variable path.Variable
	Location path.Location
}

func (t Token) String() string {
	if t.Kind == TokenVariable {
		return fmt.Sprintf("Variable(%s)", t.Variable)
	}

	return fmt.Sprintf("Str(%q)", t.Text)
}
