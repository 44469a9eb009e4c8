package parse

import (
	"errors"
	"iter"
	"strings"

	"github.com/chrsoo/handybars/path"
)

const (
	openTag  = "{{"
	closeTag = "}}"
)

type state int

const (
	stateRunning state = iota
	stateErrored
	stateExhausted
)

// Tokenizer is a pull-based scanner over a template. Use it
// like bufio.Scanner:
//
//	tz := parse.NewTokenizer(tpl)
//	for tz.Next() {
//		tok := tz.Token()
//		...
//	}
//	if err := tz.Err(); err != nil {
//		...
//	}
type Tokenizer struct {
	input string

	// head is the scan position and loc its location; tail
	// marks the start of literal text not yet emitted.
	head    int
	loc     path.Location
	tail    int
	tailLoc path.Location

	pending    Token
	hasPending bool

	state state
	tok   Token
	err   error
}

// NewTokenizer returns a Tokenizer reading input.
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// Token returns the token produced by the last successful
// call to Next.
func (tz *Tokenizer) Token() Token {
	return tz.tok
}

// Err returns the parse error that stopped the Tokenizer,
// or nil if it stopped at the end of input.
func (tz *Tokenizer) Err() error {
	return tz.err
}

// Next advances to the next token. It returns false at the
// end of input or after an error, and keeps returning false
// from then on.
func (tz *Tokenizer) Next() bool {
	if tz.state != stateRunning {
		return false
	}

	if tz.hasPending {
		tz.tok, tz.hasPending = tz.pending, false

		return true
	}

	for tz.head < len(tz.input) {
		if strings.HasPrefix(tz.input[tz.head:], openTag) {
			ok, err := tz.placeholder()
			if err != nil {
				tz.state = stateErrored
				tz.err = err

				return false
			}

			if ok {
				return true
			}
		}

		tz.advance(1)
	}

	if tz.tail < len(tz.input) {
		tz.tok = Token{
			Kind:     TokenStr,
			Text:     tz.input[tz.tail:],
			Location: tz.tailLoc,
		}
		tz.tail = len(tz.input)

		return true
	}

	tz.state = stateExhausted

	return false
}

// placeholder tries to read a placeholder at head. On
// success it sets the current token, queueing the variable
// behind any literal text that precedes it.
func (tz *Tokenizer) placeholder() (bool, error) {
	start := tz.loc

	v, n, err := parseTemplateInner(tz.input[tz.head+len(openTag):])
	if err != nil {
		return false, err.WithOffset(
			start.Add(path.Location{Col: len(openTag)}),
		)
	}

	if n == 0 {
		return false, nil
	}

	varTok := Token{Kind: TokenVariable, Variable: v, Location: start}
	literal := tz.input[tz.tail:tz.head]
	literalLoc := tz.tailLoc

	tz.advance(n + len(openTag))
	tz.tail, tz.tailLoc = tz.head, tz.loc

	if literal == "" {
		tz.tok = varTok

		return true, nil
	}

	tz.tok = Token{Kind: TokenStr, Text: literal, Location: literalLoc}
	tz.pending, tz.hasPending = varTok, true

	return true, nil
}

// advance moves head forward n bytes, tracking lines.
func (tz *Tokenizer) advance(n int) {
	for _, ch := range []byte(tz.input[tz.head : tz.head+n]) {
		if ch == '\n' {
			tz.loc.Line++
			tz.loc.Col = 0
		} else {
			tz.loc.Col++
		}
	}

	tz.head += n
}

// All returns an iterator over the remaining tokens. A
// parse error is yielded once, as the final element.
func (tz *Tokenizer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for tz.Next() {
			if !yield(tz.Token(), nil) {
				return
			}
		}

		if err := tz.Err(); err != nil {
			yield(Token{}, err)
		}
	}
}

// Tokenize collects every token of input.
func Tokenize(input string) ([]Token, error) {
	var tokens []Token

	tz := NewTokenizer(input)
	for tz.Next() {
		tokens = append(tokens, tz.Token())
	}

	if err := tz.Err(); err != nil {
		return nil, err
	}

	return tokens, nil
}

// parseTemplateInner parses the text following an opening
// "{{". It returns the variable and the number of bytes up
// to and including the closing "}}", or n == 0 when input
// does not start a placeholder.
func parseTemplateInner(input string) (path.Variable, int, *path.Error) {
	head := 0
	for head < len(input) && input[head] == ' ' {
		head++
	}

	v, n, err := path.ParsePrefix(input[head:])
	if err != nil {
		var perr *path.Error
		if !errors.As(err, &perr) {
			panic("parse: unexpected error type from path.ParsePrefix")
		}

		if perr.Kind == path.EmptyVariableSegment &&
			perr.Location == (path.Location{}) {
			return path.Variable{}, 0, nil
		}

		return path.Variable{}, 0, perr.WithOffset(path.Location{Col: head})
	}

	head += n

	rest := input[head:]
	if strings.HasPrefix(rest, closeTag) {
		return v, head + len(closeTag), nil
	}

	if strings.Contains(rest, closeTag) {
		return path.Variable{}, 0, &path.Error{
			Location: path.Location{Col: head},
			Kind:     path.InvalidCharacter,
			Char:     rest[0],
		}
	}

	return path.Variable{}, 0, nil
}
