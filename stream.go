package lalr

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned by token streams for invalid positions.
var ErrOutOfBounds = errors.New("token stream position out of bounds")

// TokenStream is a finite and replayable sequence of tokens. A stream
// produced by a scanner ends with a token of type EOF.
type TokenStream interface {
	Len() int                       // number of tokens in the stream
	Position() int                  // current cursor position
	Current() Token                 // token at the cursor position
	Get(i int) (Token, error)       // token at absolute position i
	Look(offset int) (Token, error) // token at cursor position + offset
	Move(i int) error               // set the cursor to an absolute position
	Seek(offset int) error          // move the cursor relative to its position
	Next() error                    // advance the cursor by one
	Reset()                         // move the cursor to the first token
	Tokens() []Token                // all tokens of the stream
}

// ArrayStream is a token stream over a slice of tokens.
type ArrayStream struct {
	tokens   []Token
	position int
}

var _ TokenStream = (*ArrayStream)(nil)

// NewTokenStream creates a stream for a list of tokens. If the list does not end
// with an EOF token, one is appended.
func NewTokenStream(tokens []Token) *ArrayStream {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type() != EOF {
		line, pos := 1, uint64(0)
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			line, pos = last.Line(), last.Span().To()
		}
		tokens = append(tokens, EOFToken(line, pos))
	}
	return &ArrayStream{tokens: tokens}
}

// Len returns the number of tokens, including the EOF token.
func (s *ArrayStream) Len() int {
	return len(s.tokens)
}

// Position returns the cursor position.
func (s *ArrayStream) Position() int {
	return s.position
}

// Current returns the token at the cursor position.
func (s *ArrayStream) Current() Token {
	return s.tokens[s.position]
}

// Get returns the token at position i.
func (s *ArrayStream) Get(i int) (Token, error) {
	if !s.valid(i) {
		return nil, fmt.Errorf("%w: invalid index %d, there are only %d tokens in stream",
			ErrOutOfBounds, i, len(s.tokens))
	}
	return s.tokens[i], nil
}

// Look returns the token at the cursor position plus offset, without moving the cursor.
func (s *ArrayStream) Look(offset int) (Token, error) {
	if !s.valid(s.position + offset) {
		return nil, fmt.Errorf("%w: invalid look-ahead position %d, there are only %d tokens in stream",
			ErrOutOfBounds, offset, len(s.tokens))
	}
	return s.tokens[s.position+offset], nil
}

// Move sets the cursor to position i.
func (s *ArrayStream) Move(i int) error {
	if !s.valid(i) {
		return fmt.Errorf("%w: invalid index %d to move on, there are only %d tokens in stream",
			ErrOutOfBounds, i, len(s.tokens))
	}
	s.position = i
	return nil
}

// Seek moves the cursor by offset.
func (s *ArrayStream) Seek(offset int) error {
	if !s.valid(s.position + offset) {
		return fmt.Errorf("%w: invalid index %d to seek, there are only %d tokens in stream",
			ErrOutOfBounds, s.position+offset, len(s.tokens))
	}
	s.position += offset
	return nil
}

// Next advances the cursor by one token.
func (s *ArrayStream) Next() error {
	if !s.valid(s.position + 1) {
		return fmt.Errorf("%w: attempting to move beyond the end of the stream, there are only %d tokens in stream",
			ErrOutOfBounds, len(s.tokens))
	}
	s.position++
	return nil
}

// Reset moves the cursor to the first token.
func (s *ArrayStream) Reset() {
	s.position = 0
}

// Tokens returns the tokens of the stream. Clients must not modify them.
func (s *ArrayStream) Tokens() []Token {
	return s.tokens
}

func (s *ArrayStream) valid(i int) bool {
	return i >= 0 && i < len(s.tokens)
}
