/*
Package scanner provides lexers producing token streams for the parsers of
package lr.

Two implementations are provided: (1) a thin wrapper over the Go std lib
'text/scanner', recognizing tokens similar to the Go language, and (2) a
lexer built from literal and regular expression token definitions, backed by
lexmachine.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"strings"
	"text/scanner"

	"github.com/npillmayer/lalr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lalr.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lalr.scanner")
}

// Token types produced by the Go tokenizer. All other tokens, such as
// operators and delimiters, have their lexeme as type.
const (
	Ident   = "IDENT"
	Int     = "INT"
	Float   = "FLOAT"
	Char    = "CHAR"
	String  = "STRING"
	Comment = "COMMENT"
)

// DefaultTokenizer is a tokenizer backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune        // last token this scanner has produced
	Error        func(error) // error handler
	unifyStrings bool        // convert raw strings and single chars to strings
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken returns the next token of the input. At the end of the input
// it returns tokens of type lalr.EOF.
func (t *DefaultTokenizer) NextToken() lalr.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
		pos := t.Pos()
		return lalr.EOFToken(pos.Line, uint64(pos.Offset))
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	return lalr.MakeToken(
		tokenType(t.lastToken),
		t.TokenText(),
		t.Position.Line,
		lalr.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
	)
}

func tokenType(tok rune) string {
	switch tok {
	case scanner.Ident:
		return Ident
	case scanner.Int:
		return Int
	case scanner.Float:
		return Float
	case scanner.Char:
		return Char
	case scanner.String, scanner.RawString:
		return String
	case scanner.Comment:
		return Comment
	}
	return string(tok)
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenizer.
type Option func(p *DefaultTokenizer)

// SkipComments sets or clears mode-flag SkipComments. Comments are skipped by
// default.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}

// --- Go lexer ----------------------------------------------------------------

// GoLexer splits input strings into Go-like tokens.
type GoLexer struct {
	opts []Option
}

// NewGoLexer creates a lexer which uses a DefaultTokenizer, configured with opts,
// for every input.
func NewGoLexer(opts ...Option) *GoLexer {
	return &GoLexer{opts: opts}
}

// Lex tokenizes input. It returns the first error the tokenizer reports.
func (gl *GoLexer) Lex(input string) (lalr.TokenStream, error) {
	t := GoTokenizer("input", strings.NewReader(input), gl.opts...)
	var err error
	t.SetErrorHandler(func(e error) {
		logError(e)
		if err == nil {
			err = e
		}
	})
	var tokens []lalr.Token
	for {
		token := t.NextToken()
		tokens = append(tokens, token)
		if token.Type() == lalr.EOF {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return lalr.NewTokenStream(tokens), nil
}
