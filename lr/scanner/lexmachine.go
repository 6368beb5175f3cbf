package scanner

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/npillmayer/lalr"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
	"modernc.org/token"
)

// Lexer is a lexer built from token definitions. Tokens are either literal
// strings or regular expressions. At every position of the input the longest
// match wins; if two definitions match the same length, the one defined
// first wins.
//
// Definitions are compiled into a DFA (using lexmachine) on first use,
// therefore all definitions have to be made before calling Lex for the
// first time. A compiled lexer may be used by more than one goroutine.
//
//    lexer := scanner.NewLexer().
//        Regex("INT", `[1-9][0-9]*`).
//        Token("+").Token("-").
//        Regex("WS", `( |\t|\n|\r)+`).Skip("WS")
//
type Lexer struct {
	defs    []tokenDef
	skip    map[string]bool
	once    sync.Once
	machine *lexmachine.Lexer
	err     error
}

type tokenDef struct {
	typ     string // token type
	pattern string // lexmachine regular expression
}

// NewLexer creates an empty lexer.
func NewLexer() *Lexer {
	return &Lexer{skip: make(map[string]bool)}
}

// Token defines tokens of type typ, matching any of the literals given.
// Without literals, the type itself is the literal to match.
func (l *Lexer) Token(typ string, literals ...string) *Lexer {
	if len(literals) == 0 {
		literals = []string{typ}
	}
	for _, lit := range literals {
		l.defs = append(l.defs, tokenDef{typ: typ, pattern: quoteLiteral(lit)})
	}
	return l
}

// Regex defines tokens of type typ, matching a regular expression.
func (l *Lexer) Regex(typ string, pattern string) *Lexer {
	l.defs = append(l.defs, tokenDef{typ: typ, pattern: pattern})
	return l
}

// Skip marks token types to be dropped from the token stream, e.g. whitespace
// or comments.
func (l *Lexer) Skip(types ...string) *Lexer {
	for _, typ := range types {
		l.skip[typ] = true
	}
	return l
}

// quoteLiteral escapes all punctuation of a literal, making it a regular expression
// matching exactly the literal.
func quoteLiteral(lit string) string {
	var b strings.Builder
	for _, r := range lit {
		if r < unicode.MaxASCII && (unicode.IsPunct(r) || unicode.IsSymbol(r)) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (l *Lexer) compile() error {
	l.once.Do(func() {
		defer func() {
			// lexmachine panics on some malformed patterns
			if r := recover(); r != nil {
				if gtrace.SyntaxTracer != nil {
					gtrace.SyntaxTracer.Errorf("error compiling DFA: %v", r)
				}
				l.machine = nil
				l.err = fmt.Errorf("cannot compile lexer: %v", r)
			}
		}()
		l.machine = lexmachine.NewLexer()
		for i, def := range l.defs {
			if l.skip[def.typ] {
				l.machine.Add([]byte(def.pattern), skip)
			} else {
				l.machine.Add([]byte(def.pattern), makeToken(i))
			}
		}
		if err := l.machine.Compile(); err != nil {
			if gtrace.SyntaxTracer != nil {
				gtrace.SyntaxTracer.Errorf("error compiling DFA: %v", err)
			}
			l.err = fmt.Errorf("cannot compile lexer: %w", err)
			return
		}
		tracer().Debugf("compiled lexer with %d token definitions", len(l.defs))
	})
	return l.err
}

// Lex splits input into tokens. The token stream returned ends with a
// token of type lalr.EOF. Input which matches no token definition results in
// a RecognitionError.
func (l *Lexer) Lex(input string) (lalr.TokenStream, error) {
	if err := l.compile(); err != nil {
		return nil, err
	}
	s, err := l.machine.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	var tokens []lalr.Token
	for tok, err, eos := s.Next(); !eos; tok, err, eos = s.Next() {
		if err != nil {
			var ui *machines.UnconsumedInput
			if errors.As(err, &ui) {
				return nil, recognitionError(input, ui)
			}
			return nil, err
		}
		t := tok.(*lexmachine.Token)
		tokens = append(tokens, lalr.MakeToken(
			l.defs[t.Type].typ,
			string(t.Lexeme),
			t.StartLine,
			lalr.Span{uint64(t.TC), uint64(t.TC + len(t.Lexeme))},
		))
		tracer().Debugf("token %v", tokens[len(tokens)-1])
	}
	line := strings.Count(input, "\n") + 1
	tokens = append(tokens, lalr.EOFToken(line, uint64(len(input))))
	return lalr.NewTokenStream(tokens), nil
}

// skip is a lexmachine action which ignores the scanned match.
func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// makeToken is a lexmachine action which wraps a scanned match into a token.
func makeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// --- Errors ----------------------------------------------------------------

// RecognitionError is returned by Lex for input which does not match any
// token definition.
type RecognitionError struct {
	Input    string         // the unrecognized input, up to the next white space
	Position token.Position // position of the input
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("Invalid Parameter %q at line %d position %d.", e.Input,
		e.Position.Line, e.Position.Column)
}

func recognitionError(input string, ui *machines.UnconsumedInput) *RecognitionError {
	rest := input[ui.StartTC:]
	if i := strings.IndexFunc(rest, unicode.IsSpace); i > 0 {
		rest = rest[:i]
	}
	err := &RecognitionError{
		Input: rest,
		Position: token.Position{
			Offset: ui.StartTC,
			Line:   ui.StartLine,
			Column: ui.StartColumn,
		},
	}
	tracer().Errorf("scanner error: %v", err)
	return err
}
