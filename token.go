package lalr

import "fmt"

// Reserved symbols.
const (
	EOF     = "$eof"     // type of the end-of-input token
	Epsilon = "$epsilon" // marker for the empty word in FIRST sets
	Start   = "$start"   // left hand side of the augmented start rule
)

// --- A general purpose interface for tokens --------------------------------

// Token represents an input token. Tokens are usually produced by a scanner and
// reflect terminals in a language.
//
// An example would be a token for an integer:
//
//    Type  = "INT"        // terminal name of this kind of tokens
//    Value = "4711"       // lexeme how it appeared in the input stream
//    Line  = 3            // occured in line 3 of the input
//    Span  = 67…71        // occured from position 67 in the input stream
//
// The type of a token has to match a terminal symbol of the grammar.
type Token interface {
	Type() string
	Value() string
	Line() int
	Span() Span
}

// DefaultToken is a very unsophisticated token type, used as default for
// the scanners of package lr/scanner.
type DefaultToken struct {
	kind  string
	value string
	line  int
	span  Span
}

var _ Token = DefaultToken{}

// MakeToken creates a token.
func MakeToken(typ string, value string, line int, span Span) DefaultToken {
	return DefaultToken{
		kind:  typ,
		value: value,
		line:  line,
		span:  span,
	}
}

// EOFToken creates an end-of-input token for line.
func EOFToken(line int, pos uint64) DefaultToken {
	return DefaultToken{kind: EOF, line: line, span: Span{pos, pos}}
}

// Type is part of the Token interface.
func (t DefaultToken) Type() string {
	return t.kind
}

// Value is part of the Token interface.
func (t DefaultToken) Value() string {
	return t.value
}

// Line is part of the Token interface.
func (t DefaultToken) Line() int {
	return t.line
}

// Span is part of the Token interface.
func (t DefaultToken) Span() Span {
	return t.span
}

func (t DefaultToken) String() string {
	if t.kind == t.value || t.kind == EOF {
		return fmt.Sprintf("%q", t.kind)
	}
	return fmt.Sprintf("%q(%s)", t.kind, t.value)
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. For every
// terminal and non-terminal, a parse tree will track which input positions
// this symbol covers. A span denotes a start position and the position just
// behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other.
func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other.IsNull() {
		return s
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
