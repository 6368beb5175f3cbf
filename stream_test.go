package lalr

import (
	"errors"
	"testing"
)

func TestStreamAppendsEOF(t *testing.T) {
	s := NewTokenStream([]Token{
		MakeToken("INT", "1", 1, Span{0, 1}),
		MakeToken("+", "+", 1, Span{1, 2}),
	})
	if s.Len() != 3 {
		t.Fatalf("expected stream of 3 tokens, have %d", s.Len())
	}
	last, err := s.Get(2)
	if err != nil {
		t.Fatal(err)
	}
	if last.Type() != EOF {
		t.Errorf("expected last token to be EOF, is %q", last.Type())
	}
	if last.Span().From() != 2 {
		t.Errorf("expected EOF token to start at 2, is %d", last.Span().From())
	}
	if NewTokenStream(s.Tokens()).Len() != 3 {
		t.Errorf("expected no second EOF token to be appended")
	}
}

func TestStreamCursor(t *testing.T) {
	s := NewTokenStream([]Token{
		MakeToken("a", "a", 1, Span{0, 1}),
		MakeToken("b", "b", 1, Span{1, 2}),
		MakeToken("c", "c", 2, Span{3, 4}),
	})
	if s.Current().Type() != "a" {
		t.Errorf("expected current token to be 'a', is %q", s.Current().Type())
	}
	if tok, err := s.Look(2); err != nil || tok.Type() != "c" {
		t.Errorf("expected to look at 'c', have %v, %v", tok, err)
	}
	if err := s.Next(); err != nil {
		t.Fatal(err)
	}
	if err := s.Seek(2); err != nil {
		t.Fatal(err)
	}
	if s.Current().Type() != EOF || s.Position() != 3 {
		t.Errorf("expected cursor at EOF, is at %d", s.Position())
	}
	if err := s.Next(); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected out of bounds error, have %v", err)
	}
	if err := s.Move(1); err != nil || s.Current().Type() != "b" {
		t.Errorf("expected cursor to move to 'b'")
	}
	if _, err := s.Get(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected out of bounds error for index -1")
	}
}

func TestNodeString(t *testing.T) {
	one := NewLeaf(MakeToken("INT", "1", 1, Span{0, 1}))
	plus := NewLeaf(MakeToken("+", "+", 1, Span{2, 3}))
	two := NewLeaf(MakeToken("INT", "2", 1, Span{4, 5}))
	n := NewNode("Expr", one, plus, two)
	if n.String() != "(Expr INT(1) + INT(2))" {
		t.Errorf("unexpected node string %s", n.String())
	}
	if n.Span() != (Span{0, 5}) {
		t.Errorf("expected span (0…5), have %v", n.Span())
	}
	count := 0
	n.Walk(func(*Node, int) { count++ })
	if count != 4 {
		t.Errorf("expected walk to visit 4 nodes, visited %d", count)
	}
}
