package scanner

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/lalr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var tokenCounts = []int{1, 3, 3, 3, 5}

func TestGoTokenizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		reader := strings.NewReader(input)
		name := fmt.Sprintf("input #%d", i)
		scanner := GoTokenizer(name, reader)
		token := scanner.NextToken()
		count := 0
		for token.Type() != lalr.EOF {
			t.Logf(" %6s | %15s | @%5d", token.Type(), token.Value(), token.Span().From())
			token = scanner.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestGoTokenizerTypes(t *testing.T) {
	scanner := GoTokenizer("types", strings.NewReader(`x = 'c' + 1.5 // comment`),
		SkipComments(false), UnifyStrings(true))
	expect := []string{Ident, "=", String, "+", Float, Comment, lalr.EOF}
	for i, typ := range expect {
		token := scanner.NextToken()
		if token.Type() != typ {
			t.Errorf("token #%d: expected type %s, is %s", i, typ, token.Type())
		}
	}
}

func TestGoLexer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.scanner")
	defer teardown()
	//
	tokens, err := NewGoLexer().Lex("a + 12\n* b")
	if err != nil {
		t.Fatal(err)
	}
	if tokens.Len() != 6 {
		t.Fatalf("expected 6 tokens (including EOF), have %d", tokens.Len())
	}
	tok, _ := tokens.Get(2)
	if tok.Type() != Int || tok.Value() != "12" || tok.Span() != (lalr.Span{4, 6}) {
		t.Errorf("unexpected token %v", tok)
	}
	if tok, _ = tokens.Get(4); tok.Line() != 2 {
		t.Errorf("expected b on line 2, is on line %d", tok.Line())
	}
	if _, err = NewGoLexer().Lex(`"unterminated`); err == nil {
		t.Errorf("expected error for unterminated string literal")
	}
}

func arithLexer() *Lexer {
	return NewLexer().
		Regex("INT", `[1-9][0-9]*`).
		Token("(").Token(")").Token(",").
		Token("+").Token("-").Token("**").Token("*").Token("/").
		Token("Add(").
		Regex("WSP", `( |\t|\n|\r)+`).
		Skip("WSP")
}

func TestLexer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.scanner")
	defer teardown()
	//
	tokens, err := arithLexer().Lex("Add(1, 2 ** 3)\n- 42")
	if err != nil {
		t.Fatal(err)
	}
	expect := []string{"Add(", "INT", ",", "INT", "**", "INT", ")", "-", "INT", lalr.EOF}
	if tokens.Len() != len(expect) {
		t.Fatalf("expected %d tokens, have %d: %v", len(expect), tokens.Len(), tokens.Tokens())
	}
	for i, typ := range expect {
		if tok, _ := tokens.Get(i); tok.Type() != typ {
			t.Errorf("token #%d: expected type %q, is %q", i, typ, tok.Type())
		}
	}
	tok, _ := tokens.Get(8)
	if tok.Value() != "42" || tok.Line() != 2 || tok.Span() != (lalr.Span{17, 19}) {
		t.Errorf("unexpected token %v at line %d, span %v", tok, tok.Line(), tok.Span())
	}
	if eof, _ := tokens.Get(9); eof.Line() != 2 || eof.Span().From() != 19 {
		t.Errorf("unexpected EOF token at line %d, span %v", eof.Line(), eof.Span())
	}
}

func TestLexerFirstDefinitionWins(t *testing.T) {
	lexer := NewLexer().
		Token("KEYWORD", "if", "else").
		Regex("ID", `[a-z]+`).
		Regex("WS", ` +`).Skip("WS")
	tokens, err := lexer.Lex("if iff else")
	if err != nil {
		t.Fatal(err)
	}
	expect := []string{"KEYWORD", "ID", "KEYWORD", lalr.EOF}
	for i, typ := range expect {
		if tok, _ := tokens.Get(i); tok.Type() != typ {
			t.Errorf("token #%d: expected type %q, is %q", i, typ, tok.Type())
		}
	}
}

func TestLexerRecognitionError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.scanner")
	defer teardown()
	//
	_, err := arithLexer().Lex("1 +\n  2 ? 3")
	var rerr *RecognitionError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected recognition error, have %v", err)
	}
	if rerr.Input != "?" || rerr.Position.Line != 2 || rerr.Position.Column != 5 {
		t.Errorf("unexpected recognition error %q at %d:%d", rerr.Input, rerr.Position.Line,
			rerr.Position.Column)
	}
	if rerr.Error() != `Invalid Parameter "?" at line 2 position 5.` {
		t.Errorf("unexpected error message: %s", rerr.Error())
	}
}

func TestLexerCompileError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.scanner")
	defer teardown()
	//
	lexer := NewLexer().Regex("BAD", `(a`)
	_, err := lexer.Lex("a")
	if err == nil {
		t.Fatalf("expected compile error")
	}
	if !strings.HasPrefix(err.Error(), "cannot compile lexer") {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if _, err := lexer.Lex("a"); err == nil {
		t.Errorf("expected compile error to be remembered")
	}
}
