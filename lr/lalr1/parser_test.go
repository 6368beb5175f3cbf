package lalr1

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/npillmayer/lalr"
	"github.com/npillmayer/lalr/lr"
	"github.com/npillmayer/lalr/lr/cache"
	"github.com/npillmayer/lalr/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func arithGrammar(t *testing.T) *lr.Grammar {
	atoi := func(args ...interface{}) interface{} {
		n, _ := strconv.Atoi(args[0].(lalr.Token).Value())
		return n
	}
	binop := func(op func(a, b int) int) lr.Action {
		return func(args ...interface{}) interface{} {
			return op(args[0].(int), args[2].(int))
		}
	}
	b := lr.NewGrammarBuilder("Arithmetic")
	b.Define("Expr*").Is("Expr+").Epsilon().Call(func(args ...interface{}) interface{} {
		return []int{}
	})
	b.Define("Expr+").Is("Expr+", ",", "Expr").Call(func(args ...interface{}) interface{} {
		return append(args[0].([]int), args[2].(int))
	})
	b.Is("Expr").Call(func(args ...interface{}) interface{} {
		return []int{args[0].(int)}
	})
	b.Define("Function").Is("Add(", "Expr*", ")").Call(func(args ...interface{}) interface{} {
		sum := 0
		for _, n := range args[1].([]int) {
			sum += n
		}
		return sum
	})
	b.Define("Expr").Is("Function")
	b.Is("Expr", "+", "Expr").Call(binop(func(a, b int) int { return a + b }))
	b.Is("Expr", "-", "Expr").Call(binop(func(a, b int) int { return a - b }))
	b.Is("Expr", "*", "Expr").Call(binop(func(a, b int) int { return a * b }))
	b.Is("Expr", "/", "Expr").Call(binop(func(a, b int) int { return a / b }))
	b.Is("Expr", "**", "Expr").Call(binop(func(a, b int) int { return int(math.Pow(float64(a), float64(b))) }))
	b.Is("(", "Expr", ")").Call(func(args ...interface{}) interface{} { return args[1] })
	b.Is("-", "Expr").Call(func(args ...interface{}) interface{} { return -args[1].(int) }).Precedence(4)
	b.Is("INT").Call(atoi)
	b.Operators("+", "-").Left().Precedence(1)
	b.Operators("*", "/").Left().Precedence(2)
	b.Operators("**").Right().Precedence(3)
	g, err := b.Start("Expr").Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func arithLexer() *scanner.Lexer {
	return scanner.NewLexer().
		Regex("INT", `[1-9][0-9]*`).
		Token("(").Token(")").Token(",").
		Token("+").Token("-").Token("**").Token("*").Token("/").
		Token("Add(").
		Regex("WSP", `( |\t|\n|\r)+`).
		Skip("WSP")
}

func TestArithmetic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.lr")
	defer teardown()
	//
	p, err := NewParser(arithGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	lang := NewLanguage(arithLexer(), p)
	inputs := []struct {
		input  string
		result int
	}{
		{"-1 - 1", -2},
		{"6 ** (1 + 1) ** 2 * (5 + 4)", 11664},
		{"3 - 5 - 2", -4},
		{"4 ** 3 ** 2", 262144},
		{"2 + 3 * 4", 14},
		{"12 / 2 / 3", 2},
		{"Add(1, 2, 2)", 5},
		{"Add()", 0},
		{"Add(Add(1), 2 * 3)", 7},
	}
	for _, x := range inputs {
		v, err := lang.Compile(x.input)
		if err != nil {
			t.Errorf("%q: %v", x.input, err)
			continue
		}
		if v.(int) != x.result {
			t.Errorf("expected %q to evaluate to %d, is %v", x.input, x.result, v)
		}
	}
}

func TestUnexpectedToken(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.lr")
	defer teardown()
	//
	p, err := NewParser(arithGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	tokens, err := arithLexer().Lex("6 ** 5 3")
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.Parse(tokens)
	var uerr *UnexpectedTokenError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected unexpected token error, have %v", err)
	}
	if uerr.Token.Type() != "INT" || uerr.Token.Value() != "3" {
		t.Errorf("expected unexpected token to be 3, is %v", uerr.Token)
	}
	expected := []string{"$eof", ")", "*", "**", "+", ",", "-", "/"}
	if !reflect.DeepEqual(uerr.Expected, expected) {
		t.Errorf("expected %v, have %v", expected, uerr.Expected)
	}
	msg := `Unexpected "3 (INT)" at line 1. Expected one of "$eof", ")", "*", "**", "+", ",", "-", "/".`
	if uerr.Error() != msg {
		t.Errorf("unexpected error message: %s", uerr.Error())
	}
}

func TestUnexpectedEndOfInput(t *testing.T) {
	p, err := NewParser(arithGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	tokens, err := arithLexer().Lex("(1 +")
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.Parse(tokens)
	var uerr *UnexpectedTokenError
	if !errors.As(err, &uerr) || uerr.Token.Type() != lalr.EOF {
		t.Fatalf("expected unexpected end of input, have %v", err)
	}
	if !strings.HasPrefix(uerr.Error(), `Unexpected "end of input" at line 1.`) {
		t.Errorf("unexpected error message: %s", uerr.Error())
	}
}

// truncatedStream is a token stream without EOF token.
type truncatedStream struct {
	*lalr.ArrayStream
	n int
}

func (s *truncatedStream) Len() int { return s.n }

func (s *truncatedStream) Next() error {
	if s.Position()+1 >= s.n {
		return lalr.ErrOutOfBounds
	}
	return s.ArrayStream.Next()
}

func TestStreamWithoutEOF(t *testing.T) {
	p, err := NewParser(arithGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	tokens := lalr.NewTokenStream([]lalr.Token{
		lalr.MakeToken("INT", "1", 1, lalr.Span{0, 1}),
		lalr.MakeToken("+", "+", 1, lalr.Span{1, 2}),
	})
	_, err = p.Parse(&truncatedStream{ArrayStream: tokens, n: 2})
	var uerr *UnexpectedTokenError
	if !errors.As(err, &uerr) || uerr.Token.Type() != lalr.EOF {
		t.Fatalf("expected unexpected end of input, have %v", err)
	}
}

func TestParserWithCache(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.lr")
	defer teardown()
	//
	analyses := cache.NewMemory()
	p1, err := NewParser(arithGrammar(t), WithCache(analyses))
	if err != nil {
		t.Fatal(err)
	}
	p2, err := NewParser(arithGrammar(t), WithAnalyzer(lr.NewAnalyzer(lr.WithCache(analyses))))
	if err != nil {
		t.Fatal(err)
	}
	if p1.Analysis() != p2.Analysis() {
		t.Errorf("expected parsers to share the cached analysis")
	}
	exprs, err := cache.NewExpressions(16)
	if err != nil {
		t.Fatal(err)
	}
	lang := NewLanguage(arithLexer(), p2, WithExpressionCache(exprs))
	for i := 0; i < 2; i++ {
		if v, err := lang.Compile("1 + 2"); err != nil || v.(int) != 3 {
			t.Errorf("expected 1 + 2 = 3, have %v, %v", v, err)
		}
	}
	if !exprs.Has("1 + 2") {
		t.Errorf("expected expression to be cached")
	}
	if _, err := lang.Compile("1 +"); err == nil || exprs.Has("1 +") {
		t.Errorf("expected error not to be cached")
	}
}

func TestRuleWithoutAction(t *testing.T) {
	b := lr.NewGrammarBuilder("Passthrough")
	b.Define("S").Is("A", "b")
	b.Define("A").Is("a").Epsilon()
	g, err := b.Start("S").Grammar()
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewParser(g)
	if err != nil {
		t.Fatal(err)
	}
	lexer := scanner.NewLexer().Token("a").Token("b")
	tokens, _ := lexer.Lex("ab")
	v, err := p.Parse(tokens)
	if err != nil {
		t.Fatal(err)
	}
	if tok, ok := v.(lalr.Token); !ok || tok.Value() != "a" {
		t.Errorf("expected value of first symbol, have %v", v)
	}
	tokens, _ = lexer.Lex("b")
	if v, err = p.Parse(tokens); err != nil || v != nil {
		t.Errorf("expected nil value for ε-production, have %v, %v", v, err)
	}
}
