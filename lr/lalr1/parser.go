package lalr1

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lalr"
	"github.com/npillmayer/lalr/lr"
)

// Parser is a LALR(1)-parser type. Create and initialize one with lalr1.NewParser(...).
// A parser does not hold any state between calls to Parse and may be used
// by more than one goroutine.
type Parser struct {
	G        *lr.Grammar
	analyzer *lr.Analyzer
	result   *lr.AnalysisResult
}

// Option configures a parser.
type Option func(*Parser)

// WithAnalyzer sets the analyzer to use for the grammar, e.g. one backed by a cache.
func WithAnalyzer(a *lr.Analyzer) Option {
	return func(p *Parser) {
		if a != nil {
			p.analyzer = a
		}
	}
}

// WithCache makes the parser use an analyzer backed by cache c.
func WithCache(c lr.AnalysisCache) Option {
	return func(p *Parser) {
		p.analyzer = lr.NewAnalyzer(lr.WithCache(c))
	}
}

// NewParser creates a LALR(1) parser for grammar g. If the grammar has conflicts
// which cannot be resolved by its conflict mode, an error is returned.
func NewParser(g *lr.Grammar, opts ...Option) (*Parser, error) {
	p := &Parser{G: g}
	for _, opt := range opts {
		opt(p)
	}
	if p.analyzer == nil {
		p.analyzer = lr.NewAnalyzer()
	}
	result, err := p.analyzer.Analyze(g)
	if err != nil {
		return nil, err
	}
	p.result = result
	return p, nil
}

// Analysis returns the analysis result the parser operates on.
func (p *Parser) Analysis() *lr.AnalysisResult {
	return p.result
}

// Parse parses a stream of tokens, starting at the stream's current position.
// It returns the value of the semantic action of the start rule.
//
// Whenever a rule is reduced, its action is called with the values of the
// right hand side symbols: tokens for terminals and the results of the
// actions for non-terminals. Rules without an action result in the value of
// their first symbol, or nil for ε-productions. Rules without an action are
// meant to have a single right hand side symbol; for longer rules the values
// of all symbols but the first are dropped.
func (p *Parser) Parse(stream lalr.TokenStream) (interface{}, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.result == nil {
		tracer().Errorf("LALR(1)-parser not initialized")
		return nil, fmt.Errorf("LALR(1)-parser not initialized")
	}
	T := p.result.ParseTable()
	states := make([]int, 1, 64) // state stack, starts with state 0
	values := make([]interface{}, 0, 64)
	token := stream.Current()
	for {
		state := states[len(states)-1] // TOS
		action, ok := T.Action(state, token.Type())
		if !ok {
			tracer().Debugf("no action for %v in state %d", token, state)
			return nil, &UnexpectedTokenError{Token: token, Expected: T.Expected(state)}
		}
		tracer().Debugf("action(%d,%s)=%s", state, token.Type(), lr.ActionString(action))
		switch {
		case action == 0: // accept
			return values[len(values)-1], nil
		case action > 0: // shift
			states = append(states, action)
			values = append(values, token)
			if err := stream.Next(); err != nil {
				// stream ended without EOF token
				eof := lalr.EOFToken(token.Line(), token.Span().To())
				return nil, &UnexpectedTokenError{Token: eof, Expected: T.Expected(action)}
			}
			token = stream.Current()
		default: // reduce
			rule := p.G.Rules()[-action]
			n := len(rule.Components)
			value := reduce(rule, values[len(values)-n:])
			states, values = states[:len(states)-n], values[:len(values)-n]
			next, ok := T.Goto(states[len(states)-1], rule.LHS)
			if !ok {
				return nil, fmt.Errorf("no goto entry for %s in state %d", rule.LHS, states[len(states)-1])
			}
			tracer().Debugf("reduced %v, next state = %d", rule, next)
			states = append(states, next)
			values = append(values, value)
		}
	}
}

// reduce performs the semantic action of a rule
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// given the values of X1 to Xn.
func reduce(rule *lr.Rule, handle []interface{}) interface{} {
	if rule.Action != nil {
		args := make([]interface{}, len(handle)) // actions may keep their arguments
		copy(args, handle)
		return rule.Action(args...)
	}
	if len(handle) == 0 {
		return nil
	}
	return handle[0]
}

// UnexpectedTokenError is returned by the parser for input it cannot continue
// on. It carries the offending token and the list of token types which would
// have been acceptable.
type UnexpectedTokenError struct {
	Token    lalr.Token
	Expected []string // sorted
}

func (e *UnexpectedTokenError) Error() string {
	expected := make([]string, len(e.Expected))
	for i, t := range e.Expected {
		expected[i] = fmt.Sprintf("%q", t)
	}
	return fmt.Sprintf("Unexpected %q at line %d. Expected one of %s.",
		tokenString(e.Token), e.Token.Line(), strings.Join(expected, ", "))
}

func tokenString(t lalr.Token) string {
	switch {
	case t.Type() == lalr.EOF:
		return "end of input"
	case t.Value() == t.Type():
		return t.Value()
	}
	return fmt.Sprintf("%s (%s)", t.Value(), t.Type())
}
