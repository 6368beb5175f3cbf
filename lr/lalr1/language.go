package lalr1

import (
	"github.com/npillmayer/lalr"
)

// Lexer splits an input string into a stream of tokens.
type Lexer interface {
	Lex(input string) (lalr.TokenStream, error)
}

// ExpressionCache remembers the results of compiling input strings.
// Package lr/cache provides an LRU implementation.
type ExpressionCache interface {
	Has(input string) bool
	Get(input string) (interface{}, bool)
	Set(input string, value interface{})
}

type noExpressions struct{}

func (noExpressions) Has(string) bool                { return false }
func (noExpressions) Get(string) (interface{}, bool) { return nil, false }
func (noExpressions) Set(string, interface{})        {}

// Language combines a lexer and a parser.
type Language struct {
	lexer  Lexer
	parser *Parser
	cache  ExpressionCache
}

// LanguageOption configures a language.
type LanguageOption func(*Language)

// WithExpressionCache sets a cache for compiled expressions.
func WithExpressionCache(c ExpressionCache) LanguageOption {
	return func(l *Language) {
		if c != nil {
			l.cache = c
		}
	}
}

// NewLanguage creates a language from a lexer and a parser.
func NewLanguage(lexer Lexer, parser *Parser, opts ...LanguageOption) *Language {
	l := &Language{lexer: lexer, parser: parser, cache: noExpressions{}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Parser returns the parser of the language.
func (l *Language) Parser() *Parser {
	return l.parser
}

// Compile lexes and parses an input string and returns the value of the
// start rule's action. Results are cached if the language has an expression
// cache; errors are never cached.
func (l *Language) Compile(input string) (interface{}, error) {
	if l.cache.Has(input) {
		if v, ok := l.cache.Get(input); ok {
			tracer().Debugf("expression %q found in cache", input)
			return v, nil
		}
	}
	tokens, err := l.lexer.Lex(input)
	if err != nil {
		return nil, err
	}
	v, err := l.parser.Parse(tokens)
	if err != nil {
		return nil, err
	}
	l.cache.Set(input, v)
	return v, nil
}
