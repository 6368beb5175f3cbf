package dsl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/npillmayer/lalr"
	"github.com/npillmayer/lalr/lr"
	"github.com/npillmayer/lalr/lr/lalr1"
	"github.com/npillmayer/lalr/lr/scanner"
)

// Definition is the result of loading a grammar file: a grammar and a lexer
// for its terminals.
type Definition struct {
	Grammar *lr.Grammar
	Lexer   *scanner.Lexer
}

// Parser creates a parser for the grammar of the definition.
func (def *Definition) Parser(opts ...lalr1.Option) (*lalr1.Parser, error) {
	return lalr1.NewParser(def.Grammar, opts...)
}

// Language creates a language, combining the lexer and a parser for the
// grammar of the definition.
func (def *Definition) Language(opts ...lalr1.Option) (*lalr1.Language, error) {
	p, err := def.Parser(opts...)
	if err != nil {
		return nil, err
	}
	return lalr1.NewLanguage(def.Lexer, p), nil
}

// DefinitionError is an error in a grammar file.
type DefinitionError struct {
	Line int
	Msg  string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func errorf(line int, format string, args ...interface{}) error {
	err := &DefinitionError{Line: line, Msg: fmt.Sprintf(format, args...)}
	tracer().Errorf(err.Error())
	return err
}

// Option configures the loading of grammar files.
type Option func(*loader)

// WithTreeActions makes every rule create a parse tree node (see lalr.Node).
// Tokens become leaves of the tree, ε-productions become nodes without
// children.
func WithTreeActions() Option {
	return func(l *loader) {
		l.treeActions = true
	}
}

// WithName sets the name of the grammar, unless the file contains a %name directive.
func WithName(name string) Option {
	return func(l *loader) {
		l.name = name
	}
}

// WithMode sets the conflict resolution mode of the grammar, overriding a
// %resolve directive.
func WithMode(mode lr.ConflictMode) Option {
	return func(l *loader) {
		l.mode, l.hasMode = mode, true
	}
}

// LoadFile loads a grammar from a file. The name of the grammar defaults to the
// base name of the file.
func LoadFile(path string, opts ...Option) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Load(f, append([]Option{WithName(name)}, opts...)...)
}

// Load reads a grammar definition.
func Load(r io.Reader, opts ...Option) (*Definition, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	lang, err := metaLanguage()
	if err != nil {
		return nil, fmt.Errorf("cannot create parser for grammar files: %w", err)
	}
	decls, err := lang.Compile(string(input))
	if err != nil {
		return nil, fmt.Errorf("cannot read grammar: %w", err)
	}
	l := &loader{name: "grammar", tokens: make(map[string]bool)}
	for _, opt := range opts {
		opt(l)
	}
	return l.load(decls.([]interface{}))
}

// loader builds a definition from the declarations of a grammar file.
type loader struct {
	name        string
	treeActions bool
	mode        lr.ConflictMode
	hasMode     bool
	start       string
	literals    []string        // literal tokens in order of appearance
	tokens      map[string]bool // token types defined by literals or %token
	regexes     [][2]string     // %token definitions
	skips       []string        // %skip patterns
}

func (l *loader) load(decls []interface{}) (*Definition, error) {
	for _, d := range decls { // %name must be known before building
		if dir, ok := d.(directive); ok && dir.name == "name" {
			if len(dir.args) != 1 {
				return nil, errorf(dir.line, "%%name expects a single argument")
			}
			l.name = unquote(dir.args[0])
		}
	}
	b := lr.NewGrammarBuilder(l.name)
	for _, d := range decls {
		var err error
		switch decl := d.(type) {
		case directive:
			err = l.directive(b, decl)
		case ruleDecl:
			err = l.rule(b, decl)
		}
		if err != nil {
			return nil, err
		}
	}
	if l.start == "" {
		return nil, errorf(0, "grammar %s has no rules", l.name)
	}
	b.Start(l.start)
	if l.hasMode {
		b.Resolve(l.mode)
	}
	g, err := b.Grammar()
	if err != nil {
		return nil, err
	}
	for _, t := range g.Terminals()[1:] {
		if !l.tokens[t] {
			return nil, errorf(0, "terminal %q is neither a literal nor defined by %%token", t)
		}
	}
	lexer := scanner.NewLexer()
	for _, lit := range l.literals {
		lexer.Token(lit)
	}
	for _, def := range l.regexes {
		lexer.Regex(def[0], def[1])
	}
	for _, pattern := range l.skips {
		lexer.Regex("$skip", pattern)
	}
	lexer.Skip("$skip")
	tracer().Infof("loaded grammar %s: %d rules, %d literals, %d token definitions",
		g.Name, len(g.Rules())-1, len(l.literals), len(l.regexes))
	return &Definition{Grammar: g, Lexer: lexer}, nil
}

func (l *loader) directive(b *lr.GrammarBuilder, d directive) error {
	tracer().Debugf("directive %%%s %v", d.name, d.args)
	switch d.name {
	case "name":
	case "start":
		if len(d.args) != 1 {
			return errorf(d.line, "%%start expects a single argument")
		}
		l.start = unquote(d.args[0])
	case "resolve":
		names := make([]string, len(d.args))
		for i, arg := range d.args {
			names[i] = unquote(arg)
		}
		mode, err := lr.ParseConflictMode(strings.Join(names, "|"))
		if err != nil {
			return errorf(d.line, "%v", err)
		}
		b.Resolve(mode)
	case "token":
		if len(d.args) != 2 || d.args[0].Type() != "ID" || d.args[1].Type() != "STRING" {
			return errorf(d.line, "%%token expects a name and a quoted regular expression")
		}
		typ := d.args[0].Value()
		l.tokens[typ] = true
		l.regexes = append(l.regexes, [2]string{typ, unquote(d.args[1])})
	case "skip":
		if len(d.args) == 0 {
			return errorf(d.line, "%%skip expects quoted regular expressions")
		}
		for _, arg := range d.args {
			l.skips = append(l.skips, unquote(arg))
		}
	case "left", "right", "nonassoc":
		return l.operators(b, d)
	default:
		return errorf(d.line, "unknown directive %%%s", d.name)
	}
	return nil
}

func (l *loader) operators(b *lr.GrammarBuilder, d directive) error {
	args := d.args
	prec := -1
	if n := len(args); n > 0 && args[n-1].Type() == "INT" {
		prec, _ = strconv.Atoi(args[n-1].Value())
		args = args[:n-1]
	}
	if len(args) == 0 {
		return errorf(d.line, "%%%s expects operators", d.name)
	}
	ops := make([]string, len(args))
	for i, arg := range args {
		if arg.Type() == "INT" {
			return errorf(d.line, "precedence must be the last argument of %%%s", d.name)
		}
		ops[i] = l.symbol(arg)
	}
	b.Operators(ops...)
	switch d.name {
	case "left":
		b.Left()
	case "right":
		b.Right()
	default:
		b.NonAssociative()
	}
	if prec >= 0 {
		b.Precedence(prec)
	}
	return nil
}

func (l *loader) rule(b *lr.GrammarBuilder, r ruleDecl) error {
	if l.start == "" {
		l.start = r.lhs
	}
	b.Define(r.lhs)
	for _, alt := range r.alts {
		syms := make([]string, len(alt.syms))
		for i, sym := range alt.syms {
			syms[i] = l.symbol(sym)
		}
		b.Is(syms...)
		if l.treeActions {
			b.Call(treeAction(r.lhs))
		}
		if alt.prec != nil {
			prec, _ := strconv.Atoi(alt.prec.Value())
			b.Precedence(prec)
		}
	}
	return nil
}

// symbol returns the grammar symbol for an ID or STRING token. Quoted strings
// are registered as literal tokens.
func (l *loader) symbol(tok lalr.Token) string {
	if tok.Type() != "STRING" {
		return tok.Value()
	}
	lit := unquote(tok)
	if !l.tokens[lit] {
		l.tokens[lit] = true
		l.literals = append(l.literals, lit)
	}
	return lit
}

func unquote(tok lalr.Token) string {
	if tok.Type() == "STRING" {
		return strings.TrimSuffix(strings.TrimPrefix(tok.Value(), "'"), "'")
	}
	return tok.Value()
}

func treeAction(lhs string) lr.Action {
	return func(args ...interface{}) interface{} {
		children := make([]*lalr.Node, 0, len(args))
		for _, arg := range args {
			switch a := arg.(type) {
			case lalr.Token:
				children = append(children, lalr.NewLeaf(a))
			case *lalr.Node:
				children = append(children, a)
			}
		}
		return lalr.NewNode(lhs, children...)
	}
}
