package dsl

import (
	"strings"
	"sync"

	"github.com/npillmayer/lalr"
	"github.com/npillmayer/lalr/lr"
	"github.com/npillmayer/lalr/lr/lalr1"
	"github.com/npillmayer/lalr/lr/scanner"
)

// Grammar files are read by a LALR(1) parser for the following grammar.

type directive struct {
	name string
	args []lalr.Token
	line int
}

type ruleDecl struct {
	lhs  string
	alts []alternative
	line int
}

type alternative struct {
	syms []lalr.Token // symbols of type ID or STRING
	prec lalr.Token   // INT token, or nil
}

var meta struct {
	once sync.Once
	lang *lalr1.Language
	err  error
}

func metaLanguage() (*lalr1.Language, error) {
	meta.once.Do(func() {
		g, err := metaGrammar()
		if err != nil {
			meta.err = err
			return
		}
		p, err := lalr1.NewParser(g)
		if err != nil {
			meta.err = err
			return
		}
		meta.lang = lalr1.NewLanguage(metaLexer(), p)
	})
	return meta.lang, meta.err
}

func metaLexer() *scanner.Lexer {
	return scanner.NewLexer().
		Token("PREC", "%prec").
		Regex("DIRECTIVE", `%[a-z]+`).
		Regex("RULE", `[A-Za-z_][A-Za-z0-9_]*( |\t)*:`).
		Regex("ID", `[A-Za-z_][A-Za-z0-9_]*`).
		Regex("STRING", `'[^']*'`).
		Regex("INT", `[0-9]+`).
		Token(":").Token("|").Token(";").
		Regex("WS", `( |\t|\n|\r)+`).
		Regex("COMMENT", `#[^\n]*`).
		Skip("WS", "COMMENT")
}

func metaGrammar() (*lr.Grammar, error) {
	b := lr.NewGrammarBuilder("Grammar File")
	b.Define("File").Is("Decls")
	b.Define("Decls").Is("Decls", "Decl").Call(func(args ...interface{}) interface{} {
		return append(args[0].([]interface{}), args[1])
	})
	b.Epsilon().Call(func(args ...interface{}) interface{} {
		return []interface{}{}
	})
	b.Define("Decl").Is("DIRECTIVE", "Args").Call(func(args ...interface{}) interface{} {
		tok := args[0].(lalr.Token)
		return directive{
			name: strings.TrimPrefix(tok.Value(), "%"),
			args: args[1].([]lalr.Token),
			line: tok.Line(),
		}
	})
	b.Is("RULE", "Alts", ";").Call(func(args ...interface{}) interface{} {
		tok := args[0].(lalr.Token)
		return ruleDecl{
			lhs:  strings.TrimSpace(strings.TrimSuffix(tok.Value(), ":")),
			alts: args[1].([]alternative),
			line: tok.Line(),
		}
	})
	b.Define("Args").Is("Args", "Arg").Call(appendToken).Epsilon().Call(noTokens)
	b.Define("Arg").Is("ID").Is("STRING").Is("INT")
	b.Define("Alts").Is("Alts", "|", "Alt").Call(func(args ...interface{}) interface{} {
		return append(args[0].([]alternative), args[2].(alternative))
	})
	b.Is("Alt").Call(func(args ...interface{}) interface{} {
		return []alternative{args[0].(alternative)}
	})
	b.Define("Alt").Is("Syms", "Prec").Call(func(args ...interface{}) interface{} {
		alt := alternative{syms: args[0].([]lalr.Token)}
		if args[1] != nil {
			alt.prec = args[1].(lalr.Token)
		}
		return alt
	})
	b.Define("Syms").Is("Syms", "Sym").Call(appendToken).Epsilon().Call(noTokens)
	b.Define("Sym").Is("ID").Is("STRING")
	b.Define("Prec").Is("PREC", "INT").Call(func(args ...interface{}) interface{} {
		return args[1]
	})
	b.Epsilon()
	return b.Start("File").Resolve(lr.ResolveNone).Grammar()
}

func appendToken(args ...interface{}) interface{} {
	return append(args[0].([]lalr.Token), args[1].(lalr.Token))
}

func noTokens(args ...interface{}) interface{} {
	return []lalr.Token{}
}
