/*
Package lalr1 provides a table-driven LALR(1) parser. Clients have to use the
tools of package lr to define a grammar; the parser takes care of analyzing it
and utilizes the resulting parse table to create a right derivation for a given
input, provided as a stream of tokens.

The main focus for this implementation is adaptability and on-the-fly usage.
Clients are able to construct a grammar and use the parser directly, without a
code-generation or compile step.

Usage

Clients construct a grammar, usually by using a grammar builder, and attach
semantic actions to the rules:

	b := lr.NewGrammarBuilder("Sums")
	b.Define("Sum").Is("Sum", "+", "INT").Call(add)
	b.Define("Sum").Is("INT").Call(atoi)
	b.Start("Sum")
	g, err := b.Grammar()

The parser will analyze the grammar on creation. Analysis results may be shared
between parsers by using an analyzer with a cache (see package lr/cache).

	p, err := lalr1.NewParser(g)
	value, err := p.Parse(tokens)

A Language bundles a lexer and a parser and compiles input strings in one go,
optionally caching the results of previous compilations.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lalr1

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lalr.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lalr.lr")
}
