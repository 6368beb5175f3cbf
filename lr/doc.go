/*
Package lr implements grammars and the construction of LALR(1) parse tables.

Building a Grammar

Grammars are specified using a grammar builder object. Clients define
non-terminals and add rules for them, consisting of non-terminal symbols
and terminals. Every symbol which is never defined as a non-terminal
is a terminal, i.e. names a token type. Grammars may contain
epsilon-productions. Rules may carry semantic actions, which will be called
by the parser whenever the rule is reduced.

Example:

    b := lr.NewGrammarBuilder("G")
    b.Define("S").Is("A", "a")           // S  ->  A a
    b.Define("A").Is("B", "D")           // A  ->  B D
    b.Define("B").Is("b").Epsilon()      // B  ->  b  |  ε
    b.Define("D").Is("d").Epsilon()      // D  ->  d  |  ε
    b.Start("S")
    g, err := b.Grammar()

This results in the following trivial grammar:

   g.Dump()

   0: $start -> S
   1: S -> A a
   2: A -> B D
   3: B -> b
   4: B -> ε
   5: D -> d
   6: D -> ε

Operators and Conflicts

Grammars for expressions are most naturally written in an ambiguous way.
Clients declare operators with associativity and precedence, and select
a conflict resolution mode:

    b.Operators("+", "-").Left().Precedence(1)
    b.Operators("*", "/").Left().Precedence(2)
    b.Operators("**").Right().Precedence(3)
    b.Resolve(lr.ResolveOperators | lr.ResolveShift)

Shift/reduce conflicts on operators are resolved by comparing the precedence
of the rule (explicitly given, or taken from its rightmost operator) with the
precedence of the lookahead operator. Remaining shift/reduce conflicts may be
resolved in favour of shifting, and reduce/reduce conflicts in favour of the
longer or of the earlier rule. Every conflict resolved by policy is recorded.

Grammar Analysis

After the grammar is complete, it has to be analysed. The analyzer computes
FIRST sets, builds the LALR(1) automaton with on-the-fly lookahead propagation
and compiles it into action and goto tables.

    result, err := lr.NewAnalyzer().Analyze(g)
    result.Automaton().ToGraphViz(os.Stdout)    // for debugging purposes
    for _, c := range result.Conflicts() { ... }

Analysis results are immutable and may be shared between parsers. An analyzer
may be equipped with a cache (see package lr/cache), and will never analyze a
grammar more than once at a time.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lalr.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lalr.lr")
}
