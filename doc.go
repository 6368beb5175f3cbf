/*
Package lalr is a LALR(1) parser-generator toolbox.

It strives to be a lightweight tool to generate interpreters for DSLs
without a code-generation step: grammars are built at runtime, analyzed
into a LALR(1) automaton and parse table, and executed by a table-driven
parser. Package structure is as follows:

■ lr: Package lr implements grammars, grammar analysis and the construction
of LALR(1) automata and parse tables, including conflict resolution.

■ lr/lalr1: Package lalr1 implements a table-driven LALR(1) parser.

■ lr/scanner: Package scanner provides lexers producing token streams.

■ lr/cache: Package cache provides caches for analysis results.

■ lr/dsl: Package dsl reads grammar files.

The base package contains data types which are used throughout all the other packages:
tokens, token streams and parse tree nodes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lalr
