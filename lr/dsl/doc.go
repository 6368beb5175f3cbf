/*
Package dsl reads grammar definitions from text files.

A grammar file consists of directives and rules. Comments start with '#' and
extend to the end of the line.

    # Simple arithmetic
    %name Arithmetic
    %start Expr
    %token INT '[1-9][0-9]*'
    %skip '( |\t|\n|\r)+'
    %left '+' '-' 1
    %left '*' '/' 2
    %right '**' 3

    Expr : Expr '+' Expr
         | Expr '-' Expr
         | Expr '*' Expr
         | Expr '/' Expr
         | Expr '**' Expr
         | '-' Expr %prec 4
         | '(' Expr ')'
         | INT
         ;

Directives are:

■ %name N: name of the grammar. Defaults to the file name without extension.

■ %start S: start symbol. Defaults to the left hand side of the first rule.

■ %resolve M: conflict resolution mode, e.g. 'shift|operators' (see lr.ParseConflictMode).

■ %token T 'regex': defines token type T by a regular expression.

■ %skip 'regex': input matching the regular expression is skipped.

■ %left, %right, %nonassoc ops… [precedence]: declares operators.

Rules have a non-terminal on the left hand side, followed by a colon on the same
line. Quoted symbols on the right hand side are literal tokens, other symbols
are either non-terminals or token types defined by %token. An empty
alternative denotes an ε-production. Quoted strings cannot contain quotes.

Loading a grammar file results in a grammar and a lexer for it:

    def, err := dsl.LoadFile("arith.lalr", dsl.WithTreeActions())
    parser, err := def.Parser()

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dsl

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lalr.dsl'.
func tracer() tracing.Trace {
	return tracing.Select("lalr.dsl")
}
