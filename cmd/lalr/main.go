/*
Command lalr is a toolbox for grammars given as grammar files (see package
lr/dsl). It analyzes grammars, dumps their automata and parse tables, lists
conflicts and parses input, either given on the command line or
interactively.

    lalr dump grammar.lalr -o automaton.dot
    lalr table grammar.lalr
    lalr conflicts grammar.lalr
    lalr parse grammar.lalr '1 + 2 * 3'
    lalr repl grammar.lalr

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
