package lr

import (
	"errors"
	"fmt"
)

// Errors in grammar definitions.
var (
	ErrNoStartRule       = errors.New("no start rule specified")
	ErrRuleOutOfRange    = errors.New("rule number out of range")
	ErrNoNonterminal     = errors.New("you must specify a name of the rule first")
	ErrNoRule            = errors.New("you must specify a rule first")
	ErrNoOperators       = errors.New("define a group of operators first")
	ErrNoOperatorsOrRule = errors.New("define a group of operators or a rule first")
)

// GrammarError is an error in the definition of a grammar.
type GrammarError struct {
	Grammar string // name of the grammar
	err     error
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("grammar %q: %s", e.Grammar, e.err.Error())
}

func (e *GrammarError) Unwrap() error {
	return e.err
}

// ShiftReduceConflictError is returned by the analysis of a grammar if a
// shift/reduce conflict cannot be resolved with the grammar's conflict mode.
type ShiftReduceConflictError struct {
	State     int        // state of the conflict
	Rule      *Rule      // rule to reduce
	Lookahead string     // terminal to shift
	Automaton *Automaton // automaton of the grammar, for diagnostics
}

func (e *ShiftReduceConflictError) Error() string {
	return fmt.Sprintf(`The grammar exhibits a shift/reduce conflict on rule:

  %d. %s

(on lookahead "%s" in state %d). Restructure your grammar or choose a conflict resolution mode.`,
		e.Rule.Number, e.Rule, e.Lookahead, e.State)
}

// ReduceReduceConflictError is returned by the analysis of a grammar if a
// reduce/reduce conflict cannot be resolved with the grammar's conflict mode.
type ReduceReduceConflictError struct {
	State     int    // state of the conflict
	First     *Rule  // rule reduced first
	Second    *Rule  // competing rule
	Lookahead string // terminal both rules are reduced on
	Automaton *Automaton
}

func (e *ReduceReduceConflictError) Error() string {
	return fmt.Sprintf(`The grammar exhibits a reduce/reduce conflict on rules:

  %d. %s

vs:

  %d. %s

(on lookahead "%s" in state %d). Restructure your grammar or choose a conflict resolution mode.`,
		e.First.Number, e.First, e.Second.Number, e.Second, e.Lookahead, e.State)
}
