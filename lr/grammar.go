package lr

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/lalr"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Reserved grammar symbols.
const (
	StartSymbol = lalr.Start   // left hand side of rule 0
	Epsilon     = lalr.Epsilon // the empty word in FIRST sets
	EOF         = lalr.EOF     // end of input
)

// === Rules =================================================================

// Action is a semantic action for a rule. It receives one argument per right
// hand side symbol: tokens for terminals and the results of previous actions
// for non-terminals.
type Action func(args ...interface{}) interface{}

// Rule is a grammar rule (production). Rules are numbered in the order of
// their definition, starting at 1. Rule 0 is the augmented start rule.
type Rule struct {
	Number     int      // serial number of this rule
	LHS        string   // left hand side non-terminal
	Components []string // right hand side symbols, empty for ε-productions
	Action     Action   // semantic action, may be nil
	prec       int
	hasPrec    bool
}

// Precedence returns the explicit precedence of the rule, if any.
func (r *Rule) Precedence() (int, bool) {
	return r.prec, r.hasPrec
}

// IsEpsilon is true for rules with an empty right hand side.
func (r *Rule) IsEpsilon() bool {
	return len(r.Components) == 0
}

// RHS returns the right hand side as a string.
func (r *Rule) RHS() string {
	if len(r.Components) == 0 {
		return "/* empty */"
	}
	return strings.Join(r.Components, " ")
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.LHS, r.RHS())
}

// === Operators =============================================================

// Associativity of operators.
type Associativity int8

// Associativity values.
const (
	Left Associativity = iota
	Right
	NonAssociative
)

func (a Associativity) String() string {
	switch a {
	case Left:
		return "left"
	case Right:
		return "right"
	case NonAssociative:
		return "nonassoc"
	}
	return fmt.Sprintf("associativity(%d)", int(a))
}

// Operator is a terminal with associativity and precedence. Higher precedence
// binds tighter.
type Operator struct {
	Symbol        string
	Associativity Associativity
	Precedence    int
}

// === Conflict modes ========================================================

// ConflictMode is a bit-set of strategies for the automatic resolution
// of parse table conflicts.
type ConflictMode uint8

// Conflict resolution strategies.
const (
	ResolveNone          ConflictMode = 0
	ResolveShift         ConflictMode = 1 // prefer shift over reduce
	ResolveLongerReduce  ConflictMode = 2 // prefer reducing the longer rule
	ResolveEarlierReduce ConflictMode = 4 // prefer reducing the rule defined earlier
	ResolveOperators     ConflictMode = 8 // use operator precedence and associativity
	ResolveAll           ConflictMode = ResolveShift | ResolveLongerReduce | ResolveEarlierReduce | ResolveOperators
)

// DefaultConflictMode is the conflict mode of grammars without an explicit mode.
const DefaultConflictMode = ResolveShift | ResolveOperators

// Has checks if all strategies of m2 are contained in m.
func (m ConflictMode) Has(m2 ConflictMode) bool {
	return m&m2 == m2 && m2 != 0
}

func (m ConflictMode) String() string {
	if m == ResolveNone {
		return "none"
	}
	var names []string
	for _, x := range []struct {
		mode ConflictMode
		name string
	}{
		{ResolveShift, "shift"},
		{ResolveLongerReduce, "longer-reduce"},
		{ResolveEarlierReduce, "earlier-reduce"},
		{ResolveOperators, "operators"},
	} {
		if m.Has(x.mode) {
			names = append(names, x.name)
		}
	}
	return strings.Join(names, "|")
}

// ParseConflictMode reads a conflict mode from a list of names as produced
// by ConflictMode.String, separated by '|', ',' or spaces.
func ParseConflictMode(s string) (ConflictMode, error) {
	var m ConflictMode
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '|' || r == ',' || r == ' '
	})
	for _, f := range fields {
		switch strings.ToLower(f) {
		case "none":
		case "shift":
			m |= ResolveShift
		case "longer-reduce", "longer":
			m |= ResolveLongerReduce
		case "earlier-reduce", "earlier":
			m |= ResolveEarlierReduce
		case "operators", "ops":
			m |= ResolveOperators
		case "all":
			m |= ResolveAll
		default:
			return m, fmt.Errorf("unknown conflict resolution mode %q", f)
		}
	}
	return m, nil
}

// === Grammars ==============================================================

// Grammar is a context-free grammar together with operator definitions and a
// conflict resolution mode. Grammars are created by a GrammarBuilder and are
// immutable afterwards.
type Grammar struct {
	Name      string
	rules     []*Rule            // rules by number, rules[0] is the start rule
	byLHS     map[string][]*Rule // rules grouped by non-terminal, in order of definition
	ntOrder   []string           // non-terminals in order of first definition
	terminals []string           // EOF, then terminals in order of appearance
	operators map[string]*Operator
	mode      ConflictMode
}

// Rules returns all rules, ordered by number. The start rule is at index 0.
func (g *Grammar) Rules() []*Rule {
	return g.rules
}

// Rule returns rule number n.
func (g *Grammar) Rule(n int) (*Rule, error) {
	if n < 0 || n >= len(g.rules) {
		return nil, &GrammarError{Grammar: g.Name,
			err: fmt.Errorf("%w: unable to get rule %d, there are only %d rules defined",
				ErrRuleOutOfRange, n, len(g.rules))}
	}
	return g.rules[n], nil
}

// RulesFor returns the rules for non-terminal nt, in order of their definition.
func (g *Grammar) RulesFor(nt string) []*Rule {
	return g.byLHS[nt]
}

// StartRule returns the augmented start rule $start -> S.
func (g *Grammar) StartRule() *Rule {
	return g.rules[0]
}

// HasNonterminal is true if sym is defined as the left hand side of a rule.
func (g *Grammar) HasNonterminal(sym string) bool {
	_, ok := g.byLHS[sym]
	return ok
}

// Nonterminals returns the non-terminals of g in order of their definition.
func (g *Grammar) Nonterminals() []string {
	return g.ntOrder
}

// Terminals returns the terminals of g, starting with EOF.
func (g *Grammar) Terminals() []string {
	return g.terminals
}

// Operator returns the operator definition for a terminal, if any.
func (g *Grammar) Operator(sym string) (*Operator, bool) {
	op, ok := g.operators[sym]
	return op, ok
}

// Mode returns the conflict resolution mode of g.
func (g *Grammar) Mode() ConflictMode {
	return g.mode
}

// Dump is a debugging helper, printing the rules of g to the trace.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ----------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Number, r)
	}
	tracer().Debugf("-------------------------------------------")
}

// Identity returns a key identifying the structure of g: its name,
// rules, operators and conflict mode. Semantic actions do not contribute.
func (g *Grammar) Identity() string {
	type rulePrint struct {
		LHS     string
		RHS     []string
		Prec    int
		HasPrec bool
	}
	type operatorPrint struct {
		Symbol string
		Assoc  int
		Prec   int
	}
	type grammarPrint struct {
		Name      string
		Mode      int
		Rules     []rulePrint
		Operators []operatorPrint
	}
	gp := grammarPrint{Name: g.Name, Mode: int(g.mode)}
	for _, r := range g.rules {
		gp.Rules = append(gp.Rules, rulePrint{r.LHS, r.Components, r.prec, r.hasPrec})
	}
	syms := maps.Keys(g.operators)
	slices.Sort(syms)
	for _, sym := range syms {
		op := g.operators[sym]
		gp.Operators = append(gp.Operators, operatorPrint{sym, int(op.Associativity), op.Precedence})
	}
	hash, err := structhash.Hash(gp, 1)
	if err != nil { // cannot happen for plain structs
		tracer().Errorf("cannot hash grammar %s: %v", g.Name, err)
		return g.Name
	}
	return g.Name + ":" + hash
}
