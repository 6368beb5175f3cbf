package lr

import (
	"fmt"
	"strings"
)

// GrammarBuilder is a tool for constructing grammars. Use it like this:
//
//    b := lr.NewGrammarBuilder("Sums")
//    b.Define("Sum").Is("Sum", "+", "INT").Call(add)  // Sum -> Sum + INT
//    b.Define("Sum").Is("INT")                        // Sum -> INT
//    b.Operators("+").Left().Precedence(1)
//    b.Start("Sum")
//    g, err := b.Grammar()
//
// The builder tracks the current non-terminal, the current rule and the
// current group of operators. Is() adds a rule for the current non-terminal,
// Call() and Precedence() refer to the last rule added (or, for Precedence, to
// the current group of operators). Usage errors are remembered and reported by
// Grammar().
type GrammarBuilder struct {
	name      string
	rules     []*Rule
	byLHS     map[string][]*Rule
	ntOrder   []string
	operators map[string]*Operator
	mode      ConflictMode
	start     string
	current   string   // current non-terminal
	rule      *Rule    // current rule
	opGroup   []string // current group of operators
	err       error
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{
		name:      gname,
		rules:     []*Rule{nil}, // slot for start rule
		byLHS:     make(map[string][]*Rule),
		operators: make(map[string]*Operator),
		mode:      DefaultConflictMode,
	}
}

func (b *GrammarBuilder) fail(err error) *GrammarBuilder {
	if b.err == nil {
		b.err = &GrammarError{Grammar: b.name, err: err}
		tracer().Errorf(b.err.Error())
	}
	return b
}

// Define sets the current non-terminal. Subsequent calls to Is() add rules
// for it.
func (b *GrammarBuilder) Define(nt string) *GrammarBuilder {
	if strings.TrimSpace(nt) == "" {
		return b.fail(fmt.Errorf("%w: empty non-terminal name", ErrNoNonterminal))
	}
	b.current = nt
	return b
}

// Is adds a rule with the given right hand side for the current non-terminal.
// Calling it without arguments adds an ε-production.
func (b *GrammarBuilder) Is(components ...string) *GrammarBuilder {
	b.opGroup = nil
	if b.current == "" {
		return b.fail(ErrNoNonterminal)
	}
	r := &Rule{
		Number:     len(b.rules),
		LHS:        b.current,
		Components: append([]string(nil), components...),
	}
	b.rules = append(b.rules, r)
	if _, ok := b.byLHS[b.current]; !ok {
		b.ntOrder = append(b.ntOrder, b.current)
	}
	b.byLHS[b.current] = append(b.byLHS[b.current], r)
	b.rule = r
	return b
}

// Epsilon adds an ε-production for the current non-terminal.
func (b *GrammarBuilder) Epsilon() *GrammarBuilder {
	return b.Is()
}

// Call sets the semantic action of the current rule.
func (b *GrammarBuilder) Call(action Action) *GrammarBuilder {
	if b.rule == nil {
		return b.fail(ErrNoRule)
	}
	b.rule.Action = action
	return b
}

// Operators starts a group of operators. Operators are left associative
// with precedence 1 unless specified otherwise.
func (b *GrammarBuilder) Operators(symbols ...string) *GrammarBuilder {
	b.rule = nil
	b.opGroup = append([]string(nil), symbols...)
	for _, sym := range symbols {
		b.operators[sym] = &Operator{Symbol: sym, Associativity: Left, Precedence: 1}
	}
	return b
}

// Left makes the current group of operators left associative.
func (b *GrammarBuilder) Left() *GrammarBuilder {
	return b.associativity(Left)
}

// Right makes the current group of operators right associative.
func (b *GrammarBuilder) Right() *GrammarBuilder {
	return b.associativity(Right)
}

// NonAssociative makes the current group of operators non-associative.
func (b *GrammarBuilder) NonAssociative() *GrammarBuilder {
	return b.associativity(NonAssociative)
}

func (b *GrammarBuilder) associativity(a Associativity) *GrammarBuilder {
	if len(b.opGroup) == 0 {
		return b.fail(ErrNoOperators)
	}
	for _, sym := range b.opGroup {
		b.operators[sym].Associativity = a
	}
	return b
}

// Precedence sets the precedence of the current group of operators or, if no
// group is open, of the current rule.
func (b *GrammarBuilder) Precedence(p int) *GrammarBuilder {
	if len(b.opGroup) == 0 {
		if b.rule == nil {
			return b.fail(ErrNoOperatorsOrRule)
		}
		b.rule.prec, b.rule.hasPrec = p, true
		return b
	}
	for _, sym := range b.opGroup {
		b.operators[sym].Precedence = p
	}
	return b
}

// Start sets the start symbol of the grammar.
func (b *GrammarBuilder) Start(nt string) *GrammarBuilder {
	b.start = nt
	return b
}

// Resolve sets the conflict resolution mode.
func (b *GrammarBuilder) Resolve(mode ConflictMode) *GrammarBuilder {
	b.mode = mode
	return b
}

// Grammar returns the grammar built, or the first usage error encountered.
func (b *GrammarBuilder) Grammar() (*Grammar, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.start == "" {
		return nil, &GrammarError{Grammar: b.name, err: ErrNoStartRule}
	}
	g := &Grammar{
		Name:      b.name,
		rules:     make([]*Rule, len(b.rules)),
		byLHS:     make(map[string][]*Rule, len(b.byLHS)),
		ntOrder:   append([]string(nil), b.ntOrder...),
		operators: make(map[string]*Operator, len(b.operators)),
		mode:      b.mode,
	}
	g.rules[0] = &Rule{Number: 0, LHS: StartSymbol, Components: []string{b.start}}
	for _, r := range b.rules[1:] {
		rr := *r
		rr.Components = append([]string(nil), r.Components...)
		g.rules[r.Number] = &rr
		g.byLHS[r.LHS] = append(g.byLHS[r.LHS], &rr)
	}
	for sym, op := range b.operators {
		o := *op
		g.operators[sym] = &o
	}
	seen := map[string]bool{EOF: true}
	g.terminals = []string{EOF}
	for _, r := range g.rules {
		for _, sym := range r.Components {
			if !seen[sym] && !g.HasNonterminal(sym) {
				seen[sym] = true
				g.terminals = append(g.terminals, sym)
			}
		}
	}
	tracer().Debugf("grammar %s has %d rules, %d non-terminals, %d terminals",
		g.Name, len(g.rules), len(g.ntOrder), len(g.terminals))
	return g, nil
}
