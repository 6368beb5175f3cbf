package lr

import (
	"fmt"
	"io"

	"github.com/npillmayer/lalr/lr/sparse"
	"golang.org/x/exp/slices"
)

// === Parse Tables ==========================================================

// ParseTable holds the ACTION table and the GOTO table of a LALR(1) parser.
//
// ACTION entries are encoded as follows:
//
//     n > 0   shift and go to state n
//     n < 0   reduce with rule -n
//     n = 0   accept
//
// GOTO entries are the destination states after reducing to a non-terminal.
type ParseTable struct {
	terminals    []string       // column symbols of the ACTION table
	nonterminals []string       // column symbols of the GOTO table
	tcol         map[string]int // column index of terminals
	ntcol        map[string]int // column index of non-terminals
	action       *sparse.IntMatrix
	gotoT        *sparse.IntMatrix
	states       int
}

func newParseTable(g *Grammar, states int) *ParseTable {
	T := &ParseTable{
		tcol:   make(map[string]int),
		ntcol:  make(map[string]int),
		action: sparse.NewIntMatrix(states, len(g.terminals), sparse.DefaultNullValue),
		gotoT:  sparse.NewIntMatrix(states, len(g.ntOrder), sparse.DefaultNullValue),
		states: states,
	}
	for _, t := range g.terminals {
		T.terminalColumn(t)
	}
	for _, nt := range g.ntOrder {
		T.ntcol[nt] = len(T.nonterminals)
		T.nonterminals = append(T.nonterminals, nt)
	}
	return T
}

func (T *ParseTable) terminalColumn(t string) int {
	if col, ok := T.tcol[t]; ok {
		return col
	}
	T.tcol[t] = len(T.terminals)
	T.terminals = append(T.terminals, t)
	return T.tcol[t]
}

func (T *ParseTable) setAction(state int, t string, value int) {
	tracer().Debugf("ACTION(%d,%s) = %d", state, t, value)
	T.action.Set(state, T.terminalColumn(t), int32(value))
}

func (T *ParseTable) unsetAction(state int, t string) {
	tracer().Debugf("ACTION(%d,%s) removed", state, t)
	T.action.Unset(state, T.terminalColumn(t))
}

func (T *ParseTable) setGoto(state int, nt string, value int) {
	col, ok := T.ntcol[nt]
	if !ok {
		col = len(T.nonterminals)
		T.ntcol[nt] = col
		T.nonterminals = append(T.nonterminals, nt)
	}
	T.gotoT.Set(state, col, int32(value))
}

// Action returns the ACTION entry for a state and a terminal.
func (T *ParseTable) Action(state int, terminal string) (int, bool) {
	col, ok := T.tcol[terminal]
	if !ok {
		return 0, false
	}
	v := T.action.Value(state, col)
	if v == T.action.NullValue() {
		return 0, false
	}
	return int(v), true
}

// Goto returns the GOTO entry for a state and a non-terminal.
func (T *ParseTable) Goto(state int, nonterminal string) (int, bool) {
	col, ok := T.ntcol[nonterminal]
	if !ok {
		return 0, false
	}
	v := T.gotoT.Value(state, col)
	if v == T.gotoT.NullValue() {
		return 0, false
	}
	return int(v), true
}

// Actions returns all ACTION entries of a state, by terminal.
func (T *ParseTable) Actions(state int) map[string]int {
	m := make(map[string]int)
	for _, e := range T.action.Row(state) {
		m[T.terminals[e.Col]] = int(e.Value)
	}
	return m
}

// Gotos returns all GOTO entries of a state, by non-terminal.
func (T *ParseTable) Gotos(state int) map[string]int {
	m := make(map[string]int)
	for _, e := range T.gotoT.Row(state) {
		m[T.nonterminals[e.Col]] = int(e.Value)
	}
	return m
}

// Expected returns the terminals with an ACTION entry in a state, sorted.
func (T *ParseTable) Expected(state int) []string {
	row := T.action.Row(state)
	exp := make([]string, len(row))
	for i, e := range row {
		exp[i] = T.terminals[e.Col]
	}
	slices.Sort(exp)
	return exp
}

// States returns the number of states (rows) of the table.
func (T *ParseTable) States() int {
	return T.states
}

// Terminals returns the column symbols of the ACTION table.
func (T *ParseTable) Terminals() []string {
	return T.terminals
}

// Nonterminals returns the column symbols of the GOTO table.
func (T *ParseTable) Nonterminals() []string {
	return T.nonterminals
}

// Size returns the number of ACTION and GOTO entries.
func (T *ParseTable) Size() (actions int, gotos int) {
	return T.action.ValueCount(), T.gotoT.ValueCount()
}

// === Conflicts =============================================================

// Conflict is a parse table conflict resolved by the conflict mode of a grammar.
type Conflict struct {
	State      int          // state of the conflict
	Lookahead  string       // terminal of the conflict
	Rules      []*Rule      // the rule reduced instead of shifting, or winner and loser of a reduce/reduce conflict
	Resolution ConflictMode // strategy which resolved the conflict
}

func (c Conflict) String() string {
	switch c.Resolution {
	case ResolveShift:
		return fmt.Sprintf("state %d, %q: shift preferred over reducing rule %d", c.State, c.Lookahead,
			c.Rules[0].Number)
	case ResolveLongerReduce:
		return fmt.Sprintf("state %d, %q: longer rule %d preferred over rule %d", c.State, c.Lookahead,
			c.Rules[0].Number, c.Rules[1].Number)
	}
	return fmt.Sprintf("state %d, %q: earlier rule %d preferred over rule %d", c.State, c.Lookahead,
		c.Rules[0].Number, c.Rules[1].Number)
}

// === Table Construction ====================================================

type stateToken struct {
	state int
	token string
}

// buildParseTable encodes the automaton A of grammar g as a LALR(1) parse table.
// Conflicts are resolved according to the conflict mode of g. If a conflict
// cannot be resolved, an error is returned and no table is produced.
//
// States are visited in ascending order, items in the order they were added to
// a state and lookahead in the order it has been propagated. The order of the
// conflicts returned follows from this.
func buildParseTable(A *Automaton, g *Grammar) (*ParseTable, []Conflict, error) {
	T := newParseTable(g, A.Len())
	for _, t := range A.Transitions() {
		if g.HasNonterminal(t.Symbol) {
			T.setGoto(t.From, t.Symbol, t.To)
		} else {
			T.setAction(t.From, t.Symbol, t.To) // terminal implies shift
		}
	}
	mode := g.Mode()
	errorEntries := make(map[stateToken]bool)
	var conflicts []Conflict
	for _, state := range A.States() {
		for _, item := range state.Items() {
			if !item.IsReduceItem() {
				continue
			}
			rule := item.Rule()
			for _, token := range item.Lookahead() {
				if errorEntries[stateToken{state.Number, token}] {
					continue // previous conflict resolved as an error entry for this token
				}
				instr, exists := T.Action(state.Number, token)
				if !exists {
					T.setAction(state.Number, token, -rule.Number)
					continue
				}
				if instr > 0 { // shift/reduce conflict
					if mode.Has(ResolveOperators) {
						if resolved := resolveByOperators(T, g, state.Number, token, rule, errorEntries); resolved {
							continue
						}
					}
					if mode.Has(ResolveShift) {
						tracer().Debugf("state %d, %q: shift preferred over rule %d", state.Number, token, rule.Number)
						conflicts = append(conflicts, Conflict{
							State:      state.Number,
							Lookahead:  token,
							Rules:      []*Rule{rule},
							Resolution: ResolveShift,
						})
						continue
					}
					return nil, nil, &ShiftReduceConflictError{
						State:     state.Number,
						Rule:      rule,
						Lookahead: token,
						Automaton: A,
					}
				}
				original := g.rules[-instr] // reduce/reduce conflict
				if c, ok := resolveReduceReduce(T, mode, state.Number, token, original, rule); ok {
					tracer().Debugf("reduce/reduce conflict resolved: %s", c)
					conflicts = append(conflicts, c)
					continue
				}
				return nil, nil, &ReduceReduceConflictError{
					State:     state.Number,
					First:     original,
					Second:    rule,
					Lookahead: token,
					Automaton: A,
				}
			}
		}
	}
	actions, gotos := T.Size()
	tracer().Infof("parse table for %s: %d states, %d actions, %d gotos, %d conflicts resolved",
		g.Name, T.States(), actions, gotos, len(conflicts))
	return T, conflicts, nil
}

// resolveByOperators tries to resolve a shift/reduce conflict between shifting
// token and reducing rule by precedence and associativity. It returns false if
// token is not an operator or if the precedence of the rule cannot be
// determined.
func resolveByOperators(T *ParseTable, g *Grammar, state int, token string, rule *Rule,
	errorEntries map[stateToken]bool) bool {
	//
	op, ok := g.Operator(token)
	if !ok {
		return false
	}
	prec, ok := rulePrecedence(g, rule)
	if !ok {
		return false
	}
	switch {
	case prec > op.Precedence: // reduce
		T.setAction(state, token, -rule.Number)
	case prec < op.Precedence: // shift, i.e. don't modify the table
	case op.Associativity == Right: // shift
	case op.Associativity == Left: // reduce
		T.setAction(state, token, -rule.Number)
	default: // non-associative: input error
		T.unsetAction(state, token)
		errorEntries[stateToken{state, token}] = true
	}
	return true
}

// rulePrecedence returns the precedence of a rule: either explicitly set, or
// the precedence of the rightmost operator among its components.
func rulePrecedence(g *Grammar, rule *Rule) (int, bool) {
	if p, ok := rule.Precedence(); ok {
		return p, true
	}
	for i := len(rule.Components) - 1; i >= 0; i-- {
		if op, ok := g.Operator(rule.Components[i]); ok {
			return op.Precedence, true
		}
	}
	return 0, false
}

// resolveReduceReduce tries to resolve a conflict between reducing rule
// `original` (already in the table) and rule `rule`.
func resolveReduceReduce(T *ParseTable, mode ConflictMode, state int, token string,
	original, rule *Rule) (Conflict, bool) {
	//
	c := Conflict{State: state, Lookahead: token}
	if mode.Has(ResolveLongerReduce) && len(original.Components) != len(rule.Components) {
		c.Resolution = ResolveLongerReduce
		if len(original.Components) > len(rule.Components) {
			c.Rules = []*Rule{original, rule}
		} else {
			T.setAction(state, token, -rule.Number)
			c.Rules = []*Rule{rule, original}
		}
		return c, true
	}
	if mode.Has(ResolveEarlierReduce) {
		c.Resolution = ResolveEarlierReduce
		if original.Number < rule.Number {
			c.Rules = []*Rule{original, rule}
		} else {
			T.setAction(state, token, -rule.Number)
			c.Rules = []*Rule{rule, original}
		}
		return c, true
	}
	return c, false
}

// === Export ================================================================

// WriteHTML exports the ACTION and GOTO tables in HTML-format.
func (T *ParseTable) WriteHTML(w io.Writer) error {
	ew := &errWriter{w: w}
	actions, gotos := T.Size()
	ew.printf("<html><body>\n")
	ew.printf("<p>ACTION/GOTO table with %d states, %d actions, %d gotos</p>\n", T.states, actions, gotos)
	ew.printf("<table border=1 cellspacing=0 cellpadding=5>\n")
	ew.printf("<tr bgcolor=#cccccc><td></td>\n")
	for _, t := range T.terminals {
		ew.printf("<td>%s</td>", htmlEscape(t))
	}
	for _, nt := range T.nonterminals {
		ew.printf("<td><i>%s</i></td>", htmlEscape(nt))
	}
	ew.printf("</tr>\n")
	var td string // table cell
	for state := 0; state < T.states; state++ {
		ew.printf("<tr><td>state %d</td>\n", state)
		for _, t := range T.terminals {
			if v, ok := T.Action(state, t); !ok {
				td = "&nbsp;"
			} else {
				td = ActionString(v)
			}
			ew.printf("<td>%s</td>\n", td)
		}
		for _, nt := range T.nonterminals {
			if v, ok := T.Goto(state, nt); !ok {
				td = "&nbsp;"
			} else {
				td = fmt.Sprintf("%d", v)
			}
			ew.printf("<td>%s</td>\n", td)
		}
		ew.printf("</tr>\n")
	}
	ew.printf("</table></body></html>\n")
	return ew.err
}

// ActionString is a short helper to stringify an ACTION table entry.
func ActionString(v int) string {
	switch {
	case v == 0:
		return "acc"
	case v > 0:
		return fmt.Sprintf("s%d", v)
	}
	return fmt.Sprintf("r%d", -v)
}
