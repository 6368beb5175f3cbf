package lr

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseTableAnBn(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.lr")
	defer teardown()
	//
	result, err := Analyze(anbnGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	T := result.ParseTable()
	actions := []struct {
		state int
		t     string
		v     int
	}{
		{0, "a", 2}, {0, EOF, -2}, {1, EOF, 0}, {2, "a", 2}, {2, "b", -2},
		{3, "b", 4}, {4, "b", -1}, {4, EOF, -1},
	}
	for _, x := range actions {
		if v, ok := T.Action(x.state, x.t); !ok || v != x.v {
			t.Errorf("expected action[%d][%s] = %s, have %s (%v)", x.state, x.t,
				ActionString(x.v), ActionString(v), ok)
		}
	}
	if n, _ := T.Size(); n != len(actions) {
		t.Errorf("expected %d actions, have %d", len(actions), n)
	}
	if v, ok := T.Goto(0, "S"); !ok || v != 1 {
		t.Errorf("expected goto[0][S] = 1")
	}
	if v, ok := T.Goto(2, "S"); !ok || v != 3 {
		t.Errorf("expected goto[2][S] = 3")
	}
	if _, ok := T.Goto(1, "S"); ok {
		t.Errorf("did not expect goto[1][S]")
	}
	if _, ok := T.Action(1, "a"); ok {
		t.Errorf("did not expect action[1][a]")
	}
	if exp := T.Expected(4); len(exp) != 2 || exp[0] != EOF || exp[1] != "b" {
		t.Errorf("expected [$eof b] in state 4, have %v", exp)
	}
	if len(result.Conflicts()) != 0 {
		t.Errorf("did not expect conflicts, have %v", result.Conflicts())
	}
}

func TestReduceReduceConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("RR")
	b.Define("S").Is("a", "b", "C", "d").Is("a", "b", "E", "d")
	b.Define("C").Epsilon()
	b.Define("E").Epsilon()
	g := mustGrammar(t, b.Start("S").Resolve(ResolveNone))
	_, err := Analyze(g)
	var rr *ReduceReduceConflictError
	if !errors.As(err, &rr) {
		t.Fatalf("expected reduce/reduce conflict, have %v", err)
	}
	if rr.State != 3 || rr.Lookahead != "d" || rr.First.Number != 3 || rr.Second.Number != 4 {
		t.Errorf("unexpected conflict: state %d, %q, rules %d/%d", rr.State, rr.Lookahead,
			rr.First.Number, rr.Second.Number)
	}
	if !strings.Contains(rr.Error(), "3. C -> /* empty */") {
		t.Errorf("unexpected error message: %s", rr.Error())
	}
}

func TestReduceReduceResolution(t *testing.T) {
	b := NewGrammarBuilder("RR")
	b.Define("S").Is("a", "b", "C", "d").Is("a", "b", "E", "d")
	b.Define("C").Epsilon()
	b.Define("E").Epsilon()
	g := mustGrammar(t, b.Start("S").Resolve(ResolveEarlierReduce))
	result, err := Analyze(g)
	if err != nil {
		t.Fatal(err)
	}
	c := result.Conflicts()
	if len(c) != 1 || c[0].Resolution != ResolveEarlierReduce || c[0].Rules[0].Number != 3 {
		t.Fatalf("expected rule 3 to win by earlier definition, have %v", c)
	}
	if v, _ := result.ParseTable().Action(3, "d"); v != -3 {
		t.Errorf("expected action[3][d] = r3, is %s", ActionString(v))
	}
}

func TestConflictsResolveAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("SSS")
	b.Define("S").Is("S", "S", "S").Is("S", "S").Is("b")
	g := mustGrammar(t, b.Start("S").Resolve(ResolveAll))
	result, err := Analyze(g)
	if err != nil {
		t.Fatal(err)
	}
	expect := []struct {
		state int
		la    string
		rules []int
		mode  ConflictMode
	}{
		{3, "b", []int{2}, ResolveShift},
		{4, "b", []int{1}, ResolveShift},
		{4, EOF, []int{1, 2}, ResolveLongerReduce},
		{4, "b", []int{2}, ResolveShift},
	}
	conflicts := result.Conflicts()
	if len(conflicts) != len(expect) {
		t.Fatalf("expected %d conflicts, have %d: %v", len(expect), len(conflicts), conflicts)
	}
	for i, x := range expect {
		c := conflicts[i]
		ok := c.State == x.state && c.Lookahead == x.la && c.Resolution == x.mode &&
			len(c.Rules) == len(x.rules)
		for j := 0; ok && j < len(x.rules); j++ {
			ok = c.Rules[j].Number == x.rules[j]
		}
		if !ok {
			t.Errorf("conflict #%d: expected %v, have %s", i, x, c)
		}
	}
	T := result.ParseTable()
	if v, _ := T.Action(4, EOF); v != -1 {
		t.Errorf("expected longer rule 1 to be reduced in state 4, is %s", ActionString(v))
	}
	if v, _ := T.Action(4, "b"); v != 2 {
		t.Errorf("expected shift in state 4 on b, is %s", ActionString(v))
	}
}

// opsGrammar has a shift/reduce conflict on "+" in state 3 where the rule to
// reduce, A -> a, contains no operator.
func opsGrammar(t *testing.T, mode ConflictMode) *Grammar {
	b := NewGrammarBuilder("Ops")
	b.Define("S").Is("A", "+")
	b.Define("A").Is("a").Is("a", "+", "a")
	b.Operators("+").Left().Precedence(1)
	return mustGrammar(t, b.Start("S").Resolve(mode))
}

func TestOperatorsFallThroughToShift(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.lr")
	defer teardown()
	//
	result, err := Analyze(opsGrammar(t, ResolveOperators|ResolveShift))
	if err != nil {
		t.Fatal(err)
	}
	c := result.Conflicts()
	if len(c) != 1 || c[0].State != 3 || c[0].Resolution != ResolveShift || c[0].Rules[0].Number != 2 {
		t.Fatalf("expected shift to be preferred over rule 2, have %v", c)
	}
	_, err = Analyze(opsGrammar(t, ResolveOperators))
	var sr *ShiftReduceConflictError
	if !errors.As(err, &sr) {
		t.Fatalf("expected shift/reduce conflict, have %v", err)
	}
	if sr.State != 3 || sr.Lookahead != "+" || sr.Rule.Number != 2 {
		t.Errorf("unexpected conflict: state %d, %q, rule %d", sr.State, sr.Lookahead, sr.Rule.Number)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Expr")
	b.Define("E").Is("E", "+", "E").Is("E", "*", "E").Is("E", "^", "E").Is("E", "=", "E").Is("x")
	b.Operators("=").NonAssociative().Precedence(0)
	b.Operators("+").Left().Precedence(1)
	b.Operators("*").Left().Precedence(2)
	b.Operators("^").Right().Precedence(3)
	result, err := Analyze(mustGrammar(t, b.Start("E").Resolve(ResolveOperators)))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Conflicts()) != 0 {
		t.Errorf("operator resolutions are not expected as conflicts, have %v", result.Conflicts())
	}
	A, T := result.Automaton(), result.ParseTable()
	reduceState := func(rule int) int {
		for _, s := range A.States() {
			if _, ok := s.Item(rule, 3); ok {
				return s.Number
			}
		}
		t.Fatalf("no state for reducing rule %d", rule)
		return -1
	}
	expect := []struct {
		rule   int
		t      string
		reduce bool
	}{
		{1, "+", true},  // left associative
		{1, "*", false}, // higher precedence
		{2, "+", true},
		{3, "^", false}, // right associative
		{3, "*", true},
	}
	for _, x := range expect {
		s := reduceState(x.rule)
		v, ok := T.Action(s, x.t)
		if !ok || (v < 0) != x.reduce {
			t.Errorf("rule %d on %q: expected reduce=%v, have %s", x.rule, x.t, x.reduce, ActionString(v))
		}
	}
	s := reduceState(4) // E = E •
	if _, ok := T.Action(s, "="); ok {
		t.Errorf("expected error entry for non-associative operator in state %d", s)
	}
	if v, ok := T.Action(s, "+"); !ok || v <= 0 {
		t.Errorf("expected shift on + after E = E")
	}
}

func TestWriteHTML(t *testing.T) {
	result, err := Analyze(anbnGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	if err := result.ParseTable().WriteHTML(&b); err != nil {
		t.Fatal(err)
	}
	html := b.String()
	for _, s := range []string{"<td>$eof</td>", "<td><i>S</i></td>", "<td>acc</td>", "<td>r2</td>", "<td>s4</td>"} {
		if !strings.Contains(html, s) {
			t.Errorf("expected HTML table to contain %q", s)
		}
	}
}
