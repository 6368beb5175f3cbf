package lr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFirstSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.Define("S").Is("A", "B")
	b.Define("A").Is("a").Epsilon()
	b.Define("B").Is("b")
	g := mustGrammar(t, b.Start("S"))
	first := firstSets(g)
	expect := map[string][]string{
		"S": {"a", "b"},
		"A": {"a", Epsilon},
		"B": {"b"},
	}
	for nt, syms := range expect {
		if first[nt].size() != len(syms) {
			t.Errorf("expected FIRST(%s) = %v, is %s", nt, syms, first[nt])
		}
		for _, sym := range syms {
			if !first[nt].contains(sym) {
				t.Errorf("expected FIRST(%s) to contain %s, is %s", nt, sym, first[nt])
			}
		}
	}
}

func TestFirstSetsMutualRecursion(t *testing.T) {
	b := NewGrammarBuilder("G")
	b.Define("X").Is("Y", "x").Is("x")
	b.Define("Y").Is("X", "y").Epsilon()
	g := mustGrammar(t, b.Start("X"))
	first := firstSets(g)
	if first["X"].size() != 1 || !first["X"].contains("x") {
		t.Errorf("expected FIRST(X) = {x}, is %s", first["X"])
	}
	if first["Y"].size() != 2 || !first["Y"].contains("x") || !first["Y"].contains(Epsilon) {
		t.Errorf("expected FIRST(Y) = {x, ε}, is %s", first["Y"])
	}
}

func TestFirstOfSequence(t *testing.T) {
	b := NewGrammarBuilder("G")
	b.Define("S").Is("A", "B")
	b.Define("A").Is("a").Epsilon()
	b.Define("B").Is("b").Epsilon()
	g := mustGrammar(t, b.Start("S"))
	first := firstSets(g)
	if F := firstOfSequence(g, first, nil); F.size() != 1 || !F.contains(Epsilon) {
		t.Errorf("expected FIRST of empty sequence to be {ε}, is %s", F)
	}
	F := firstOfSequence(g, first, []string{"A", "B"})
	if F.size() != 3 || !F.contains("a") || !F.contains("b") || !F.contains(Epsilon) {
		t.Errorf("expected FIRST(A B) = {a, b, ε}, is %s", F)
	}
	F = firstOfSequence(g, first, []string{"A", "c", "B"})
	if F.size() != 2 || F.contains(Epsilon) || !F.contains("c") {
		t.Errorf("expected FIRST(A c B) = {a, c}, is %s", F)
	}
}

func TestSymbolSetKeepsOrder(t *testing.T) {
	S := newSymbolSet("c", "a")
	if !S.add("b") || S.add("a") {
		t.Errorf("expected add to report new symbols only")
	}
	T := newSymbolSet("d", "a", Epsilon)
	if !S.union(T, Epsilon) {
		t.Errorf("expected union to change S")
	}
	if S.union(T, Epsilon) {
		t.Errorf("expected second union to leave S unchanged")
	}
	expect := []string{"c", "a", "b", "d"}
	if len(S.syms) != len(expect) {
		t.Fatalf("expected %v, is %v", expect, S.syms)
	}
	for i, sym := range expect {
		if S.syms[i] != sym {
			t.Errorf("expected %v, is %v", expect, S.syms)
			break
		}
	}
	S.remove("a")
	if S.contains("a") || S.size() != 3 {
		t.Errorf("expected a to be removed, is %s", S)
	}
}
