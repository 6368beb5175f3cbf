package lr

import "strings"

// symbolSet is a set of grammar symbols which remembers the order of insertion.
type symbolSet struct {
	syms []string
	has  map[string]struct{}
}

func newSymbolSet(syms ...string) *symbolSet {
	S := &symbolSet{has: make(map[string]struct{})}
	for _, sym := range syms {
		S.add(sym)
	}
	return S
}

// add adds a symbol and reports if it has not been present before.
func (S *symbolSet) add(sym string) bool {
	if _, ok := S.has[sym]; ok {
		return false
	}
	S.has[sym] = struct{}{}
	S.syms = append(S.syms, sym)
	return true
}

func (S *symbolSet) contains(sym string) bool {
	_, ok := S.has[sym]
	return ok
}

// union adds all symbols of T, except symbols in exclude, and reports if S
// changed.
func (S *symbolSet) union(T *symbolSet, exclude ...string) bool {
	changed := false
outer:
	for _, sym := range T.syms {
		for _, x := range exclude {
			if sym == x {
				continue outer
			}
		}
		if S.add(sym) {
			changed = true
		}
	}
	return changed
}

// remove removes sym from S.
func (S *symbolSet) remove(sym string) {
	if _, ok := S.has[sym]; !ok {
		return
	}
	delete(S.has, sym)
	for i, s := range S.syms {
		if s == sym {
			S.syms = append(S.syms[:i:i], S.syms[i+1:]...)
			break
		}
	}
}

func (S *symbolSet) size() int {
	return len(S.syms)
}

func (S *symbolSet) String() string {
	return "{" + strings.Join(S.syms, " ") + "}"
}

// === FIRST sets ============================================================

// firstSets computes FIRST(N) for every non-terminal N of g. A set contains
// Epsilon if N derives the empty word.
//
// We use a naive fixpoint iteration: every pass visits every rule, and we stop
// after a pass which did not add any symbol to any set.
func firstSets(g *Grammar) map[string]*symbolSet {
	first := make(map[string]*symbolSet, len(g.ntOrder))
	for _, nt := range g.ntOrder {
		first[nt] = newSymbolSet()
	}
	passes := 0
	for changed := true; changed; {
		changed = false
		passes++
		for _, nt := range g.ntOrder {
			for _, r := range g.byLHS[nt] {
				if first[nt].union(firstOfSequence(g, first, r.Components)) {
					changed = true
				}
			}
		}
	}
	tracer().Debugf("FIRST sets stable after %d passes", passes)
	return first
}

// firstOfSequence computes FIRST of a sequence of symbols, given the current
// FIRST sets of the non-terminals. The result contains Epsilon if every
// symbol of the sequence may derive the empty word, including the case of an
// empty sequence.
func firstOfSequence(g *Grammar, first map[string]*symbolSet, syms []string) *symbolSet {
	F := newSymbolSet()
	if len(syms) == 0 {
		F.add(Epsilon)
		return F
	}
	for i, sym := range syms {
		if !g.HasNonterminal(sym) { // terminal
			F.add(sym)
			break
		}
		N := first[sym]
		if !N.contains(Epsilon) {
			F.union(N)
			break
		}
		if i < len(syms)-1 {
			F.union(N, Epsilon) // more symbols ahead, drop ε
		} else {
			F.union(N)
		}
	}
	return F
}
