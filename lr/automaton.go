package lr

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// === States ================================================================

// State is a state of the LALR(1) automaton. It holds the kernel items and the
// items of its closure, in the order they were added.
type State struct {
	Number int // serial number of this state
	items  []ItemID
	index  map[itemKey]ItemID
	arena  *ItemArena
}

func newState(n int, arena *ItemArena, items ...ItemID) *State {
	s := &State{
		Number: n,
		index:  make(map[itemKey]ItemID),
		arena:  arena,
	}
	for _, id := range items {
		s.add(id)
	}
	return s
}

func (s *State) add(id ItemID) {
	s.items = append(s.items, id)
	s.index[s.arena.Item(id).key()] = id
}

// get returns the item of the state for (rule, dot). The item must exist.
func (s *State) get(rule, dot int) ItemID {
	id, ok := s.index[itemKey{rule, dot}]
	if !ok {
		panic(fmt.Sprintf("state %d has no item for rule %d at %d", s.Number, rule, dot))
	}
	return id
}

// Items returns the items of the state, in the order they were added.
func (s *State) Items() []*Item {
	items := make([]*Item, len(s.items))
	for i, id := range s.items {
		items[i] = s.arena.Item(id)
	}
	return items
}

// Item returns the item for a rule number and a dot position, if it is part
// of the state.
func (s *State) Item(rule, dot int) (*Item, bool) {
	id, ok := s.index[itemKey{rule, dot}]
	if !ok {
		return nil, false
	}
	return s.arena.Item(id), true
}

func (s *State) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.Number, len(s.items))
}

// === Automaton =============================================================

// Transition is an edge of the automaton.
type Transition struct {
	From   int    // origin state
	Symbol string // terminal or non-terminal
	To     int    // destination state
}

// Automaton is the handle-finding finite state machine of a grammar (LALR(1)
// automaton). It is immutable once the analysis of a grammar is complete.
type Automaton struct {
	states []*State
	arena  *ItemArena
	edges  *arraylist.List  // transitions in order of discovery
	trans  []map[string]int // transitions by origin state
}

func newAutomaton() *Automaton {
	return &Automaton{
		arena: NewItemArena(),
		edges: arraylist.New(),
	}
}

func (a *Automaton) addState(n int, items ...ItemID) *State {
	if n != len(a.states) {
		panic(fmt.Sprintf("state %d added out of order", n))
	}
	s := newState(n, a.arena, items...)
	a.states = append(a.states, s)
	a.trans = append(a.trans, make(map[string]int))
	return s
}

func (a *Automaton) addTransition(from int, sym string, to int) {
	tracer().Debugf("goto(%d) -%s-> %d", from, sym, to)
	a.trans[from][sym] = to
	a.edges.Add(Transition{From: from, Symbol: sym, To: to})
}

// Len returns the number of states.
func (a *Automaton) Len() int {
	return len(a.states)
}

// States returns all states, ordered by number.
func (a *Automaton) States() []*State {
	return a.states
}

// State returns state number n.
func (a *Automaton) State(n int) (*State, bool) {
	if n < 0 || n >= len(a.states) {
		return nil, false
	}
	return a.states[n], true
}

// Transition returns the destination of the transition from state `from`
// on symbol sym.
func (a *Automaton) Transition(from int, sym string) (int, bool) {
	if from < 0 || from >= len(a.trans) {
		return 0, false
	}
	to, ok := a.trans[from][sym]
	return to, ok
}

// Transitions returns all transitions in the order of their discovery.
func (a *Automaton) Transitions() []Transition {
	r := make([]Transition, 0, a.edges.Size())
	it := a.edges.Iterator()
	for it.Next() {
		r = append(r, it.Value().(Transition))
	}
	return r
}

// TransitionsFrom returns the transitions leaving state n.
func (a *Automaton) TransitionsFrom(n int) []Transition {
	r := make([]Transition, 0, 2)
	it := a.edges.Iterator()
	for it.Next() {
		t := it.Value().(Transition)
		if t.From == n {
			r = append(r, t)
		}
	}
	return r
}

// === Automaton Construction ================================================

// itemGroups groups items by their active component, remembering the order
// in which components were first seen.
type itemGroups struct {
	order []string
	items map[string][]ItemID
}

func (ig *itemGroups) add(sym string, id ItemID) {
	if _, ok := ig.items[sym]; !ok {
		ig.order = append(ig.order, sym)
	}
	ig.items[sym] = append(ig.items[sym], id)
}

// pumping is a lookahead propagation deferred until all states are known.
type pumping struct {
	item   ItemID
	tokens []string
}

// buildAutomaton constructs the LALR(1) automaton for g.
//
// States are discovered breadth first. For every state we compute the closure,
// arranging lookahead propagation between the items as we go: items are
// connected if lookahead of the expanding item flows into the expanded one,
// and lookahead derived from FIRST sets is recorded as a pumping. Pumpings are
// executed after all states have been constructed, when every connection is in
// place.
func buildAutomaton(g *Grammar) *Automaton {
	first := firstSets(g)
	A := newAutomaton()
	kernels := newKernelIndex()
	initial := A.arena.Add(g.StartRule(), 0)
	n, _ := kernels.insert([]itemKey{{rule: 0, dot: 0}})
	pumpings := []pumping{{item: initial, tokens: []string{EOF}}}
	queue := linkedlistqueue.New()
	queue.Enqueue(A.addState(n, initial))
	for !queue.Empty() {
		x, _ := queue.Dequeue()
		state := x.(*State)
		groups := &itemGroups{items: make(map[string][]ItemID)}
		pumpings = A.closure(g, state, first, groups, pumpings)
		for _, sym := range groups.order {
			items := groups.items[sym]
			kernel := make([]itemKey, len(items))
			for i, id := range items {
				item := A.arena.Item(id)
				kernel[i] = itemKey{rule: item.rule.Number, dot: item.dot + 1}
			}
			n, isNew := kernels.insert(kernel)
			if !isNew { // connect items to the existing state
				A.addTransition(state.Number, sym, n)
				next := A.states[n]
				for i, id := range items {
					A.arena.Connect(id, next.get(kernel[i].rule, kernel[i].dot))
				}
				continue
			}
			advanced := make([]ItemID, len(items))
			for i, id := range items {
				advanced[i] = A.arena.Add(A.arena.Item(id).rule, kernel[i].dot)
				A.arena.Connect(id, advanced[i])
			}
			queue.Enqueue(A.addState(n, advanced...))
			A.addTransition(state.Number, sym, n)
		}
	}
	for _, p := range pumpings {
		A.arena.PumpAll(p.item, p.tokens)
	}
	tracer().Infof("LALR(1) automaton for %s has %d states, %d items", g.Name, A.Len(), A.arena.Len())
	return A
}

// closure completes a state with the items for all non-terminals expected
// by its items, and groups the items by their active component.
func (a *Automaton) closure(g *Grammar, state *State, first map[string]*symbolSet,
	groups *itemGroups, pumpings []pumping) []pumping {
	//
	expanded := make(map[string]bool)
	queue := linkedlistqueue.New()
	for _, id := range state.items {
		queue.Enqueue(id)
	}
	for !queue.Empty() {
		x, _ := queue.Dequeue()
		id := x.(ItemID)
		item := a.arena.Item(id)
		if item.IsReduceItem() {
			continue
		}
		sym := item.ActiveComponent()
		groups.add(sym, id)
		if g.HasNonterminal(sym) {
			// lookahead for the expanded items is FIRST of the rest of this item;
			// if the rest may vanish, this item's own lookahead flows through
			la := firstOfSequence(g, first, item.UnrecognizedComponents())
			connect := la.contains(Epsilon)
			la.remove(Epsilon)
			for _, r := range g.RulesFor(sym) {
				var target ItemID
				if !expanded[sym] {
					target = a.arena.Add(r, 0)
					state.add(target)
					queue.Enqueue(target)
				} else {
					target = state.get(r.Number, 0)
				}
				if connect {
					a.arena.Connect(id, target)
				}
				if la.size() > 0 {
					pumpings = append(pumpings, pumping{item: target, tokens: la.syms})
				}
			}
		}
		expanded[sym] = true
	}
	tracer().Debugf("closure of state %d has %d items", state.Number, len(state.items))
	return pumpings
}
