package lr

import (
	"fmt"
	"strings"
)

// ItemID addresses an item within an item arena.
type ItemID int

// Item is an LR item, i.e. a rule with a dot marking the recognized part of
// the rule, plus a set of lookahead terminals. Items are connected to other
// items: lookahead pumped into an item flows to all items it is connected to.
type Item struct {
	rule      *Rule
	dot       int
	lookahead *symbolSet
	targets   []ItemID
}

// Rule returns the rule of the item.
func (i *Item) Rule() *Rule {
	return i.rule
}

// Dot returns the position of the dot, 0…len(components).
func (i *Item) Dot() int {
	return i.dot
}

// Lookahead returns the lookahead terminals, in the order they arrived.
func (i *Item) Lookahead() []string {
	return i.lookahead.syms
}

// HasLookahead is true if t is a lookahead terminal of the item.
func (i *Item) HasLookahead(t string) bool {
	return i.lookahead.contains(t)
}

// IsReduceItem is true if the dot is at the end of the rule.
func (i *Item) IsReduceItem() bool {
	return i.dot == len(i.rule.Components)
}

// ActiveComponent returns the symbol after the dot, or "" for reduce items.
func (i *Item) ActiveComponent() string {
	if i.IsReduceItem() {
		return ""
	}
	return i.rule.Components[i.dot]
}

// UnrecognizedComponents returns the symbols after the active component.
func (i *Item) UnrecognizedComponents() []string {
	if i.dot+1 >= len(i.rule.Components) {
		return nil
	}
	return i.rule.Components[i.dot+1:]
}

func (i *Item) key() itemKey {
	return itemKey{rule: i.rule.Number, dot: i.dot}
}

func (i *Item) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s ->", i.rule.LHS)
	for k, sym := range i.rule.Components {
		if k == i.dot {
			b.WriteString(" •")
		}
		b.WriteString(" " + sym)
	}
	if i.IsReduceItem() {
		b.WriteString(" •")
	}
	b.WriteString("]")
	if i.lookahead.size() > 0 {
		b.WriteString(" " + i.lookahead.String())
	}
	return b.String()
}

// === Item arena ============================================================

// ItemArena owns the items of an automaton. Items are addressed by their
// ItemID, which is stable for the lifetime of the arena.
type ItemArena struct {
	items []*Item
}

// NewItemArena creates an empty arena.
func NewItemArena() *ItemArena {
	return &ItemArena{}
}

// Add creates a new item for rule r with the dot at position dot.
func (a *ItemArena) Add(r *Rule, dot int) ItemID {
	a.items = append(a.items, &Item{rule: r, dot: dot, lookahead: newSymbolSet()})
	return ItemID(len(a.items) - 1)
}

// Item returns the item for an id.
func (a *ItemArena) Item(id ItemID) *Item {
	return a.items[id]
}

// Len returns the number of items in the arena.
func (a *ItemArena) Len() int {
	return len(a.items)
}

// Connect adds an edge from item `from` to item `to`: lookahead pumped into
// `from` will flow into `to` as well.
func (a *ItemArena) Connect(from, to ItemID) {
	a.items[from].targets = append(a.items[from].targets, to)
}

// Pump adds terminal t to the lookahead of an item and propagates it along all
// edges. Items which already contain t stop the propagation.
func (a *ItemArena) Pump(id ItemID, t string) {
	stack := []ItemID{id}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		item := a.items[top]
		if !item.lookahead.add(t) {
			continue
		}
		for k := len(item.targets) - 1; k >= 0; k-- {
			stack = append(stack, item.targets[k])
		}
	}
}

// PumpAll pumps every terminal of ts into an item.
func (a *ItemArena) PumpAll(id ItemID, ts []string) {
	for _, t := range ts {
		a.Pump(id, t)
	}
}
