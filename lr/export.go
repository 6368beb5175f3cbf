package lr

import (
	"fmt"
	"html"
	"io"
	"strings"

	"modernc.org/strutil"
)

// ToGraphViz exports the automaton to the Graphviz Dot format. Every state is
// labeled with its items, reduce items carry their lookahead in brackets.
func (a *Automaton) ToGraphViz(w io.Writer) error {
	ew := &errWriter{w: w}
	f := strutil.IndentFormatter(ew, "    ")
	f.Format("digraph Automaton {%i\n")
	f.Format("rankdir=\"LR\";\n\n")
	for _, s := range a.states {
		f.Format("%d [label=\"%s\"];\n", s.Number, stateLabel(s))
	}
	f.Format("\n")
	for _, t := range a.Transitions() {
		f.Format("%d -> %d [label=\"%s\"];\n", t.From, t.To, dotEscape(t.Symbol))
	}
	f.Format("%u}\n")
	return ew.err
}

func stateLabel(s *State) string {
	items := s.Items()
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = dotItem(item)
	}
	return fmt.Sprintf(`State %d\n\n%s`, s.Number, strings.Join(lines, `\n`))
}

func dotItem(item *Item) string {
	r := item.Rule()
	syms := make([]string, 0, len(r.Components)+1)
	for i, sym := range r.Components {
		if i == item.Dot() {
			syms = append(syms, "&bull;")
		}
		syms = append(syms, dotEscape(sym))
	}
	if item.IsReduceItem() {
		syms = append(syms, "&bull;")
	}
	var s string
	if r.Number != 0 {
		s = dotEscape(r.LHS) + " &rarr; "
	}
	s += strings.Join(syms, " ")
	if item.IsReduceItem() {
		la := make([]string, len(item.Lookahead()))
		for i, t := range item.Lookahead() {
			la[i] = dotEscape(t)
		}
		s += " [" + strings.Join(la, " ") + "]"
	}
	return s
}

func dotEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

func htmlEscape(s string) string {
	return html.EscapeString(s)
}

// errWriter remembers the first write error and ignores subsequent writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	fmt.Fprintf(ew, format, args...)
}
