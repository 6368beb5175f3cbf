package lalr

import (
	"fmt"
	"strings"
)

// Node is a generic node of a parse tree. Inner nodes carry the name of the
// non-terminal of a reduced rule, leaves carry a token.
type Node struct {
	Name     string  // symbol of this node
	Token    Token   // input token for leaves, nil otherwise
	Children []*Node // child nodes in input order
}

// NewLeaf creates a parse tree leaf for a token.
func NewLeaf(tok Token) *Node {
	return &Node{Name: tok.Type(), Token: tok}
}

// NewNode creates an inner parse tree node.
func NewNode(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children}
}

// IsLeaf is true for nodes carrying a token.
func (n *Node) IsLeaf() bool {
	return n.Token != nil
}

// Span returns the input span covered by the node.
func (n *Node) Span() Span {
	if n.IsLeaf() {
		return n.Token.Span()
	}
	var span Span
	for _, ch := range n.Children {
		span = span.Extend(ch.Span())
	}
	return span
}

// Walk calls f for n and every descendant of n, depth first, with the
// depth of the node relative to n.
func (n *Node) Walk(f func(node *Node, depth int)) {
	n.walk(f, 0)
}

func (n *Node) walk(f func(*Node, int), depth int) {
	f(n, depth)
	for _, ch := range n.Children {
		ch.walk(f, depth+1)
	}
}

func (n *Node) String() string {
	if n.IsLeaf() {
		if n.Token.Value() == n.Name {
			return n.Name
		}
		return fmt.Sprintf("%s(%s)", n.Name, n.Token.Value())
	}
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(n.Name)
	for _, ch := range n.Children {
		b.WriteString(" ")
		b.WriteString(ch.String())
	}
	b.WriteString(")")
	return b.String()
}
