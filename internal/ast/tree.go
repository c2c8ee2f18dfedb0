package ast

// NodeID indexes a node inside its Tree. Zero means "no node".
type NodeID uint32

// NoNode is the zero NodeID.
const NoNode NodeID = 0

// Range is a half-open byte interval [Start, End) in the source buffer.
type Range struct {
	Start int
	End   int
}

// NoRange marks an absent optional range.
var NoRange = Range{Start: -1, End: -1}

// Valid reports whether r is a real range.
func (r Range) Valid() bool { return r.Start >= 0 && r.End >= r.Start }

// Len returns the number of bytes covered.
func (r Range) Len() int {
	if !r.Valid() {
		return 0
	}
	return r.End - r.Start
}

// Contains reports whether off lies inside r.
func (r Range) Contains(off int) bool { return r.Valid() && off >= r.Start && off < r.End }

// Bytes slices src by r. Out-of-range bounds yield nil.
func (r Range) Bytes(src []byte) []byte {
	if !r.Valid() || r.End > len(src) {
		return nil
	}
	return src[r.Start:r.End]
}

// Node is one element of the tree. Opening/Content/Closing are set for
// delimited literals; Name is the selector of calls and method definitions.
type Node struct {
	Type     NodeType
	Kind     string
	Range    Range
	Opening  Range
	Content  Range
	Closing  Range
	Name     Range
	Receiver NodeID
	Parent   NodeID
	Children []NodeID
}

// SyntaxError is a parser-reported problem at a byte offset.
type SyntaxError struct {
	Offset  int
	Message string
}

// Tree is an owned parse result. Nodes are stored in a flat 1-based slice,
// so a Tree never references the parser that produced it.
type Tree struct {
	nodes    []Node
	Root     NodeID
	Comments []Range
	// Data is the payload after __END__, NoRange when absent.
	Data   Range
	Errors []SyntaxError
}

// NewTree allocates an empty tree with room for capHint nodes.
func NewTree(capHint int) *Tree {
	if capHint < 0 {
		capHint = 0
	}
	nodes := make([]Node, 1, capHint+1)
	return &Tree{nodes: nodes, Data: NoRange}
}

// Add stores n and returns its id. Children are not linked.
func (t *Tree) Add(n Node) NodeID {
	t.nodes = append(t.nodes, n)
	// #nosec G115 -- trees never approach 2^32 nodes
	return NodeID(len(t.nodes) - 1)
}

// AddChild links child under parent, keeping insertion order.
func (t *Tree) AddChild(parent, child NodeID) {
	p := t.Node(parent)
	c := t.Node(child)
	if p == nil || c == nil {
		return
	}
	p.Children = append(p.Children, child)
	c.Parent = parent
}

// Node returns the node for id, or nil for NoNode and unknown ids.
func (t *Tree) Node(id NodeID) *Node {
	if t == nil || id == NoNode || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes) - 1
}

// Fatal reports whether the parser gave up on part of the input.
func (t *Tree) Fatal() bool { return t != nil && len(t.Errors) > 0 }

// Walk visits every node reachable from Root in depth-first pre-order.
// Returning false from visit skips the node's children.
func (t *Tree) Walk(visit func(id NodeID, n *Node) bool) {
	if t == nil || t.Root == NoNode {
		return
	}
	// явный стек: глубина дерева не должна упираться в рекурсию
	stack := make([]NodeID, 0, 64)
	stack = append(stack, t.Root)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.Node(id)
		if n == nil {
			continue
		}
		if !visit(id, n) {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

// Text returns the source bytes covered by node id.
func (t *Tree) Text(src []byte, id NodeID) []byte {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	return n.Range.Bytes(src)
}
