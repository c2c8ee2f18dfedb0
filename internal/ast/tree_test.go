package ast

import "testing"

func buildSample() *Tree {
	// program
	//   call
	//     identifier
	//     arguments
	//       string
	//   def
	t := NewTree(8)
	root := t.Add(Node{Type: Program, Kind: "program", Range: Range{0, 20}})
	t.Root = root
	call := t.Add(Node{Type: Call, Kind: "call", Range: Range{0, 10}})
	ident := t.Add(Node{Type: Identifier, Kind: "identifier", Range: Range{0, 4}})
	args := t.Add(Node{Type: Arguments, Kind: "argument_list", Range: Range{5, 10}})
	str := t.Add(Node{Type: String, Kind: "string", Range: Range{5, 10}})
	def := t.Add(Node{Type: Def, Kind: "method", Range: Range{11, 20}})
	t.AddChild(root, call)
	t.AddChild(call, ident)
	t.AddChild(call, args)
	t.AddChild(args, str)
	t.AddChild(root, def)
	return t
}

func TestWalkPreOrder(t *testing.T) {
	tree := buildSample()
	var got []NodeType
	tree.Walk(func(_ NodeID, n *Node) bool {
		got = append(got, n.Type)
		return true
	})
	want := []NodeType{Program, Call, Identifier, Arguments, String, Def}
	if len(got) != len(want) {
		t.Fatalf("visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("visited %v, want %v", got, want)
		}
	}
}

func TestWalkSkipChildren(t *testing.T) {
	tree := buildSample()
	count := 0
	tree.Walk(func(_ NodeID, n *Node) bool {
		count++
		return n.Type != Call
	})
	if count != 3 {
		t.Fatalf("visited %d nodes, want 3 (program, call, def)", count)
	}
}

func TestParentLinks(t *testing.T) {
	tree := buildSample()
	str := tree.Node(5)
	if str == nil || str.Type != String {
		t.Fatalf("node 5 = %+v, want string", str)
	}
	if tree.Node(str.Parent).Type != Arguments {
		t.Fatalf("parent of string should be arguments")
	}
	if tree.Node(NoNode) != nil || tree.Node(99) != nil {
		t.Fatal("unknown ids must resolve to nil")
	}
	if tree.Len() != 6 {
		t.Fatalf("Len = %d, want 6", tree.Len())
	}
}

func TestRange(t *testing.T) {
	src := []byte("hello world")
	r := Range{6, 11}
	if string(r.Bytes(src)) != "world" {
		t.Fatalf("Bytes = %q", r.Bytes(src))
	}
	if !r.Contains(6) || r.Contains(11) {
		t.Fatal("range must be half-open")
	}
	if NoRange.Valid() || NoRange.Len() != 0 || NoRange.Bytes(src) != nil {
		t.Fatal("NoRange must be inert")
	}
	if (Range{5, 40}).Bytes(src) != nil {
		t.Fatal("out of bounds range must yield nil")
	}
}

func TestNodeTypeString(t *testing.T) {
	for nt := NodeType(0); nt < NumNodeTypes; nt++ {
		if nt.String() == "" {
			t.Errorf("node type %d has no name", nt)
		}
	}
	if NumNodeTypes.String() != "invalid" {
		t.Errorf("NumNodeTypes should be invalid")
	}
	if !Heredoc.IsStringLike() || Call.IsStringLike() {
		t.Error("IsStringLike misclassifies")
	}
}
