package testkit

import (
	"fmt"

	"copper/internal/ast"
)

// CheckTreeInvariants runs a minimal set of range invariants on a tree:
// 1) every node range is valid and within the content
// 2) children lie inside their parent (heredoc bodies excepted)
// 3) siblings start in ascending order and parent links agree
// 4) comments are sorted and do not overlap
func CheckTreeInvariants(tree *ast.Tree, content []byte) error {
	if tree == nil {
		return fmt.Errorf("nil tree")
	}
	root := tree.Node(tree.Root)
	if root == nil {
		return fmt.Errorf("tree has no root")
	}
	var err error
	tree.Walk(func(id ast.NodeID, n *ast.Node) bool {
		if err != nil {
			return false
		}
		if !n.Range.Valid() || n.Range.End > len(content) {
			err = fmt.Errorf("node %d (%s) range %v outside content of %d bytes", id, n.Type, n.Range, len(content))
			return false
		}
		prev := -1
		for _, cid := range n.Children {
			ch := tree.Node(cid)
			if ch == nil {
				err = fmt.Errorf("node %d has unknown child %d", id, cid)
				return false
			}
			if ch.Parent != id {
				err = fmt.Errorf("child %d of %d points to parent %d", cid, id, ch.Parent)
				return false
			}
			if n.Type == ast.Heredoc {
				continue
			}
			if ch.Range.Start < n.Range.Start || ch.Range.End > n.Range.End {
				err = fmt.Errorf("child %d (%s) %v escapes parent %d (%s) %v", cid, ch.Type, ch.Range, id, n.Type, n.Range)
				return false
			}
			if ch.Range.Start < prev {
				err = fmt.Errorf("children of %d are out of order at %d", id, cid)
				return false
			}
			prev = ch.Range.Start
		}
		return true
	})
	if err != nil {
		return err
	}
	end := -1
	for i, c := range tree.Comments {
		if !c.Valid() || c.End > len(content) {
			return fmt.Errorf("comment %d range %v is invalid", i, c)
		}
		if c.Start < end {
			return fmt.Errorf("comment %d overlaps the previous one", i)
		}
		end = c.End
	}
	return nil
}
