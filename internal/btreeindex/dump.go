package btreeindex

import (
	"fmt"
	"io"
)

// Dump writes a human-readable walk of the tree to w: one line per
// node, indented by level, leaves marked with their entry count and
// right-sibling pointer. It is a diagnostic aid only, not part of the
// index's external interface (spec.md §6 lists none).
func (idx *BTreeIndex) Dump(w io.Writer) error {
	isLeaf := idx.rootPageNum == initialLeafPageNum
	return idx.dumpNode(w, idx.rootPageNum, isLeaf, 0)
}

func (idx *BTreeIndex) dumpNode(w io.Writer, pageNum uint32, isLeaf bool, depth int) error {
	p, err := idx.buf.PinPage(idx.file, pageNum)
	if err != nil {
		return err
	}

	if isLeaf {
		node := decodeLeaf(idx.attrType, p)
		if err := idx.buf.UnpinPage(idx.file, pageNum, false); err != nil {
			return err
		}
		fmt.Fprintf(w, "%sleaf page=%d entries=%d right=%d\n", indent(depth), pageNum, len(node.Keys), node.RightSibling)
		return nil
	}

	node := decodeNonLeaf(idx.attrType, p)
	if err := idx.buf.UnpinPage(idx.file, pageNum, false); err != nil {
		return err
	}
	fmt.Fprintf(w, "%snode page=%d keys=%v\n", indent(depth), pageNum, node.Keys)
	for _, child := range node.Children {
		if err := idx.dumpNode(w, child, node.AboveLeaves, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func indent(depth int) string {
	b := make([]byte, depth*2)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
