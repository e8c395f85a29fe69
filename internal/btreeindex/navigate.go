package btreeindex

// initialLeafPageNum is the page number of the very first leaf
// allocated for a new index (the meta page is always page 1, so this
// is always page 2). Because page numbers are handed out sequentially
// and never reused, the root is a leaf if and only if it is still
// this page - any split that replaces the root allocates a fresh,
// strictly larger page number and the root is a non-leaf from then on.
const initialLeafPageNum uint32 = 2

// findLeaf descends from the root to the leaf that should contain
// key, returning the leaf's page number and the page numbers of every
// non-leaf ancestor visited along the way, root first. The ancestor
// path is exactly what insertEntry needs to walk back up if the leaf
// it inserts into ends up splitting.
func (idx *BTreeIndex) findLeaf(key Key) (leafPageNum uint32, path []uint32, err error) {
	if idx.rootPageNum == initialLeafPageNum {
		return idx.rootPageNum, nil, nil
	}

	pageNum := idx.rootPageNum
	for {
		p, err := idx.buf.PinPage(idx.file, pageNum)
		if err != nil {
			return 0, nil, err
		}
		node := decodeNonLeaf(idx.attrType, p)
		if err := idx.buf.UnpinPage(idx.file, pageNum, false); err != nil {
			return 0, nil, err
		}

		path = append(path, pageNum)
		childPageNum := childFor(node, key)
		if node.AboveLeaves {
			return childPageNum, path, nil
		}
		pageNum = childPageNum
	}
}

// childFor picks the child of node that the descent for key should
// follow. Keys[i] is the smallest key in the subtree rooted at
// Children[i+1]; ties follow the right subtree, so a key equal to a
// separator always lands among entries >= that separator rather than
// being split arbitrarily between the two sides.
func childFor(node *NonLeafNode, key Key) uint32 {
	i := 0
	for i < len(node.Keys) && !Less(key, node.Keys[i]) {
		i++
	}
	return node.Children[i]
}
