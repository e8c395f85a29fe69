package btreeindex

import (
	"btreeidx/internal/pagefile"
	"btreeidx/internal/rid"
)

// leafEntry pairs a key with the RID it identifies, the unit a leaf
// node is sorted by: primarily on Key, secondarily on the RID's page
// number when two entries share a key (spec data model §3).
type leafEntry struct {
	Key Key
	Rid rid.RID
}

func lessLeafEntry(a, b leafEntry) bool {
	if c := Compare(a.Key, b.Key); c != 0 {
		return c < 0
	}
	return rid.Compare(a.Rid, b.Rid) < 0
}

// InsertEntry adds one (key, rid) pair to the tree, splitting leaves
// and non-leaf nodes and growing the root as needed. There is no
// entry removal: once inserted, an entry is part of the index for its
// lifetime (spec §4.4, Non-goals).
func (idx *BTreeIndex) InsertEntry(key Key, r rid.RID) error {
	leafPageNum, path, err := idx.findLeaf(key)
	if err != nil {
		return err
	}

	splitKey, newPageNum, err := idx.insertIntoLeaf(leafPageNum, key, r)
	if err != nil {
		return err
	}
	if newPageNum == pagefile.InvalidPageNum {
		return nil
	}

	for i := len(path) - 1; i >= 0; i-- {
		parentPageNum := path[i]
		sk, newParentPageNum, err := idx.insertIntoNonLeaf(parentPageNum, splitKey, newPageNum)
		if err != nil {
			return err
		}
		if newParentPageNum == pagefile.InvalidPageNum {
			return nil
		}
		splitKey, newPageNum = sk, newParentPageNum
	}

	// The split propagated past the root: grow the tree by one level.
	// The old root - now the new root's left child - is a leaf only
	// when it had no non-leaf ancestors at all.
	leftChild := leafPageNum
	if len(path) > 0 {
		leftChild = path[0]
	}
	return idx.newRoot(leftChild, splitKey, newPageNum, len(path) == 0)
}

// insertIntoLeaf inserts (key, r) into the leaf at pageNum in sorted
// order. If the node overflows it splits copy-up style: the
// separator key is the right half's first key, and that key remains
// present in the right leaf as well as being reported to the caller
// for insertion into the parent.
func (idx *BTreeIndex) insertIntoLeaf(pageNum uint32, key Key, r rid.RID) (Key, uint32, error) {
	p, err := idx.buf.PinPage(idx.file, pageNum)
	if err != nil {
		return Key{}, 0, err
	}
	node := decodeLeaf(idx.attrType, p)

	entries := make([]leafEntry, len(node.Keys))
	for i := range node.Keys {
		entries[i] = leafEntry{Key: node.Keys[i], Rid: node.Rids[i]}
	}
	entries = insertSortedLeaf(entries, leafEntry{Key: key, Rid: r})

	if len(entries) <= leafOccupancy(idx.attrType) {
		applyLeafEntries(node, entries)
		p.Data = encodeLeaf(node).Data
		return Key{}, pagefile.InvalidPageNum, idx.buf.UnpinPage(idx.file, pageNum, true)
	}

	mid := (len(entries) - 1) / 2
	left := &LeafNode{Type: idx.attrType}
	applyLeafEntries(left, entries[:mid])

	newPage, err := idx.buf.AllocatePage(idx.file)
	if err != nil {
		idx.buf.UnpinPage(idx.file, pageNum, false)
		return Key{}, 0, err
	}
	right := &LeafNode{Type: idx.attrType, RightSibling: node.RightSibling}
	applyLeafEntries(right, entries[mid:])
	left.RightSibling = newPage.ID

	newPage.Data = encodeLeaf(right).Data
	if err := idx.buf.UnpinPage(idx.file, newPage.ID, true); err != nil {
		idx.buf.UnpinPage(idx.file, pageNum, false)
		return Key{}, 0, err
	}

	p.Data = encodeLeaf(left).Data
	if err := idx.buf.UnpinPage(idx.file, pageNum, true); err != nil {
		return Key{}, 0, err
	}

	return right.Keys[0], newPage.ID, nil
}

func insertSortedLeaf(entries []leafEntry, e leafEntry) []leafEntry {
	i := 0
	for i < len(entries) && lessLeafEntry(entries[i], e) {
		i++
	}
	entries = append(entries, leafEntry{})
	copy(entries[i+1:], entries[i:])
	entries[i] = e
	return entries
}

func applyLeafEntries(n *LeafNode, entries []leafEntry) {
	n.Keys = make([]Key, len(entries))
	n.Rids = make([]rid.RID, len(entries))
	for i, e := range entries {
		n.Keys[i] = e.Key
		n.Rids[i] = e.Rid
	}
}

// insertIntoNonLeaf inserts a separator key and the new right child
// it came with into the non-leaf node at pageNum. If the node
// overflows it splits move-up style: the middle key moves to the
// parent and is present in neither resulting child.
func (idx *BTreeIndex) insertIntoNonLeaf(pageNum uint32, key Key, childPageNum uint32) (Key, uint32, error) {
	p, err := idx.buf.PinPage(idx.file, pageNum)
	if err != nil {
		return Key{}, 0, err
	}
	node := decodeNonLeaf(idx.attrType, p)

	i := 0
	for i < len(node.Keys) && !Less(key, node.Keys[i]) {
		i++
	}
	node.Keys = append(node.Keys, Key{})
	copy(node.Keys[i+1:], node.Keys[i:len(node.Keys)-1])
	node.Keys[i] = key

	node.Children = append(node.Children, 0)
	copy(node.Children[i+2:], node.Children[i+1:len(node.Children)-1])
	node.Children[i+1] = childPageNum

	if len(node.Keys) <= nonLeafOccupancy(idx.attrType) {
		p.Data = encodeNonLeaf(node).Data
		return Key{}, pagefile.InvalidPageNum, idx.buf.UnpinPage(idx.file, pageNum, true)
	}

	mid := (len(node.Keys) - 1) / 2
	separator := node.Keys[mid]

	left := &NonLeafNode{Type: idx.attrType, AboveLeaves: node.AboveLeaves}
	left.Keys = append([]Key{}, node.Keys[:mid]...)
	left.Children = append([]uint32{}, node.Children[:mid+1]...)

	right := &NonLeafNode{Type: idx.attrType, AboveLeaves: node.AboveLeaves}
	right.Keys = append([]Key{}, node.Keys[mid+1:]...)
	right.Children = append([]uint32{}, node.Children[mid+1:]...)

	newPage, err := idx.buf.AllocatePage(idx.file)
	if err != nil {
		idx.buf.UnpinPage(idx.file, pageNum, false)
		return Key{}, 0, err
	}
	newPage.Data = encodeNonLeaf(right).Data
	if err := idx.buf.UnpinPage(idx.file, newPage.ID, true); err != nil {
		idx.buf.UnpinPage(idx.file, pageNum, false)
		return Key{}, 0, err
	}

	p.Data = encodeNonLeaf(left).Data
	if err := idx.buf.UnpinPage(idx.file, pageNum, true); err != nil {
		return Key{}, 0, err
	}

	return separator, newPage.ID, nil
}

// newRoot allocates a fresh non-leaf page with exactly one separator
// key and two children, and installs it as the tree's root. It is
// only ever called when a split has propagated all the way past the
// previous root.
func (idx *BTreeIndex) newRoot(leftChild uint32, key Key, rightChild uint32, childrenAreLeaves bool) error {
	root := &NonLeafNode{
		Type:        idx.attrType,
		Keys:        []Key{key},
		Children:    []uint32{leftChild, rightChild},
		AboveLeaves: childrenAreLeaves,
	}

	p, err := idx.buf.AllocatePage(idx.file)
	if err != nil {
		return err
	}
	p.Data = encodeNonLeaf(root).Data
	if err := idx.buf.UnpinPage(idx.file, p.ID, true); err != nil {
		return err
	}

	idx.rootPageNum = p.ID
	return idx.writeMeta()
}
