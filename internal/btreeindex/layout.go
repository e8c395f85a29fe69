package btreeindex

import (
	"encoding/binary"

	"btreeidx/internal/pagefile"
	"btreeidx/internal/rid"
)

// ridWidth is the serialized size of a rid.RID: two uint32s.
const ridWidth = 8

// pageIDWidth is the serialized size of a page number.
const pageIDWidth = 4

// leafOccupancy is the maximum number of entries a leaf node of type
// t can hold: floor((pageSize - sizeof(PageId)) / (keyWidth +
// sizeof(RID))), the fan-out formula this layout is modeled on. The
// subtracted sizeof(PageId) is the trailing right-sibling pointer; a
// leaf page carries no entry count of its own.
func leafOccupancy(t Datatype) int {
	return (pagefile.PageSize - pageIDWidth) / (t.byteWidth() + ridWidth)
}

// nonLeafOccupancy is the maximum number of keys a non-leaf node of
// type t can hold: floor((pageSize - sizeof(int) - sizeof(PageId)) /
// (keyWidth + sizeof(PageId))). The subtracted sizeof(int) is the
// leading level field; the subtracted sizeof(PageId) accounts for the
// pageNos array needing one more slot than there are keys.
//
// DOUBLE non-leaf nodes reserve one additional slot below what the
// division alone would give, carried over unchanged from the sizing
// formula in the system this layout is modeled on.
func nonLeafOccupancy(t Datatype) int {
	n := (pagefile.PageSize - pageIDWidth - pageIDWidth) / (t.byteWidth() + pageIDWidth)
	if t == TypeDouble {
		n--
	}
	return n
}

// LeafNode is the in-memory view of a leaf page: parallel arrays of
// keys and RIDs, kept sorted by key with RID as a secondary sort key,
// plus a pointer to the next leaf in key order (0 if this is the
// rightmost leaf).
type LeafNode struct {
	Type         Datatype
	Keys         []Key
	Rids         []rid.RID
	RightSibling uint32
}

// NonLeafNode is the in-memory view of a non-leaf page: numKeys
// separator keys and numKeys+1 child pointers. AboveLeaves is true
// when the immediate children are leaves, letting a caller holding
// this node decide whether to decode a child as a leaf or recurse one
// more level, without the child page itself carrying any tag.
type NonLeafNode struct {
	Type        Datatype
	Keys        []Key
	Children    []uint32
	AboveLeaves bool
}

// NewLeafNode returns an empty leaf node of the given type with no
// right sibling.
func NewLeafNode(t Datatype) *LeafNode {
	return &LeafNode{Type: t}
}

// encodeLeaf serializes n into a page buffer: the key array, then the
// RID array, then the right-sibling pointer. There is no entry count
// on the page; unused trailing key slots hold the sentinel so decode
// can recover the real entry count by scanning for it.
func encodeLeaf(n *LeafNode) *pagefile.Page {
	p := &pagefile.Page{}
	buf := p.Data[:]

	kw := n.Type.byteWidth()
	occ := leafOccupancy(n.Type)
	ridBase := occ * kw
	sibOffset := ridBase + occ*ridWidth

	sentinel := Sentinel(n.Type)
	for i := 0; i < occ; i++ {
		k := sentinel
		if i < len(n.Keys) {
			k = n.Keys[i]
		}
		encodeKey(k, buf[i*kw:(i+1)*kw])
	}
	for i := 0; i < occ; i++ {
		var r rid.RID
		if i < len(n.Rids) {
			r = n.Rids[i]
		}
		off := ridBase + i*ridWidth
		binary.NativeEndian.PutUint32(buf[off:off+4], r.PageNum)
		binary.NativeEndian.PutUint32(buf[off+4:off+8], r.SlotNum)
	}
	binary.NativeEndian.PutUint32(buf[sibOffset:sibOffset+4], n.RightSibling)
	return p
}

// decodeLeaf is the inverse of encodeLeaf. t is the index's attribute
// type, supplied by the caller since a leaf page carries no type tag
// of its own - every node in one index file shares the index's type.
// The entry count is recovered by scanning for the first sentinel key,
// since slots are always left-packed in ascending order.
func decodeLeaf(t Datatype, p *pagefile.Page) *LeafNode {
	buf := p.Data[:]
	kw := t.byteWidth()
	occ := leafOccupancy(t)
	ridBase := occ * kw
	sibOffset := ridBase + occ*ridWidth

	n := &LeafNode{
		Type:         t,
		RightSibling: binary.NativeEndian.Uint32(buf[sibOffset : sibOffset+4]),
	}

	sentinel := Sentinel(t)
	for i := 0; i < occ; i++ {
		k := decodeKey(t, buf[i*kw:(i+1)*kw])
		if Equal(k, sentinel) {
			break
		}
		off := ridBase + i*ridWidth
		n.Keys = append(n.Keys, k)
		n.Rids = append(n.Rids, rid.RID{
			PageNum: binary.NativeEndian.Uint32(buf[off : off+4]),
			SlotNum: binary.NativeEndian.Uint32(buf[off+4 : off+8]),
		})
	}
	return n
}

// encodeNonLeaf serializes n into a page buffer: the level field,
// then the key array, then the pageNos array (one more entry than
// there are keys). Unused trailing key slots hold the sentinel.
func encodeNonLeaf(n *NonLeafNode) *pagefile.Page {
	p := &pagefile.Page{}
	buf := p.Data[:]

	level := uint32(0)
	if n.AboveLeaves {
		level = 1
	}
	binary.NativeEndian.PutUint32(buf[0:4], level)

	kw := n.Type.byteWidth()
	occ := nonLeafOccupancy(n.Type)
	keyBase := pageIDWidth
	childBase := keyBase + occ*kw

	sentinel := Sentinel(n.Type)
	for i := 0; i < occ; i++ {
		k := sentinel
		if i < len(n.Keys) {
			k = n.Keys[i]
		}
		encodeKey(k, buf[keyBase+i*kw:keyBase+(i+1)*kw])
	}
	for i := 0; i <= occ; i++ {
		var c uint32
		if i < len(n.Children) {
			c = n.Children[i]
		}
		binary.NativeEndian.PutUint32(buf[childBase+i*4:childBase+(i+1)*4], c)
	}
	return p
}

// decodeNonLeaf is the inverse of encodeNonLeaf. The key count is
// recovered by scanning for the first sentinel key, the same
// convention decodeLeaf uses.
func decodeNonLeaf(t Datatype, p *pagefile.Page) *NonLeafNode {
	buf := p.Data[:]
	n := &NonLeafNode{
		Type:        t,
		AboveLeaves: binary.NativeEndian.Uint32(buf[0:4]) == 1,
	}

	kw := t.byteWidth()
	occ := nonLeafOccupancy(t)
	keyBase := pageIDWidth
	childBase := keyBase + occ*kw

	sentinel := Sentinel(t)
	numKeys := 0
	for ; numKeys < occ; numKeys++ {
		k := decodeKey(t, buf[keyBase+numKeys*kw:keyBase+(numKeys+1)*kw])
		if Equal(k, sentinel) {
			break
		}
		n.Keys = append(n.Keys, k)
	}
	for i := 0; i <= numKeys; i++ {
		n.Children = append(n.Children, binary.NativeEndian.Uint32(buf[childBase+i*4:childBase+(i+1)*4]))
	}
	return n
}
