package pagefile

// PageSize is the fixed size of every page in an index file, including
// the meta page. Node fan-out is derived from this constant.
const PageSize = 8192

// InvalidPageNum marks the absence of a page (e.g. a leaf with no
// right sibling, or a non-leaf child slot with no child yet).
const InvalidPageNum uint32 = 0

// Page is a single fixed-size block as read from or about to be
// written to an index file. Callers holding a Page obtained through
// the buffer manager must not retain it past the matching Unpin.
type Page struct {
	ID   uint32
	Data [PageSize]byte
}
