// Package btreeindex implements a disk-resident B+ tree secondary
// index over a single fixed-width attribute of a base relation. It is
// the core module: everything else in this repository (the paged
// file, the buffer manager, the relation scanner) exists to give this
// package somewhere to read and write pages and something to build an
// index over.
package btreeindex

import (
	"errors"
	"io"

	"btreeidx/internal/bufmgr"
	"btreeidx/internal/logger"
	"btreeidx/internal/pagefile"
	"btreeidx/internal/relation"
	"btreeidx/internal/rid"
)

// BTreeIndex is a single open index file: one attribute of one
// relation, one B+ tree. A caller builds it once with New and from
// then on calls InsertEntry and the scan methods; there is no
// delete-entry operation, matching the append-only growth model the
// on-disk format assumes.
type BTreeIndex struct {
	file           *pagefile.File
	buf            *bufmgr.Manager
	relationName   string
	attrByteOffset int32
	attrType       Datatype
	rootPageNum    uint32
	log            *logger.Logger

	scanExecuting bool
	scanLeaf      uint32
	scanPos       int
	lowVal        Key
	lowOp         Operator
	highVal       Key
	highOp        Operator
}

// Operator is a scan bound comparison, restricted to the four the
// scan engine understands; equality and inequality scans are not
// supported (spec data model §3).
type Operator int

const (
	LT Operator = iota
	LTE
	GT
	GTE
)

// New opens the index file for (relationName, attrByteOffset),
// creating and building it from the contents of scanner if it does
// not exist yet. If the file exists, its meta page must match
// relationName, attrByteOffset and attrType exactly or New fails
// with ErrBadIndexInfo; in that case scanner is not consulted.
//
// dir is the directory index files live in; the file itself is named
// "<relationName>.<attrByteOffset>" inside it.
func New(dir string, relationName string, attrByteOffset int32, attrType Datatype, buf *bufmgr.Manager, scanner relation.Scanner, log *logger.Logger) (*BTreeIndex, error) {
	if log == nil {
		log = logger.Discard()
	}
	if len(relationName) > relationNameSize {
		return nil, errors.New("btreeindex: relation name is longer than the meta page's 20-byte name field")
	}
	path := dir + "/" + indexFileName(relationName, attrByteOffset)

	f, existed, err := pagefile.Open(path, log)
	if err != nil {
		return nil, err
	}

	idx := &BTreeIndex{
		file:           f,
		buf:            buf,
		relationName:   relationName,
		attrByteOffset: attrByteOffset,
		attrType:       attrType,
		log:            log,
	}

	if existed {
		if err := idx.loadMeta(); err != nil {
			f.Close()
			return nil, err
		}
		return idx, nil
	}

	if err := idx.initMeta(); err != nil {
		f.Close()
		return nil, err
	}

	if scanner != nil {
		if err := idx.buildFromScan(scanner); err != nil {
			f.Close()
			return nil, err
		}
	}
	return idx, nil
}

func (idx *BTreeIndex) loadMeta() error {
	p, err := idx.buf.PinPage(idx.file, metaPageNum)
	if err != nil {
		return err
	}
	defer idx.buf.UnpinPage(idx.file, metaPageNum, false)

	m, err := decodeMeta(p)
	if err != nil {
		return err
	}
	if m.RelationName != idx.relationName || m.AttrByteOffset != idx.attrByteOffset || m.AttrType != idx.attrType {
		return ErrBadIndexInfo
	}
	idx.rootPageNum = m.RootPageNum
	return nil
}

// initMeta allocates the meta page and an initial empty leaf that
// doubles as the root, matching the layout a freshly created index
// starts with before any entry is inserted.
func (idx *BTreeIndex) initMeta() error {
	metaPage, err := idx.buf.AllocatePage(idx.file)
	if err != nil {
		return err
	}
	if metaPage.ID != metaPageNum {
		return ErrCorruptMeta
	}

	rootPage, err := idx.buf.AllocatePage(idx.file)
	if err != nil {
		idx.buf.UnpinPage(idx.file, metaPage.ID, false)
		return err
	}
	root := NewLeafNode(idx.attrType)
	rootPage.Data = encodeLeaf(root).Data
	if err := idx.buf.UnpinPage(idx.file, rootPage.ID, true); err != nil {
		return err
	}

	idx.rootPageNum = rootPage.ID
	*metaPage = *encodeMeta(indexMeta{
		RelationName:   idx.relationName,
		AttrByteOffset: idx.attrByteOffset,
		AttrType:       idx.attrType,
		RootPageNum:    idx.rootPageNum,
	})
	return idx.buf.UnpinPage(idx.file, metaPage.ID, true)
}

func (idx *BTreeIndex) writeMeta() error {
	p, err := idx.buf.PinPage(idx.file, metaPageNum)
	if err != nil {
		return err
	}
	*p = *encodeMeta(indexMeta{
		RelationName:   idx.relationName,
		AttrByteOffset: idx.attrByteOffset,
		AttrType:       idx.attrType,
		RootPageNum:    idx.rootPageNum,
	})
	return idx.buf.UnpinPage(idx.file, metaPageNum, true)
}

// buildFromScan replays every record scanner produces through
// InsertEntry, in whatever order the scanner delivers them.
func (idx *BTreeIndex) buildFromScan(scanner relation.Scanner) error {
	for {
		rec, err := scanner.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		key, err := FromAttrBytes(idx.attrType, rec.Data, idx.attrByteOffset)
		if err != nil {
			return err
		}
		if err := idx.InsertEntry(key, rec.RID); err != nil {
			return err
		}
	}
}

// Close ends any in-progress scan, flushes every dirty page belonging
// to this index's file, and closes the file. Errors flushing or
// closing are logged rather than surfaced: by the time a caller is
// closing an index there is nothing left to do differently with the
// error (spec error handling design §7).
func (idx *BTreeIndex) Close() {
	idx.scanExecuting = false

	if err := idx.buf.FlushFile(idx.file); err != nil {
		idx.log.Errorf("btreeindex: flush %s: %v", idx.file.Path(), err)
	}
	idx.buf.ForgetFile(idx.file)
	if err := idx.file.Close(); err != nil {
		idx.log.Errorf("btreeindex: close %s: %v", idx.file.Path(), err)
	}
}

// RID re-exports rid.RID so callers of this package don't need to
// import internal/rid themselves for the common case.
type RID = rid.RID

// RootPageNum reports the current root page, for diagnostics.
func (idx *BTreeIndex) RootPageNum() uint32 { return idx.rootPageNum }

// NumPages reports how many pages the index file occupies, including
// the meta page.
func (idx *BTreeIndex) NumPages() uint32 { return idx.file.NumPages() }

// RelationName reports the relation this index was built over.
func (idx *BTreeIndex) RelationName() string { return idx.relationName }

// AttrByteOffset reports the indexed attribute's byte offset.
func (idx *BTreeIndex) AttrByteOffset() int32 { return idx.attrByteOffset }

// AttrType reports the indexed attribute's datatype.
func (idx *BTreeIndex) AttrType() Datatype { return idx.attrType }
