// Package relation is the relation-scan collaborator: it supplies the
// fixed-width records of a base relation, in arbitrary order, so the
// index can be built by replaying every record through insertEntry.
// It knows nothing about attributes, keys, or the index file format.
package relation

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"btreeidx/internal/rid"
)

// Record is one tuple as delivered by a Scanner: its identity in the
// base relation, and the raw fixed-width bytes the index reads its
// key attribute out of at a configured offset.
type Record struct {
	RID  rid.RID
	Data []byte
}

// Scanner streams records one at a time. Next returns io.EOF, wrapped
// or bare, once every record has been delivered.
type Scanner interface {
	Next() (Record, error)
	Close() error
}

// FixedWidthFile scans a flat file of RecordSize-byte records. Each
// record is treated as occupying its own page in the base relation,
// so its RID is (page number = 1-based record index, slot number = 0)
// - the same convention the scenario tests in spec.md §8 assume.
type FixedWidthFile struct {
	r          *bufio.Reader
	f          *os.File
	recordSize int
	nextPage   uint32
}

// OpenFixedWidth opens path for sequential scanning.
func OpenFixedWidth(path string, recordSize int) (*FixedWidthFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("relation: open %s: %w", path, err)
	}
	return &FixedWidthFile{
		r:          bufio.NewReaderSize(f, recordSize*64),
		f:          f,
		recordSize: recordSize,
		nextPage:   1,
	}, nil
}

// Next returns the next record, or io.EOF when the file is exhausted.
func (s *FixedWidthFile) Next() (Record, error) {
	buf := make([]byte, s.recordSize)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		if err == io.ErrUnexpectedEOF {
			return Record{}, io.EOF
		}
		return Record{}, err
	}
	rec := Record{
		RID:  rid.RID{PageNum: s.nextPage, SlotNum: 0},
		Data: buf,
	}
	s.nextPage++
	return rec, nil
}

// Close releases the underlying file handle.
func (s *FixedWidthFile) Close() error {
	return s.f.Close()
}
