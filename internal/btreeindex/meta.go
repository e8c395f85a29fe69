package btreeindex

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"strings"

	"btreeidx/internal/pagefile"
)

// relationNameSize bounds the relation name recorded on the meta
// page. Names longer than this cannot be indexed.
const relationNameSize = 20

// metaBodySize is the number of bytes covered by the meta page's
// checksum: the relation name plus the three fixed-width fields.
const metaBodySize = relationNameSize + 12

const metaPageNum uint32 = 1

// indexMeta is the fixed-layout first page of every index file: the
// information needed to tell whether an existing file matches the
// index a caller is asking to open, plus the current root page.
type indexMeta struct {
	RelationName   string
	AttrByteOffset int32
	AttrType       Datatype
	RootPageNum    uint32
}

func encodeMeta(m indexMeta) *pagefile.Page {
	p := &pagefile.Page{ID: metaPageNum}
	buf := p.Data[:]

	var nameBuf [relationNameSize]byte
	copy(nameBuf[:], m.RelationName)
	copy(buf[0:relationNameSize], nameBuf[:])

	off := relationNameSize
	binary.NativeEndian.PutUint32(buf[off:off+4], uint32(m.AttrByteOffset))
	binary.NativeEndian.PutUint32(buf[off+4:off+8], uint32(m.AttrType))
	binary.NativeEndian.PutUint32(buf[off+8:off+12], m.RootPageNum)

	binary.NativeEndian.PutUint32(buf[metaBodySize:metaBodySize+4], crc32.ChecksumIEEE(buf[:metaBodySize]))
	return p
}

// decodeMeta parses the meta page and verifies its checksum, the same
// crc32.ChecksumIEEE scheme the WAL in the system this layout is
// modeled on uses to detect a torn or corrupted page.
func decodeMeta(p *pagefile.Page) (indexMeta, error) {
	buf := p.Data[:]
	if metaBodySize+4 > len(buf) {
		return indexMeta{}, fmt.Errorf("btreeindex: decode meta: %w", ErrCorruptMeta)
	}

	want := binary.NativeEndian.Uint32(buf[metaBodySize : metaBodySize+4])
	got := crc32.ChecksumIEEE(buf[:metaBodySize])
	if want != got {
		return indexMeta{}, fmt.Errorf("btreeindex: meta checksum mismatch: %w", ErrCorruptMeta)
	}

	nameBytes := buf[0:relationNameSize]
	name := strings.TrimRight(string(nameBytes), "\x00")

	off := relationNameSize
	return indexMeta{
		RelationName:   name,
		AttrByteOffset: int32(binary.NativeEndian.Uint32(buf[off : off+4])),
		AttrType:       Datatype(binary.NativeEndian.Uint32(buf[off+4 : off+8])),
		RootPageNum:    binary.NativeEndian.Uint32(buf[off+8 : off+12]),
	}, nil
}

func indexFileName(relationName string, attrByteOffset int32) string {
	return fmt.Sprintf("%s.%d", relationName, attrByteOffset)
}
