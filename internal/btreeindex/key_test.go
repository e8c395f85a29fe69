package btreeindex_test

import (
	"encoding/binary"
	"testing"

	"btreeidx/internal/btreeindex"
)

func putNativeInt32(rec []byte, offset int, v int32) {
	binary.NativeEndian.PutUint32(rec[offset:offset+4], uint32(v))
}

func TestCompareOrdersByType(t *testing.T) {
	if !btreeindex.Less(btreeindex.IntKey(1), btreeindex.IntKey(2)) {
		t.Fatalf("IntKey(1) should sort before IntKey(2)")
	}
	if !btreeindex.Less(btreeindex.DoubleKey(1.5), btreeindex.DoubleKey(2.5)) {
		t.Fatalf("DoubleKey(1.5) should sort before DoubleKey(2.5)")
	}
	if !btreeindex.Less(btreeindex.StringKey("aa"), btreeindex.StringKey("ab")) {
		t.Fatalf("StringKey(aa) should sort before StringKey(ab)")
	}
}

func TestStringKeyPadsWithNul(t *testing.T) {
	k := btreeindex.StringKey("aa")
	if k.String() != "aa" {
		t.Fatalf("k.String() = %q, want %q", k.String(), "aa")
	}
	if !btreeindex.Equal(k, btreeindex.StringKey("aa\x00\x00\x00")) {
		t.Fatalf("padding should not change equality")
	}
}

func TestStringKeyTruncatesOversizedInput(t *testing.T) {
	k := btreeindex.StringKey("twelve-chars")
	if len(k.String()) != btreeindex.StringKeySize {
		t.Fatalf("k.String() length = %d, want %d", len(k.String()), btreeindex.StringKeySize)
	}
}

func TestSentinelValues(t *testing.T) {
	if !btreeindex.IsSentinel(btreeindex.IntKey(-1)) {
		t.Fatalf("IntKey(-1) should be the INTEGER sentinel")
	}
	if !btreeindex.IsSentinel(btreeindex.DoubleKey(-1)) {
		t.Fatalf("DoubleKey(-1) should be the DOUBLE sentinel")
	}
	if !btreeindex.IsSentinel(btreeindex.StringKey("")) {
		t.Fatalf("an all-NUL STRING key should be the sentinel")
	}
	if btreeindex.IsSentinel(btreeindex.IntKey(0)) {
		t.Fatalf("IntKey(0) is not a sentinel")
	}
}

func TestFromAttrBytesInt(t *testing.T) {
	rec := make([]byte, 16)
	want := btreeindex.IntKey(42)
	putNativeInt32(rec, 4, 42)

	got, err := btreeindex.FromAttrBytes(btreeindex.TypeInt, rec, 4)
	if err != nil {
		t.Fatalf("FromAttrBytes: %v", err)
	}
	if !btreeindex.Equal(got, want) {
		t.Fatalf("FromAttrBytes = %v, want %v", got, want)
	}
}

func TestFromAttrBytesRejectsShortRecord(t *testing.T) {
	rec := make([]byte, 2)
	if _, err := btreeindex.FromAttrBytes(btreeindex.TypeInt, rec, 0); err == nil {
		t.Fatalf("expected an error reading past the end of a short record")
	}
}
