package btreeindex_test

import (
	"testing"

	"btreeidx/internal/btreeindex"
	"btreeidx/internal/bufmgr"
	"btreeidx/internal/rid"
)

func newTestIndex(t *testing.T, relName string, attrOffset int32, attrType btreeindex.Datatype) *btreeindex.BTreeIndex {
	t.Helper()
	dir := t.TempDir()
	buf := bufmgr.New(64, nil)
	idx, err := btreeindex.New(dir, relName, attrOffset, attrType, buf, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(idx.Close)
	return idx
}

func insertInts(t *testing.T, idx *btreeindex.BTreeIndex, from, to int) {
	t.Helper()
	step := 1
	if to < from {
		step = -1
	}
	for k := from; ; k += step {
		r := rid.RID{PageNum: uint32(k), SlotNum: 0}
		if err := idx.InsertEntry(btreeindex.IntKey(int32(k)), r); err != nil {
			t.Fatalf("InsertEntry(%d): %v", k, err)
		}
		if k == to {
			break
		}
	}
}

func collect(t *testing.T, idx *btreeindex.BTreeIndex) []rid.RID {
	t.Helper()
	var got []rid.RID
	for {
		_, r, err := idx.ScanNext()
		if err == btreeindex.ErrIndexScanCompleted {
			break
		}
		if err != nil {
			t.Fatalf("ScanNext: %v", err)
		}
		got = append(got, r)
	}
	return got
}

// TestAscendingInsertAndRangeScan covers S1: ascending build, then a
// closed range scan returns exactly the RIDs in the range in order.
func TestAscendingInsertAndRangeScan(t *testing.T) {
	idx := newTestIndex(t, "rel_s1", 0, btreeindex.TypeInt)
	insertInts(t, idx, 1, 5000)

	if err := idx.StartScan(btreeindex.IntKey(500), btreeindex.GTE, btreeindex.IntKey(1500), btreeindex.LTE); err != nil {
		t.Fatalf("StartScan: %v", err)
	}
	got := collect(t, idx)

	if len(got) != 1001 {
		t.Fatalf("got %d RIDs, want 1001", len(got))
	}
	for i, r := range got {
		want := uint32(500 + i)
		if r.PageNum != want {
			t.Fatalf("RID[%d].PageNum = %d, want %d", i, r.PageNum, want)
		}
	}
}

// TestOperatorExclusivity covers S2: open-interval bounds exclude the
// endpoints.
func TestOperatorExclusivity(t *testing.T) {
	idx := newTestIndex(t, "rel_s2", 0, btreeindex.TypeInt)
	insertInts(t, idx, 1, 5000)

	if err := idx.StartScan(btreeindex.IntKey(500), btreeindex.GT, btreeindex.IntKey(1500), btreeindex.LT); err != nil {
		t.Fatalf("StartScan: %v", err)
	}
	got := collect(t, idx)

	if len(got) != 999 {
		t.Fatalf("got %d RIDs, want 999", len(got))
	}
	if got[0].PageNum != 501 || got[len(got)-1].PageNum != 1499 {
		t.Fatalf("range is [%d, %d], want [501, 1499]", got[0].PageNum, got[len(got)-1].PageNum)
	}
}

// TestDescendingInsertStillOrdersAscending covers S3: insertion order
// does not affect the ascending order a scan returns entries in.
func TestDescendingInsertStillOrdersAscending(t *testing.T) {
	idx := newTestIndex(t, "rel_s3", 0, btreeindex.TypeInt)
	insertInts(t, idx, 5000, 1)

	if err := idx.StartScan(btreeindex.IntKey(1), btreeindex.GTE, btreeindex.IntKey(5), btreeindex.LTE); err != nil {
		t.Fatalf("StartScan: %v", err)
	}
	got := collect(t, idx)

	if len(got) != 5 {
		t.Fatalf("got %d RIDs, want 5", len(got))
	}
	for i, r := range got {
		want := uint32(1 + i)
		if r.PageNum != want {
			t.Fatalf("RID[%d].PageNum = %d, want %d", i, r.PageNum, want)
		}
	}
}

// TestRootPromotion covers S4: enough insertions to force leaf splits
// and at least one non-leaf split, confirming every entry inserted is
// still reachable by scan afterward.
func TestRootPromotion(t *testing.T) {
	idx := newTestIndex(t, "rel_s4", 0, btreeindex.TypeInt)
	insertInts(t, idx, 1, 400000)

	if err := idx.StartScan(btreeindex.IntKey(1), btreeindex.GTE, btreeindex.IntKey(400000), btreeindex.LTE); err != nil {
		t.Fatalf("StartScan: %v", err)
	}
	got := collect(t, idx)

	if len(got) != 400000 {
		t.Fatalf("got %d RIDs, want 400000", len(got))
	}
	for i, r := range got {
		want := uint32(1 + i)
		if r.PageNum != want {
			t.Fatalf("RID[%d].PageNum = %d, want %d", i, r.PageNum, want)
		}
	}
}

// TestStringPadding covers S5: a short string key is NUL-padded, and
// a range scan against unpadded bounds still matches it once.
func TestStringPadding(t *testing.T) {
	idx := newTestIndex(t, "rel_s5", 0, btreeindex.TypeString)

	if err := idx.InsertEntry(btreeindex.StringKey("aa"), rid.RID{PageNum: 1}); err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}

	if err := idx.StartScan(btreeindex.StringKey("a"), btreeindex.GTE, btreeindex.StringKey("b"), btreeindex.LT); err != nil {
		t.Fatalf("StartScan: %v", err)
	}
	got := collect(t, idx)

	if len(got) != 1 {
		t.Fatalf("got %d RIDs, want 1", len(got))
	}
	if got[0].PageNum != 1 {
		t.Fatalf("RID.PageNum = %d, want 1", got[0].PageNum)
	}
}

// TestDoubleSentinelValueIsAnOrdinaryKey covers S6: the sentinel value
// used to mark an unoccupied slot is also a legal double value to
// scan for once inserted, since this index never consults occupancy
// via the key bytes themselves (unlike the system it is modeled on).
func TestDoubleSentinelValueIsAnOrdinaryKey(t *testing.T) {
	idx := newTestIndex(t, "rel_s6", 0, btreeindex.TypeDouble)

	if err := idx.InsertEntry(btreeindex.DoubleKey(-1.0), rid.RID{PageNum: 7}); err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}
	if err := idx.InsertEntry(btreeindex.DoubleKey(3.5), rid.RID{PageNum: 8}); err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}

	if err := idx.StartScan(btreeindex.DoubleKey(-1.0), btreeindex.GTE, btreeindex.DoubleKey(-1.0), btreeindex.LTE); err != nil {
		t.Fatalf("StartScan: %v", err)
	}
	got := collect(t, idx)
	if len(got) != 1 || got[0].PageNum != 7 {
		t.Fatalf("got %v, want a single RID with PageNum 7", got)
	}
}

func TestStartScanRejectsBadOpcodes(t *testing.T) {
	idx := newTestIndex(t, "rel_badop", 0, btreeindex.TypeInt)
	err := idx.StartScan(btreeindex.IntKey(1), btreeindex.LT, btreeindex.IntKey(5), btreeindex.LTE)
	if err != btreeindex.ErrBadOpcodes {
		t.Fatalf("StartScan err = %v, want ErrBadOpcodes", err)
	}
}

func TestStartScanRejectsBadRange(t *testing.T) {
	idx := newTestIndex(t, "rel_badrange", 0, btreeindex.TypeInt)
	err := idx.StartScan(btreeindex.IntKey(10), btreeindex.GTE, btreeindex.IntKey(5), btreeindex.LTE)
	if err != btreeindex.ErrBadScanRange {
		t.Fatalf("StartScan err = %v, want ErrBadScanRange", err)
	}
}

func TestScanNextWithoutStartScan(t *testing.T) {
	idx := newTestIndex(t, "rel_noscan", 0, btreeindex.TypeInt)
	_, _, err := idx.ScanNext()
	if err != btreeindex.ErrScanNotInitialized {
		t.Fatalf("ScanNext err = %v, want ErrScanNotInitialized", err)
	}
}

// TestReopenRejectsMismatchedIndexInfo covers the BadIndexInfo check:
// reopening an index file with different attribute parameters fails
// rather than silently reinterpreting the file.
func TestReopenRejectsMismatchedIndexInfo(t *testing.T) {
	dir := t.TempDir()
	buf := bufmgr.New(64, nil)

	idx, err := btreeindex.New(dir, "rel_reopen", 0, btreeindex.TypeInt, buf, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	idx.Close()

	_, err = btreeindex.New(dir, "rel_reopen", 0, btreeindex.TypeDouble, buf, nil, nil)
	if err != btreeindex.ErrBadIndexInfo {
		t.Fatalf("New (mismatched) err = %v, want ErrBadIndexInfo", err)
	}
}
