package pagefile_test

import (
	"os"
	"path/filepath"
	"testing"

	"btreeidx/internal/pagefile"
)

func TestOpenCreatesThenReopensExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rel.0")

	f, existed, err := pagefile.Open(path, nil)
	if err != nil {
		t.Fatalf("Open (create): %v", err)
	}
	if existed {
		t.Fatalf("Open reported existed=true for a brand new file")
	}
	if f.NumPages() != 0 {
		t.Fatalf("NumPages = %d, want 0", f.NumPages())
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f2, existed2, err := pagefile.Open(path, nil)
	if err != nil {
		t.Fatalf("Open (reopen): %v", err)
	}
	defer f2.Close()
	if !existed2 {
		t.Fatalf("Open reported existed=false for a file created by a prior Open")
	}
}

func TestAllocateReadWritePageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rel.0")

	f, _, err := pagefile.Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	pageNum, err := f.AllocatePage()
	if err != nil {
		t.Fatalf("AllocatePage: %v", err)
	}
	if pageNum != 1 {
		t.Fatalf("AllocatePage = %d, want 1", pageNum)
	}

	p := &pagefile.Page{ID: pageNum}
	p.Data[0] = 0xAB
	p.Data[pagefile.PageSize-1] = 0xCD
	if err := f.WritePage(pageNum, p); err != nil {
		t.Fatalf("WritePage: %v", err)
	}

	got, err := f.ReadPage(pageNum)
	if err != nil {
		t.Fatalf("ReadPage: %v", err)
	}
	if got.Data[0] != 0xAB || got.Data[pagefile.PageSize-1] != 0xCD {
		t.Fatalf("ReadPage returned unexpected contents")
	}
}

func TestReadPageRejectsOutOfRangeNumber(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rel.0")

	f, _, err := pagefile.Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	if _, err := f.ReadPage(1); err == nil {
		t.Fatalf("ReadPage(1) on an empty file should fail")
	}
	if _, err := f.ReadPage(pagefile.InvalidPageNum); err == nil {
		t.Fatalf("ReadPage(InvalidPageNum) should fail")
	}
}

func TestOpenRejectsBadSignature(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rel.0")

	if err := os.WriteFile(path, []byte("not an index file at all"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, _, err := pagefile.Open(path, nil); err == nil {
		t.Fatalf("Open should reject a file without the index signature")
	}
}
