package relation_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"btreeidx/internal/relation"
)

func TestFixedWidthFileAssignsSequentialRIDs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rel.dat")

	const recordSize = 8
	var data []byte
	for i := 0; i < 5; i++ {
		data = append(data, byte(i), 0, 0, 0, 0, 0, 0, 0)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := relation.OpenFixedWidth(path, recordSize)
	if err != nil {
		t.Fatalf("OpenFixedWidth: %v", err)
	}
	defer s.Close()

	for i := 0; i < 5; i++ {
		rec, err := s.Next()
		if err != nil {
			t.Fatalf("Next(%d): %v", i, err)
		}
		if rec.RID.PageNum != uint32(i+1) || rec.RID.SlotNum != 0 {
			t.Fatalf("Next(%d).RID = %+v, want page %d slot 0", i, rec.RID, i+1)
		}
		if rec.Data[0] != byte(i) {
			t.Fatalf("Next(%d).Data[0] = %d, want %d", i, rec.Data[0], i)
		}
	}

	if _, err := s.Next(); err != io.EOF {
		t.Fatalf("Next at end = %v, want io.EOF", err)
	}
}

func TestFixedWidthFileRejectsTrailingPartialRecord(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rel.dat")

	if err := os.WriteFile(path, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := relation.OpenFixedWidth(path, 8)
	if err != nil {
		t.Fatalf("OpenFixedWidth: %v", err)
	}
	defer s.Close()

	if _, err := s.Next(); err != io.EOF {
		t.Fatalf("Next = %v, want io.EOF", err)
	}
}
