package fat

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// The on-disk FileEntry layout has no timestamp field, so CreatedAt
// never survives a round trip through bytes()/fromBytes(). Round-trip
// comparisons in this file ignore it for that reason.
var cmpIgnoreCreatedAt = cmpopts.IgnoreFields(FileEntry{}, "CreatedAt")

func TestDirTableBytesRoundTrip(t *testing.T) {
	dt := &dirTable{}
	dt.reset()
	dt.dirs[rootIndex].files = append(dt.dirs[rootIndex].files, FileEntry{
		Name:       "a.txt",
		Size:       42,
		StartBlock: 7,
	})
	dt.allocate(rootIndex, "sub")

	got, err := dirTableFromBytes(dt.bytes())
	if err != nil {
		t.Fatalf("dirTableFromBytes: %v", err)
	}
	if diff := cmp.Diff(dt, got, cmp.AllowUnexported(dirTable{}, directoryEntry{}), cmpIgnoreCreatedAt); diff != "" {
		t.Fatalf("dirTable round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDirTableBytesRoundTripDropsCreatedAt(t *testing.T) {
	// The on-disk directory entry layout has no timestamp field: a
	// remount never recovers CreatedAt. Persist layer tests must not
	// assume it survives a round trip.
	dt := &dirTable{}
	dt.reset()
	dt.dirs[rootIndex].files = append(dt.dirs[rootIndex].files, FileEntry{Name: "f", CreatedAt: time.Now()})

	got, err := dirTableFromBytes(dt.bytes())
	if err != nil {
		t.Fatalf("dirTableFromBytes: %v", err)
	}
	if !got.dirs[rootIndex].files[0].CreatedAt.IsZero() {
		t.Fatal("CreatedAt must round-trip as zero; it is not part of the persisted layout")
	}
}

func TestBlockStoreBytesRoundTrip(t *testing.T) {
	bs := newBlockStore()
	bs.writeFull(0, []byte("hello"))
	bs.writeFull(MaxBlocks-1, []byte("world"))

	got, err := blockStoreFromBytes(bs.bytes())
	if err != nil {
		t.Fatalf("blockStoreFromBytes: %v", err)
	}
	if diff := cmp.Diff(bs, got, cmp.AllowUnexported(blockStore{})); diff != "" {
		t.Fatalf("blockStore round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestImageBytesRoundTrip(t *testing.T) {
	tb := newTable()
	tb.entries[0] = EOC
	dt := &dirTable{}
	dt.reset()
	dt.dirs[rootIndex].files = append(dt.dirs[rootIndex].files, FileEntry{Name: "f", Size: 3, StartBlock: 0})
	bs := newBlockStore()
	bs.writeFull(0, []byte("xyz"))

	buf := imageBytes(tb, dt, bs)
	if len(buf) != ImageSize {
		t.Fatalf("imageBytes produced %d bytes, want ImageSize %d", len(buf), ImageSize)
	}

	gotTable, gotDirs, gotBlocks, err := imageFromBytes(buf)
	if err != nil {
		t.Fatalf("imageFromBytes: %v", err)
	}
	if diff := cmp.Diff(tb, gotTable, cmp.AllowUnexported(table{})); diff != "" {
		t.Fatalf("table mismatch after image round trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(dt, gotDirs, cmp.AllowUnexported(dirTable{}, directoryEntry{}), cmpIgnoreCreatedAt); diff != "" {
		t.Fatalf("dirTable mismatch after image round trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(bs, gotBlocks, cmp.AllowUnexported(blockStore{})); diff != "" {
		t.Fatalf("blockStore mismatch after image round trip (-want +got):\n%s", diff)
	}
}

func TestImageFromBytesRejectsWrongSize(t *testing.T) {
	if _, _, _, err := imageFromBytes(make([]byte, 10)); err == nil {
		t.Fatal("imageFromBytes on a short buffer should return an error")
	}
}
