package fat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTableFindFreeLowestIndexFirstFit(t *testing.T) {
	tb := newTable()
	tb.entries[0] = EOC
	tb.entries[2] = EOC

	got, err := tb.findFree()
	if err != nil {
		t.Fatalf("findFree returned error: %v", err)
	}
	if got != 1 {
		t.Fatalf("findFree = %d, want 1 (lowest free index)", got)
	}
}

func TestTableFindFreeExhausted(t *testing.T) {
	tb := &table{entries: make([]int32, 4)}
	for i := range tb.entries {
		tb.entries[i] = EOC
	}
	if _, err := tb.findFree(); err != ErrNoSpace {
		t.Fatalf("findFree on exhausted table = %v, want ErrNoSpace", err)
	}
}

func TestTableLinkAndChain(t *testing.T) {
	tb := newTable()
	tb.entries[0] = EOC
	tb.link(0, 5)
	tb.link(5, 9)

	got := tb.chainBlocks(0)
	want := []int32{0, 5, 9}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("chainBlocks mismatch (-want +got):\n%s", diff)
	}
	if tb.entries[9] != EOC {
		t.Fatalf("last block in chain must be EOC, got %d", tb.entries[9])
	}
}

func TestTableLinkPanicsOnNonTerminal(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic linking from a non-EOC block")
		}
	}()
	tb := newTable()
	tb.entries[0] = 3
	tb.link(0, 1)
}

func TestTableFreeChainReturnsBlocksToFree(t *testing.T) {
	tb := newTable()
	tb.entries[0] = EOC
	tb.link(0, 1)
	tb.link(1, 2)

	tb.freeChain(0)

	for _, i := range []int32{0, 1, 2} {
		if tb.entries[i] != Free {
			t.Fatalf("block %d = %d, want Free after freeChain", i, tb.entries[i])
		}
	}
}

func TestTableFreeChainToleratesFreeStart(t *testing.T) {
	tb := newTable()
	tb.freeChain(Free) // must not panic or index out of range
}

func TestTableBytesRoundTrip(t *testing.T) {
	tb := newTable()
	tb.entries[0] = EOC
	tb.link(0, 7)
	tb.entries[100] = EOC

	got := tableFromBytes(tb.bytes())
	if diff := cmp.Diff(tb, got, cmp.AllowUnexported(table{})); diff != "" {
		t.Fatalf("table round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestTableFreeCount(t *testing.T) {
	tb := newTable()
	if got := tb.freeCount(); got != MaxBlocks {
		t.Fatalf("freeCount on fresh table = %d, want %d", got, MaxBlocks)
	}
	tb.entries[0] = EOC
	if got := tb.freeCount(); got != MaxBlocks-1 {
		t.Fatalf("freeCount after one allocation = %d, want %d", got, MaxBlocks-1)
	}
}
