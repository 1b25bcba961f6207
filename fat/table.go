package fat

import "encoding/binary"

// table is the File Allocation Table: one int32 entry per block,
// holding Free, EOC, or the index of the next block in the chain.
// Exactly the non-Free entries form disjoint singly-linked chains,
// each ending in EOC — never in Free. Walkers compare against EOC,
// not Free, to find the end of a chain.
type table struct {
	entries []int32
}

// newTable returns a table of MaxBlocks entries, all Free.
func newTable() *table {
	t := &table{entries: make([]int32, MaxBlocks)}
	t.init()
	return t
}

// init resets every entry to Free.
func (t *table) init() {
	for i := range t.entries {
		t.entries[i] = Free
	}
}

// findFree performs a lowest-index first-fit scan and returns the
// first Free block, or ErrNoSpace if the table is exhausted. The
// policy is deterministic by design, not an optimization: it keeps
// tests reproducible and makes no attempt at fragmentation avoidance.
func (t *table) findFree() (int32, error) {
	for i, v := range t.entries {
		if v == Free {
			return int32(i), nil
		}
	}
	return 0, ErrNoSpace
}

// link terminates the chain at prev by pointing it at next, and marks
// next as the new end of chain. prev must currently be EOC.
func (t *table) link(prev, next int32) {
	if t.entries[prev] != EOC {
		panic("fat: link called on a non-terminal block")
	}
	t.entries[prev] = next
	t.entries[next] = EOC
}

// freeChain walks the chain starting at start, returning every block
// to Free. A Free start is a no-op, tolerating double-free of an
// already-empty file.
func (t *table) freeChain(start int32) {
	cur := start
	for cur != Free && cur != EOC {
		next := t.entries[cur]
		t.entries[cur] = Free
		cur = next
	}
}

// chainBlocks returns the ordered list of block indices in the chain
// starting at start. An empty chain (start == Free) yields nil.
func (t *table) chainBlocks(start int32) []int32 {
	if start == Free {
		return nil
	}
	var blocks []int32
	cur := start
	for {
		blocks = append(blocks, cur)
		next := t.entries[cur]
		if next == EOC {
			break
		}
		cur = next
	}
	return blocks
}

// chainLength returns the number of blocks in the chain starting at start.
func (t *table) chainLength(start int32) int {
	return len(t.chainBlocks(start))
}

// freeCount returns the number of Free entries.
func (t *table) freeCount() int {
	n := 0
	for _, v := range t.entries {
		if v == Free {
			n++
		}
	}
	return n
}

const tableByteSize = MaxBlocks * 4

// bytes serializes the table as MaxBlocks little-endian int32 entries.
func (t *table) bytes() []byte {
	b := make([]byte, tableByteSize)
	for i, v := range t.entries {
		binary.LittleEndian.PutUint32(b[i*4:i*4+4], uint32(v))
	}
	return b
}

// tableFromBytes deserializes a table previously produced by bytes.
func tableFromBytes(b []byte) *table {
	t := &table{entries: make([]int32, MaxBlocks)}
	for i := range t.entries {
		t.entries[i] = int32(binary.LittleEndian.Uint32(b[i*4 : i*4+4]))
	}
	return t
}
