package fat

import "fmt"

// BlockDump is the result of a raw block read: the block's full
// contents plus a trailing free-byte count for diagnostic display.
type BlockDump struct {
	Index     int32
	Content   []byte
	FreeBytes int
}

// ReadBlock returns the raw contents of block i, regardless of
// whether it belongs to any file's chain.
func (v *Volume) ReadBlock(i int32) (BlockDump, error) {
	data, err := v.blocks.readBlock(i)
	if err != nil {
		return BlockDump{}, err
	}
	return BlockDump{Index: i, Content: data, FreeBytes: freeByteCount(data)}, nil
}

// WriteBlock places content directly into block i as a raw,
// file-chain-independent data placement: the block must currently be
// Free (else ErrInUse), content must fit in one block (else
// ErrTooLarge). The block is zeroed, content copied in, and marked
// EOC — it is not attached to any file.
func (v *Volume) WriteBlock(i int32, content []byte) error {
	if err := v.blocks.checkIndex(i); err != nil {
		return err
	}
	if v.fat.entries[i] != Free {
		return fmt.Errorf("%w: block %d", ErrInUse, i)
	}
	if len(content) > BlockSize {
		return fmt.Errorf("%w: %d bytes exceeds block size %d", ErrTooLarge, len(content), BlockSize)
	}
	if err := v.blocks.writeFull(i, content); err != nil {
		return err
	}
	v.fat.entries[i] = EOC
	return v.commit()
}
