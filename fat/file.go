package fat

import (
	"fmt"
	"time"
)

// Create makes a new, empty-or-seeded file named name in the current
// directory. Checks run in order: directory full, duplicate name, at
// least one free block.
//
// Create only ever allocates the file's first block: if content is
// longer than one block, the excess is silently dropped and size is
// capped at BlockSize. Use Write to store content spanning more than
// one block.
func (v *Volume) Create(name string, content []byte) error {
	cur := v.cursor
	d := &v.dirs.dirs[cur]
	if len(d.files) >= DirectorySize {
		return fmt.Errorf("%w", ErrDirFull)
	}
	if err := v.dirs.checkNewName(cur, name); err != nil {
		return err
	}
	block, err := v.fat.findFree()
	if err != nil {
		return err
	}
	v.fat.entries[block] = EOC

	size := len(content)
	if size > BlockSize {
		size = BlockSize
	}
	if err := v.blocks.writeFull(block, content[:size]); err != nil {
		return err
	}

	d.files = append(d.files, FileEntry{
		Name:       name,
		Size:       uint32(size),
		StartBlock: block,
		CreatedAt:  time.Now(),
	})
	return v.commit()
}

// Write overwrites a file's entire content. The existing chain is
// reused block by block; the chain is extended
// with newly allocated blocks when content grows past it, and trimmed
// back to Free when content shrinks. If allocation fails mid-write,
// the partial write is kept and persisted and ErrNoSpace is returned.
func (v *Volume) Write(name string, content []byte) error {
	cur := v.cursor
	pos := v.dirs.findFile(cur, name)
	if pos == -1 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	n := len(content)
	if n > MaxFileSize {
		return fmt.Errorf("%w", ErrTooLarge)
	}
	fe := &v.dirs.dirs[cur].files[pos]

	written := 0
	block := fe.StartBlock
	prev := int32(-1)
	var noSpace bool
	for written < n {
		chunk := content[written:min(written+BlockSize, n)]
		if err := v.blocks.writeFull(block, chunk); err != nil {
			return err
		}
		written += len(chunk)
		prev = block
		if written >= n {
			break
		}
		next := v.fat.entries[block]
		if next == EOC {
			nb, err := v.fat.findFree()
			if err != nil {
				noSpace = true
				break
			}
			v.fat.link(block, nb)
			block = nb
		} else {
			block = next
		}
	}

	if noSpace {
		fe.Size = uint32(written)
		if err := v.commit(); err != nil {
			return err
		}
		return ErrNoSpace
	}

	// shrink: free everything after the block holding byte n-1
	if n < int(fe.Size) {
		tailBlock := prev
		offsetInBlock := n % BlockSize
		if n == 0 {
			tailBlock = fe.StartBlock
		} else if offsetInBlock == 0 {
			offsetInBlock = BlockSize // tail block is exactly full of new content
		}
		tail := v.fat.entries[tailBlock]
		v.fat.freeChain(tail)
		v.fat.entries[tailBlock] = EOC
		if err := v.blocks.zeroFrom(tailBlock, offsetInBlock); err != nil {
			return err
		}
	}

	fe.Size = uint32(n)
	return v.commit()
}

// Append adds content to the end of a file's existing bytes,
// extending the chain with newly allocated blocks as needed.
// Partial writes under ErrNoSpace are persisted with size updated to
// the bytes actually written.
func (v *Volume) Append(name string, content []byte) error {
	cur := v.cursor
	pos := v.dirs.findFile(cur, name)
	if pos == -1 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	fe := &v.dirs.dirs[cur].files[pos]
	if int(fe.Size)+len(content) > MaxFileSize {
		return fmt.Errorf("%w", ErrTooLarge)
	}
	if len(content) == 0 {
		return v.commit()
	}

	chain := v.fat.chainBlocks(fe.StartBlock)
	lastBlock := chain[len(chain)-1]
	offset := int(fe.Size) % BlockSize
	if fe.Size > 0 && offset == 0 {
		offset = BlockSize // last block is exactly full
	}

	written := 0
	// fill the remainder of the last block first
	if offset < BlockSize {
		room := BlockSize - offset
		chunk := content[:min(room, len(content))]
		if err := v.blocks.writeAt(lastBlock, offset, chunk); err != nil {
			return err
		}
		written += len(chunk)
	}

	block := lastBlock
	var noSpace bool
	for written < len(content) {
		nb, err := v.fat.findFree()
		if err != nil {
			noSpace = true
			break
		}
		v.fat.link(block, nb)
		block = nb
		chunk := content[written:min(written+BlockSize, len(content))]
		if err := v.blocks.writeFull(block, chunk); err != nil {
			return err
		}
		written += len(chunk)
	}

	fe.Size += uint32(written)
	if err := v.commit(); err != nil {
		return err
	}
	if noSpace {
		return ErrNoSpace
	}
	return nil
}

// Truncate shrinks a file to newSize bytes. Growing is not supported
// (ErrGrow). newSize == 0 is a special case that keeps the file's
// start block, zeroed, rather than freeing it entirely — every
// existing file always owns at least one block (see Create).
func (v *Volume) Truncate(name string, newSize int) error {
	cur := v.cursor
	pos := v.dirs.findFile(cur, name)
	if pos == -1 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	fe := &v.dirs.dirs[cur].files[pos]
	if newSize > int(fe.Size) {
		return fmt.Errorf("%w", ErrGrow)
	}

	if newSize == 0 {
		v.fat.freeChain(v.fat.entries[fe.StartBlock])
		v.fat.entries[fe.StartBlock] = EOC
		if err := v.blocks.zeroFrom(fe.StartBlock, 0); err != nil {
			return err
		}
		fe.Size = 0
		return v.commit()
	}

	chain := v.fat.chainBlocks(fe.StartBlock)
	cumulative := 0
	keepIdx := 0
	for i, blk := range chain {
		cumulative += BlockSize
		keepIdx = i
		if cumulative >= newSize {
			_ = blk
			break
		}
	}
	keepBlock := chain[keepIdx]
	offsetInBlock := newSize % BlockSize
	if offsetInBlock == 0 {
		offsetInBlock = BlockSize
	}
	if err := v.blocks.zeroFrom(keepBlock, offsetInBlock); err != nil {
		return err
	}
	if keepIdx+1 < len(chain) {
		v.fat.freeChain(chain[keepIdx+1])
	}
	v.fat.entries[keepBlock] = EOC

	fe.Size = uint32(newSize)
	return v.commit()
}

// Delete removes name from the current directory: a child directory is
// removed via recursive delete, a file's chain is freed and its entry
// removed. ErrNotFound if name matches neither.
func (v *Volume) Delete(name string) error {
	cur := v.cursor
	if childIdx := v.dirs.findChild(cur, name); childIdx != -1 {
		v.deleteRecursive(childIdx)
		v.dirs.removeChildValue(cur, childIdx)
		return v.commit()
	}
	if pos := v.dirs.findFile(cur, name); pos != -1 {
		fe := v.dirs.dirs[cur].files[pos]
		v.fat.freeChain(fe.StartBlock)
		v.dirs.removeFileAt(cur, pos)
		return v.commit()
	}
	return fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Rename changes the name of a file or child directory in the current
// directory.
func (v *Volume) Rename(oldName, newName string) error {
	cur := v.cursor
	if len(newName) >= MaxFileName {
		return fmt.Errorf("%w: %q", ErrNameTooLong, newName)
	}
	if v.dirs.nameExists(cur, newName) {
		return fmt.Errorf("%w: %q", ErrNameExists, newName)
	}
	if pos := v.dirs.findFile(cur, oldName); pos != -1 {
		v.dirs.dirs[cur].files[pos].Name = newName
		return v.commit()
	}
	if childIdx := v.dirs.findChild(cur, oldName); childIdx != -1 {
		v.dirs.dirs[childIdx].name = newName
		return v.commit()
	}
	return fmt.Errorf("%w: %q", ErrNotFound, oldName)
}

// Move relocates a file from the current directory into a named child
// directory, by value: the FAT chain and blocks are unchanged, only
// the FileEntry moves between directory records.
func (v *Volume) Move(fileName, dirName string) error {
	cur := v.cursor
	pos := v.dirs.findFile(cur, fileName)
	if pos == -1 {
		return fmt.Errorf("%w: %q", ErrNotFound, fileName)
	}
	dstIdx := v.dirs.findChild(cur, dirName)
	if dstIdx == -1 {
		return fmt.Errorf("%w: %q", ErrNotFound, dirName)
	}
	dst := &v.dirs.dirs[dstIdx]
	if len(dst.files) >= DirectorySize {
		return fmt.Errorf("%w", ErrDirFull)
	}

	fe := v.dirs.dirs[cur].files[pos]
	dst.files = append(dst.files, fe)
	v.dirs.removeFileAt(cur, pos)
	return v.commit()
}

// Read returns the full content of a file in the current directory.
// It is non-mutating. A chain shorter than size/BlockSize (a
// consistency violation) is tolerated: Read stops at EOC rather than
// reading past the end of the chain.
func (v *Volume) Read(name string) ([]byte, error) {
	cur := v.cursor
	pos := v.dirs.findFile(cur, name)
	if pos == -1 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	fe := v.dirs.dirs[cur].files[pos]
	if fe.Size == 0 {
		return []byte{}, nil
	}

	out := make([]byte, 0, fe.Size)
	remaining := int(fe.Size)
	block := fe.StartBlock
	for remaining > 0 {
		data, err := v.blocks.readBlock(block)
		if err != nil {
			return nil, err
		}
		take := min(remaining, BlockSize)
		out = append(out, data[:take]...)
		remaining -= take
		if remaining == 0 {
			break
		}
		next := v.fat.entries[block]
		if next == EOC {
			break
		}
		block = next
	}
	return out, nil
}
