package fat

import (
	"fmt"
	"time"
)

// EntryKind distinguishes a file from a directory in Info results.
type EntryKind int

const (
	// KindFile marks a file entry.
	KindFile EntryKind = iota
	// KindDirectory marks a child directory entry.
	KindDirectory
)

// Info is the metadata reported for a single named entry in the
// current directory. CreatedAt is only meaningful for files and only
// when Create recorded it.
type Info struct {
	Name       string
	Kind       EntryKind
	Size       uint32
	StartBlock int32
	ChildCount int
	CreatedAt  time.Time
}

// Stat reports metadata for a file or child directory named name in
// the current directory.
func (v *Volume) Stat(name string) (Info, error) {
	cur := v.cursor
	if pos := v.dirs.findFile(cur, name); pos != -1 {
		fe := v.dirs.dirs[cur].files[pos]
		return Info{
			Name:       fe.Name,
			Kind:       KindFile,
			Size:       fe.Size,
			StartBlock: fe.StartBlock,
			CreatedAt:  fe.CreatedAt,
		}, nil
	}
	if childIdx := v.dirs.findChild(cur, name); childIdx != -1 {
		child := v.dirs.dirs[childIdx]
		return Info{
			Name:       child.name,
			Kind:       KindDirectory,
			ChildCount: len(child.children) + len(child.files),
		}, nil
	}
	return Info{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// ChainOf returns the ordered block indices backing a file, useful for
// low-level tooling and for tests that assert chains never overlap.
func (v *Volume) ChainOf(name string) ([]int32, error) {
	cur := v.cursor
	pos := v.dirs.findFile(cur, name)
	if pos == -1 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	fe := v.dirs.dirs[cur].files[pos]
	return v.fat.chainBlocks(fe.StartBlock), nil
}

// DiskRange is one contiguous run of blocks within a file's chain.
// Consecutive blocks in the chain (block N followed by block N+1) are
// coalesced into a single range; a chain with no two consecutive
// blocks yields one single-block range per entry.
type DiskRange struct {
	Start int32
	End   int32
}

// DiskRangesOf returns a file's chain as a minimal list of contiguous
// block ranges rather than one entry per block, which is more useful
// than ChainOf for reporting how fragmented a file's storage is.
func (v *Volume) DiskRangesOf(name string) ([]DiskRange, error) {
	chain, err := v.ChainOf(name)
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		return nil, nil
	}
	ranges := []DiskRange{{Start: chain[0], End: chain[0]}}
	for _, blk := range chain[1:] {
		last := &ranges[len(ranges)-1]
		if blk == last.End+1 {
			last.End = blk
			continue
		}
		ranges = append(ranges, DiskRange{Start: blk, End: blk})
	}
	return ranges, nil
}

// Stats summarizes volume-wide allocator and directory table occupancy.
type Stats struct {
	FreeBlocks     int
	UsedBlocks     int
	DirectoryCount int32
	DirectoryTotal int32
}

// Stats reports free/used block counts and directory table occupancy.
func (v *Volume) Stats() Stats {
	free := v.fat.freeCount()
	return Stats{
		FreeBlocks:     free,
		UsedBlocks:     MaxBlocks - free,
		DirectoryCount: v.dirs.count,
		DirectoryTotal: MaxDirectories,
	}
}

// Path returns the slash-joined path of the current directory from
// root, e.g. "/" or "/sub/child". Built for the REPL prompt.
func (v *Volume) Path() string {
	var parts []string
	idx := v.cursor
	for idx != rootIndex {
		d := v.dirs.dirs[idx]
		parts = append([]string{d.name}, parts...)
		idx = d.parent
	}
	if len(parts) == 0 {
		return "/"
	}
	out := ""
	for _, p := range parts {
		out += "/" + p
	}
	return out
}
