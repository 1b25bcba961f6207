package fat

import "fmt"

// Mkdir creates a subdirectory named name in the current directory.
func (v *Volume) Mkdir(name string) error {
	cur := v.cursor
	if err := v.dirs.checkNewName(cur, name); err != nil {
		return err
	}
	if v.dirs.count >= MaxDirectories {
		return fmt.Errorf("%w", ErrDirTableFull)
	}
	v.dirs.allocate(cur, name)
	return v.commit()
}

// Cd changes the current directory. ".." moves to the parent (ErrAtRoot
// if already at root); any other name is looked up among the current
// directory's children (ErrNotFound if absent). Single path component
// only — no path traversal.
func (v *Volume) Cd(name string) error {
	if name == ".." {
		if v.cursor == rootIndex {
			return ErrAtRoot
		}
		v.cursor = v.dirs.dirs[v.cursor].parent
		return nil
	}
	idx := v.dirs.findChild(v.cursor, name)
	if idx == -1 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	v.cursor = idx
	return nil
}

// DirListing is the non-mutating report produced by List: child
// directory names followed by file entries, in the order held by the
// directory table.
type DirListing struct {
	Directories []string
	Files       []FileEntry
}

// List reports the contents of the current directory. It is
// non-mutating and touches only the in-memory image.
func (v *Volume) List() DirListing {
	d := &v.dirs.dirs[v.cursor]
	listing := DirListing{}
	for _, c := range d.children {
		listing.Directories = append(listing.Directories, v.dirs.dirs[c].name)
	}
	listing.Files = append(listing.Files, d.files...)
	return listing
}

// deleteRecursive frees every file's chain and recurses into every
// child in post-order, then clears idx's own file and child lists.
// The directory slot itself is never reclaimed: it becomes unreachable
// because no parent references it, but stale data in its record is
// left behind; nothing compacts the table to reclaim it.
func (v *Volume) deleteRecursive(idx int32) {
	d := &v.dirs.dirs[idx]
	for _, f := range d.files {
		v.fat.freeChain(f.StartBlock)
	}
	children := d.children
	for _, c := range children {
		v.deleteRecursive(c)
	}
	d.files = nil
	d.children = nil
}
