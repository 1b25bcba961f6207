package fat

import "errors"

// Error taxonomy. All are user-visible and, save ErrImageIO at mount
// time, non-fatal: callers abandon the single failed operation and the
// volume remains usable. Compare with errors.Is, not string matching.
var (
	// ErrNotFound is returned when a named file or directory is absent
	// from the current directory.
	ErrNotFound = errors.New("fat: no such file or directory")
	// ErrNameExists is returned when a name collides with an existing
	// file or child directory in the current directory.
	ErrNameExists = errors.New("fat: name already exists")
	// ErrNameTooLong is returned when a name is MaxFileName bytes or longer.
	ErrNameTooLong = errors.New("fat: name too long")
	// ErrDirFull is returned when a directory already holds DirectorySize files.
	ErrDirFull = errors.New("fat: directory is full")
	// ErrDirTableFull is returned when the directory table has no free slot.
	ErrDirTableFull = errors.New("fat: directory table is full")
	// ErrNoSpace is returned when the FAT has no free block to allocate.
	ErrNoSpace = errors.New("fat: no space left on volume")
	// ErrTooLarge is returned when an operation would exceed MaxFileSize.
	ErrTooLarge = errors.New("fat: file too large")
	// ErrGrow is returned when truncate is asked to grow a file.
	ErrGrow = errors.New("fat: truncate cannot grow a file")
	// ErrInvalidBlock is returned when a raw block index is out of range.
	ErrInvalidBlock = errors.New("fat: invalid block index")
	// ErrInUse is returned when a raw block write targets a non-free block.
	ErrInUse = errors.New("fat: block already in use")
	// ErrAtRoot is returned by Cd("..") when already at the root directory.
	ErrAtRoot = errors.New("fat: already at root")
	// ErrImageIO is returned when the backing host file cannot be
	// opened, read or written. Fatal only at Mount; on a later commit
	// it is reported and the in-memory change is kept (best-effort).
	ErrImageIO = errors.New("fat: image i/o error")
)
