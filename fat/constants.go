// Package fat implements the allocation/chaining engine, directory
// tree and persistence protocol of a single-volume, single-user
// FAT-style simulated filesystem. A Volume owns one in-memory image
// (FAT, directory table, block store) backed by one host file; every
// mutating operation updates the image and then rewrites the image in
// full before returning.
package fat

const (
	// DiskSize is the total addressable size of the block store in bytes.
	DiskSize = 64 * 1024 * 1024
	// BlockSize is the size in bytes of a single block.
	BlockSize = 1024
	// MaxBlocks is the number of blocks the block store holds.
	MaxBlocks = DiskSize / BlockSize
	// MaxFileName is the size in bytes of the on-disk name field, room for a
	// terminating NUL included: names must be at most MaxFileName-1 bytes.
	MaxFileName = 64
	// MaxFileSize is the largest a single file's content may grow to.
	MaxFileSize = 128 * 1024
	// maxFileBlocks is the largest a single file's chain may grow to.
	maxFileBlocks = MaxFileSize / BlockSize
	// DirectorySize is the maximum number of files a single directory may hold.
	DirectorySize = 128
	// MaxDirectories is the capacity of the directory table, root included.
	MaxDirectories = 100
)

// FAT sentinel values. Chains always terminate in EOC; FREE marks an
// unallocated block. Never the reverse — see table.go.
const (
	// Free marks a block that belongs to no chain.
	Free int32 = -1
	// EOC marks the last block of a chain.
	EOC int32 = -2
)

// rootIndex is the fixed directory-table slot for "/".
const rootIndex = 0

// rootParent is the parent index recorded for the root directory.
const rootParent = -1
