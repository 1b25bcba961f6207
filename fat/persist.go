package fat

import (
	"encoding/binary"
	"fmt"
)

// On-disk layout, a contiguous snapshot rewritten in full on every commit:
//
//	offset 0                   : FAT               (MaxBlocks x int32, little-endian)
//	offset sizeof(FAT)         : directory_count   (int32)
//	offset sizeof(FAT)+4       : directories       (MaxDirectories x directoryEntry)
//	offset ... + dirs          : block_store       (MaxBlocks x BlockSize)
//
// Every integer is little-endian. Total image size never depends on
// contents, which is what makes a full-image rewrite safe to reason
// about: the host file never needs to grow or shrink after Format.
const (
	fileEntryBytes = MaxFileName + 4 + 4 // name + size + start_block
	dirEntryBytes  = MaxFileName + 4 + 4 + DirectorySize*fileEntryBytes + 4 + MaxDirectories*4

	dirCountOffset = tableByteSize
	dirsOffset     = dirCountOffset + 4
	blocksOffset   = dirsOffset + MaxDirectories*dirEntryBytes
	// ImageSize is the fixed, content-independent size in bytes of the
	// persisted image.
	ImageSize = blocksOffset + MaxBlocks*BlockSize
)

func putPaddedName(b []byte, name string) {
	n := copy(b, name)
	for i := n; i < len(b); i++ {
		b[i] = 0
	}
}

func getPaddedName(b []byte) string {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}

func (fe *FileEntry) putBytes(b []byte) {
	putPaddedName(b[0:MaxFileName], fe.Name)
	binary.LittleEndian.PutUint32(b[MaxFileName:MaxFileName+4], fe.Size)
	binary.LittleEndian.PutUint32(b[MaxFileName+4:MaxFileName+8], uint32(fe.StartBlock))
}

func fileEntryFromBytes(b []byte) FileEntry {
	return FileEntry{
		Name:       getPaddedName(b[0:MaxFileName]),
		Size:       binary.LittleEndian.Uint32(b[MaxFileName : MaxFileName+4]),
		StartBlock: int32(binary.LittleEndian.Uint32(b[MaxFileName+4 : MaxFileName+8])),
	}
}

func (d *directoryEntry) putBytes(b []byte) {
	off := 0
	putPaddedName(b[off:off+MaxFileName], d.name)
	off += MaxFileName
	binary.LittleEndian.PutUint32(b[off:off+4], uint32(d.parent))
	off += 4
	binary.LittleEndian.PutUint32(b[off:off+4], uint32(len(d.files)))
	off += 4
	for i := 0; i < DirectorySize; i++ {
		entryBuf := b[off+i*fileEntryBytes : off+(i+1)*fileEntryBytes]
		if i < len(d.files) {
			d.files[i].putBytes(entryBuf)
		} else {
			for j := range entryBuf {
				entryBuf[j] = 0
			}
		}
	}
	off += DirectorySize * fileEntryBytes
	binary.LittleEndian.PutUint32(b[off:off+4], uint32(len(d.children)))
	off += 4
	for i := 0; i < MaxDirectories; i++ {
		v := int32(0)
		if i < len(d.children) {
			v = d.children[i]
		}
		binary.LittleEndian.PutUint32(b[off+i*4:off+(i+1)*4], uint32(v))
	}
}

func directoryEntryFromBytes(b []byte) directoryEntry {
	off := 0
	name := getPaddedName(b[off : off+MaxFileName])
	off += MaxFileName
	parent := int32(binary.LittleEndian.Uint32(b[off : off+4]))
	off += 4
	fileCount := int(binary.LittleEndian.Uint32(b[off : off+4]))
	off += 4
	var files []FileEntry
	for i := 0; i < fileCount; i++ {
		entryBuf := b[off+i*fileEntryBytes : off+(i+1)*fileEntryBytes]
		files = append(files, fileEntryFromBytes(entryBuf))
	}
	off += DirectorySize * fileEntryBytes
	childCount := int(binary.LittleEndian.Uint32(b[off : off+4]))
	off += 4
	var children []int32
	for i := 0; i < childCount; i++ {
		children = append(children, int32(binary.LittleEndian.Uint32(b[off+i*4:off+(i+1)*4])))
	}
	return directoryEntry{name: name, parent: parent, files: files, children: children}
}

func (dt *dirTable) bytes() []byte {
	b := make([]byte, 4+MaxDirectories*dirEntryBytes)
	binary.LittleEndian.PutUint32(b[0:4], uint32(dt.count))
	for i := 0; i < MaxDirectories; i++ {
		dt.dirs[i].putBytes(b[4+i*dirEntryBytes : 4+(i+1)*dirEntryBytes])
	}
	return b
}

func dirTableFromBytes(b []byte) (*dirTable, error) {
	if len(b) != 4+MaxDirectories*dirEntryBytes {
		return nil, fmt.Errorf("fat: corrupt directory table section (%d bytes)", len(b))
	}
	dt := &dirTable{count: int32(binary.LittleEndian.Uint32(b[0:4]))}
	for i := 0; i < MaxDirectories; i++ {
		dt.dirs[i] = directoryEntryFromBytes(b[4+i*dirEntryBytes : 4+(i+1)*dirEntryBytes])
	}
	return dt, nil
}

func (bs *blockStore) bytes() []byte {
	b := make([]byte, MaxBlocks*BlockSize)
	for i, blk := range bs.blocks {
		copy(b[i*BlockSize:(i+1)*BlockSize], blk)
	}
	return b
}

func blockStoreFromBytes(b []byte) (*blockStore, error) {
	if len(b) != MaxBlocks*BlockSize {
		return nil, fmt.Errorf("fat: corrupt block store section (%d bytes)", len(b))
	}
	bs := newBlockStore()
	for i := range bs.blocks {
		copy(bs.blocks[i], b[i*BlockSize:(i+1)*BlockSize])
	}
	return bs, nil
}

// imageBytes serializes the full in-memory image in persistence order.
func imageBytes(t *table, dt *dirTable, bs *blockStore) []byte {
	out := make([]byte, ImageSize)
	copy(out[0:tableByteSize], t.bytes())
	copy(out[dirCountOffset:blocksOffset], dt.bytes())
	copy(out[blocksOffset:ImageSize], bs.bytes())
	return out
}

// imageFromBytes deserializes a full image previously produced by imageBytes.
func imageFromBytes(b []byte) (*table, *dirTable, *blockStore, error) {
	if len(b) != ImageSize {
		return nil, nil, nil, fmt.Errorf("fat: image has %d bytes, want %d", len(b), ImageSize)
	}
	t := tableFromBytes(b[0:tableByteSize])
	dt, err := dirTableFromBytes(b[dirCountOffset:blocksOffset])
	if err != nil {
		return nil, nil, nil, err
	}
	bs, err := blockStoreFromBytes(b[blocksOffset:ImageSize])
	if err != nil {
		return nil, nil, nil, err
	}
	return t, dt, bs, nil
}
