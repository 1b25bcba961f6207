package backend

import (
	"fmt"
	"os"
)

// hostFile is the default Storage: a single *os.File opened for
// read-write access and held open until Close.
type hostFile struct {
	f *os.File
}

// backend.Storage interface guard
var _ Storage = (*hostFile)(nil)

// Exists reports whether pathName already exists on the host
// filesystem. Mount (fat.Mount) uses this to decide between loading an
// existing image and formatting a new one.
func Exists(pathName string) bool {
	_, err := os.Stat(pathName)
	return err == nil
}

// Open opens an existing image file at pathName for read-write access.
// It returns ErrNotExist (wrapped) if the file is absent.
func Open(pathName string) (Storage, error) {
	if _, err := os.Stat(pathName); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, pathName)
	}
	f, err := os.OpenFile(pathName, os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("backend: could not open image %s: %w", pathName, err)
	}
	return &hostFile{f: f}, nil
}

// Create creates a new image file at pathName, sized to size bytes.
// It fails if the file already exists.
func Create(pathName string, size int64) (Storage, error) {
	if size <= 0 {
		return nil, fmt.Errorf("backend: must pass a valid image size to create, got %d", size)
	}
	f, err := os.OpenFile(pathName, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("backend: could not create image %s: %w", pathName, err)
	}
	if err := f.Truncate(size); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("backend: could not size image %s to %d bytes: %w", pathName, size, err)
	}
	return &hostFile{f: f}, nil
}

func (h *hostFile) ReadAt(p []byte, off int64) (int, error) {
	return h.f.ReadAt(p, off)
}

func (h *hostFile) WriteAt(p []byte, off int64) (int, error) {
	return h.f.WriteAt(p, off)
}

func (h *hostFile) Close() error {
	return h.f.Close()
}

func (h *hostFile) Size() (int64, error) {
	info, err := h.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (h *hostFile) Truncate(size int64) error {
	return h.f.Truncate(size)
}
