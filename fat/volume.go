package fat

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/retrofs/simfat/backend"
)

// Volume is the single owned in-memory image (FAT, directory table,
// block store) plus the cursor, threaded into every operation as a
// method receiver. There is no global filesystem state anywhere else
// in the package.
type Volume struct {
	path    string
	storage backend.Storage

	fat    *table
	dirs   *dirTable
	blocks *blockStore
	cursor int32

	log logrus.FieldLogger
}

// MountOptions configures Mount.
type MountOptions struct {
	// Path is the host file backing the volume. Defaults to "disk.fs".
	Path string
	// Logger receives structured diagnostics. Defaults to logrus's
	// standard logger when nil.
	Logger logrus.FieldLogger
}

func (o MountOptions) path() string {
	if o.Path == "" {
		return "disk.fs"
	}
	return o.Path
}

func (o MountOptions) logger() logrus.FieldLogger {
	if o.Logger == nil {
		return logrus.StandardLogger()
	}
	return o.Logger
}

// Mount opens the backing host file, formatting a fresh volume if it
// does not yet exist or loading the persisted image if it does. The
// returned Volume owns storage and must be closed.
func Mount(opts MountOptions) (*Volume, error) {
	path := opts.path()
	log := opts.logger()

	v := &Volume{path: path, log: log}

	if !backend.Exists(path) {
		log.WithField("path", path).Info("fat: formatting new volume")
		if err := v.format(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImageIO, err)
		}
		return v, nil
	}

	log.WithField("path", path).Info("fat: loading existing volume")
	if err := v.load(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageIO, err)
	}
	return v, nil
}

// Close releases the backing host file handle, if one is open.
func (v *Volume) Close() error {
	if v.storage == nil {
		return nil
	}
	err := v.storage.Close()
	v.storage = nil
	return err
}

// format initializes a brand-new image: every FAT entry Free, a lone
// root directory, a zeroed block store, then persists it.
func (v *Volume) format() error {
	storage, err := backend.Create(v.path, ImageSize)
	if err != nil {
		return err
	}
	v.storage = storage

	v.fat = newTable()
	v.dirs = &dirTable{}
	v.dirs.reset()
	v.blocks = newBlockStore()
	v.cursor = rootIndex

	return v.commit()
}

// load reads the persisted image and adopts it wholesale, validating
// that slot 0 is the expected root and warning (not failing) if not.
func (v *Volume) load() error {
	storage, err := backend.Open(v.path)
	if err != nil {
		return err
	}
	v.storage = storage

	size, err := storage.Size()
	if err != nil {
		return err
	}
	if size != ImageSize {
		return fmt.Errorf("fat: image %s has size %d, want %d", v.path, size, ImageSize)
	}

	buf := make([]byte, ImageSize)
	if _, err := storage.ReadAt(buf, 0); err != nil {
		return fmt.Errorf("fat: reading image: %w", err)
	}

	t, dt, bs, err := imageFromBytes(buf)
	if err != nil {
		return err
	}
	v.fat, v.dirs, v.blocks = t, dt, bs
	v.cursor = rootIndex

	root := v.dirs.dirs[rootIndex]
	if root.name != "/" || root.parent != rootParent {
		v.log.WithFields(logrus.Fields{
			"name":   root.name,
			"parent": root.parent,
		}).Warn("fat: loaded image has an unexpected root directory record")
	}

	return nil
}

// Partition reformats the volume in place: every FAT entry to Free,
// every directory slot zeroed, the block store filled with the
// sentinel 0xFF, a full rewrite, and only then is the root directory
// reinstalled and persisted again.
func (v *Volume) Partition() error {
	v.fat.init()
	v.dirs = &dirTable{}
	v.blocks.fill(0xFF)
	if err := v.commit(); err != nil {
		return err
	}

	v.dirs.reset()
	v.cursor = rootIndex
	v.log.WithField("path", v.path).Info("fat: volume reformatted")
	return v.commit()
}

// commit persists the full in-memory image to the host file in one
// rewrite. It is not crash-safe: a crash mid-rewrite can truncate the
// image and require reformatting.
func (v *Volume) commit() error {
	buf := imageBytes(v.fat, v.dirs, v.blocks)
	if _, err := v.storage.WriteAt(buf, 0); err != nil {
		v.log.WithError(err).Error("fat: failed to persist image")
		return fmt.Errorf("%w: %v", ErrImageIO, err)
	}
	return nil
}
