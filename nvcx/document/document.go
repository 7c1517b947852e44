/*
Package document binds a collection to its backing .nvcx file: decoding with format version
enforcement, rewriting with backups, advisory locking, and change detection against both the
in-memory model and the file on disk.
*/
package document

import (
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/nvcollection/nvcx/internal/log"
	"github.com/nvcollection/nvcx/nvcx/collection"
	"github.com/nvcollection/nvcx/nvcx/schema"
)

const backupSuffix = ".bak"

// Document is a collection bound to the .nvcx file it was read from or will be written to.
type Document struct {
	// Path of the backing file. Empty for documents decoded from a stream.
	Path string

	// Collection holds the decoded content, including any mutations made since.
	Collection *collection.Collection

	// SchemaVersion as declared by the file this document was read from. Write always raises
	// this to the current format version.
	SchemaVersion schema.Version

	fingerprint uint64
	synced      bool
	modTime     time.Time
	lockToken   string
}

// New returns an empty document bound to the given path. Nothing is created on disk until
// Write is called.
func New(path string) *Document {
	return &Document{
		Path:          path,
		Collection:    collection.New(),
		SchemaVersion: schema.Current(),
	}
}

// Load reads the collection file at the given path.
func Load(fs afero.Fs, path string) (*Document, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open collection file: %w", err)
	}
	defer log.CloseAndLogError(f, path)

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("unable to read collection %q: %w", path, err)
	}
	doc.Path = path

	if info, err := fs.Stat(path); err == nil {
		doc.modTime = info.ModTime()
	}
	return doc, nil
}

// Modified reports whether the in-memory collection differs from the state last read from or
// written to disk.
func (d *Document) Modified() bool {
	if !d.synced {
		return true
	}
	fingerprint, err := d.Collection.Fingerprint()
	if err != nil {
		log.Warnf("unable to fingerprint collection: %+v", err)
		return true
	}
	return fingerprint != d.fingerprint
}

// HasChangedOnDisk reports whether the backing file has been replaced since this document was
// loaded or last written (for example by another process).
func (d *Document) HasChangedOnDisk(fs afero.Fs) bool {
	if d.Path == "" || d.modTime.IsZero() {
		return false
	}
	info, err := fs.Stat(d.Path)
	if err != nil {
		return false
	}
	return !info.ModTime().Equal(d.modTime)
}

func (d *Document) markSynced() {
	fingerprint, err := d.Collection.Fingerprint()
	if err != nil {
		log.Warnf("unable to fingerprint collection: %+v", err)
		d.synced = false
		return
	}
	d.fingerprint = fingerprint
	d.synced = true
}
