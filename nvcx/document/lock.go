package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/nvcollection/nvcx/internal/file"
)

// LockedError indicates a lock for a collection file is held by someone else.
type LockedError struct {
	Path   string
	Holder string
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("collection %q is locked by another process (%s)", e.Path, e.Holder)
}

// LockPath returns the lock marker path used for the given collection file: a hidden
// ".LOCK.<name>#" sibling.
func LockPath(path string) string {
	return filepath.Join(filepath.Dir(path), fmt.Sprintf(".LOCK.%s#", filepath.Base(path)))
}

// Locked reports whether any process (this one included) holds the lock for the given file.
func Locked(fs afero.Fs, path string) bool {
	return file.Exists(fs, LockPath(path))
}

// Lock takes the advisory lock for this document's file. Re-taking a lock this document
// already holds is a no-op; a lock held by anyone else yields a LockedError.
func (d *Document) Lock(fs afero.Fs) error {
	if d.Path == "" {
		return fmt.Errorf("document has no path")
	}
	lockPath := LockPath(d.Path)

	if file.Exists(fs, lockPath) {
		holder, err := afero.ReadFile(fs, lockPath)
		if err != nil {
			return fmt.Errorf("unable to inspect lock %q: %w", lockPath, err)
		}
		if d.holdsLock(holder) {
			return nil
		}
		return &LockedError{Path: d.Path, Holder: strings.TrimSpace(string(holder))}
	}

	if d.lockToken == "" {
		d.lockToken = uuid.New().String()
	}
	content := fmt.Sprintf("%s pid=%d\n", d.lockToken, os.Getpid())
	if err := afero.WriteFile(fs, lockPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("unable to create lock %q: %w", lockPath, err)
	}
	return nil
}

// Unlock releases the advisory lock held by this document. Unlocking when no lock exists is a
// no-op; a lock held by someone else is left in place and reported as a LockedError.
func (d *Document) Unlock(fs afero.Fs) error {
	if d.Path == "" {
		return fmt.Errorf("document has no path")
	}
	lockPath := LockPath(d.Path)

	if !file.Exists(fs, lockPath) {
		return nil
	}

	holder, err := afero.ReadFile(fs, lockPath)
	if err != nil {
		return fmt.Errorf("unable to inspect lock %q: %w", lockPath, err)
	}
	if !d.holdsLock(holder) {
		return &LockedError{Path: d.Path, Holder: strings.TrimSpace(string(holder))}
	}

	if err := fs.Remove(lockPath); err != nil {
		return fmt.Errorf("unable to remove lock %q: %w", lockPath, err)
	}
	return nil
}

func (d *Document) holdsLock(content []byte) bool {
	return d.lockToken != "" && strings.HasPrefix(string(content), d.lockToken)
}
