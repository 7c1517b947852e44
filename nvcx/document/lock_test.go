package document

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockPath(t *testing.T) {
	assert.Equal(t, "stories/.LOCK.shelf.nvcx#", LockPath("stories/shelf.nvcx"))
	assert.Equal(t, ".LOCK.shelf.nvcx#", LockPath("shelf.nvcx"))
}

func TestLockUnlock(t *testing.T) {
	fs := afero.NewMemMapFs()
	doc := New("shelf.nvcx")

	assert.False(t, Locked(fs, doc.Path))

	require.NoError(t, doc.Lock(fs))
	assert.True(t, Locked(fs, doc.Path))

	// locking twice from the same document is a no-op
	require.NoError(t, doc.Lock(fs))

	require.NoError(t, doc.Unlock(fs))
	assert.False(t, Locked(fs, doc.Path))
}

func TestUnlockWithoutLock(t *testing.T) {
	fs := afero.NewMemMapFs()
	doc := New("shelf.nvcx")

	assert.NoError(t, doc.Unlock(fs))
}

func TestLockHeldByAnotherProcess(t *testing.T) {
	fs := afero.NewMemMapFs()
	holder := "b3f1c1de-0000-4000-8000-000000000000 pid=4242\n"
	require.NoError(t, afero.WriteFile(fs, LockPath("shelf.nvcx"), []byte(holder), 0644))

	doc := New("shelf.nvcx")

	err := doc.Lock(fs)
	var lockedErr *LockedError
	require.ErrorAs(t, err, &lockedErr)
	assert.Equal(t, "shelf.nvcx", lockedErr.Path)
	assert.Contains(t, lockedErr.Holder, "pid=4242")

	// a foreign lock must never be removed
	err = doc.Unlock(fs)
	require.ErrorAs(t, err, &lockedErr)
	assert.True(t, Locked(fs, doc.Path))
}
