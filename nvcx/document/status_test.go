package document

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvcollection/nvcx/nvcx/schema"
)

func TestCurrentStatus(t *testing.T) {
	fs := afero.NewMemMapFs()

	doc := New("shelf.nvcx")
	doc.Collection.AddBook("Standalone", "standalone.novx")
	series := doc.Collection.AddSeries("A Series")
	inSeries := doc.Collection.AddBook("Part One", "part-1.novx")
	require.NoError(t, doc.Collection.MoveBook(inSeries.ID, series.ID))
	require.NoError(t, doc.Write(fs))

	status := CurrentStatus(fs, "shelf.nvcx")

	assert.NoError(t, status.Err)
	assert.Equal(t, "shelf.nvcx", status.Location)
	assert.Equal(t, schema.Current().String(), status.SchemaVersion)
	assert.Equal(t, 1, status.Series)
	assert.Equal(t, 2, status.Books)
	assert.False(t, status.Locked)
	assert.NotZero(t, status.Size)
	assert.True(t, strings.HasPrefix(status.Checksum, "sha256:"))
}

func TestCurrentStatusMissingFile(t *testing.T) {
	status := CurrentStatus(afero.NewMemMapFs(), "nope.nvcx")

	require.Error(t, status.Err)
	assert.Contains(t, status.Err.Error(), "no collection file found")
	assert.Equal(t, "nope.nvcx", status.Location)
}

func TestCurrentStatusReportsLock(t *testing.T) {
	fs := afero.NewMemMapFs()

	doc := New("shelf.nvcx")
	doc.Collection.AddBook("A Novel", "")
	require.NoError(t, doc.Write(fs))
	require.NoError(t, doc.Lock(fs))

	status := CurrentStatus(fs, "shelf.nvcx")
	assert.True(t, status.Locked)
	assert.NoError(t, status.Err)
}

func TestCurrentStatusDetectsInvalidContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `<?xml version="1.0" encoding="utf-8"?>
<COLLECTION version="1.0">
  <BOOK id="bk1">
    <Title>First</Title>
  </BOOK>
  <BOOK id="bk1">
    <Title>Duplicate</Title>
  </BOOK>
</COLLECTION>
`
	require.NoError(t, afero.WriteFile(fs, "shelf.nvcx", []byte(content), 0644))

	status := CurrentStatus(fs, "shelf.nvcx")

	require.Error(t, status.Err)
	assert.Contains(t, status.Err.Error(), `duplicate id "bk1"`)
	assert.Equal(t, 2, status.Books)
}

func TestCurrentStatusDetectsUnreadableSchema(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `<COLLECTION version="99.0"></COLLECTION>`
	require.NoError(t, afero.WriteFile(fs, "shelf.nvcx", []byte(content), 0644))

	status := CurrentStatus(fs, "shelf.nvcx")

	require.Error(t, status.Err)
	var newerErr *schema.NewerSchemaError
	assert.ErrorAs(t, status.Err, &newerErr)
}
