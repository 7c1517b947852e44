package collection

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAssignsSequentialIDs(t *testing.T) {
	c := New()

	first := c.AddBook("The Left Hand", "left-hand.novx")
	second := c.AddBook("The Right Hand", "right-hand.novx")
	series := c.AddSeries("Hands")

	assert.Equal(t, "bk1", first.ID)
	assert.Equal(t, "bk2", second.ID)
	assert.Equal(t, "sr1", series.ID)
}

func TestAddReusesFreedIDs(t *testing.T) {
	c := New()

	c.AddBook("one", "")
	second := c.AddBook("two", "")
	c.AddBook("three", "")

	require.NoError(t, c.Remove(second.ID))

	// the lowest free numeric suffix is handed out again
	replacement := c.AddBook("four", "")
	assert.Equal(t, "bk2", replacement.ID)
}

func TestFindBookSearchesSeries(t *testing.T) {
	c := New()
	series := c.AddSeries("A Trilogy")
	book := c.AddBook("Part One", "part-one.novx")
	require.NoError(t, c.MoveBook(book.ID, series.ID))

	assert.Equal(t, book, c.FindBook(book.ID))
	assert.Nil(t, c.FindBook("bk99"))
	assert.Equal(t, series, c.SeriesOf(book.ID))
	assert.Nil(t, c.SeriesOf("bk99"))
}

func TestAllBooksKeepsShelfOrder(t *testing.T) {
	c := New()
	standalone := c.AddBook("Standalone", "")
	series := c.AddSeries("A Trilogy")
	inSeries := c.AddBook("Part One", "")
	require.NoError(t, c.MoveBook(inSeries.ID, series.ID))
	trailing := c.AddBook("Trailing", "")

	var ids []string
	for _, book := range c.AllBooks() {
		ids = append(ids, book.ID)
	}

	// the series occupies its shelf position, so its books come between the standalone ones
	assert.Equal(t, []string{standalone.ID, inSeries.ID, trailing.ID}, ids)
	assert.Equal(t, 3, c.Len())
}

func TestMoveBook(t *testing.T) {
	tests := []struct {
		name     string
		bookID   string
		seriesID string
		wantErr  bool
	}{
		{
			name:     "into series",
			bookID:   "bk1",
			seriesID: "sr1",
		},
		{
			name:     "out of series to standalone",
			bookID:   "bk2",
			seriesID: "",
		},
		{
			name:     "unknown book",
			bookID:   "bk99",
			seriesID: "sr1",
			wantErr:  true,
		},
		{
			name:     "unknown series",
			bookID:   "bk1",
			seriesID: "sr99",
			wantErr:  true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := New()
			c.AddBook("loose", "")
			series := c.AddSeries("shelfed")
			inSeries := c.AddBook("already in", "")
			require.NoError(t, c.MoveBook(inSeries.ID, series.ID))

			err := c.MoveBook(test.bookID, test.seriesID)
			if test.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			if test.seriesID != "" {
				require.NotNil(t, c.SeriesOf(test.bookID))
				assert.Equal(t, test.seriesID, c.SeriesOf(test.bookID).ID)
			} else {
				assert.Nil(t, c.SeriesOf(test.bookID))
				require.NotNil(t, c.FindBook(test.bookID))
			}
		})
	}
}

func TestRemove(t *testing.T) {
	t.Run("standalone book", func(t *testing.T) {
		c := New()
		book := c.AddBook("gone soon", "")
		require.NoError(t, c.Remove(book.ID))
		assert.Nil(t, c.FindBook(book.ID))
		assert.Empty(t, c.Shelf)
	})

	t.Run("book within a series", func(t *testing.T) {
		c := New()
		series := c.AddSeries("keeper")
		book := c.AddBook("gone soon", "")
		require.NoError(t, c.MoveBook(book.ID, series.ID))

		require.NoError(t, c.Remove(book.ID))
		assert.Nil(t, c.FindBook(book.ID))
		assert.NotNil(t, c.FindSeries(series.ID))
	})

	t.Run("series removes contained books", func(t *testing.T) {
		c := New()
		series := c.AddSeries("doomed")
		book := c.AddBook("collateral", "")
		require.NoError(t, c.MoveBook(book.ID, series.ID))

		require.NoError(t, c.Remove(series.ID))
		assert.Nil(t, c.FindSeries(series.ID))
		assert.Nil(t, c.FindBook(book.ID))
	})

	t.Run("unknown id", func(t *testing.T) {
		c := New()
		assert.Error(t, c.Remove("bk1"))
	})
}

func TestMergePreservesFreeIDsAndRemapsCollisions(t *testing.T) {
	dst := New()
	dst.AddBook("existing", "existing.novx") // takes bk1

	src := New()
	src.AddBook("incoming first", "first.novx") // bk1 in source, collides
	srcSeries := src.AddSeries("incoming series")
	inSeries := src.AddBook("incoming second", "second.novx")
	require.NoError(t, src.MoveBook(inSeries.ID, srcSeries.ID))

	result := dst.Merge(src)

	assert.Equal(t, 1, result.Series)
	assert.Equal(t, 2, result.Books)
	// bk1 collides with the existing book; once bk2 is assigned, the source's own bk2 collides too
	assert.Equal(t, map[string]string{"bk1": "bk2", "bk2": "bk3"}, result.Remapped)

	// source collection is untouched
	require.NotNil(t, src.FindBook("bk1"))
	assert.Equal(t, "incoming first", src.FindBook("bk1").Title)

	// destination now holds both book sets, with the collisions remapped
	assert.Equal(t, "existing", dst.FindBook("bk1").Title)
	assert.Equal(t, "incoming first", dst.FindBook("bk2").Title)
	assert.Equal(t, "incoming second", dst.FindBook("bk3").Title)
	require.NotNil(t, dst.FindSeries("sr1"))
	assert.Equal(t, 3, dst.Len())

	// merged entries are copies, not aliases
	dst.FindBook("bk2").Title = "changed"
	assert.Equal(t, "incoming first", src.FindBook("bk1").Title)
}

func TestMergeIntoEmptyCollectionKeepsEverything(t *testing.T) {
	src := New()
	src.AddBook("alpha", "alpha.novx")
	series := src.AddSeries("set")
	b := src.AddBook("beta", "beta.novx")
	require.NoError(t, src.MoveBook(b.ID, series.ID))

	dst := New()
	result := dst.Merge(src)

	assert.Empty(t, result.Remapped)
	if diff := deep.Equal(src.Shelf, dst.Shelf); diff != nil {
		t.Errorf("unexpected shelf difference: %+v", diff)
	}
}
