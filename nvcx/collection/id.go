package collection

import (
	"fmt"

	"github.com/scylladb/go-set/strset"
)

const (
	bookIDPrefix   = "bk"
	seriesIDPrefix = "sr"
)

// ids returns the set of every identifier currently assigned in the collection.
func (c *Collection) ids() *strset.Set {
	ids := strset.New()
	for _, entry := range c.Shelf {
		if entry.Book != nil {
			ids.Add(entry.Book.ID)
		}
		if entry.Series != nil {
			ids.Add(entry.Series.ID)
			for _, book := range entry.Series.Books {
				ids.Add(book.ID)
			}
		}
	}
	return ids
}

// createID returns the first unused identifier with the given prefix, scanning upward from 1.
func createID(existing *strset.Set, prefix string) string {
	i := 1
	for existing.Has(fmt.Sprintf("%s%d", prefix, i)) {
		i++
	}
	return fmt.Sprintf("%s%d", prefix, i)
}
