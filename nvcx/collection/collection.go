/*
Package collection holds the in-memory model of a novel collection: an ordered shelf of series
and standalone books. Shelf order is the reading order presented to users and is preserved
exactly when a collection is read from and written back to disk.
*/
package collection

import (
	"fmt"
)

// Book references a single novel project file on disk. A book with no path is kept in the
// collection but cannot be opened.
type Book struct {
	ID    string
	Title string
	Desc  string
	Notes string
	Path  string
}

// Series groups related books in reading order.
type Series struct {
	ID    string
	Title string
	Desc  string
	Notes string
	Books []*Book
}

// Entry is a single top-level shelf position, holding either a series or a standalone book
// (never both).
type Entry struct {
	Series *Series
	Book   *Book
}

// Collection is an ordered shelf of series and standalone books.
type Collection struct {
	// Language is the BCP 47 tag carried by the document's xml:lang attribute (may be empty).
	Language string
	Shelf    []Entry
}

// New returns an empty collection.
func New() *Collection {
	return &Collection{}
}

// AddSeries appends a new series with a generated identifier to the end of the shelf.
func (c *Collection) AddSeries(title string) *Series {
	series := &Series{
		ID:    createID(c.ids(), seriesIDPrefix),
		Title: title,
	}
	c.Shelf = append(c.Shelf, Entry{Series: series})
	return series
}

// AddBook appends a new standalone book with a generated identifier to the end of the shelf.
func (c *Collection) AddBook(title, path string) *Book {
	book := &Book{
		ID:    createID(c.ids(), bookIDPrefix),
		Title: title,
		Path:  path,
	}
	c.Shelf = append(c.Shelf, Entry{Book: book})
	return book
}

// FindBook returns the book with the given identifier, searching both standalone books and
// books within series, or nil if there is none.
func (c *Collection) FindBook(id string) *Book {
	for _, entry := range c.Shelf {
		if entry.Book != nil && entry.Book.ID == id {
			return entry.Book
		}
		if entry.Series != nil {
			for _, book := range entry.Series.Books {
				if book.ID == id {
					return book
				}
			}
		}
	}
	return nil
}

// FindSeries returns the series with the given identifier, or nil if there is none.
func (c *Collection) FindSeries(id string) *Series {
	for _, entry := range c.Shelf {
		if entry.Series != nil && entry.Series.ID == id {
			return entry.Series
		}
	}
	return nil
}

// SeriesOf returns the series containing the given book, or nil for standalone books and
// unknown identifiers.
func (c *Collection) SeriesOf(bookID string) *Series {
	for _, entry := range c.Shelf {
		if entry.Series == nil {
			continue
		}
		for _, book := range entry.Series.Books {
			if book.ID == bookID {
				return entry.Series
			}
		}
	}
	return nil
}

// AllBooks returns every book in shelf order, walking into series at their shelf position.
func (c *Collection) AllBooks() []*Book {
	var books []*Book
	for _, entry := range c.Shelf {
		switch {
		case entry.Book != nil:
			books = append(books, entry.Book)
		case entry.Series != nil:
			books = append(books, entry.Series.Books...)
		}
	}
	return books
}

// AllSeries returns every series in shelf order.
func (c *Collection) AllSeries() []*Series {
	var series []*Series
	for _, entry := range c.Shelf {
		if entry.Series != nil {
			series = append(series, entry.Series)
		}
	}
	return series
}

// Len returns the total number of books in the collection.
func (c *Collection) Len() int {
	return len(c.AllBooks())
}

// MoveBook places the book with the given identifier at the end of the series with the given
// identifier, or at the end of the shelf as a standalone book when seriesID is empty.
func (c *Collection) MoveBook(bookID, seriesID string) error {
	var target *Series
	if seriesID != "" {
		target = c.FindSeries(seriesID)
		if target == nil {
			return fmt.Errorf("no series with id %q", seriesID)
		}
	}

	book := c.detachBook(bookID)
	if book == nil {
		return fmt.Errorf("no book with id %q", bookID)
	}

	if target == nil {
		c.Shelf = append(c.Shelf, Entry{Book: book})
		return nil
	}
	target.Books = append(target.Books, book)
	return nil
}

// Remove deletes the book or series with the given identifier. Removing a series removes the
// books it contains.
func (c *Collection) Remove(id string) error {
	for i, entry := range c.Shelf {
		if entry.Book != nil && entry.Book.ID == id {
			c.Shelf = append(c.Shelf[:i], c.Shelf[i+1:]...)
			return nil
		}
		if entry.Series != nil {
			if entry.Series.ID == id {
				c.Shelf = append(c.Shelf[:i], c.Shelf[i+1:]...)
				return nil
			}
			for j, book := range entry.Series.Books {
				if book.ID == id {
					entry.Series.Books = append(entry.Series.Books[:j], entry.Series.Books[j+1:]...)
					return nil
				}
			}
		}
	}
	return fmt.Errorf("no entry with id %q", id)
}

// detachBook removes the book with the given identifier from wherever it currently lives and
// returns it, or nil when the book is not present.
func (c *Collection) detachBook(bookID string) *Book {
	for i, entry := range c.Shelf {
		if entry.Book != nil && entry.Book.ID == bookID {
			book := entry.Book
			c.Shelf = append(c.Shelf[:i], c.Shelf[i+1:]...)
			return book
		}
		if entry.Series != nil {
			for j, book := range entry.Series.Books {
				if book.ID == bookID {
					entry.Series.Books = append(entry.Series.Books[:j], entry.Series.Books[j+1:]...)
					return book
				}
			}
		}
	}
	return nil
}
