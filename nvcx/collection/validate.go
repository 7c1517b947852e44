package collection

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/scylladb/go-set/strset"
)

// Validate inspects the collection for structural problems: shelf entries holding neither a
// series nor a book (or both), empty identifiers, and duplicated identifiers. All problems
// found are reported together.
func (c *Collection) Validate() error {
	var errs error
	seen := strset.New()

	record := func(id, kind string) {
		switch {
		case id == "":
			errs = multierror.Append(errs, fmt.Errorf("%s with empty id", kind))
		case seen.Has(id):
			errs = multierror.Append(errs, fmt.Errorf("duplicate id %q", id))
		default:
			seen.Add(id)
		}
	}

	for i, entry := range c.Shelf {
		switch {
		case entry.Series != nil && entry.Book != nil:
			errs = multierror.Append(errs, fmt.Errorf("shelf entry %d holds both a series and a book", i))
		case entry.Series == nil && entry.Book == nil:
			errs = multierror.Append(errs, fmt.Errorf("shelf entry %d holds neither a series nor a book", i))
		}

		if entry.Book != nil {
			record(entry.Book.ID, "book")
		}
		if entry.Series != nil {
			record(entry.Series.ID, "series")
			for _, book := range entry.Series.Books {
				if book == nil {
					errs = multierror.Append(errs, fmt.Errorf("series %q contains a nil book", entry.Series.ID))
					continue
				}
				record(book.ID, "book")
			}
		}
	}

	return errs
}
