package collection

// MergeResult describes what a Merge brought into the receiving collection.
type MergeResult struct {
	Series   int
	Books    int
	Remapped map[string]string // source id to assigned id, for ids that were already taken
}

// Merge deep-copies every shelf entry of src onto the end of the receiving shelf. Identifiers
// from the source are kept when they are free and reassigned when they collide with existing
// entries; every reassignment is recorded in the result.
func (c *Collection) Merge(src *Collection) MergeResult {
	result := MergeResult{
		Remapped: make(map[string]string),
	}
	taken := c.ids()

	assign := func(id, prefix string) string {
		if id != "" && !taken.Has(id) {
			taken.Add(id)
			return id
		}
		fresh := createID(taken, prefix)
		taken.Add(fresh)
		if id != "" {
			result.Remapped[id] = fresh
		}
		return fresh
	}

	copyBook := func(book *Book) *Book {
		result.Books++
		return &Book{
			ID:    assign(book.ID, bookIDPrefix),
			Title: book.Title,
			Desc:  book.Desc,
			Notes: book.Notes,
			Path:  book.Path,
		}
	}

	for _, entry := range src.Shelf {
		switch {
		case entry.Book != nil:
			c.Shelf = append(c.Shelf, Entry{Book: copyBook(entry.Book)})
		case entry.Series != nil:
			result.Series++
			series := &Series{
				ID:    assign(entry.Series.ID, seriesIDPrefix),
				Title: entry.Series.Title,
				Desc:  entry.Series.Desc,
				Notes: entry.Series.Notes,
			}
			for _, book := range entry.Series.Books {
				series.Books = append(series.Books, copyBook(book))
			}
			c.Shelf = append(c.Shelf, Entry{Series: series})
		}
	}

	return result
}
