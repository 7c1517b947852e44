package document

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/nvcollection/nvcx/internal/file"
	"github.com/nvcollection/nvcx/internal/log"
	"github.com/nvcollection/nvcx/nvcx/collection"
	"github.com/nvcollection/nvcx/nvcx/schema"
)

// written files always carry a bare XML declaration, never a document type declaration
const xmlHeader = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

// Write serializes the collection to the document's path, declaring the current format version.
// Any existing file is kept as a ".bak" sibling, and content is staged through a temporary file
// so a failed write never corrupts the original.
func (d *Document) Write(fs afero.Fs) error {
	if d.Path == "" {
		return fmt.Errorf("document has no path")
	}

	content, err := d.render()
	if err != nil {
		return fmt.Errorf("unable to serialize collection: %w", err)
	}

	stagePath := fmt.Sprintf("%s.%s.tmp", d.Path, uuid.New().String())
	if err := afero.WriteFile(fs, stagePath, content, 0644); err != nil {
		return fmt.Errorf("unable to stage collection file: %w", err)
	}
	defer func() {
		if file.Exists(fs, stagePath) {
			if err := fs.Remove(stagePath); err != nil {
				log.Warnf("unable to remove staged file %q: %+v", stagePath, err)
			}
		}
	}()

	if file.Exists(fs, d.Path) {
		if err := file.CopyFile(fs, d.Path, d.Path+backupSuffix); err != nil {
			return fmt.Errorf("unable to back up existing collection file: %w", err)
		}
	}

	if err := fs.Rename(stagePath, d.Path); err != nil {
		return fmt.Errorf("unable to replace collection file: %w", err)
	}

	d.SchemaVersion = schema.Current()
	if info, err := fs.Stat(d.Path); err == nil {
		d.modTime = info.ModTime()
	}
	d.markSynced()
	return nil
}

func (d *Document) render() ([]byte, error) {
	buffer := bytes.NewBufferString(xmlHeader)
	encoder := xml.NewEncoder(buffer)
	encoder.Indent("", "  ")

	root := xml.StartElement{
		Name: xml.Name{Local: schema.RootElement},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: schema.VersionAttribute}, Value: schema.Current().String()},
		},
	}
	if d.Collection.Language != "" {
		root.Attr = append(root.Attr, xml.Attr{Name: xml.Name{Local: "xml:lang"}, Value: d.Collection.Language})
	}

	if err := encoder.EncodeToken(root); err != nil {
		return nil, err
	}

	for _, entry := range d.Collection.Shelf {
		switch {
		case entry.Series != nil:
			element := fromSeries(entry.Series)
			if err := encoder.EncodeElement(element, xml.StartElement{Name: xml.Name{Local: "SERIES"}}); err != nil {
				return nil, err
			}
		case entry.Book != nil:
			element := fromBook(entry.Book)
			if err := encoder.EncodeElement(element, xml.StartElement{Name: xml.Name{Local: "BOOK"}}); err != nil {
				return nil, err
			}
		}
	}

	if err := encoder.EncodeToken(root.End()); err != nil {
		return nil, err
	}
	if err := encoder.Flush(); err != nil {
		return nil, err
	}

	buffer.WriteString("\n")
	return buffer.Bytes(), nil
}

func fromBook(book *collection.Book) xmlBook {
	return xmlBook{
		ID:    book.ID,
		Path:  book.Path,
		Title: book.Title,
		Desc:  book.Desc,
		Notes: book.Notes,
	}
}

func fromSeries(series *collection.Series) xmlSeries {
	element := xmlSeries{
		ID:    series.ID,
		Title: series.Title,
		Desc:  series.Desc,
		Notes: series.Notes,
	}
	for _, book := range series.Books {
		element.Books = append(element.Books, fromBook(book))
	}
	return element
}
