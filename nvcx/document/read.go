package document

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/nvcollection/nvcx/nvcx/collection"
	"github.com/nvcollection/nvcx/nvcx/schema"
)

// ErrNoVersion indicates the root element carries no readable version attribute, so no
// compatibility decision can be made about the file.
var ErrNoVersion = errors.New("no valid version found in file")

const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

type xmlBook struct {
	ID    string `xml:"id,attr"`
	Path  string `xml:"path,attr,omitempty"`
	Title string `xml:"Title,omitempty"`
	Desc  string `xml:"Desc,omitempty"`
	Notes string `xml:"Notes,omitempty"`
}

type xmlSeries struct {
	ID    string    `xml:"id,attr"`
	Title string    `xml:"Title,omitempty"`
	Desc  string    `xml:"Desc,omitempty"`
	Notes string    `xml:"Notes,omitempty"`
	Books []xmlBook `xml:"BOOK"`
}

// Decode reads a collection document from the given reader. The format version declared on the
// root element is checked before any content is interpreted; a document type declaration or
// processing instructions ahead of the root element are tolerated and skipped.
func Decode(reader io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(reader)

	root, err := findRootElement(decoder)
	if err != nil {
		return nil, err
	}

	version, err := versionOf(*root)
	if err != nil {
		return nil, err
	}

	if err := version.Check(schema.Current()); err != nil {
		return nil, err
	}

	col := collection.New()
	col.Language = languageOf(*root)

	if err := decodeShelf(decoder, col); err != nil {
		return nil, err
	}

	doc := &Document{
		Collection:    col,
		SchemaVersion: version,
	}
	doc.markSynced()
	return doc, nil
}

func decodeShelf(decoder *xml.Decoder, col *collection.Collection) error {
loop:
	for {
		token, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("unable to parse document: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "SERIES":
				var series xmlSeries
				if err := decoder.DecodeElement(&series, &t); err != nil {
					return fmt.Errorf("invalid SERIES element: %w", err)
				}
				col.Shelf = append(col.Shelf, collection.Entry{Series: series.toModel()})
			case "BOOK":
				var book xmlBook
				if err := decoder.DecodeElement(&book, &t); err != nil {
					return fmt.Errorf("invalid BOOK element: %w", err)
				}
				col.Shelf = append(col.Shelf, collection.Entry{Book: book.toModel()})
			default:
				// unknown elements within a compatible version are skipped
				if err := decoder.Skip(); err != nil {
					return fmt.Errorf("unable to skip %q element: %w", t.Name.Local, err)
				}
			}
		case xml.EndElement:
			if t.Name.Local == schema.RootElement {
				// content trailing the root element is ignored
				break loop
			}
		}
	}
	return nil
}

func findRootElement(decoder *xml.Decoder) (*xml.StartElement, error) {
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("document has no root element")
		}
		if err != nil {
			return nil, fmt.Errorf("unable to parse document: %w", err)
		}
		if start, ok := token.(xml.StartElement); ok {
			if start.Name.Local != schema.RootElement {
				return nil, fmt.Errorf("unexpected root element %q (expected %q)", start.Name.Local, schema.RootElement)
			}
			return &start, nil
		}
	}
}

func versionOf(root xml.StartElement) (schema.Version, error) {
	for _, attr := range root.Attr {
		if attr.Name.Local == schema.VersionAttribute && attr.Name.Space == "" {
			version, err := schema.Parse(attr.Value)
			if err != nil {
				return schema.Version{}, fmt.Errorf("%w: %v", ErrNoVersion, err)
			}
			return version, nil
		}
	}
	return schema.Version{}, ErrNoVersion
}

func languageOf(root xml.StartElement) string {
	for _, attr := range root.Attr {
		if attr.Name.Local == "lang" && (attr.Name.Space == "xml" || attr.Name.Space == xmlNamespace) {
			return attr.Value
		}
	}
	return ""
}

func (b xmlBook) toModel() *collection.Book {
	return &collection.Book{
		ID:    b.ID,
		Title: b.Title,
		Desc:  b.Desc,
		Notes: b.Notes,
		Path:  b.Path,
	}
}

func (s xmlSeries) toModel() *collection.Series {
	series := &collection.Series{
		ID:    s.ID,
		Title: s.Title,
		Desc:  s.Desc,
		Notes: s.Notes,
	}
	for _, book := range s.Books {
		series.Books = append(series.Books, book.toModel())
	}
	return series
}
