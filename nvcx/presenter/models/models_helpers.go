package models

import (
	"testing"

	"github.com/nvcollection/nvcx/nvcx/check"
	"github.com/nvcollection/nvcx/nvcx/document"
)

func GenerateAnalysis(t *testing.T) (*document.Document, check.Report) {
	t.Helper()

	doc := document.New("stories/shelf.nvcx")
	doc.Collection.Language = "en-US"

	standalone := doc.Collection.AddBook("The Long Rain", "the-long-rain.novx")
	series := doc.Collection.AddSeries("The Glass Archipelago")
	first := doc.Collection.AddBook("Harbor of Mirrors", "glass-1.novx")
	if err := doc.Collection.MoveBook(first.ID, series.ID); err != nil {
		t.Fatalf("unable to arrange shelf: %+v", err)
	}
	missing := doc.Collection.AddBook("The Cartographer of Tides", "glass-2.novx")
	if err := doc.Collection.MoveBook(missing.ID, series.ID); err != nil {
		t.Fatalf("unable to arrange shelf: %+v", err)
	}
	draft := doc.Collection.AddBook("Unlinked Draft", "")

	report := check.Report{
		Findings: []check.Finding{
			{
				BookID: standalone.ID,
				Title:  standalone.Title,
				Path:   standalone.Path,
				State:  check.StateOK,
			},
			{
				BookID: first.ID,
				Title:  first.Title,
				Series: series.Title,
				Path:   first.Path,
				State:  check.StateOK,
			},
			{
				BookID: missing.ID,
				Title:  missing.Title,
				Series: series.Title,
				Path:   missing.Path,
				State:  check.StateMissing,
			},
			{
				BookID: draft.ID,
				Title:  draft.Title,
				State:  check.StateUnlinked,
			},
		},
		Total:    4,
		Missing:  1,
		Unlinked: 1,
	}

	return doc, report
}
