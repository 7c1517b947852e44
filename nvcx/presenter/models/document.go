package models

import (
	"time"

	"github.com/nvcollection/nvcx/internal"
	"github.com/nvcollection/nvcx/internal/version"
	"github.com/nvcollection/nvcx/nvcx/check"
	"github.com/nvcollection/nvcx/nvcx/document"
)

// Document represents the JSON document to be presented
type Document struct {
	Collection Collection `json:"collection"`
	Findings   []Finding  `json:"findings"`
	Summary    Summary    `json:"summary"`
	Descriptor descriptor `json:"descriptor"`
}

// Collection identifies the collection file the findings were drawn from.
type Collection struct {
	Path          string `json:"path"`
	SchemaVersion string `json:"schemaVersion"`
	Language      string `json:"language,omitempty"`
	Series        int    `json:"series"`
	Books         int    `json:"books"`
}

// Finding is a single book listed in the report.
type Finding struct {
	ID     string `json:"id"`
	Title  string `json:"title,omitempty"`
	Series string `json:"series,omitempty"`
	Path   string `json:"path,omitempty"`
	State  string `json:"state,omitempty"`
}

// Summary tallies findings by state.
type Summary struct {
	Total    int `json:"total"`
	Missing  int `json:"missing"`
	Unlinked int `json:"unlinked"`
}

// NewDocument creates and populates a new Document struct, representing the populated JSON document.
func NewDocument(doc *document.Document, report check.Report, appConfig interface{}) (Document, error) {
	// preallocate the findings to ensure the JSON document does not show "null" for an empty shelf
	var findings = make([]Finding, 0)
	for _, f := range report.Findings {
		findings = append(findings, Finding{
			ID:     f.BookID,
			Title:  f.Title,
			Series: f.Series,
			Path:   f.Path,
			State:  string(f.State),
		})
	}

	return Document{
		Collection: Collection{
			Path:          doc.Path,
			SchemaVersion: doc.SchemaVersion.String(),
			Language:      doc.Collection.Language,
			Series:        len(doc.Collection.AllSeries()),
			Books:         doc.Collection.Len(),
		},
		Findings: findings,
		Summary: Summary{
			Total:    report.Total,
			Missing:  report.Missing,
			Unlinked: report.Unlinked,
		},
		Descriptor: descriptor{
			Name:          internal.ApplicationName,
			Version:       version.FromBuild().Version,
			Configuration: appConfig,
			Timestamp:     time.Now().Format(time.RFC3339),
		},
	}, nil
}
