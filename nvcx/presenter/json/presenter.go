package json

import (
	"encoding/json"
	"io"

	"github.com/nvcollection/nvcx/nvcx/check"
	"github.com/nvcollection/nvcx/nvcx/document"
	"github.com/nvcollection/nvcx/nvcx/presenter/models"
)

// Presenter is a generic struct for holding fields needed for reporting
type Presenter struct {
	document  *document.Document
	report    check.Report
	appConfig interface{}
}

// NewPresenter creates a new JSON presenter
func NewPresenter(document *document.Document, report check.Report, appConfig interface{}) *Presenter {
	return &Presenter{
		document:  document,
		report:    report,
		appConfig: appConfig,
	}
}

// Present creates a JSON-based reporting
func (pres *Presenter) Present(output io.Writer) error {
	doc, err := models.NewDocument(pres.document, pres.report, pres.appConfig)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(output)
	// prevent > and < from being escaped in the payload
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	return enc.Encode(&doc)
}
