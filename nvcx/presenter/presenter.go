package presenter

import (
	"io"

	"github.com/nvcollection/nvcx/nvcx/check"
	"github.com/nvcollection/nvcx/nvcx/document"
	"github.com/nvcollection/nvcx/nvcx/presenter/json"
	"github.com/nvcollection/nvcx/nvcx/presenter/table"
	"github.com/nvcollection/nvcx/nvcx/presenter/template"
)

// Presenter is the main interface other Presenters need to implement
type Presenter interface {
	Present(io.Writer) error
}

// GetPresenter retrieves a Presenter that matches a CLI option
func GetPresenter(option Option, outputTemplateFile string, doc *document.Document, report check.Report, appConfig interface{}) Presenter {
	switch option {
	case JSONPresenter:
		return json.NewPresenter(doc, report, appConfig)
	case TablePresenter:
		return table.NewPresenter(report)
	case TemplatePresenter:
		return template.NewPresenter(doc, report, appConfig, outputTemplateFile)
	default:
		return nil
	}
}
