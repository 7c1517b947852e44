package nvcx

import (
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/wagoodman/go-partybus"

	"github.com/nvcollection/nvcx/internal/bus"
	"github.com/nvcollection/nvcx/internal/log"
	"github.com/nvcollection/nvcx/nvcx/check"
	"github.com/nvcollection/nvcx/nvcx/document"
	"github.com/nvcollection/nvcx/nvcx/logger"
)

// LoadCollection reads and decodes the collection file at the given path.
func LoadCollection(fs afero.Fs, path string) (*document.Document, error) {
	return document.Load(fs, path)
}

// CheckCollection verifies every book entry of the loaded collection against the filesystem.
// Relative manuscript paths are resolved against the directory holding the collection file.
func CheckCollection(fs afero.Fs, doc *document.Document) check.Report {
	return check.Run(fs, doc.Collection, filepath.Dir(doc.Path))
}

func SetLogger(logger logger.Logger) {
	log.Log = logger
}

func SetBus(b *partybus.Bus) {
	bus.SetPublisher(b)
}
