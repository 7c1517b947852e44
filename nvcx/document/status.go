package document

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/nvcollection/nvcx/internal/file"
	"github.com/nvcollection/nvcx/nvcx/schema"
)

// Status summarizes the on-disk state of a collection file.
type Status struct {
	Location      string    `json:"location"`
	Modified      time.Time `json:"modified"`
	Size          int64     `json:"size"`
	Checksum      string    `json:"checksum"`
	SchemaVersion string    `json:"schemaVersion"`
	Series        int       `json:"series"`
	Books         int       `json:"books"`
	Locked        bool      `json:"locked"`
	Err           error     `json:"error"`
}

// CurrentStatus inspects the collection file at the given path. The returned status is always
// usable; any problem encountered along the way is carried in the Err field.
func CurrentStatus(fs afero.Fs, path string) Status {
	status := Status{
		Location: path,
	}

	info, err := fs.Stat(path)
	if err != nil {
		status.Err = fmt.Errorf("no collection file found at %q", path)
		return status
	}
	status.Modified = info.ModTime()
	status.Size = info.Size()
	status.Locked = Locked(fs, path)

	checksum, err := file.HashFile(fs, path, sha256.New())
	if err != nil {
		status.Err = err
		return status
	}
	status.Checksum = "sha256:" + checksum

	doc, err := Load(fs, path)
	if err != nil {
		status.Err = err
		return status
	}
	status.SchemaVersion = doc.SchemaVersion.String()
	status.Series = len(doc.Collection.AllSeries())
	status.Books = doc.Collection.Len()

	if doc.SchemaVersion.Compare(schema.Current()) < 0 {
		// readable, but a rewrite would raise the declared version
		status.Err = fmt.Errorf("collection declares schema %s (current is %s); writing will upgrade it", doc.SchemaVersion, schema.Current())
		return status
	}

	if err := doc.Collection.Validate(); err != nil {
		status.Err = err
	}
	return status
}
