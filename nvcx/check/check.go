package check

import (
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/wagoodman/go-partybus"
	"github.com/wagoodman/go-progress"

	"github.com/nvcollection/nvcx/internal"
	"github.com/nvcollection/nvcx/internal/bus"
	"github.com/nvcollection/nvcx/internal/file"
	"github.com/nvcollection/nvcx/internal/log"
	"github.com/nvcollection/nvcx/nvcx/collection"
	"github.com/nvcollection/nvcx/nvcx/event"
)

// State describes the result of checking a single book entry against the filesystem.
type State string

const (
	StateOK       State = "ok"
	StateMissing  State = "missing"
	StateUnlinked State = "unlinked"
)

type Monitor struct {
	BooksProcessed     progress.Monitorable
	MissingDiscovered  progress.Monitorable
	UnlinkedDiscovered progress.Monitorable
}

// Finding is the per-book result of a collection check.
type Finding struct {
	BookID string
	Title  string
	Series string
	Path   string
	State  State
}

// Report holds all findings of a collection check in shelf order.
type Report struct {
	Findings []Finding
	Total    int
	Missing  int
	Unlinked int
}

func trackChecking() (*progress.Manual, *progress.Manual, *progress.Manual) {
	booksProcessed := progress.Manual{}
	missingDiscovered := progress.Manual{}
	unlinkedDiscovered := progress.Manual{}

	bus.Publish(partybus.Event{
		Type: event.CollectionCheckStarted,
		Value: Monitor{
			BooksProcessed:     progress.Monitorable(&booksProcessed),
			MissingDiscovered:  progress.Monitorable(&missingDiscovered),
			UnlinkedDiscovered: progress.Monitorable(&unlinkedDiscovered),
		},
	})
	return &booksProcessed, &missingDiscovered, &unlinkedDiscovered
}

// Run verifies every book entry in the collection against the filesystem. Relative manuscript
// paths are resolved against basePath, which callers should set to the directory holding the
// collection file.
func Run(fs afero.Fs, c *collection.Collection, basePath string) Report {
	report := Report{}

	booksProcessed, missingDiscovered, unlinkedDiscovered := trackChecking()

	for _, b := range c.AllBooks() {
		booksProcessed.N++
		log.Debugf("checking book id=%s", b.ID)

		finding := newFinding(c, b)
		switch {
		case b.Path == "":
			finding.State = StateUnlinked
			report.Unlinked++
			unlinkedDiscovered.N++
		case file.Exists(fs, resolvePath(basePath, b.Path)):
			finding.State = StateOK
			if !internal.HasAnyOfSuffixes(b.Path, ".novx") {
				log.Warnf("book id=%s path=%q does not look like a manuscript file", b.ID, b.Path)
			}
		default:
			finding.State = StateMissing
			report.Missing++
			missingDiscovered.N++
		}

		report.Findings = append(report.Findings, finding)
		report.Total++
	}

	booksProcessed.SetCompleted()
	missingDiscovered.SetCompleted()
	unlinkedDiscovered.SetCompleted()

	logFindings(report)

	return report
}

// Inventory lists every book in shelf order without consulting the filesystem. Findings carry
// no state.
func Inventory(c *collection.Collection) Report {
	report := Report{}
	for _, b := range c.AllBooks() {
		report.Findings = append(report.Findings, newFinding(c, b))
		report.Total++
	}
	return report
}

func newFinding(c *collection.Collection, b *collection.Book) Finding {
	var seriesTitle string
	if s := c.SeriesOf(b.ID); s != nil {
		seriesTitle = s.Title
	}
	return Finding{
		BookID: b.ID,
		Title:  b.Title,
		Series: seriesTitle,
		Path:   b.Path,
	}
}

func resolvePath(basePath, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(basePath, path)
}

func logFindings(report Report) {
	problems := report.Missing + report.Unlinked
	if problems == 0 {
		log.Debugf("checked %d books, all accounted for", report.Total)
		return
	}
	log.Debugf("checked %d books, found %d problems", report.Total, problems)
	var shown int
	for _, f := range report.Findings {
		if f.State == StateOK {
			continue
		}
		shown++
		var branch = "├──"
		if shown == problems {
			branch = "└──"
		}
		log.Debugf("  %s %s book id=%s title=%q", branch, f.State, f.BookID, f.Title)
	}
}
