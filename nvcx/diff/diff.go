package diff

import (
	"github.com/wagoodman/go-partybus"
	"github.com/wagoodman/go-progress"

	"github.com/nvcollection/nvcx/internal/bus"
	"github.com/nvcollection/nvcx/nvcx/collection"
	"github.com/nvcollection/nvcx/nvcx/event"
)

type Reason = string

const (
	Added   Reason = "added"
	Changed Reason = "changed"
	Removed Reason = "removed"
)

type Kind = string

const (
	KindCollection Kind = "collection"
	KindSeries     Kind = "series"
	KindBook       Kind = "book"
)

type Monitor struct {
	EntriesProcessed  progress.Monitorable
	ChangesDiscovered progress.Monitorable
}

// FieldDelta records a single field value moving between two revisions.
type FieldDelta struct {
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Change describes one difference between a base and a target collection.
type Change struct {
	Reason Reason       `json:"reason"`
	Kind   Kind         `json:"kind"`
	ID     string       `json:"id,omitempty"`
	Title  string       `json:"title,omitempty"`
	Fields []FieldDelta `json:"fields,omitempty"`
}

// create manual progress bars for tracking the collection diff's progress
func trackDiff() (*progress.Manual, *progress.Manual) {
	entriesProcessed := progress.Manual{}
	changesDiscovered := progress.Manual{}

	bus.Publish(partybus.Event{
		Type: event.CollectionDiffingStarted,
		Value: Monitor{
			EntriesProcessed:  progress.Monitorable(&entriesProcessed),
			ChangesDiscovered: progress.Monitorable(&changesDiscovered),
		},
	})
	return &entriesProcessed, &changesDiscovered
}

// Compare lists every difference between the base and target collections. Entries are matched
// by identifier, and results follow shelf order: base-side removals and changes first, then
// target-side additions.
func Compare(base, target *collection.Collection) []Change {
	var changes []Change

	entriesProcessed, changesDiscovered := trackDiff()

	record := func(c Change) {
		changes = append(changes, c)
		changesDiscovered.N++
	}

	if base.Language != target.Language {
		record(Change{
			Reason: Changed,
			Kind:   KindCollection,
			Fields: []FieldDelta{{Name: "language", From: base.Language, To: target.Language}},
		})
	}

	targetSeries := make(map[string]*collection.Series)
	for _, s := range target.AllSeries() {
		targetSeries[s.ID] = s
	}
	for _, s := range base.AllSeries() {
		entriesProcessed.N++
		after, exists := targetSeries[s.ID]
		if !exists {
			record(Change{Reason: Removed, Kind: KindSeries, ID: s.ID, Title: s.Title})
			continue
		}
		if fields := seriesDeltas(s, after); len(fields) > 0 {
			record(Change{Reason: Changed, Kind: KindSeries, ID: s.ID, Title: after.Title, Fields: fields})
		}
	}
	baseSeries := make(map[string]*collection.Series)
	for _, s := range base.AllSeries() {
		baseSeries[s.ID] = s
	}
	for _, s := range target.AllSeries() {
		if _, exists := baseSeries[s.ID]; !exists {
			entriesProcessed.N++
			record(Change{Reason: Added, Kind: KindSeries, ID: s.ID, Title: s.Title})
		}
	}

	targetBooks := make(map[string]*collection.Book)
	for _, b := range target.AllBooks() {
		targetBooks[b.ID] = b
	}
	for _, b := range base.AllBooks() {
		entriesProcessed.N++
		after, exists := targetBooks[b.ID]
		if !exists {
			record(Change{Reason: Removed, Kind: KindBook, ID: b.ID, Title: b.Title})
			continue
		}
		if fields := bookDeltas(base, target, b, after); len(fields) > 0 {
			record(Change{Reason: Changed, Kind: KindBook, ID: b.ID, Title: after.Title, Fields: fields})
		}
	}
	baseBooks := make(map[string]*collection.Book)
	for _, b := range base.AllBooks() {
		baseBooks[b.ID] = b
	}
	for _, b := range target.AllBooks() {
		if _, exists := baseBooks[b.ID]; !exists {
			entriesProcessed.N++
			record(Change{Reason: Added, Kind: KindBook, ID: b.ID, Title: b.Title})
		}
	}

	entriesProcessed.SetCompleted()
	changesDiscovered.SetCompleted()

	return changes
}

func seriesDeltas(before, after *collection.Series) []FieldDelta {
	var fields []FieldDelta
	fields = appendDelta(fields, "title", before.Title, after.Title)
	fields = appendDelta(fields, "desc", before.Desc, after.Desc)
	fields = appendDelta(fields, "notes", before.Notes, after.Notes)
	return fields
}

func bookDeltas(base, target *collection.Collection, before, after *collection.Book) []FieldDelta {
	var fields []FieldDelta
	fields = appendDelta(fields, "title", before.Title, after.Title)
	fields = appendDelta(fields, "desc", before.Desc, after.Desc)
	fields = appendDelta(fields, "notes", before.Notes, after.Notes)
	fields = appendDelta(fields, "path", before.Path, after.Path)
	fields = appendDelta(fields, "series", seriesIDOf(base, before.ID), seriesIDOf(target, after.ID))
	return fields
}

func seriesIDOf(c *collection.Collection, bookID string) string {
	if s := c.SeriesOf(bookID); s != nil {
		return s.ID
	}
	return ""
}

func appendDelta(fields []FieldDelta, name, from, to string) []FieldDelta {
	if from == to {
		return fields
	}
	return append(fields, FieldDelta{Name: name, From: from, To: to})
}
