package diff

import (
	"bytes"
	"flag"
	"strings"
	"testing"

	"github.com/acarl005/stripansi"
	"github.com/anchore/go-testutils"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "update the *.golden files for diff presenters")

func testChanges() []Change {
	return []Change{
		{Reason: Added, Kind: KindBook, ID: "bk9", Title: "Fresh Arrival"},
		{Reason: Removed, Kind: KindSeries, ID: "sr2", Title: "Retired Series"},
		{
			Reason: Changed,
			Kind:   KindBook,
			ID:     "bk1",
			Title:  "The Long Rain",
			Fields: []FieldDelta{
				{Name: "path", From: "old.novx", To: "new.novx"},
			},
		},
	}
}

func TestPresent_Json(t *testing.T) {
	//GIVEN
	changes := testChanges()
	var buffer bytes.Buffer

	//WHEN
	require.NoError(t, Present("json", changes, &buffer))

	//THEN
	actual := buffer.Bytes()
	if *update {
		testutils.UpdateGoldenFileContents(t, actual)
	}
	var expected = testutils.GetGoldenFileContents(t)
	if !bytes.Equal(expected, actual) {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(string(expected), string(actual), true)
		t.Errorf("mismatched output:\n%s", dmp.DiffPrettyText(diffs))
	}
}

func TestPresent_Table(t *testing.T) {
	//GIVEN
	changes := testChanges()
	var buffer bytes.Buffer

	//WHEN
	require.NoError(t, Present("table", changes, &buffer))

	//THEN
	plain := stripansi.Strip(buffer.String())
	lines := strings.Split(strings.TrimRight(plain, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[0], "REASON")
	assert.Contains(t, lines[1], "bk9")
	assert.Contains(t, lines[1], "Fresh Arrival")
	assert.Contains(t, lines[2], "sr2")
	assert.Contains(t, lines[2], "removed")
	assert.Contains(t, lines[3], "bk1")
	assert.Contains(t, lines[3], "path")
	assert.Contains(t, lines[3], "new.novx")
}

func TestPresent_UnsupportedFormat(t *testing.T) {
	err := Present("yaml", testChanges(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}
