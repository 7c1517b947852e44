package template

import (
	"bytes"
	"flag"
	"os"
	"path"
	"testing"

	"github.com/anchore/go-testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvcollection/nvcx/nvcx/presenter/models"
)

var update = flag.Bool("update", false, "update the *.golden files for template presenters")

func TestPresenter_Present(t *testing.T) {
	doc, report := models.GenerateAnalysis(t)

	workingDirectory, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	templateFilePath := path.Join(workingDirectory, "./test-fixtures/test.template")

	templatePresenter := NewPresenter(doc, report, nil, templateFilePath)

	var buffer bytes.Buffer
	if err := templatePresenter.Present(&buffer); err != nil {
		t.Fatal(err)
	}

	actual := buffer.Bytes()
	if *update {
		testutils.UpdateGoldenFileContents(t, actual)
	}

	expected := testutils.GetGoldenFileContents(t)
	assert.Equal(t, string(expected), string(actual))
}

func TestPresenter_SprigFunctions(t *testing.T) {
	doc, report := models.GenerateAnalysis(t)

	templatePresenter := NewPresenter(doc, report, nil, "test-fixtures/sprig.template")

	var buffer bytes.Buffer
	require.NoError(t, templatePresenter.Present(&buffer))

	assert.Equal(t, "Missing Books: 1 of 4\n", buffer.String())
}

func TestPresenter_MissingTemplateFile(t *testing.T) {
	doc, report := models.GenerateAnalysis(t)

	templatePresenter := NewPresenter(doc, report, nil, "test-fixtures/does-not-exist.template")

	var buffer bytes.Buffer
	err := templatePresenter.Present(&buffer)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to get output template")
}
