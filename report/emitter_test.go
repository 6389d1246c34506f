package report

import (
	"errors"
	"testing"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-bedrock-gametest/testresult"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	docs []Document
	err  error
}

func (w *recordingWriter) Write(doc Document) error {
	w.docs = append(w.docs, doc)
	return w.err
}

func Test_GivenRunGridAndLogs_WhenEmitting_ThenWritesDocumentOnceInOrder(t *testing.T) {
	// Given
	writer := &recordingWriter{}
	emitter := NewEmitter(writer, log.NewLogger())

	run := testresult.TestRun{Unique: 2, Passed: 1, Failed: 1, TotalRun: 2, CurrentIteration: 1}
	grid := BuildGrid(1, nil, GridOptions{})
	logs := []LogFile{
		{Name: "/bds/ContentLog__1.txt", Content: "first"},
		{Name: "/bds/ContentLog__2.txt", Content: "second"},
	}

	// When
	err := emitter.Emit(run, grid, logs)

	// Then
	require.NoError(t, err)
	require.Len(t, writer.docs, 1)

	blocks := writer.docs[0].Blocks
	require.Len(t, blocks, 9)
	assert.Equal(t, Heading{Text: "Test results", Level: 1}, blocks[0])
	assert.Equal(t, Table{Rows: grid.Rows}, blocks[2])
	assert.Equal(t, Separator{}, blocks[3])
	assert.Equal(t, Heading{Text: "/bds/ContentLog__1.txt", Level: 2}, blocks[4])
	assert.Equal(t, CodeBlock{Content: "first"}, blocks[5])
	assert.Equal(t, Separator{}, blocks[6])
	assert.Equal(t, Heading{Text: "/bds/ContentLog__2.txt", Level: 2}, blocks[7])
	assert.Equal(t, CodeBlock{Content: "second"}, blocks[8])
}

func Test_GivenRun_WhenBuildingDocument_ThenSummaryTableShowsReportedCounters(t *testing.T) {
	// Given
	run := testresult.TestRun{Unique: 3, Passed: 7, Failed: 1, TotalRun: 9}

	// When
	doc := BuildDocument(run, BuildGrid(0, nil, GridOptions{}), nil)

	// Then
	require.Len(t, doc.Blocks, 3)
	summary, ok := doc.Blocks[1].(Table)
	require.True(t, ok)
	require.Len(t, summary.Rows, 2)

	var headers, values []string
	for _, cell := range summary.Rows[0].Cells {
		headers = append(headers, cell.Text)
	}
	for _, cell := range summary.Rows[1].Cells {
		values = append(values, cell.Text)
	}
	assert.Equal(t, []string{"Unique", ":green_circle: Passed", ":red_circle: Failed", "Total Run"}, headers)
	assert.Equal(t, []string{"3", "7", "1", "9"}, values)
}

func Test_GivenFailingSink_WhenEmitting_ThenReturnsRenderError(t *testing.T) {
	// Given
	sinkErr := errors.New("disk full")
	writer := &recordingWriter{err: sinkErr}
	emitter := NewEmitter(writer, log.NewLogger())

	// When
	err := emitter.Emit(testresult.TestRun{}, BuildGrid(0, nil, GridOptions{}), nil)

	// Then
	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.ErrorIs(t, err, sinkErr)
}
