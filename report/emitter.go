package report

import (
	"fmt"
	"strconv"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-bedrock-gametest/testresult"
)

const reportTitle = "Test results"

// LogFile is a discovered log, identified by its path.
type LogFile struct {
	Name    string
	Content string
}

// Writer is the sink a finished document is flushed to.
type Writer interface {
	Write(doc Document) error
}

// RenderError is returned when the document could not be written to its sink.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to write report: %s", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Emitter ...
type Emitter interface {
	Emit(run testresult.TestRun, grid Grid, logs []LogFile) error
}

type emitter struct {
	writer Writer
	logger log.Logger
}

// NewEmitter ...
func NewEmitter(writer Writer, logger log.Logger) Emitter {
	return &emitter{
		writer: writer,
		logger: logger,
	}
}

// Emit assembles the whole document and writes it once.
func (e emitter) Emit(run testresult.TestRun, grid Grid, logs []LogFile) error {
	doc := BuildDocument(run, grid, logs)

	e.logger.Debugf("Writing report: %d blocks, %d grid rows, %d log files", len(doc.Blocks), len(grid.Rows), len(logs))

	if err := e.writer.Write(doc); err != nil {
		return &RenderError{Err: err}
	}

	return nil
}

// BuildDocument ...
func BuildDocument(run testresult.TestRun, grid Grid, logs []LogFile) Document {
	var doc Document

	doc.AddHeading(reportTitle, 1)
	doc.AddTable(summaryRows(run))
	doc.AddTable(grid.Rows)

	for _, logFile := range logs {
		doc.AddSeparator()
		doc.AddHeading(logFile.Name, 2)
		doc.AddCodeBlock(logFile.Content)
	}

	return doc
}

func summaryRows(run testresult.TestRun) []Row {
	return []Row{
		{
			Kind: HeaderRow,
			Cells: []Cell{
				{Text: "Unique", Header: true, Span: 1},
				{Text: PassedMarker + " Passed", Header: true, Span: 1},
				{Text: FailedMarker + " Failed", Header: true, Span: 1},
				{Text: "Total Run", Header: true, Span: 1},
			},
		},
		{
			Kind: ValueRow,
			Cells: []Cell{
				{Text: strconv.Itoa(run.Unique), Span: 1},
				{Text: strconv.Itoa(run.Passed), Span: 1},
				{Text: strconv.Itoa(run.Failed), Span: 1},
				{Text: strconv.Itoa(run.TotalRun), Span: 1},
			},
		},
	}
}
