package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bitrise-steplib/steps-bedrock-gametest/testresult"
)

// Status markers, rendered as emoji by the summary viewer.
const (
	PassedMarker = ":green_circle:"
	FailedMarker = ":red_circle:"
)

const nameColumns = 2

// RowKind ...
type RowKind int

// Row kinds ...
const (
	TitleRow RowKind = iota
	HeaderRow
	GroupRow
	TestRow
	ValueRow
)

// Cell ...
type Cell struct {
	Text   string
	Header bool
	Span   int
}

// Row ...
type Row struct {
	Kind  RowKind
	Cells []Cell
}

// Width is the number of columns the row covers.
func (r Row) Width() int {
	width := 0
	for _, cell := range r.Cells {
		width += cell.Span
	}
	return width
}

// Grid has two name columns followed by one column per iteration.
type Grid struct {
	Columns int
	Rows    []Row
}

// GridOptions ...
type GridOptions struct {
	LegacyNames bool
	ShowStatus  bool
}

// BuildGrid lays the grouped results out as group rows followed by their member rows.
func BuildGrid(currentIteration int, groups []Group, opts GridOptions) Grid {
	if currentIteration < 0 {
		currentIteration = 0
	}

	grid := Grid{Columns: currentIteration}

	grid.Rows = append(grid.Rows, Row{
		Kind: TitleRow,
		Cells: spanned(
			Cell{Header: true, Span: nameColumns},
			Cell{Text: "Iteration", Header: true, Span: currentIteration},
		),
	})

	header := []Cell{
		{Text: "Group", Header: true, Span: 1},
		{Text: "Test", Header: true, Span: 1},
	}
	for i := 0; i < currentIteration; i++ {
		header = append(header, Cell{Text: strconv.Itoa(i), Header: true, Span: 1})
	}
	grid.Rows = append(grid.Rows, Row{Kind: HeaderRow, Cells: header})

	for _, group := range groups {
		grid.Rows = append(grid.Rows, Row{
			Kind: GroupRow,
			Cells: spanned(
				Cell{Text: group.Key, Span: nameColumns},
				Cell{Span: currentIteration},
			),
		})

		for _, member := range group.Members {
			cells := []Cell{
				{Span: 1},
				{Text: DisplayName(member, opts.LegacyNames), Span: 1},
			}
			for i := 0; i < currentIteration; i++ {
				cell := Cell{Span: 1}
				if opts.ShowStatus && member.Result.Iteration == i {
					cell.Text = StatusText(member.Result)
				}
				cells = append(cells, cell)
			}
			grid.Rows = append(grid.Rows, Row{Kind: TestRow, Cells: cells})
		}
	}

	return grid
}

// StatusText renders a result as marker, status, duration and error message.
func StatusText(result testresult.Result) string {
	marker := PassedMarker
	if result.Result != testresult.StatusPassed {
		marker = FailedMarker
	}

	parts := []string{fmt.Sprintf("%s %s", marker, result.Result)}
	if d := result.Duration(); d > 0 {
		parts = append(parts, formatSeconds(d))
	}
	if msg := result.ErrorMessage(); msg != "" {
		parts = append(parts, msg)
	}

	return strings.Join(parts, " ")
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}

// spanned drops cells that would cover no columns.
func spanned(cells ...Cell) []Cell {
	var kept []Cell
	for _, cell := range cells {
		if cell.Span > 0 {
			kept = append(kept, cell)
		}
	}
	return kept
}
