package summary

import (
	"fmt"
	"os"
	"strings"

	"github.com/bitrise-steplib/steps-bedrock-gametest/report"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// FileWriter is the part of fileutil.FileManager the summary needs.
type FileWriter interface {
	Write(path string, value string, perm os.FileMode) error
}

type fileSink struct {
	fileWriter FileWriter
	path       string
}

// NewFileWriter returns a report sink writing markdown to path.
func NewFileWriter(fileWriter FileWriter, path string) report.Writer {
	return &fileSink{
		fileWriter: fileWriter,
		path:       path,
	}
}

func (s fileSink) Write(doc report.Document) error {
	if err := s.fileWriter.Write(s.path, Render(doc), 0644); err != nil {
		return fmt.Errorf("failed to write summary (%s): %w", s.path, err)
	}
	return nil
}

// Render serialises a report document to GitHub flavoured markdown.
func Render(doc report.Document) string {
	var b strings.Builder

	for _, block := range doc.Blocks {
		switch blk := block.(type) {
		case report.Heading:
			level := blk.Level
			if level < 1 {
				level = 1
			}
			fmt.Fprintf(&b, "%s %s\n\n", strings.Repeat("#", level), blk.Text)
		case report.Table:
			b.WriteString(renderTable(blk))
			b.WriteString("\n\n")
		case report.CodeBlock:
			fence := codeFence(blk.Content)
			content := strings.TrimSuffix(blk.Content, "\n")
			fmt.Fprintf(&b, "%s\n%s\n%s\n\n", fence, content, fence)
		case report.Separator:
			b.WriteString("---\n\n")
		}
	}

	return b.String()
}

// renderTable uses markdown for plain tables and HTML when cells span columns,
// since markdown tables can not merge cells. The HTML renderer turns auto
// merged cells into colspan cells.
func renderTable(tbl report.Table) string {
	t := table.NewWriter()
	t.Style().Format.Header = text.FormatDefault

	merged := false
	for _, row := range tbl.Rows {
		cells, hasSpan := expand(row)
		if hasSpan {
			merged = true
		}

		config := table.RowConfig{AutoMerge: hasSpan}
		if isHeader(row) {
			t.AppendHeader(cells, config)
		} else {
			t.AppendRow(cells, config)
		}
	}

	if merged {
		return t.RenderHTML()
	}
	return t.RenderMarkdown()
}

// expand repeats a spanning cell once per covered column so auto merge can join them again.
func expand(row report.Row) (table.Row, bool) {
	var cells table.Row
	hasSpan := false

	for _, cell := range row.Cells {
		if cell.Span > 1 {
			hasSpan = true
		}
		for i := 0; i < cell.Span; i++ {
			cells = append(cells, cell.Text)
		}
	}

	return cells, hasSpan
}

func isHeader(row report.Row) bool {
	if len(row.Cells) == 0 {
		return false
	}
	for _, cell := range row.Cells {
		if !cell.Header {
			return false
		}
	}
	return true
}

func codeFence(content string) string {
	longest, current := 0, 0
	for _, r := range content {
		if r == '`' {
			current++
			if current > longest {
				longest = current
			}
			continue
		}
		current = 0
	}

	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}
