package report

// Block is one section of a report document.
type Block interface {
	isBlock()
}

// Heading ...
type Heading struct {
	Text  string
	Level int
}

// Table ...
type Table struct {
	Rows []Row
}

// CodeBlock holds verbatim text.
type CodeBlock struct {
	Content string
}

// Separator ...
type Separator struct{}

func (Heading) isBlock()   {}
func (Table) isBlock()     {}
func (CodeBlock) isBlock() {}
func (Separator) isBlock() {}

// Document is the renderer independent form of the report.
type Document struct {
	Blocks []Block
}

// AddHeading ...
func (d *Document) AddHeading(text string, level int) *Document {
	d.Blocks = append(d.Blocks, Heading{Text: text, Level: level})
	return d
}

// AddTable ...
func (d *Document) AddTable(rows []Row) *Document {
	d.Blocks = append(d.Blocks, Table{Rows: rows})
	return d
}

// AddCodeBlock ...
func (d *Document) AddCodeBlock(content string) *Document {
	d.Blocks = append(d.Blocks, CodeBlock{Content: content})
	return d
}

// AddSeparator ...
func (d *Document) AddSeparator() *Document {
	d.Blocks = append(d.Blocks, Separator{})
	return d
}
