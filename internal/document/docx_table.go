package document

import (
	"strings"

	"github.com/nerdneilsfield/go-docx-translator/internal/rewriter"
)

// Table is a w:tbl element.
type Table struct {
	node *Node
	part *xmlPart
}

var _ rewriter.Table = (*Table)(nil)

func tablesOf(container *Node, part *xmlPart) []rewriter.Table {
	var out []rewriter.Table
	for _, t := range container.ChildrenNamed(WordprocessingMLNamespace, "tbl") {
		out = append(out, &Table{node: t, part: part})
	}
	return out
}

func (t *Table) Rows() []rewriter.Row {
	var out []rewriter.Row
	for _, tr := range t.node.ChildrenNamed(WordprocessingMLNamespace, "tr") {
		out = append(out, &Row{node: tr, part: t.part})
	}
	return out
}

// Row is a w:tr element.
type Row struct {
	node *Node
	part *xmlPart
}

func (r *Row) Cells() []rewriter.Cell {
	var out []rewriter.Cell
	for _, tc := range r.node.ChildrenNamed(WordprocessingMLNamespace, "tc") {
		out = append(out, &Cell{node: tc, part: r.part})
	}
	return out
}

// Cell is a w:tc element.
type Cell struct {
	node *Node
	part *xmlPart
}

var _ rewriter.Cell = (*Cell)(nil)

// Text joins the text of the cell's own paragraphs with newlines. Nested
// tables are not part of the cell text.
func (c *Cell) Text() string {
	paras := c.node.ChildrenNamed(WordprocessingMLNamespace, "p")
	texts := make([]string, len(paras))
	for i, p := range paras {
		texts[i] = paragraphText(p)
	}
	return strings.Join(texts, "\n")
}

// SetText replaces the cell's paragraphs with a single unformatted paragraph
// holding text. Cell properties and nested tables stay in place.
func (c *Cell) SetText(text string) error {
	paras := c.node.ChildrenNamed(WordprocessingMLNamespace, "p")

	at := len(c.node.Children)
	if n := len(paras); n > 0 {
		at = c.node.IndexOf(paras[n-1]) - (n - 1)
	}
	for _, p := range paras {
		c.node.RemoveChild(p)
	}

	p := c.node.NewElement(WordprocessingMLNamespace, "p")
	run := p.NewElement(WordprocessingMLNamespace, "r")
	appendText(run, text)
	p.AppendChild(run)
	c.node.InsertChild(at, p)

	c.part.dirty = true
	return nil
}
