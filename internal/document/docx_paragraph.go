package document

import (
	"fmt"
	"strings"

	"github.com/nerdneilsfield/go-docx-translator/internal/rewriter"
)

// Paragraph is a w:p element.
type Paragraph struct {
	node *Node
	part *xmlPart
}

var _ rewriter.Paragraph = (*Paragraph)(nil)

func paragraphsOf(container *Node, part *xmlPart) []rewriter.Paragraph {
	var out []rewriter.Paragraph
	for _, p := range container.ChildrenNamed(WordprocessingMLNamespace, "p") {
		out = append(out, &Paragraph{node: p, part: part})
	}
	return out
}

// Spans returns the direct runs of the paragraph. Runs nested in hyperlinks,
// fields or content controls are not spans and are never rewritten.
func (p *Paragraph) Spans() []rewriter.Span {
	var out []rewriter.Span
	for _, r := range p.node.ChildrenNamed(WordprocessingMLNamespace, "r") {
		out = append(out, &Run{node: r})
	}
	return out
}

// Text returns the visible text of the paragraph, hyperlinks included.
func (p *Paragraph) Text() string {
	return paragraphText(p.node)
}

func paragraphText(p *Node) string {
	var sb strings.Builder
	for _, child := range p.Elements() {
		switch {
		case child.Is(WordprocessingMLNamespace, "r"):
			sb.WriteString(runText(child))
		case child.Is(WordprocessingMLNamespace, "hyperlink"):
			for _, r := range child.ChildrenNamed(WordprocessingMLNamespace, "r") {
				sb.WriteString(runText(r))
			}
		}
	}
	return sb.String()
}

// ReplaceSpans removes the direct runs and inserts the rebuilt ones where the
// first run used to be. Image runs are moved, not copied.
func (p *Paragraph) ReplaceSpans(rebuilt []rewriter.Rebuilt) error {
	nodes := make([]*Node, 0, len(rebuilt))
	for i, r := range rebuilt {
		if r.IsImage() {
			run, ok := r.Image.(*Run)
			if !ok || run.node == nil {
				return fmt.Errorf("rebuilt span %d: image is not a run of this document", i)
			}
			nodes = append(nodes, run.node)
			continue
		}
		nodes = append(nodes, newRun(p.node, r.Text, r.Format))
	}

	runs := p.node.ChildrenNamed(WordprocessingMLNamespace, "r")
	at := len(p.node.Children)
	if len(runs) > 0 {
		at = p.node.IndexOf(runs[0])
	}
	for _, r := range runs {
		p.node.RemoveChild(r)
	}

	for i, n := range nodes {
		p.node.InsertChild(at+i, n)
	}

	p.part.dirty = true
	return nil
}
