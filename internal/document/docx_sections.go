package document

import (
	"fmt"

	"github.com/nerdneilsfield/go-docx-translator/internal/rewriter"
)

// Section is a w:sectPr scope of the main document.
type Section struct {
	header *Part
	footer *Part
}

var _ rewriter.Section = (*Section)(nil)

func (s *Section) Header() rewriter.Part { return s.header }
func (s *Section) Footer() rewriter.Part { return s.footer }

// Part is a header or footer part. A linked part has no content of its own
// and shows the previous section's part instead.
type Part struct {
	part   *xmlPart
	root   *Node
	linked bool
}

var _ rewriter.Part = (*Part)(nil)

// ID returns the part name inside the package, e.g. word/header1.xml.
func (p *Part) ID() string {
	if p.part == nil {
		return ""
	}
	return p.part.name
}

func (p *Part) LinkedToPrevious() bool { return p.linked }

func (p *Part) Paragraphs() []rewriter.Paragraph {
	if p.linked {
		return nil
	}
	return paragraphsOf(p.root, p.part)
}

func (p *Part) Tables() []rewriter.Table {
	if p.linked {
		return nil
	}
	return tablesOf(p.root, p.part)
}

// loadSections collects the section properties of the body in order: those
// carried by paragraph properties, then the trailing body one.
func (d *Docx) loadSections() error {
	var props []*Node
	for _, child := range d.body.Elements() {
		switch {
		case child.Is(WordprocessingMLNamespace, "p"):
			if pPr := child.Child(WordprocessingMLNamespace, "pPr"); pPr != nil {
				if sectPr := pPr.Child(WordprocessingMLNamespace, "sectPr"); sectPr != nil {
					props = append(props, sectPr)
				}
			}
		case child.Is(WordprocessingMLNamespace, "sectPr"):
			props = append(props, child)
		}
	}

	for i, sectPr := range props {
		header, err := d.resolvePart(sectPr, "headerReference", "hdr")
		if err != nil {
			return fmt.Errorf("section %d header: %w", i, err)
		}
		footer, err := d.resolvePart(sectPr, "footerReference", "ftr")
		if err != nil {
			return fmt.Errorf("section %d footer: %w", i, err)
		}
		d.secs = append(d.secs, &Section{header: header, footer: footer})
	}
	return nil
}

// resolvePart finds the default header or footer referenced by sectPr.
func (d *Docx) resolvePart(sectPr *Node, refName, rootName string) (*Part, error) {
	for _, ref := range sectPr.ChildrenNamed(WordprocessingMLNamespace, refName) {
		typ, _ := ref.Attr(WordprocessingMLNamespace, "type")
		if typ != "default" {
			continue
		}

		id, ok := ref.Attr(OfficeRelNamespace, "id")
		if !ok {
			return nil, fmt.Errorf("%s without r:id", refName)
		}
		rel, ok := d.rels[id]
		if !ok {
			return nil, fmt.Errorf("unknown relationship %s", id)
		}

		part, err := d.loadPart(resolveTarget(MainDocumentPart, rel.Target))
		if err != nil {
			return nil, err
		}
		root := part.tree.Root()
		if !root.Is(WordprocessingMLNamespace, rootName) {
			return nil, fmt.Errorf("%s: expected w:%s root", part.name, rootName)
		}
		return &Part{part: part, root: root}, nil
	}

	return &Part{linked: true}, nil
}
