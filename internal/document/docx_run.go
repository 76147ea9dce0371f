package document

import (
	"encoding/hex"
	"errors"
	"strconv"
	"strings"

	"github.com/nerdneilsfield/go-docx-translator/internal/rewriter"
)

// Run is a w:r element.
type Run struct {
	node *Node
}

var _ rewriter.Span = (*Run)(nil)

var errDetachedRun = errors.New("run has no element")

// Text returns the visible text of the run.
func (r *Run) Text() string {
	if r.node == nil {
		return ""
	}
	return runText(r.node)
}

func runText(run *Node) string {
	var sb strings.Builder
	for _, c := range run.Elements() {
		if c.Space != WordprocessingMLNamespace {
			continue
		}
		switch c.Local {
		case "t":
			sb.WriteString(c.Text())
		case "tab", "ptab":
			sb.WriteByte('\t')
		case "br":
			// page and column breaks carry no text
			if typ, _ := c.Attr(WordprocessingMLNamespace, "type"); typ == "" || typ == "textWrapping" {
				sb.WriteByte('\n')
			}
		case "cr":
			sb.WriteByte('\n')
		case "noBreakHyphen":
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

// HasImage reports whether the run carries a payload that must be kept as
// is: a drawing, a VML picture, an embedded object or a field code part.
func (r *Run) HasImage() (bool, error) {
	if r.node == nil {
		return false, errDetachedRun
	}
	for _, name := range []string{"drawing", "pict", "object", "fldChar", "instrText"} {
		if r.node.Find(WordprocessingMLNamespace, name) != nil {
			return true, nil
		}
	}
	return false, nil
}

// Formatting reads the direct run properties.
func (r *Run) Formatting() rewriter.Formatting {
	if r.node == nil {
		return rewriter.Formatting{}
	}
	return readFormatting(r.node.Child(WordprocessingMLNamespace, "rPr"))
}

func readFormatting(rPr *Node) rewriter.Formatting {
	var f rewriter.Formatting
	if rPr == nil {
		return f
	}

	f.Bold = readToggle(rPr.Child(WordprocessingMLNamespace, "b"))
	f.Italic = readToggle(rPr.Child(WordprocessingMLNamespace, "i"))

	if u := rPr.Child(WordprocessingMLNamespace, "u"); u != nil {
		val, _ := u.Attr(WordprocessingMLNamespace, "val")
		switch val {
		case "":
			f.Underline = rewriter.UnderlineSingle
		default:
			f.Underline = rewriter.Underline(val)
		}
	}

	if fonts := rPr.Child(WordprocessingMLNamespace, "rFonts"); fonts != nil {
		if name, ok := fonts.Attr(WordprocessingMLNamespace, "ascii"); ok {
			f.FontName = name
		} else if name, ok := fonts.Attr(WordprocessingMLNamespace, "hAnsi"); ok {
			f.FontName = name
		}
	}

	if sz := rPr.Child(WordprocessingMLNamespace, "sz"); sz != nil {
		val, _ := sz.Attr(WordprocessingMLNamespace, "val")
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			f.SizeHalfPoints = n
		}
	}

	if color := rPr.Child(WordprocessingMLNamespace, "color"); color != nil {
		val, _ := color.Attr(WordprocessingMLNamespace, "val")
		f.Color = parseColor(val)
	}

	if hl := rPr.Child(WordprocessingMLNamespace, "highlight"); hl != nil {
		if val, _ := hl.Attr(WordprocessingMLNamespace, "val"); val != "none" {
			f.Highlight = val
		}
	}

	return f
}

func readToggle(el *Node) rewriter.Toggle {
	if el == nil {
		return rewriter.Inherit
	}
	val, ok := el.Attr(WordprocessingMLNamespace, "val")
	if isOn(val, ok) {
		return rewriter.On
	}
	return rewriter.Off
}

// parseColor accepts six hex digits; "auto" and malformed values yield nil.
func parseColor(val string) *rewriter.RGB {
	if len(val) != 6 {
		return nil
	}
	b, err := hex.DecodeString(val)
	if err != nil {
		return nil
	}
	return &rewriter.RGB{b[0], b[1], b[2]}
}

// newRun builds a detached w:r carrying text and formatting. Child elements
// follow the order required by the run properties schema.
func newRun(scope *Node, text string, f rewriter.Formatting) *Node {
	run := scope.NewElement(WordprocessingMLNamespace, "r")

	if rPr := buildRunProps(run, f); rPr != nil {
		run.AppendChild(rPr)
	}
	appendText(run, text)
	return run
}

func buildRunProps(run *Node, f rewriter.Formatting) *Node {
	rPr := run.NewElement(WordprocessingMLNamespace, "rPr")
	add := func(local, val string) {
		el := rPr.NewElement(WordprocessingMLNamespace, local)
		if val != "" {
			el.SetAttr(WordprocessingMLNamespace, "val", val)
		}
		rPr.AppendChild(el)
	}
	toggle := func(local string, t rewriter.Toggle) {
		switch t {
		case rewriter.On:
			add(local, "")
		case rewriter.Off:
			add(local, "0")
		}
	}

	if f.FontName != "" {
		fonts := rPr.NewElement(WordprocessingMLNamespace, "rFonts")
		fonts.SetAttr(WordprocessingMLNamespace, "ascii", f.FontName)
		fonts.SetAttr(WordprocessingMLNamespace, "hAnsi", f.FontName)
		rPr.AppendChild(fonts)
	}
	toggle("b", f.Bold)
	toggle("i", f.Italic)
	if f.Color != nil {
		add("color", f.Color.String())
	}
	if f.SizeHalfPoints > 0 {
		add("sz", strconv.Itoa(f.SizeHalfPoints))
	}
	if f.Highlight != "" {
		add("highlight", f.Highlight)
	}
	if f.Underline != rewriter.UnderlineInherit {
		add("u", string(f.Underline))
	}

	if len(rPr.Children) == 0 {
		return nil
	}
	return rPr
}

// appendText writes text into run as w:t, w:br and w:tab elements. An empty
// text still gets an empty w:t so the run stays a text run.
func appendText(run *Node, text string) {
	if text == "" {
		run.AppendChild(newText(run, ""))
		return
	}

	var seg strings.Builder
	flush := func() {
		if seg.Len() > 0 {
			run.AppendChild(newText(run, seg.String()))
			seg.Reset()
		}
	}
	for _, r := range text {
		switch r {
		case '\n':
			flush()
			run.AppendChild(run.NewElement(WordprocessingMLNamespace, "br"))
		case '\t':
			flush()
			run.AppendChild(run.NewElement(WordprocessingMLNamespace, "tab"))
		default:
			seg.WriteRune(r)
		}
	}
	flush()
}

func newText(run *Node, text string) *Node {
	t := run.NewElement(WordprocessingMLNamespace, "t")
	t.SetAttr(XMLNamespace, "space", "preserve")
	if text != "" {
		t.AppendChild(&Node{Kind: CharDataNode, Data: text})
	}
	return t
}
