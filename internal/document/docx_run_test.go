package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdneilsfield/go-docx-translator/internal/rewriter"
)

func parseRoot(t *testing.T, body string) *Node {
	t.Helper()
	tree, err := ParseXML([]byte(body))
	require.NoError(t, err)
	return tree.Root()
}

func TestRunText(t *testing.T) {
	r := parseRoot(t, `<w:r `+nsDecl+`><w:rPr><w:b/></w:rPr><w:t>a</w:t><w:tab/><w:t>b</w:t><w:br/><w:t>c</w:t><w:br w:type="page"/><w:noBreakHyphen/><w:cr/><w:softHyphen/></w:r>`)
	assert.Equal(t, "a\tb\nc-\n", (&Run{node: r}).Text())
}

func TestRunFormatting(t *testing.T) {
	cases := []struct {
		name string
		rPr  string
		want rewriter.Formatting
	}{
		{
			name: "Empty",
			rPr:  ``,
			want: rewriter.Formatting{},
		},
		{
			name: "Explicit",
			rPr: `<w:rPr><w:rFonts w:ascii="Arial" w:hAnsi="Times"/><w:b/><w:i w:val="0"/>` +
				`<w:color w:val="1F3864"/><w:sz w:val="24"/><w:highlight w:val="yellow"/><w:u w:val="double"/></w:rPr>`,
			want: rewriter.Formatting{
				Bold:           rewriter.On,
				Italic:         rewriter.Off,
				Underline:      "double",
				FontName:       "Arial",
				SizeHalfPoints: 24,
				Color:          &rewriter.RGB{0x1F, 0x38, 0x64},
				Highlight:      "yellow",
			},
		},
		{
			name: "FallbacksAndAuto",
			rPr: `<w:rPr><w:rFonts w:hAnsi="Calibri"/><w:b w:val="false"/><w:i w:val="true"/>` +
				`<w:color w:val="auto"/><w:highlight w:val="none"/><w:u w:val="none"/></w:rPr>`,
			want: rewriter.Formatting{
				Bold:      rewriter.Off,
				Italic:    rewriter.On,
				Underline: rewriter.UnderlineNone,
				FontName:  "Calibri",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := parseRoot(t, `<w:r `+nsDecl+`>`+tc.rPr+`<w:t>x</w:t></w:r>`)
			assert.Equal(t, tc.want, (&Run{node: r}).Formatting())
		})
	}
}

func TestHasImage(t *testing.T) {
	cases := map[string]bool{
		`<w:t>text</w:t>`:                           false,
		`<w:drawing><wp:inline/></w:drawing>`:       true,
		`<w:pict/>`:                                 true,
		`<w:object/>`:                               true,
		`<w:t>a</w:t><w:drawing/><w:t>b</w:t>`:      true,
		`<w:fldChar w:fldCharType="begin"/>`:        true,
		`<w:instrText> PAGE </w:instrText>`:         true,
		`<w:tab/><w:t>1</w:t>`:                      false,
	}
	for inner, want := range cases {
		r := parseRoot(t, `<w:r `+nsDecl+`>`+inner+`</w:r>`)
		got, err := (&Run{node: r}).HasImage()
		require.NoError(t, err)
		assert.Equal(t, want, got, inner)
	}

	_, err := (&Run{}).HasImage()
	assert.Error(t, err)
}

func TestNewRun(t *testing.T) {
	p := parseRoot(t, `<w:p `+nsDecl+`/>`)

	t.Run("FullFormatting", func(t *testing.T) {
		f := rewriter.Formatting{
			Bold:           rewriter.On,
			Italic:         rewriter.Off,
			Underline:      rewriter.UnderlineSingle,
			FontName:       "Arial",
			SizeHalfPoints: 24,
			Color:          &rewriter.RGB{0xFF, 0, 0},
			Highlight:      "yellow",
		}
		run := newRun(p, "a\nb\t", f)
		out, err := run.Bytes()
		require.NoError(t, err)
		assert.Equal(t, `<w:r><w:rPr><w:rFonts w:ascii="Arial" w:hAnsi="Arial"/><w:b/><w:i w:val="0"/>`+
			`<w:color w:val="FF0000"/><w:sz w:val="24"/><w:highlight w:val="yellow"/><w:u w:val="single"/></w:rPr>`+
			`<w:t xml:space="preserve">a</w:t><w:br/><w:t xml:space="preserve">b</w:t><w:tab/></w:r>`, string(out))

		assert.Equal(t, f, (&Run{node: run}).Formatting())
		assert.Equal(t, "a\nb\t", (&Run{node: run}).Text())
	})

	t.Run("EmptyTextKeepsFormatting", func(t *testing.T) {
		run := newRun(p, "", rewriter.Formatting{Italic: rewriter.On})
		out, err := run.Bytes()
		require.NoError(t, err)
		assert.Equal(t, `<w:r><w:rPr><w:i/></w:rPr><w:t xml:space="preserve"/></w:r>`, string(out))
	})
}

func TestCellSetText(t *testing.T) {
	tc := parseRoot(t, `<w:tc `+nsDecl+`><w:tcPr><w:shd w:fill="EEEEEE"/></w:tcPr>`+
		`<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>A</w:t></w:r></w:p>`+
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>nested</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`+
		`<w:p><w:hyperlink><w:r><w:t>B</w:t></w:r></w:hyperlink></w:p></w:tc>`)
	part := &xmlPart{name: "word/document.xml"}
	cell := &Cell{node: tc, part: part}

	assert.Equal(t, "A\nB", cell.Text())

	require.NoError(t, cell.SetText("X\nY"))
	assert.True(t, part.dirty)
	assert.Equal(t, "X\nY", cell.Text())

	kids := tc.Elements()
	require.Len(t, kids, 3)
	assert.True(t, kids[0].Is(WordprocessingMLNamespace, "tcPr"))
	assert.True(t, kids[1].Is(WordprocessingMLNamespace, "tbl"))
	assert.True(t, kids[2].Is(WordprocessingMLNamespace, "p"))

	// the replacement run is plain
	run := kids[2].Child(WordprocessingMLNamespace, "r")
	require.NotNil(t, run)
	assert.Nil(t, run.Child(WordprocessingMLNamespace, "rPr"))
	assert.Equal(t, "nested", kids[1].Find(WordprocessingMLNamespace, "t").Text())
}

func TestCellSetTextWithoutParagraph(t *testing.T) {
	tc := parseRoot(t, `<w:tc `+nsDecl+`><w:tcPr/></w:tc>`)
	cell := &Cell{node: tc, part: &xmlPart{}}

	require.NoError(t, cell.SetText("new"))
	assert.Equal(t, "new", cell.Text())
	assert.True(t, tc.Elements()[1].Is(WordprocessingMLNamespace, "p"))
}
