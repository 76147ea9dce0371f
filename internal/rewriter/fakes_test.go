package rewriter

import (
	"context"
	"errors"
	"strings"

	"github.com/stretchr/testify/mock"
)

type fakeSpan struct {
	text    string
	format  Formatting
	image   bool
	inspect error
}

func (s *fakeSpan) Text() string            { return s.text }
func (s *fakeSpan) Formatting() Formatting  { return s.format }
func (s *fakeSpan) HasImage() (bool, error) { return s.image, s.inspect }

type fakeParagraph struct {
	spans    []Span
	replaced int
}

func newParagraph(texts ...string) *fakeParagraph {
	p := &fakeParagraph{}
	for _, t := range texts {
		p.spans = append(p.spans, &fakeSpan{text: t})
	}
	return p
}

func (p *fakeParagraph) Spans() []Span { return p.spans }

func (p *fakeParagraph) ReplaceSpans(rebuilt []Rebuilt) error {
	p.replaced++
	spans := make([]Span, 0, len(rebuilt))
	for _, r := range rebuilt {
		if r.IsImage() {
			spans = append(spans, r.Image)
			continue
		}
		spans = append(spans, &fakeSpan{text: r.Text, format: r.Format})
	}
	p.spans = spans
	return nil
}

func (p *fakeParagraph) text() string {
	var sb strings.Builder
	for _, s := range p.spans {
		sb.WriteString(s.Text())
	}
	return sb.String()
}

type fakeCell struct {
	text string
	err  error
}

func (c *fakeCell) Text() string { return c.text }

func (c *fakeCell) SetText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type fakeRow struct{ cells []Cell }

func (r *fakeRow) Cells() []Cell { return r.cells }

type fakeTable struct{ rows []Row }

func (t *fakeTable) Rows() []Row { return t.rows }

func tableOf(cells ...*fakeCell) *fakeTable {
	row := &fakeRow{}
	for _, c := range cells {
		row.cells = append(row.cells, c)
	}
	return &fakeTable{rows: []Row{row}}
}

type fakePart struct {
	id         string
	linked     bool
	paragraphs []Paragraph
	tables     []Table
}

func (p *fakePart) ID() string              { return p.id }
func (p *fakePart) LinkedToPrevious() bool  { return p.linked }
func (p *fakePart) Paragraphs() []Paragraph { return p.paragraphs }
func (p *fakePart) Tables() []Table         { return p.tables }

type fakeSection struct{ header, footer Part }

func (s *fakeSection) Header() Part { return s.header }
func (s *fakeSection) Footer() Part { return s.footer }

type fakeDocument struct {
	sections   []Section
	paragraphs []Paragraph
	tables     []Table
}

func (d *fakeDocument) Sections() []Section     { return d.sections }
func (d *fakeDocument) Paragraphs() []Paragraph { return d.paragraphs }
func (d *fakeDocument) Tables() []Table         { return d.tables }

// mockTranslator records calls through testify's mock package.
type mockTranslator struct {
	mock.Mock
}

func (m *mockTranslator) Translate(ctx context.Context, text, targetLang string) string {
	args := m.Called(ctx, text, targetLang)
	return args.String(0)
}

// upperTranslator upper-cases its input and can trip a cancel token after a
// number of calls.
type upperTranslator struct {
	calls    []string
	cancelAt int
	token    *CancelToken
}

func (u *upperTranslator) Translate(_ context.Context, text, _ string) string {
	u.calls = append(u.calls, text)
	if u.token != nil && len(u.calls) == u.cancelAt {
		u.token.Cancel()
	}
	return strings.ToUpper(text)
}

var errInspect = errors.New("broken run")
