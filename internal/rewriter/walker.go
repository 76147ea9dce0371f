package rewriter

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Translator turns text into the target language. Implementations never
// fail: on any backend problem they hand back the input unchanged.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) string
}

// Paragraph is an ordered run container.
type Paragraph interface {
	Spans() []Span
	// ReplaceSpans swaps the paragraph's runs for the rebuilt ones, in order.
	ReplaceSpans(spans []Rebuilt) error
}

// Cell is a table cell, translated as one opaque text.
type Cell interface {
	Text() string
	SetText(text string) error
}

// Row is a table row.
type Row interface {
	Cells() []Cell
}

// Table is an ordered list of rows.
type Table interface {
	Rows() []Row
}

// Part is a header or footer of a section.
type Part interface {
	// ID identifies the underlying storage so that parts shared between
	// sections are visited once.
	ID() string
	// LinkedToPrevious reports that the part has no content of its own.
	LinkedToPrevious() bool
	Paragraphs() []Paragraph
	Tables() []Table
}

// Section owns a header and a footer.
type Section interface {
	Header() Part
	Footer() Part
}

// Document is the root of the walk.
type Document interface {
	Sections() []Section
	// Paragraphs and Tables return the body content.
	Paragraphs() []Paragraph
	Tables() []Table
}

// Stats counts what a walk did.
type Stats struct {
	Paragraphs        int
	ParagraphsSkipped int
	Cells             int
	CellsSkipped      int
	Images            int
}

// Walker rewrites a document in place, one paragraph or cell at a time.
type Walker struct {
	translator Translator
	targetLang string
	cancel     *CancelToken
	logger     *zap.Logger
}

// NewWalker creates a walker. cancel may be nil.
func NewWalker(translator Translator, targetLang string, cancel *CancelToken, logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{
		translator: translator,
		targetLang: targetLang,
		cancel:     cancel,
		logger:     logger,
	}
}

// Walk translates headers and footers section by section, then the body
// paragraphs and the body tables. It returns ErrCancelled as soon as the
// cancel token is observed; the document must then be discarded.
func (w *Walker) Walk(ctx context.Context, doc Document) (Stats, error) {
	var stats Stats
	seen := make(map[string]bool)

	for i, section := range doc.Sections() {
		if w.cancel.Cancelled() {
			return stats, ErrCancelled
		}

		if header := section.Header(); w.visit(header, seen) {
			w.logger.Debug("translating header", zap.Int("section", i), zap.String("part", header.ID()))
			if err := w.paragraphs(ctx, header.Paragraphs(), &stats); err != nil {
				return stats, fmt.Errorf("section %d header: %w", i, err)
			}
		}

		if footer := section.Footer(); w.visit(footer, seen) {
			w.logger.Debug("translating footer", zap.Int("section", i), zap.String("part", footer.ID()))
			if err := w.paragraphs(ctx, footer.Paragraphs(), &stats); err != nil {
				return stats, fmt.Errorf("section %d footer: %w", i, err)
			}
			if err := w.tables(ctx, footer.Tables(), &stats); err != nil {
				return stats, fmt.Errorf("section %d footer: %w", i, err)
			}
		}
	}

	if err := w.paragraphs(ctx, doc.Paragraphs(), &stats); err != nil {
		return stats, fmt.Errorf("body: %w", err)
	}
	if err := w.tables(ctx, doc.Tables(), &stats); err != nil {
		return stats, fmt.Errorf("body: %w", err)
	}

	return stats, nil
}

func (w *Walker) visit(part Part, seen map[string]bool) bool {
	if part == nil || part.LinkedToPrevious() {
		return false
	}
	if seen[part.ID()] {
		return false
	}
	seen[part.ID()] = true
	return true
}

func (w *Walker) paragraphs(ctx context.Context, paragraphs []Paragraph, stats *Stats) error {
	for i, p := range paragraphs {
		if w.cancel.Cancelled() {
			return ErrCancelled
		}
		if err := w.paragraph(ctx, p, stats); err != nil {
			return fmt.Errorf("paragraph %d: %w", i, err)
		}
	}
	return nil
}

func (w *Walker) paragraph(ctx context.Context, p Paragraph, stats *Stats) error {
	unit, ok := BuildUnit(p.Spans(), w.logger)
	if !ok {
		stats.ParagraphsSkipped++
		return nil
	}

	translated := w.translator.Translate(ctx, unit.Text, w.targetLang)
	if translated == unit.Text {
		stats.ParagraphsSkipped++
		return nil
	}

	rebuilt := Redistribute(translated, unit.Records)
	if err := p.ReplaceSpans(rebuilt); err != nil {
		return err
	}

	for _, r := range rebuilt {
		if r.IsImage() {
			stats.Images++
		}
	}
	stats.Paragraphs++
	return nil
}

func (w *Walker) tables(ctx context.Context, tables []Table, stats *Stats) error {
	for ti, table := range tables {
		for ri, row := range table.Rows() {
			for ci, cell := range row.Cells() {
				if w.cancel.Cancelled() {
					return ErrCancelled
				}
				if err := w.cell(ctx, cell, stats); err != nil {
					return fmt.Errorf("table %d row %d cell %d: %w", ti, ri, ci, err)
				}
			}
		}
	}
	return nil
}

// cell replaces the whole cell text; the cell's run formatting is not kept.
func (w *Walker) cell(ctx context.Context, c Cell, stats *Stats) error {
	text := c.Text()
	if strings.TrimSpace(text) == "" {
		stats.CellsSkipped++
		return nil
	}

	translated := w.translator.Translate(ctx, text, w.targetLang)
	if translated == text {
		stats.CellsSkipped++
		return nil
	}

	if err := c.SetText(translated); err != nil {
		return err
	}
	stats.Cells++
	return nil
}
