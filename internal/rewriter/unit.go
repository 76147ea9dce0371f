package rewriter

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Record describes one original span of a translation unit.
type Record struct {
	// Length is the rune count of the span's trimmed text; 0 for images.
	Length int
	Format Formatting
	// Image is the original span when it carries a drawing, nil otherwise.
	Image Span
}

// IsImage reports whether the record stands for an image-bearing span.
func (r Record) IsImage() bool {
	return r.Image != nil
}

// Unit is the text submitted to the backend for one paragraph, together with
// the records needed to rebuild the paragraph's runs.
type Unit struct {
	Text    string
	Records []Record
}

// TextLength returns the summed length of all text-bearing records.
func (u Unit) TextLength() int {
	total := 0
	for _, r := range u.Records {
		total += r.Length
	}
	return total
}

// BuildUnit concatenates the trimmed text of all text-bearing spans. It
// returns false when there is nothing to translate.
func BuildUnit(spans []Span, logger *zap.Logger) (Unit, bool) {
	var sb strings.Builder
	records := make([]Record, 0, len(spans))

	for _, span := range spans {
		if IsImageSpan(span, logger) {
			records = append(records, Record{
				Format: span.Formatting(),
				Image:  span,
			})
			continue
		}

		trimmed := strings.TrimSpace(span.Text())
		sb.WriteString(trimmed)
		records = append(records, Record{
			Length: utf8.RuneCountInString(trimmed),
			Format: span.Formatting(),
		})
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return Unit{}, false
	}

	return Unit{Text: text, Records: records}, true
}
