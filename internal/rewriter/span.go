// Package rewriter implements formatting-preserving text replacement for
// word-processing documents: it walks a document tree, aggregates the
// text-bearing runs of each paragraph into one translation unit and spreads
// the translated text back over freshly built runs.
package rewriter

import (
	"fmt"

	"go.uber.org/zap"
)

// Toggle is a tri-state run property such as bold or italic.
type Toggle int8

const (
	// Inherit leaves the property to the paragraph or character style.
	Inherit Toggle = iota
	On
	Off
)

func (t Toggle) String() string {
	switch t {
	case On:
		return "on"
	case Off:
		return "off"
	default:
		return "inherit"
	}
}

// Underline holds the underline style of a run. The empty value inherits.
type Underline string

const (
	UnderlineInherit Underline = ""
	UnderlineNone    Underline = "none"
	UnderlineSingle  Underline = "single"
)

// RGB is an explicit text color.
type RGB [3]byte

// String returns the color as six upper-case hex digits.
func (c RGB) String() string {
	return fmt.Sprintf("%02X%02X%02X", c[0], c[1], c[2])
}

// Formatting is a snapshot of the run properties that survive a rebuild.
// Zero values mean "not set on the run".
type Formatting struct {
	Bold           Toggle
	Italic         Toggle
	Underline      Underline
	FontName       string
	SizeHalfPoints int
	Color          *RGB
	Highlight      string
}

// Span is one run of a paragraph.
type Span interface {
	// Text returns the run's visible text.
	Text() string
	// Formatting returns a snapshot of the run properties.
	Formatting() Formatting
	// HasImage reports whether the run embeds a drawing or picture.
	HasImage() (bool, error)
}

// IsImageSpan classifies a span. Inspection errors count as "no image" so
// that the run is still offered for translation instead of being dropped.
func IsImageSpan(span Span, logger *zap.Logger) bool {
	hasImage, err := span.HasImage()
	if err != nil {
		if logger != nil {
			logger.Debug("span inspection failed, treating as text", zap.Error(err))
		}
		return false
	}
	return hasImage
}
