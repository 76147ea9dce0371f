package rewriter

// Rebuilt is one run of a rebuilt paragraph. Exactly one of Image or the
// text fields is meaningful.
type Rebuilt struct {
	// Image is the original image-bearing span, reinserted unchanged.
	Image  Span
	Text   string
	Format Formatting
}

// IsImage reports whether the rebuilt run reuses an image-bearing span.
func (r Rebuilt) IsImage() bool {
	return r.Image != nil
}

// Redistribute splits translated across the records in proportion to their
// original lengths. Each text record receives floor(T*len/L) runes; the
// remainder at the tail of translated is dropped.
func Redistribute(translated string, records []Record) []Rebuilt {
	runes := []rune(translated)
	total := len(runes)

	original := 0
	for _, r := range records {
		if !r.IsImage() {
			original += r.Length
		}
	}

	out := make([]Rebuilt, 0, len(records))
	pos := 0
	for _, r := range records {
		if r.IsImage() {
			out = append(out, Rebuilt{Image: r.Image, Format: r.Format})
			continue
		}

		n := Allocate(total, r.Length, original)
		out = append(out, Rebuilt{
			Text:   string(runes[pos : pos+n]),
			Format: r.Format,
		})
		pos += n
	}

	return out
}

// Allocate returns floor(total*length/original), or 0 when original is 0.
func Allocate(total, length, original int) int {
	if original == 0 {
		return 0
	}
	return total * length / original
}
