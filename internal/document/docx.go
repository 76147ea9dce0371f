// Package document opens DOCX packages, exposes their sections, paragraphs,
// runs and tables to the rewriter, and writes them back with every untouched
// part copied verbatim.
package document

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/nerdneilsfield/go-docx-translator/internal/rewriter"
)

// ErrNotDocx is returned for inputs that are neither a zip package nor a
// recognised legacy document.
var ErrNotDocx = errors.New("not a DOCX package")

// xmlPart is a parsed XML part of the package.
type xmlPart struct {
	name  string
	tree  *Node
	dirty bool
}

// Docx is an opened word-processing package.
type Docx struct {
	zr     *zip.Reader
	parts  map[string]*xmlPart
	body   *Node
	main   *xmlPart
	rels   map[string]Relationship
	secs   []*Section
	logger *zap.Logger
}

var _ rewriter.Document = (*Docx)(nil)

// Open reads a DOCX file from disk.
func Open(path string, logger *zap.Logger) (*Docx, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := OpenBytes(data, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

// OpenBytes parses a DOCX package held in memory.
func OpenBytes(data []byte, logger *zap.Logger) (*Docx, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if IsOLE(data) {
		return nil, DetectLegacy(data)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDocx, err)
	}

	d := &Docx{
		zr:     zr,
		parts:  make(map[string]*xmlPart),
		logger: logger,
	}

	d.main, err = d.loadPart(MainDocumentPart)
	if err != nil {
		return nil, err
	}
	root := d.main.tree.Root()
	if !root.Is(WordprocessingMLNamespace, "document") {
		return nil, fmt.Errorf("%w: %s has no w:document root", ErrNotDocx, MainDocumentPart)
	}
	d.body = root.Child(WordprocessingMLNamespace, "body")
	if d.body == nil {
		return nil, fmt.Errorf("%w: %s has no w:body", ErrNotDocx, MainDocumentPart)
	}

	d.rels = map[string]Relationship{}
	if f := d.file(documentRelsPart); f != nil {
		raw, err := readFile(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", documentRelsPart, err)
		}
		if d.rels, err = parseRelationships(raw); err != nil {
			return nil, err
		}
	}

	if err := d.loadSections(); err != nil {
		return nil, err
	}

	logger.Debug("opened docx",
		zap.Int("parts", len(zr.File)),
		zap.Int("sections", len(d.secs)))
	return d, nil
}

func (d *Docx) file(name string) *zip.File {
	for _, f := range d.zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func readFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// loadPart parses an XML part once and caches it.
func (d *Docx) loadPart(name string) (*xmlPart, error) {
	if p, ok := d.parts[name]; ok {
		return p, nil
	}
	f := d.file(name)
	if f == nil {
		return nil, fmt.Errorf("%w: missing part %s", ErrNotDocx, name)
	}
	raw, err := readFile(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	tree, err := ParseXML(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	p := &xmlPart{name: name, tree: tree}
	d.parts[name] = p
	return p, nil
}

// Sections returns the document sections in order.
func (d *Docx) Sections() []rewriter.Section {
	out := make([]rewriter.Section, len(d.secs))
	for i, s := range d.secs {
		out[i] = s
	}
	return out
}

// Paragraphs returns the top-level body paragraphs.
func (d *Docx) Paragraphs() []rewriter.Paragraph {
	return paragraphsOf(d.body, d.main)
}

// Tables returns the top-level body tables.
func (d *Docx) Tables() []rewriter.Table {
	return tablesOf(d.body, d.main)
}

// Write serialises the package. Parts that were not modified are copied
// without recompression.
func (d *Docx) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	for _, f := range d.zr.File {
		p, parsed := d.parts[f.Name]
		if !parsed || !p.dirty {
			if err := zw.Copy(f); err != nil {
				return fmt.Errorf("failed to copy %s: %w", f.Name, err)
			}
			continue
		}

		out, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: f.Modified,
		})
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", f.Name, err)
		}
		if err := p.tree.Encode(out); err != nil {
			return fmt.Errorf("failed to encode %s: %w", f.Name, err)
		}
	}

	return zw.Close()
}

// Save writes the package to path. The file is written next to its
// destination and renamed into place, so a failure never leaves a partial
// file behind.
func (d *Docx) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".docx-translator-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := d.Write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// Modified reports whether any part has been changed.
func (d *Docx) Modified() bool {
	for _, p := range d.parts {
		if p.dirty {
			return true
		}
	}
	return false
}
