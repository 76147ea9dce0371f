package translator

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nerdneilsfield/go-docx-translator/pkg/providers"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Translate(ctx context.Context, req *providers.ProviderRequest) (*providers.ProviderResponse, error) {
	args := m.Called(ctx, req.Text, req.TargetLanguage)
	resp, _ := args.Get(0).(*providers.ProviderResponse)
	return resp, args.Error(1)
}

func (m *mockProvider) HealthCheck(ctx context.Context) error { return nil }
func (m *mockProvider) GetName() string                      { return "grok" }
func (m *mockProvider) Kind() providers.Kind                 { return providers.Grok }

// dictTranslator translates known strings and echoes the rest.
type dictTranslator struct {
	dict  map[string]string
	calls []string
	// onCall runs after each lookup
	onCall func(text string)
}

func (d *dictTranslator) Translate(_ context.Context, text, _ string) string {
	d.calls = append(d.calls, text)
	if d.onCall != nil {
		d.onCall(text)
	}
	if v, ok := d.dict[text]; ok {
		return v
	}
	return text
}

const docxHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
	`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

// writeDocx writes a minimal package whose body holds one paragraph per
// text and, when cell is not empty, a single-cell table.
func writeDocx(t *testing.T, path string, cell string, paragraphs ...string) {
	t.Helper()

	var body strings.Builder
	body.WriteString(docxHeader)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	if cell != "" {
		body.WriteString(`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>` + cell + `</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`)
	}
	body.WriteString(`<w:sectPr/></w:body></w:document>`)

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, data := range map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml":   body.String(),
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func inputDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "input")
	require.NoError(t, os.MkdirAll(dir, 0755))
	return dir
}
