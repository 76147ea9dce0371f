package translator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateFilename(t *testing.T) {
	tr := &dictTranslator{dict: map[string]string{
		"Report":  "Rapport",
		"Q1/Q2":   "T1/T2: résumé?",
		"archive": "  ",
		"notes":   "..",
		"年度報告":    "Annual Report",
	}}

	tests := []struct {
		name string
		want string
	}{
		{"Report.docx", "Rapport.docx"},
		{"Q1/Q2.docx", "T1_T2_ résumé_.docx"},
		{"archive.docx", "archive.docx"},
		{"notes.docx", "notes.docx"},
		{"年度報告.docx", "Annual Report.docx"},
		{"untitled", "untitled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TranslateFilename(context.Background(), tr, tt.name, "french"))
		})
	}
}

func TestTranslateFilenameSendsBaseOnly(t *testing.T) {
	tr := &dictTranslator{}
	TranslateFilename(context.Background(), tr, "Quarterly Report.v2.docx", "thai")
	assert.Equal(t, []string{"Quarterly Report.v2"}, tr.calls)
}
