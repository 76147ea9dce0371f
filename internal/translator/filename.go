package translator

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/nerdneilsfield/go-docx-translator/internal/rewriter"
)

var invalidNameChars = strings.NewReplacer(
	"/", "_", `\`, "_", ":", "_", "*", "_", "?", "_",
	`"`, "_", "<", "_", ">", "_", "|", "_",
)

// TranslateFilename 翻译文件名（不含扩展名），保留原扩展名
func TranslateFilename(ctx context.Context, t rewriter.Translator, name, targetLang string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	translated := strings.TrimSpace(t.Translate(ctx, base, targetLang))
	translated = invalidNameChars.Replace(translated)
	if translated == "" || translated == "." || translated == ".." {
		translated = base
	}
	return translated + ext
}
