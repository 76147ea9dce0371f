package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"

	"github.com/nerdneilsfield/go-docx-translator/internal/translator"
	"github.com/nerdneilsfield/go-docx-translator/pkg/providers/stats"
)

const nameWidth = 40

// truncate 按显示宽度截断，中日文字符算两列
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}

// printSummary 输出批量翻译结果表格和一行汇总
func printSummary(w io.Writer, result *translator.BatchResult, counters translator.Counters, usage stats.ProviderStats) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"#", "Input", "Output", "Paragraphs", "Cells", "Images", "Duration", "Status"})

	for i, doc := range result.Documents {
		output := "-"
		if doc.Output != "" {
			output = truncate(filepath.Base(doc.Output), nameWidth)
		}
		tw.AppendRow(table.Row{
			i + 1,
			truncate(filepath.Base(doc.Input), nameWidth),
			output,
			doc.Stats.Paragraphs,
			doc.Stats.Cells,
			doc.Stats.Images,
			doc.Duration.Round(time.Millisecond).String(),
			status(doc),
		})
	}

	tw.AppendFooter(table.Row{"", usage.Provider, "tokens", usage.TotalTokensIn, usage.TotalTokensOut, "", "Requests", counters.Requests})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	tw.SetStyle(table.StyleLight)
	tw.Render()

	line := fmt.Sprintf("%d translated, %d failed, %d backend requests (%d failed, %d cached, %d predefined, %d links kept) -> %s",
		result.Succeeded(), result.Failed(),
		counters.Requests, counters.Failures, counters.CacheHits, counters.Predefined, counters.Passthrough,
		result.TargetLang)

	switch {
	case result.Cancelled:
		color.New(color.FgYellow, color.Bold).Fprintln(w, "⚠ cancelled: "+line)
	case result.Failed() > 0:
		color.New(color.FgRed, color.Bold).Fprintln(w, "✗ "+line)
	default:
		color.New(color.FgGreen, color.Bold).Fprintln(w, "✓ "+line)
	}
}

func status(doc translator.DocumentResult) string {
	switch {
	case doc.Cancelled():
		return color.New(color.FgYellow).Sprint("cancelled")
	case doc.Err != nil:
		return color.New(color.FgRed).Sprint(truncate(doc.Err.Error(), nameWidth))
	default:
		return color.New(color.FgGreen).Sprint("ok")
	}
}
