package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/nerdneilsfield/go-docx-translator/internal/logger"
	"github.com/nerdneilsfield/go-docx-translator/pkg/providers/factory"
	"github.com/nerdneilsfield/go-docx-translator/pkg/providers/probe"
)

func newProbeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Test the connection to every provider and rank them by latency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			log := logger.NewLogger(cfg.Debug)
			defer func() {
				_ = log.Sync()
			}()

			registry, err := factory.NewRegistry(cfg, factory.Options{Timeout: cfg.Timeout()})
			if err != nil {
				return err
			}

			results := probe.Rank(cmd.Context(), registry.List(), log)
			printProbe(cmd.OutOrStdout(), results)

			if _, ok := probe.Best(results); !ok {
				return fmt.Errorf("no translation provider is reachable")
			}
			return nil
		},
	}
}

// printProbe 渲染探测结果，按 Rank 的顺序
func printProbe(w io.Writer, results []probe.Result) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"#", "Provider", "Status", "Latency", "Message"})

	for i, r := range results {
		status := color.New(color.FgGreen).Sprint("OK")
		latency := r.Latency.Round(time.Millisecond).String()
		if !r.OK {
			status = color.New(color.FgRed).Sprint("FAIL")
			latency = "-"
		}
		tw.AppendRow(table.Row{i + 1, r.Kind, status, latency, truncate(r.Message, 60)})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
	})
	tw.SetStyle(table.StyleLight)
	tw.Render()
}
