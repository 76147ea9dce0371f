package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/nerdneilsfield/go-docx-translator/internal/config"
)

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the supported target languages",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.AppendHeader(table.Row{"Name", "Language", "Native", "Tag"})
			for _, l := range config.Languages() {
				tw.AppendRow(table.Row{l.Name, l.DisplayName(), l.SelfName(), l.Tag.String()})
			}
			tw.SetStyle(table.StyleLight)
			tw.Render()
		},
	}
}
