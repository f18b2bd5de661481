package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"hrslides/i18n"
	"hrslides/pptx"
)

func newInspectCmd(e *env) *cobra.Command {
	var xlsx string

	cmd := &cobra.Command{
		Use:   "inspect <deck.pptx>",
		Short: "Show the slides, texts and notes of a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := e.app.Deck.Inspect(args[0])
			if err != nil {
				return err
			}
			renderDocument(cmd, filepath.Base(args[0]), doc)

			if xlsx != "" {
				if err := e.app.Deck.Workbook(args[0], xlsx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("workbook.written", xlsx))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&xlsx, "xlsx", "", "also export texts, notes and chart data to this workbook")
	return cmd
}

func renderDocument(cmd *cobra.Command, name string, doc *pptx.Document) {
	t := newTable(cmd.OutOrStdout(), i18n.T("col.slide"), i18n.T("col.texts"), i18n.T("col.charts"), i18n.T("col.notes"))
	wrapColumns(t, 2, 4)

	withNotes := 0
	for _, s := range doc.Slides {
		if s.Notes != "" {
			withNotes++
		}
		charts := make([]string, 0, len(s.Charts))
		for _, c := range s.Charts {
			charts = append(charts, fmt.Sprintf("%s: %s", c.Kind, strings.Join(c.Categories, ", ")))
		}
		t.AppendRow([]interface{}{s.Number, joinLines(s.Texts()), joinLines(charts), s.Notes})
	}
	t.Render()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("inspect.summary", name, len(doc.Slides), withNotes))
}
