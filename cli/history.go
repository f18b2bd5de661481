package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"hrslides/app"
	"hrslides/i18n"
)

func newHistoryCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, show and delete recorded builds",
		Long: `Builds are recorded when history.enabled is set in the configuration.
The history lives in a SQLite file by default, or in MySQL.`,
	}

	cmd.AddCommand(newHistoryListCmd(e))
	cmd.AddCommand(newHistoryShowCmd(e))
	cmd.AddCommand(newHistoryDeleteCmd(e))
	return cmd
}

func newHistoryListCmd(e *env) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent builds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			switch st, _ := e.app.Status(e.app.History.Name()); st.State {
			case app.StateReady:
			case app.StateDegraded:
				return fmt.Errorf("%s", i18n.T("history.unavailable", st.Err))
			default:
				_, _ = fmt.Fprintln(out, i18n.T("history.off"))
				return nil
			}

			builds, err := e.app.History.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(builds) == 0 {
				_, _ = fmt.Fprintln(out, i18n.T("history.empty"))
				return nil
			}

			t := newTable(out, i18n.T("col.id"), i18n.T("col.created"), i18n.T("col.plan"),
				i18n.T("col.slides"), i18n.T("col.size"), i18n.T("col.duration"))
			for _, b := range builds {
				t.AppendRow([]interface{}{
					b.ID, b.CreatedAt.Local().Format(time.DateTime), b.PlanPath,
					b.Slides, humanBytes(b.Bytes), shortDuration(b.Duration),
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of builds (0 for all)")
	return cmd
}

func newHistoryShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one build",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := e.app.History.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendRows([]table.Row{
				{i18n.T("col.id"), b.ID},
				{i18n.T("col.created"), b.CreatedAt.Local().Format(time.DateTime)},
				{i18n.T("col.plan"), b.PlanPath},
				{i18n.T("col.output"), b.Output},
				{i18n.T("col.slides"), b.Slides},
				{i18n.T("col.layouts"), strings.Join(b.Layouts, ", ")},
				{i18n.T("col.size"), humanBytes(b.Bytes)},
				{i18n.T("col.duration"), shortDuration(b.Duration)},
			})
			if b.Handout != "" {
				t.AppendRow(table.Row{"PDF", b.Handout})
			}
			if b.PreviewDir != "" {
				t.AppendRow(table.Row{"PNG", b.PreviewDir})
			}
			t.Render()
			return nil
		},
	}
}

func newHistoryDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete one build record",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.app.History.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("history.deleted", args[0]))
			return nil
		},
	}
}
