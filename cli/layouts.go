package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"hrslides/i18n"
	"hrslides/plan"
)

func newLayoutsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List the layouts a plan can use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := newTable(cmd.OutOrStdout(), i18n.T("col.layout"), i18n.T("col.required"))
			for _, l := range plan.Layouts() {
				t.AppendRow([]interface{}{l.Name, strings.Join(l.Required, ", ")})
			}
			t.Render()
			return nil
		},
	}
}
