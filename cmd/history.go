package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/cmmoran/crudgen/pkg/action/history"
)

func init() {
	var historyCmd = NewHistoryCommand()
	rootCmd.AddCommand(historyCmd)
}

func NewHistoryCommand() *cobra.Command {
	var (
		project, manifestPath, resource string
		diff                            bool
	)

	var historyCmd = &cobra.Command{
		Use:   "history",
		Short: "list recorded generation runs",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			abs, err := filepath.Abs(project)
			if err != nil {
				return err
			}
			fsys := afero.NewBasePathFs(afero.NewOsFs(), abs)
			out := c.OutOrStdout()

			if diff {
				d, err := history.DiffLastTwo(fsys, manifestPath, resource)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, d)
				return nil
			}

			runs, err := history.List(fsys, manifestPath, resource)
			if err != nil {
				return err
			}
			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Started", "Resource", "Columns", "Status", "Artifacts", "ID"})
			for _, r := range runs {
				t.AppendRow(table.Row{r.StartedAt.Local().Format(time.DateTime), r.Resource, r.Columns, r.Status, len(r.Artifacts), r.ID})
			}
			t.Render()
			return nil
		},
	}
	historyCmd.Flags().StringVarP(&project, "project", "p", ".", "laravel project root")
	historyCmd.Flags().StringVar(&manifestPath, "manifest", ".crudgen/manifest.yaml", "run ledger, relative to the project root")
	historyCmd.Flags().StringVarP(&resource, "resource", "r", "", "only runs of this resource")
	historyCmd.Flags().BoolVar(&diff, "diff", false, "diff the columns of the last two runs of --resource")

	return historyCmd
}
