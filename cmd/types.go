package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmmoran/crudgen/pkg/column"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "types",
		Short: "print the supported column types",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			for _, t := range column.Supported() {
				_, _ = fmt.Fprintln(c.OutOrStdout(), t)
			}
		},
	})
}
