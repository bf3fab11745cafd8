package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmmoran/crudgen/pkg/action/api"
	"github.com/cmmoran/crudgen/pkg/generator"
)

func init() {
	var apiCmd = NewAPICommand()
	rootCmd.AddCommand(apiCmd)
}

func NewAPICommand() *cobra.Command {
	var (
		options = generator.NewOptions()
		columns string
	)

	// apiCmd represents the crudgen api command
	var apiCmd = &cobra.Command{
		Use:   "api <resource>",
		Short: "generate a CRUD API",
		Long: `Generate the model, migration, controller, resource, collection and route of a
Laravel CRUD API for <resource>.

  crudgen api Order --columns name:string,total:decimal,meta:json`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg := struct {
				Crudgen *generator.Options `mapstructure:"crudgen"`
			}{Crudgen: options}
			if err := viper.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("read configuration: %w", err)
			}

			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt)
			defer stop()

			out := c.OutOrStdout()
			res, err := api.Generate(ctx, options, args[0], columns, out)
			if res == nil {
				return err
			}
			if options.DryRun {
				printChanges(out, res.Changes)
			}
			if err != nil {
				return errReported
			}
			if res.Run.Degraded {
				_, _ = color.New(color.FgYellow).Fprintf(out, "Completed with %d warning(s).\n", len(res.Run.Warnings))
			}
			return nil
		},
	}

	flags := apiCmd.Flags()
	flags.StringVarP(&columns, "columns", "c", "", "column declarations, ex: name:string,total:decimal")
	flags.StringVarP(&options.Project, "project", "p", options.Project, "laravel project root")
	flags.StringVarP(&options.StubDir, "stubs", "s", "", "directory of *.stub files overriding the bundled stubs")
	flags.StringVarP(&options.Driver, "driver", "d", options.Driver, "skeleton driver: artisan or native")
	flags.StringVar(&options.PHP, "php", options.PHP, "php binary used by the artisan driver")
	flags.IntVar(&options.PerPage, "per-page", options.PerPage, "page size of the generated index action")
	flags.BoolVarP(&options.DryRun, "dry-run", "n", false, "show the changes without writing them")
	flags.BoolVar(&options.CleanupOnFailure, "cleanup-on-failure", false, "remove files created by a failed run")
	flags.StringVar(&options.Manifest, "manifest", options.Manifest, "run ledger, relative to the project root")
	_ = apiCmd.MarkFlagRequired("columns")

	for key, flag := range map[string]string{
		"crudgen.project":            "project",
		"crudgen.stub_dir":           "stubs",
		"crudgen.driver":             "driver",
		"crudgen.php":                "php",
		"crudgen.per_page":           "per-page",
		"crudgen.dry_run":            "dry-run",
		"crudgen.cleanup_on_failure": "cleanup-on-failure",
		"crudgen.manifest":           "manifest",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	return apiCmd
}

func printChanges(w io.Writer, changes []generator.Change) {
	header := color.New(color.FgCyan, color.Bold)
	for _, ch := range changes {
		state := "modified"
		if ch.Created {
			state = "new file"
		}
		_, _ = header.Fprintf(w, "%s (%s)\n", ch.Path, state)
		_, _ = fmt.Fprintln(w, ch.Diff)
	}
	if len(changes) == 0 {
		_, _ = fmt.Fprintln(w, "no changes")
	}
}
