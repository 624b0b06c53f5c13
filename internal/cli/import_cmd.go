package cli

import (
	"context"
	"fmt"

	"github.com/nedo8680/plan-accion-cli/internal/cli/formatter"
	"github.com/nedo8680/plan-accion-cli/internal/importer"
	"github.com/nedo8680/plan-accion-cli/internal/service"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Seed draft plans from a CSV or XLSX prefill file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := importer.ReadFile(args[0])
			if err != nil {
				return err
			}
			if errs := importer.Validate(rows); len(errs) > 0 {
				for _, e := range errs {
					fmt.Println(formatter.StyleRed.Render("  " + e.Error()))
				}
				return fmt.Errorf("prefill file has %d validation error(s)", len(errs))
			}

			if dryRun {
				fmt.Printf("%d row(s) validated; no plans created.\n", len(rows))
				return nil
			}

			ctx := context.Background()
			if err := app.Orc.Load(ctx); err != nil {
				return err
			}

			created := 0
			for _, row := range rows {
				app.Orc.StartNew()
				app.Orc.ApplyPrefill(service.Prefill{
					Entity:    row.Entity,
					Indicator: row.Indicator,
					Action:    row.Action,
				})
				id, err := app.Orc.EnsurePlanExists(ctx)
				if err != nil {
					return fmt.Errorf("row %d (%s): %w", row.Line, row.Entity, err)
				}
				created++
				fmt.Printf("Created draft plan %d for %s\n", id, row.Entity)
			}
			fmt.Printf("Imported %d plan(s).\n", created)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the file without creating plans")

	return cmd
}
