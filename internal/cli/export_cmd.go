package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nedo8680/plan-accion-cli/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export [plan-id]",
		Short: "Export plans with their follow-ups to XLSX or CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "xlsx" && format != "csv" {
				return fmt.Errorf("invalid --format %q (expected xlsx or csv)", format)
			}
			if output == "" {
				output = "plan-accion." + format
			}

			ctx := context.Background()
			if err := app.Orc.Load(ctx); err != nil {
				return err
			}

			var only int64
			if arg := optionalArg(args); arg != "" {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid plan ID %q", arg)
				}
				only = id
			}

			exports, err := app.Orc.LoadForExport(ctx)
			if err != nil {
				return err
			}

			title := "Planes de mejora"
			var records []export.Record
			for _, e := range exports {
				if only != 0 && e.Plan.ID != only {
					continue
				}
				if only != 0 {
					title = export.TitleFor(e.Plan)
				}
				records = append(records, export.Record{Plan: e.Plan, FollowUps: e.FollowUps})
			}
			if only != 0 && len(records) == 0 {
				return fmt.Errorf("plan %d not found", only)
			}

			dataset := export.Build(title, records)
			if format == "xlsx" {
				err = export.WriteXLSX(dataset, output)
			} else {
				err = export.WriteCSV(dataset, output)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Exported %d row(s) to %s\n", len(dataset.Rows), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "xlsx", "Output format: xlsx or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default plan-accion.<format>)")

	return cmd
}
