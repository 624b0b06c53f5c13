package cli

import (
	"context"
	"fmt"

	"github.com/nedo8680/plan-accion-cli/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newIndicatorsCmd(app *App) *cobra.Command {
	var entity string

	cmd := &cobra.Command{
		Use:   "indicators",
		Short: "Show used indicators, optionally against an entity's candidates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := app.Orc.Load(ctx); err != nil {
				return err
			}

			var candidates []string
			if entity != "" {
				rows, err := app.Orc.Candidates(ctx, entity)
				if err != nil {
					return err
				}
				for _, r := range rows {
					candidates = append(candidates, r.Indicator)
				}
			}

			fmt.Println(formatter.FormatIndicators(app.Orc.UsedIndicators(), candidates))
			return nil
		},
	}

	cmd.Flags().StringVar(&entity, "entity", "", "Entity whose candidate indicators to compare")

	return cmd
}
