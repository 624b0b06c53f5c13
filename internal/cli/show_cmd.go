package cli

import (
	"context"
	"fmt"

	"github.com/nedo8680/plan-accion-cli/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [plan-id]",
		Short: "Show a plan and its follow-up timeline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := selectPlan(ctx, app, optionalArg(args)); err != nil {
				return err
			}

			plan := app.Orc.Store().Get(app.Orc.ActivePlanID())
			fmt.Println(formatter.FormatPlanDetail(plan))
			if app.Orc.FollowUpsVisible() {
				fmt.Println(formatter.FormatTimeline(app.Orc.Store().Timeline(plan.ID)))
			} else {
				fmt.Println(formatter.Dim("Los seguimientos se habilitan cuando el plan es aprobado."))
			}
			return nil
		},
	}
}
