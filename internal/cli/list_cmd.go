package cli

import (
	"context"
	"fmt"

	"github.com/nedo8680/plan-accion-cli/internal/cli/formatter"
	"github.com/nedo8680/plan-accion-cli/internal/store"
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var offline bool
	var order string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if order != "asc" && order != "desc" {
				return fmt.Errorf("invalid --order %q (expected asc or desc)", order)
			}

			if offline {
				return runOfflineList(ctx, app, store.Order(order))
			}

			if err := app.Orc.Load(ctx); err != nil {
				return err
			}
			s := app.Orc.Store()
			s.SetOrder(store.Order(order))
			rows := s.Rows()
			if len(rows) == 0 {
				fmt.Println("No plans found.")
				return nil
			}
			fmt.Print(formatter.FormatPlanList(rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Read from the local snapshot instead of the backend")
	cmd.Flags().StringVar(&order, "order", "desc", "Sort by creation time: asc or desc")

	return cmd
}

func runOfflineList(ctx context.Context, app *App, order store.Order) error {
	if app.Snapshot == nil {
		return fmt.Errorf("no snapshot configured; run sync first")
	}
	plans, err := app.Snapshot.ListPlans(ctx)
	if err != nil {
		return err
	}
	syncedAt, err := app.Snapshot.SyncedAt(ctx)
	if err != nil {
		return err
	}
	if syncedAt == nil {
		return fmt.Errorf("snapshot is empty; run sync first")
	}

	s := store.New()
	s.ReplaceAll(plans)
	s.SetOrder(order)
	rows := s.Rows()
	if len(rows) == 0 {
		fmt.Println("No plans in snapshot.")
	} else {
		fmt.Print(formatter.FormatPlanList(rows))
	}
	fmt.Println(formatter.FormatSyncInfo(syncedAt))
	return nil
}
