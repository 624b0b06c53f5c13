package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Refresh the local snapshot for offline listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Snapshot == nil {
				return fmt.Errorf("no snapshot configured")
			}

			ctx := context.Background()
			if err := app.Orc.Load(ctx); err != nil {
				return err
			}

			// Pull fresh follow-ups per plan so the offline timeline is
			// complete, not just the embedded listing.
			exports, err := app.Orc.LoadForExport(ctx)
			if err != nil {
				return err
			}
			plans := app.Orc.Store().Sorted()
			for _, e := range exports {
				if p := app.Orc.Store().Get(e.Plan.ID); p != nil {
					p.FollowUps = e.FollowUps
				}
			}

			if err := app.Snapshot.Replace(ctx, plans, time.Now()); err != nil {
				return err
			}
			fmt.Printf("Snapshot refreshed with %d plan(s).\n", len(plans))
			return nil
		},
	}
}
