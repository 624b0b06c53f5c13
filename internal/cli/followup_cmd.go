package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nedo8680/plan-accion-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newFollowUpCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "followup",
		Short: "Manage the follow-ups of a plan",
	}

	cmd.AddCommand(
		newFollowUpAddCmd(app),
		newFollowUpSetStatusCmd(app),
		newFollowUpObserveCmd(app),
		newFollowUpDeleteCmd(app),
	)

	return cmd
}

// selectFollowUp activates plan and follow-up from positional args.
func selectFollowUp(ctx context.Context, app *App, planArg, fuArg string) error {
	if err := selectPlan(ctx, app, planArg); err != nil {
		return err
	}
	if fuArg == "" {
		if app.Orc.ActiveFollowUpID() == 0 {
			return fmt.Errorf("plan %d has no follow-up selected", app.Orc.ActivePlanID())
		}
		return nil
	}
	id, err := strconv.ParseInt(fuArg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid follow-up ID %q", fuArg)
	}
	return app.Orc.SetActiveFollowUp(id)
}

func newFollowUpAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add [plan-id]",
		Short: "Add a new pending follow-up to a plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := selectPlan(ctx, app, optionalArg(args)); err != nil {
				return err
			}
			fu, err := app.Orc.AddFollowUp(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Added follow-up %d to plan %d\n", fu.ID, fu.PlanID)
			return nil
		},
	}
}

func newFollowUpSetStatusCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "set-status [plan-id] [followup-id]",
		Short: "Advance a follow-up's status",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			next, ok := parseStatusArg(status)
			if !ok {
				return fmt.Errorf("invalid --status %q (expected pending, in_progress or finalized)", status)
			}

			ctx := context.Background()
			if err := selectFollowUp(ctx, app, optionalArg(args), secondArg(args)); err != nil {
				return err
			}
			_, err := app.Orc.SaveCurrent(ctx, map[domain.Field]string{
				domain.FieldFollowUpStatus: string(next),
			})
			if err != nil {
				return err
			}
			fmt.Printf("Follow-up %d is now %s\n", app.Orc.ActiveFollowUpID(), next.Wire())
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "New status: pending, in_progress, finalized")
	_ = cmd.MarkFlagRequired("status")

	return cmd
}

func newFollowUpObserveCmd(app *App) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "observe [plan-id] [followup-id]",
		Short: "Attach an evaluator observation to a follow-up",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := selectFollowUp(ctx, app, optionalArg(args), secondArg(args)); err != nil {
				return err
			}
			_, err := app.Orc.SaveCurrent(ctx, map[domain.Field]string{
				domain.FieldFollowUpObservation: text,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Observation recorded on follow-up %d\n", app.Orc.ActiveFollowUpID())
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Observation text")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

func newFollowUpDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete [plan-id] [followup-id]",
		Short: "Delete a follow-up",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := selectFollowUp(ctx, app, optionalArg(args), secondArg(args)); err != nil {
				return err
			}
			id := app.Orc.ActiveFollowUpID()

			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete without --yes")
				}
				ok, err := confirm(fmt.Sprintf("Delete follow-up %d?", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Aborted.")
					return nil
				}
			}

			if err := app.Orc.RemoveFollowUp(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Deleted follow-up %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func parseStatusArg(s string) (domain.FollowUpStatus, bool) {
	switch s {
	case string(domain.FollowUpPending), string(domain.FollowUpInProgress), string(domain.FollowUpFinalized):
		return domain.FollowUpStatus(s), true
	}
	return "", false
}

func secondArg(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return ""
}
