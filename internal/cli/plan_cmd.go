package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/nedo8680/plan-accion-cli/internal/cli/formatter"
	"github.com/nedo8680/plan-accion-cli/internal/domain"
	"github.com/nedo8680/plan-accion-cli/internal/lifecycle"
	"github.com/nedo8680/plan-accion-cli/internal/service"
	"github.com/spf13/cobra"
)

func newNewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new draft plan",
		Long: "Creates a draft plan. Only the entity name is required at this stage;\n" +
			"the remaining fields can be filled in before submitting.",
	}
	values := registerFieldFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := app.Orc.Load(ctx); err != nil {
			return err
		}
		app.Orc.StartNew()

		changed := changedFieldFlags(cmd.Flags(), values)
		for f, v := range changed {
			if err := app.Orc.UpdateField(f, v); err != nil {
				return err
			}
		}
		if len(changed) == 0 && app.interactive() {
			if err := runEditForm(app.Orc, false); err != nil {
				return err
			}
		}

		if advise, segments := app.Orc.SplitAdvice(); advise {
			fmt.Println(formatter.StyleYellow.Render(
				fmt.Sprintf("La acción planteada parece contener %d acciones; considere `planaccion split`.", len(segments))))
		}

		id, err := app.Orc.EnsurePlanExists(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Created draft plan %d\n", id)
		return nil
	}
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [plan-id]",
		Short: "Edit a plan interactively and save",
		Args:  cobra.MaximumNArgs(1),
	}
	values := registerFieldFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := selectPlan(ctx, app, optionalArg(args)); err != nil {
			return err
		}

		changed := changedFieldFlags(cmd.Flags(), values)
		if len(changed) == 0 {
			if !app.interactive() {
				return fmt.Errorf("no field flags given and no terminal for the form")
			}
			if err := runEditForm(app.Orc, app.Orc.FollowUpsVisible()); err != nil {
				return err
			}
			changed = nil
		}

		return saveAndReport(ctx, app, changed)
	}
	return cmd
}

func newSaveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save [plan-id]",
		Short: "Persist field changes on a plan",
		Args:  cobra.MaximumNArgs(1),
	}
	values := registerFieldFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if err := selectPlan(ctx, app, optionalArg(args)); err != nil {
			return err
		}
		return saveAndReport(ctx, app, changedFieldFlags(cmd.Flags(), values))
	}
	return cmd
}

func saveAndReport(ctx context.Context, app *App, overrides map[domain.Field]string) error {
	fu, err := app.Orc.SaveCurrent(ctx, overrides)
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("%s", verr.Error())
	}
	if err != nil {
		return err
	}
	fmt.Printf("Saved plan %d", app.Orc.ActivePlanID())
	if fu != nil && fu.ID != 0 {
		fmt.Printf(" (follow-up %d)", fu.ID)
	}
	fmt.Println()
	return nil
}

func newSubmitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "submit [plan-id]",
		Short: "Submit a draft plan for review",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := selectPlan(ctx, app, optionalArg(args)); err != nil {
				return err
			}
			if err := app.Orc.Submit(ctx); err != nil {
				return err
			}
			fmt.Printf("Plan %d submitted for review\n", app.Orc.ActivePlanID())
			return nil
		},
	}
}

func newEvaluateCmd(app *App) *cobra.Command {
	var approve, reject bool

	cmd := &cobra.Command{
		Use:   "evaluate [plan-id]",
		Short: "Approve or return a submitted plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if approve == reject {
				return fmt.Errorf("pass exactly one of --approve or --reject")
			}
			action := lifecycle.ActionApprove
			if reject {
				action = lifecycle.ActionReject
			}

			ctx := context.Background()
			if err := selectPlan(ctx, app, optionalArg(args)); err != nil {
				return err
			}
			if err := app.Orc.Evaluate(ctx, action); err != nil {
				return err
			}
			if approve {
				fmt.Printf("Plan %d enabled for follow-up\n", app.Orc.ActivePlanID())
			} else {
				fmt.Printf("Plan %d returned for adjustment\n", app.Orc.ActivePlanID())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&approve, "approve", false, "Enable the plan for follow-up")
	cmd.Flags().BoolVar(&reject, "reject", false, "Return the plan for adjustment")

	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete [plan-id]",
		Short: "Delete a plan and all its follow-ups",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := selectPlan(ctx, app, optionalArg(args)); err != nil {
				return err
			}
			id := app.Orc.ActivePlanID()

			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete without --yes")
				}
				ok, err := confirm(fmt.Sprintf("Delete plan %d and its follow-ups?", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Aborted.")
					return nil
				}
			}

			if err := app.Orc.RemovePlan(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Deleted plan %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}
