package cli

import (
	"context"
	"fmt"

	"github.com/nedo8680/plan-accion-cli/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSplitCmd(app *App) *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "split [plan-id]",
		Short: "Split a multi-action plan into sibling plans",
		Long: "Detects several improvement actions packed into the proposed-action\n" +
			"field. Without --apply it only reports the segments; with --apply the\n" +
			"plan keeps the first action and each remaining one becomes its own plan.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := selectPlan(ctx, app, optionalArg(args)); err != nil {
				return err
			}

			advise, segments := app.Orc.SplitAdvice()
			if len(segments) < 2 {
				fmt.Println("The proposed action holds a single action; nothing to split.")
				return nil
			}
			if !advise {
				fmt.Println("Plan is no longer a draft; splitting is only advised for drafts.")
			}

			fmt.Println(formatter.Header(fmt.Sprintf("%d acciones detectadas", len(segments))))
			for i, s := range segments {
				fmt.Printf("  %d. %s\n", i+1, s)
			}

			if !apply {
				fmt.Println(formatter.Dim("\nRun again with --apply to create sibling plans."))
				return nil
			}

			result, err := app.Orc.CreateSiblings(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("\nKept on plan %d: %s\n", app.Orc.ActivePlanID(), result.Kept)
			for _, p := range result.Created {
				fmt.Printf("Created sibling plan %d: %s\n", p.ID, p.ProposedAction)
			}
			for _, f := range result.Failures {
				fmt.Println(formatter.StyleRed.Render(
					fmt.Sprintf("Failed to create %q: %v", f.Action, f.Err)))
			}
			if len(result.Failures) > 0 {
				return fmt.Errorf("%d sibling(s) could not be created", len(result.Failures))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Create the sibling plans")

	return cmd
}
