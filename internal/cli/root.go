package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nedo8680/plan-accion-cli/internal/repository"
	"github.com/nedo8680/plan-accion-cli/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to everything CLI commands operate on.
type App struct {
	Orc     service.Orchestrator
	Session service.Session

	// Snapshot is the offline cache; nil when no snapshot path is
	// configured.
	Snapshot repository.SnapshotRepo

	// IsInteractive reports whether stdin is a terminal; forms and the
	// plan picker only run when it is.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "planaccion" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "planaccion",
		Short:         "Improvement plan and follow-up tracker",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newListCmd(app),
		newShowCmd(app),
		newNewCmd(app),
		newEditCmd(app),
		newSaveCmd(app),
		newSubmitCmd(app),
		newEvaluateCmd(app),
		newDeleteCmd(app),
		newFollowUpCmd(app),
		newSplitCmd(app),
		newIndicatorsCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newSyncCmd(app),
	)

	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// selectPlan loads the listing and activates the plan named by arg. An
// empty arg falls back to the interactive picker on a terminal.
func selectPlan(ctx context.Context, app *App, arg string) error {
	if err := app.Orc.Load(ctx); err != nil {
		return err
	}

	var id int64
	if arg == "" {
		if !app.interactive() {
			return fmt.Errorf("plan ID is required")
		}
		picked, err := pickPlan(app.Orc.Store())
		if err != nil {
			return err
		}
		id = picked
	} else {
		parsed, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid plan ID %q", arg)
		}
		id = parsed
	}
	return app.Orc.SetActive(ctx, id)
}

func optionalArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
