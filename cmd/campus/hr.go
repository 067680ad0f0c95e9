package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/campus/internal/dashboard"
	"github.com/alfredjeanlab/campus/internal/listview"
	"github.com/alfredjeanlab/campus/internal/model"
)

var hrCmd = &cobra.Command{
	Use:     "hr",
	Short:   "HR dashboard: posted jobs, applications and offers",
	GroupID: "dashboards",
}

var hrSetStatusCmd = &cobra.Command{
	Use:   "set-status [application-id] <status>",
	Short: "Move an application to a new status",
	Long: `Move an application to a new status (APPLIED, SHORTLISTED, INTERVIEW,
OFFERED, REJECTED). The change shows immediately and is reverted if the
server rejects it. Without an id the last selected application is used.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var idArg, statusArg string
		if len(args) == 2 {
			idArg, statusArg = args[0], args[1]
		} else {
			statusArg = args[0]
		}
		id, err := sess.Resolve(dashboard.ViewHRApplications, idArg)
		if err != nil {
			return err
		}
		jobID, _ := cmd.Flags().GetString("job")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		d, err := loadView(ctx, dashboard.HRApplications(jobID))
		if err != nil {
			return err
		}
		if err := dashboard.SetApplicationStatus(ctx, d, id, model.ParseApplicationStatus(statusArg)); err != nil {
			return reported(err)
		}
		rememberSelection(dashboard.ViewHRApplications, id)
		return nil
	},
}

func init() {
	hrApplicationsCmd := listCommand("applications", "List applications to your jobs",
		func(cmd *cobra.Command) *dashboard.View[model.Application] {
			jobID, _ := cmd.Flags().GetString("job")
			return dashboard.HRApplications(jobID)
		})
	hrApplicationsCmd.Flags().String("job", "", "only applications to this job")
	hrSetStatusCmd.Flags().String("job", "", "load applications for this job only")

	hrCmd.AddCommand(
		listCommand("jobs", "List the jobs you have posted", fixed(dashboard.HRJobs)),
		hrApplicationsCmd,
		listCommand("offers", "List offers made by your company", fixed(dashboard.HROffers)),
		hrSetStatusCmd,
	)
}

// fixed adapts a view constructor that takes no flags.
func fixed[T model.Record](fn func() *dashboard.View[T]) func(*cobra.Command) *dashboard.View[T] {
	return func(*cobra.Command) *dashboard.View[T] { return fn() }
}

// reported maps a mutation error to errReported once the notifier has
// shown it. An id missing from the loaded view is not notified.
func reported(err error) error {
	if errors.Is(err, listview.ErrNotFound) {
		return err
	}
	return errReported
}

// rememberSelection saves id as the view's last selection. An empty id
// leaves the saved selection alone. Failing to save is logged only.
func rememberSelection(view, id string) {
	if id == "" {
		return
	}
	sess.Select(view, id)
	if err := sessions.Save(sess); err != nil {
		logger.Warn("saving selection", "view", view, "error", err)
	}
}

// loadView creates and loads a dashboard, reporting failures through the
// notifier.
func loadView[T model.Record](ctx context.Context, v *dashboard.View[T]) (*dashboard.Dashboard[T], error) {
	d := dashboard.New(v, deps())
	if err := d.Load(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", v.Name, errReported)
	}
	return d, nil
}
