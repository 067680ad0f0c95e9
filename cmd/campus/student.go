package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/campus/internal/client"
	"github.com/alfredjeanlab/campus/internal/dashboard"
	"github.com/alfredjeanlab/campus/internal/model"
)

var studentCmd = &cobra.Command{
	Use:     "student",
	Short:   "Student dashboard: job openings, applications and offers",
	GroupID: "dashboards",
}

var studentJobCmd = &cobra.Command{
	Use:   "job [job-id]",
	Short: "Show one job opening",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := sess.Resolve(dashboard.ViewStudentJobs, firstArg(args))
		if err != nil {
			return err
		}
		j, err := portal.GetJob(cmd.Context(), id)
		if err != nil {
			notifier.Error(err, "Failed to load job")
			return errReported
		}
		rememberSelection(dashboard.ViewStudentJobs, id)
		if jsonOutput {
			return printJSON(os.Stdout, j)
		}
		fmt.Printf("ID:          %s\n", j.ID)
		fmt.Printf("Title:       %s\n", j.Title)
		fmt.Printf("Company:     %s\n", j.CompanyName)
		fmt.Printf("Type:        %s\n", j.JobType)
		fmt.Printf("Status:      %s\n", j.Status)
		if j.Location != "" {
			fmt.Printf("Location:    %s\n", j.Location)
		}
		if j.Salary != nil {
			fmt.Printf("Salary:      %g LPA\n", *j.Salary)
		}
		if j.Deadline != nil {
			fmt.Printf("Deadline:    %s\n", j.Deadline.Format("2006-01-02"))
		}
		if len(j.Skills) > 0 {
			fmt.Printf("Skills:      %s\n", strings.Join(j.Skills, ", "))
		}
		if j.Description != "" {
			fmt.Printf("\n%s\n", j.Description)
		}
		return nil
	},
}

var studentApplyCmd = &cobra.Command{
	Use:   "apply [job-id]",
	Short: "Apply to a job opening",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := sess.Resolve(dashboard.ViewStudentJobs, firstArg(args))
		if err != nil {
			return err
		}
		resume, _ := cmd.Flags().GetString("resume")
		cover, _ := cmd.Flags().GetString("cover-letter")

		app, err := dashboard.Apply(cmd.Context(), deps(), &client.ApplyRequest{
			JobID:       id,
			ResumeLink:  resume,
			CoverLetter: cover,
		})
		if err != nil {
			return errReported
		}
		rememberSelection(dashboard.ViewStudentApplications, app.ID)
		if jsonOutput {
			return printJSON(os.Stdout, app)
		}
		return nil
	},
}

var studentWithdrawCmd = &cobra.Command{
	Use:   "withdraw [application-id]",
	Short: "Withdraw one of your applications",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := sess.Resolve(dashboard.ViewStudentApplications, firstArg(args))
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		d, err := loadView(ctx, dashboard.StudentApplications())
		if err != nil {
			return err
		}
		if err := dashboard.Withdraw(ctx, d, id); err != nil {
			return reported(err)
		}
		return nil
	},
}

var studentRespondCmd = &cobra.Command{
	Use:   "respond [offer-id] <accept|decline>",
	Short: "Accept or decline an offer",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var idArg, answer string
		if len(args) == 2 {
			idArg, answer = args[0], args[1]
		} else {
			answer = args[0]
		}
		id, err := sess.Resolve(dashboard.ViewStudentOffers, idArg)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		d, err := loadView(ctx, dashboard.StudentOffers())
		if err != nil {
			return err
		}
		if err := dashboard.RespondToOffer(ctx, d, id, model.ParseOfferAnswer(answer)); err != nil {
			return reported(err)
		}
		rememberSelection(dashboard.ViewStudentOffers, id)
		return nil
	},
}

func init() {
	studentApplyCmd.Flags().String("resume", "", "link to your resume (required)")
	studentApplyCmd.Flags().String("cover-letter", "", "optional cover letter text")

	studentCmd.AddCommand(
		listCommand("jobs", "List open job openings", fixed(dashboard.StudentJobs)),
		listCommand("applications", "List your applications", fixed(dashboard.StudentApplications)),
		listCommand("offers", "List offers made to you", fixed(dashboard.StudentOffers)),
		studentJobCmd,
		studentApplyCmd,
		studentWithdrawCmd,
		studentRespondCmd,
	)
}
