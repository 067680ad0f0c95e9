package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/campus/internal/dashboard"
)

var officerCmd = &cobra.Command{
	Use:     "officer",
	Short:   "Placement officer dashboard: companies, students and offers",
	GroupID: "dashboards",
}

// assignmentCommand builds assign and unassign.
func assignmentCommand(assign bool) *cobra.Command {
	use, short := "assign", "Assign a company to yourself"
	if !assign {
		use, short = "unassign", "Release a company assigned to you"
	}
	return &cobra.Command{
		Use:   use + " [company-id]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := sess.Resolve(dashboard.ViewOfficerCompanies, firstArg(args))
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			d := dashboard.New(dashboard.OfficerCompanies(), deps())
			if err := dashboard.SetAssignment(ctx, d, id, assign); err != nil {
				return errReported
			}
			rememberSelection(dashboard.ViewOfficerCompanies, id)
			if jsonOutput {
				return printPageJSON(os.Stdout, d.View.Name, d.Store.Window())
			}
			printView(os.Stdout, d)
			return nil
		},
	}
}

var officerStudentCmd = &cobra.Command{
	Use:   "student [student-id]",
	Short: "Show one student's profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := sess.Resolve(dashboard.ViewOfficerStudents, firstArg(args))
		if err != nil {
			return err
		}
		s, err := portal.GetStudent(cmd.Context(), id)
		if err != nil {
			notifier.Error(err, "Failed to load student")
			return errReported
		}
		rememberSelection(dashboard.ViewOfficerStudents, id)
		if jsonOutput {
			return printJSON(os.Stdout, s)
		}
		fmt.Printf("ID:          %s\n", s.ID)
		fmt.Printf("Name:        %s\n", s.Name)
		fmt.Printf("Email:       %s\n", s.Email)
		if s.RollNumber != "" {
			fmt.Printf("Roll No:     %s\n", s.RollNumber)
		}
		if s.Department != "" {
			fmt.Printf("Department:  %s\n", s.Department)
		}
		if s.Batch != 0 {
			fmt.Printf("Batch:       %d\n", s.Batch)
		}
		if s.CGPA != nil {
			fmt.Printf("CGPA:        %.2f\n", *s.CGPA)
		}
		if s.PlacementStatus != "" {
			fmt.Printf("Placement:   %s\n", s.PlacementStatus)
		}
		if len(s.Skills) > 0 {
			fmt.Printf("Skills:      %s\n", strings.Join(s.Skills, ", "))
		}
		if s.ResumeLink != "" {
			fmt.Printf("Resume:      %s\n", s.ResumeLink)
		}
		return nil
	},
}

func init() {
	officerCmd.AddCommand(
		listCommand("companies", "List companies, marking the ones assigned to you", fixed(dashboard.OfficerCompanies)),
		listCommand("students", "List student profiles", fixed(dashboard.OfficerStudents)),
		listCommand("offers", "List offers across all companies", fixed(dashboard.OfficerOffers)),
		officerStudentCmd,
		assignmentCommand(true),
		assignmentCommand(false),
	)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
