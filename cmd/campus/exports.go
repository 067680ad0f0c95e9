package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/campus/internal/model"
	"github.com/alfredjeanlab/campus/internal/store"
)

var exportsCmd = &cobra.Command{
	Use:     "exports",
	Short:   "List recorded CSV exports",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		view, _ := cmd.Flags().GetString("view")
		limit, _ := cmd.Flags().GetInt("limit")

		log, err := requireExportLog(cmd)
		if err != nil {
			return err
		}
		defer log.Close()

		recs, err := log.ListExports(cmd.Context(), view, limit)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(os.Stdout, recs)
		}
		if len(recs) == 0 {
			fmt.Println("No exports recorded.")
			return nil
		}
		printExportTable(recs)
		return nil
	},
}

var exportsShowCmd = &cobra.Command{
	Use:   "show <export-id>",
	Short: "Show one recorded export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := requireExportLog(cmd)
		if err != nil {
			return err
		}
		defer log.Close()

		rec, err := log.GetExport(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("export %s not found", args[0])
		}
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(os.Stdout, rec)
		}
		fmt.Printf("ID:          %s\n", rec.ID)
		fmt.Printf("View:        %s\n", rec.View)
		fmt.Printf("File:        %s\n", rec.FileName)
		fmt.Printf("Destination: %s\n", rec.Destination)
		fmt.Printf("Rows:        %d\n", rec.Rows)
		if rec.Actor != "" {
			fmt.Printf("Actor:       %s\n", rec.Actor)
		}
		fmt.Printf("Created At:  %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		return nil
	},
}

func requireExportLog(cmd *cobra.Command) (store.ExportLog, error) {
	log, err := openExportLog(cmd.Context())
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, fmt.Errorf("no export log configured (set CAMPUS_DATABASE_URL)")
	}
	return log, nil
}

func printExportTable(recs []*model.ExportRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVIEW\tROWS\tDESTINATION\tACTOR\tCREATED")
	for _, r := range recs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			r.ID,
			r.View,
			r.Rows,
			r.Destination,
			r.Actor,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	w.Flush()
	fmt.Printf("\n%d exports\n", len(recs))
}

func init() {
	exportsCmd.Flags().String("view", "", "only exports of this view")
	exportsCmd.Flags().Int("limit", 20, "maximum number of exports to list (0 for all)")
	exportsCmd.AddCommand(exportsShowCmd)
}
