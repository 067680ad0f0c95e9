package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/campus/internal/dashboard"
	"github.com/alfredjeanlab/campus/internal/export"
	"github.com/alfredjeanlab/campus/internal/listview"
	"github.com/alfredjeanlab/campus/internal/model"
	"github.com/alfredjeanlab/campus/internal/store"
	"github.com/alfredjeanlab/campus/internal/store/postgres"
)

// enumKeys are equality keys whose values are upper-case enum names.
var enumKeys = map[string]bool{"status": true, "jobType": true, "placementStatus": true}

// equalityValue upper-cases values for enum keys so "applied" matches APPLIED.
func equalityValue(key, value string) string {
	if enumKeys[key] {
		return strings.ToUpper(value)
	}
	return value
}

// addListFlags registers the filter, paging and export flags every list
// command shares.
func addListFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("eq", "e", nil, "equality filter key=value (repeatable, value ALL matches everything; status, jobType and placementStatus values are case-insensitive)")
	cmd.Flags().StringP("status", "s", "", "shorthand for --eq status=VALUE (case-insensitive)")
	cmd.Flags().StringP("search", "q", "", "case-insensitive text search")
	cmd.Flags().StringArray("min", nil, "lower bound key=value for a numeric or date field (repeatable)")
	cmd.Flags().StringArray("max", nil, "upper bound key=value for a numeric or date field (repeatable)")
	cmd.Flags().IntP("page", "p", 1, "page to show")
	cmd.Flags().Bool("export", false, "write the filtered records to a CSV file")
	cmd.Flags().String("out", "", "export directory (default CAMPUS_EXPORT_DIR)")
	cmd.Flags().Bool("s3", false, "upload the export to CAMPUS_EXPORT_S3_BUCKET instead of a local file")
}

// criteriaFromFlags builds filter criteria from the list flags.
func criteriaFromFlags(cmd *cobra.Command) (listview.Criteria, error) {
	eqs, _ := cmd.Flags().GetStringArray("eq")
	status, _ := cmd.Flags().GetString("status")
	search, _ := cmd.Flags().GetString("search")
	mins, _ := cmd.Flags().GetStringArray("min")
	maxs, _ := cmd.Flags().GetStringArray("max")

	c := listview.Criteria{Search: search}
	for _, f := range eqs {
		k, v, ok := splitField(f)
		if !ok {
			return c, fmt.Errorf("invalid --eq %q (expected key=value)", f)
		}
		if c.Equals == nil {
			c.Equals = map[string]string{}
		}
		c.Equals[k] = equalityValue(k, v)
	}
	if status != "" {
		if c.Equals == nil {
			c.Equals = map[string]string{}
		}
		c.Equals["status"] = equalityValue("status", status)
	}
	for _, bound := range []struct {
		flag   string
		values []string
		set    func(*listview.Range, string)
	}{
		{"min", mins, func(r *listview.Range, v string) { r.Min = v }},
		{"max", maxs, func(r *listview.Range, v string) { r.Max = v }},
	} {
		for _, f := range bound.values {
			k, v, ok := splitField(f)
			if !ok {
				return c, fmt.Errorf("invalid --%s %q (expected key=value)", bound.flag, f)
			}
			if c.Ranges == nil {
				c.Ranges = map[string]listview.Range{}
			}
			r := c.Ranges[k]
			bound.set(&r, v)
			c.Ranges[k] = r
		}
	}
	return c, nil
}

// splitField splits "key=value". The key must be non-empty.
func splitField(s string) (string, string, bool) {
	i := strings.IndexByte(s, '=')
	if i <= 0 {
		return "", "", false
	}
	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), true
}

// listCommand builds the cobra command for one dashboard view.
func listCommand[T model.Record](use, short string, view func(cmd *cobra.Command) *dashboard.View[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, view(cmd))
		},
	}
	addListFlags(cmd)
	return cmd
}

func runList[T model.Record](cmd *cobra.Command, v *dashboard.View[T]) error {
	criteria, err := criteriaFromFlags(cmd)
	if err != nil {
		return err
	}
	page, _ := cmd.Flags().GetInt("page")
	doExport, _ := cmd.Flags().GetBool("export")
	useS3, _ := cmd.Flags().GetBool("s3")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	d := dashboard.New(v, deps())
	if err := d.Load(ctx); err != nil {
		return errReported
	}
	d.Filter(criteria)
	if page > 1 && !d.Page(page) {
		return fmt.Errorf("page %d is out of range (%d pages)", page, d.Store.Window().TotalPages)
	}

	if doExport || useS3 {
		dir, _ := cmd.Flags().GetString("out")
		if err := exportView(ctx, d, dir, useS3); err != nil {
			return err
		}
	}

	if jsonOutput {
		return printPageJSON(os.Stdout, v.Name, d.Store.Window())
	}
	printView(os.Stdout, d)
	return nil
}

// exportView writes the filtered set to a file or S3 and records it in the
// audit log when one is configured.
func exportView[T model.Record](ctx context.Context, d *dashboard.Dashboard[T], dir string, useS3 bool) error {
	dest, err := exportDestination(ctx, dir, useS3)
	if err != nil {
		return err
	}
	e := &export.Exporter{
		Dest:      dest,
		Publisher: publisher,
		Logger:    logger,
		Actor:     sess.User,
	}
	auditLog, err := openExportLog(ctx)
	if err != nil {
		logger.Warn("export audit log unavailable", "error", err)
	} else if auditLog != nil {
		defer auditLog.Close()
		e.Log = auditLog
	}
	rec, err := d.Export(ctx, e)
	if err != nil {
		return errReported
	}
	notifier.Success(fmt.Sprintf("Exported %d %s to %s", rec.Rows, d.View.Noun, rec.Destination))
	return nil
}

func exportDestination(ctx context.Context, dir string, useS3 bool) (export.Destination, error) {
	if useS3 {
		if !cfg.S3Enabled() {
			return nil, fmt.Errorf("--s3 needs CAMPUS_EXPORT_S3_BUCKET")
		}
		return export.NewS3Destination(ctx, cfg.ExportS3Bucket, cfg.ExportS3Prefix, cfg.ExportS3Region, cfg.ExportS3Endpoint)
	}
	if dir == "" {
		dir = cfg.ExportDir
	}
	return export.FileDestination{Dir: dir}, nil
}

// openExportLog returns nil, nil when no database is configured.
func openExportLog(ctx context.Context) (store.ExportLog, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil
	}
	pg, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return pg, nil
}
