package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/alfredjeanlab/campus/internal/dashboard"
	"github.com/alfredjeanlab/campus/internal/export"
	"github.com/alfredjeanlab/campus/internal/listview"
	"github.com/alfredjeanlab/campus/internal/model"
	"github.com/alfredjeanlab/campus/internal/ui"
)

const maxCellWidth = 40

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// pageJSON is the --json shape of a list command.
type pageJSON[T any] struct {
	View       string `json:"view"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	Total      int    `json:"total"`
	First      int    `json:"first"`
	Last       int    `json:"last"`
	Items      []T    `json:"items"`
}

func printPageJSON[T any](w io.Writer, view string, p listview.Page[T]) error {
	return printJSON(w, pageJSON[T]{
		View:       view,
		Page:       p.Page,
		TotalPages: p.TotalPages,
		Total:      p.Total,
		First:      p.FirstIndex,
		Last:       p.LastIndex,
		Items:      p.Visible,
	})
}

// printView renders the current page as a table with a summary footer and
// the page strip, or the view's empty-state message.
func printView[T model.Record](w io.Writer, d *dashboard.Dashboard[T]) {
	if msg := d.EmptyMessage(); msg != "" {
		fmt.Fprintln(w, msg)
		if d.Store.Empty() == listview.EmptyNoMatches {
			fmt.Fprintln(w, ui.RenderMuted("Run again without --eq, --status, --search, --min or --max to see everything."))
		}
		return
	}
	p := d.Store.Window()
	printTable(w, d.View.Columns, p.Visible)
	fmt.Fprintf(w, "\n%s\n", p.Summary())
	if p.TotalPages > 1 {
		fmt.Fprintf(w, "Pages: %s\n", pageStrip(p.Page, d.Store.PageNumbers()))
	}
}

func printTable[T any](w io.Writer, columns []export.Column[T], rows []T) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = strings.ToUpper(c.Header)
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	cells := make([]string, len(columns))
	for _, r := range rows {
		for i, c := range columns {
			cells[i] = truncate(c.Value(r), maxCellWidth)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

// pageStrip renders page numbers with the current one highlighted.
func pageStrip(current int, numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		if n == current {
			parts[i] = ui.RenderCurrentPage(n)
		} else {
			parts[i] = strconv.Itoa(n)
		}
	}
	return strings.Join(parts, " ")
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if r := []rune(s); len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}
