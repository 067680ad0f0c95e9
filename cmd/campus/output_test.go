package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/alfredjeanlab/campus/internal/client"
	"github.com/alfredjeanlab/campus/internal/dashboard"
	"github.com/alfredjeanlab/campus/internal/export"
	"github.com/alfredjeanlab/campus/internal/listview"
	"github.com/alfredjeanlab/campus/internal/model"
	"github.com/alfredjeanlab/campus/internal/notify"
	"github.com/alfredjeanlab/campus/internal/ui"
)

func init() {
	ui.ForceNoColor()
}

func companiesView(companies []model.Company) *dashboard.View[model.Company] {
	v := dashboard.OfficerCompanies()
	v.Fetch = func(context.Context, client.PortalClient) ([]model.Company, error) {
		return companies, nil
	}
	return v
}

func loadedDashboard(t *testing.T, companies []model.Company) *dashboard.Dashboard[model.Company] {
	t.Helper()
	d := dashboard.New(companiesView(companies), dashboard.Deps{Notifier: &notify.Recorder{}})
	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return d
}

func manyCompanies(n int) []model.Company {
	out := make([]model.Company, n)
	for i := range out {
		out[i] = model.Company{ID: "c" + string(rune('a'+i%26)) + string(rune('a'+i/26)), Name: "Company", Status: model.CompanyActive}
	}
	return out
}

func TestPrintView_TableAndFooter(t *testing.T) {
	d := loadedDashboard(t, manyCompanies(23))
	d.Page(2)

	var buf bytes.Buffer
	printView(&buf, d)
	out := buf.String()

	for _, want := range []string{
		"ID", "NAME", "ASSIGNED",
		"Showing 10 to 18 of 23",
		"Pages: 1 [2] 3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// Header plus nine rows before the blank line.
	table := strings.SplitN(out, "\n\n", 2)[0]
	if got := len(strings.Split(table, "\n")); got != 10 {
		t.Errorf("table lines = %d, want 10", got)
	}
}

func TestPrintView_SinglePageHasNoStrip(t *testing.T) {
	d := loadedDashboard(t, manyCompanies(3))
	var buf bytes.Buffer
	printView(&buf, d)
	if strings.Contains(buf.String(), "Pages:") {
		t.Errorf("single page printed a page strip:\n%s", buf.String())
	}
}

func TestPrintView_EmptyStates(t *testing.T) {
	d := loadedDashboard(t, nil)
	var buf bytes.Buffer
	printView(&buf, d)
	if got := strings.TrimSpace(buf.String()); got != "No companies found." {
		t.Errorf("no-data output = %q", got)
	}

	d = loadedDashboard(t, manyCompanies(3))
	d.Filter(listview.Criteria{Search: "nothing like this"})
	buf.Reset()
	printView(&buf, d)
	out := buf.String()
	if !strings.HasPrefix(out, "No companies match the current filters.") {
		t.Errorf("no-match output = %q", out)
	}
	if !strings.Contains(out, "without --eq") {
		t.Errorf("no-match output lacks the filter hint: %q", out)
	}
}

func TestPrintPageJSON(t *testing.T) {
	d := loadedDashboard(t, manyCompanies(12))
	d.Page(2)
	var buf bytes.Buffer
	if err := printPageJSON(&buf, d.View.Name, d.Store.Window()); err != nil {
		t.Fatal(err)
	}
	var got pageJSON[model.Company]
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if got.View != dashboard.ViewOfficerCompanies || got.Page != 2 || got.TotalPages != 2 || got.Total != 12 {
		t.Errorf("page = %+v", got)
	}
	if got.First != 10 || got.Last != 12 || len(got.Items) != 3 {
		t.Errorf("window = %d..%d with %d items, want 10..12 with 3", got.First, got.Last, len(got.Items))
	}
}

func TestPrintTable_Truncates(t *testing.T) {
	cols := []export.Column[string]{{Header: "Text", Value: func(s string) string { return s }}}
	var buf bytes.Buffer
	printTable(&buf, cols, []string{strings.Repeat("x", 60), "line\nbreak"})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3:\n%s", len(lines), buf.String())
	}
	if got := strings.TrimSpace(lines[1]); len(got) != maxCellWidth || !strings.HasSuffix(got, "...") {
		t.Errorf("long cell = %q", got)
	}
	if got := strings.TrimSpace(lines[2]); got != "line break" {
		t.Errorf("multi-line cell = %q", got)
	}
}

func TestPageStrip(t *testing.T) {
	for _, tc := range []struct {
		current int
		numbers []int
		want    string
	}{
		{1, []int{1, 2, 3, 4, 5}, "[1] 2 3 4 5"},
		{5, []int{3, 4, 5, 6, 7}, "3 4 [5] 6 7"},
		{1, []int{1}, "[1]"},
		{1, nil, ""},
	} {
		if got := pageStrip(tc.current, tc.numbers); got != tc.want {
			t.Errorf("pageStrip(%d, %v) = %q, want %q", tc.current, tc.numbers, got, tc.want)
		}
	}
}
