package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type person struct {
	Name string
	City string
}

var personColumns = []Column[person]{
	{Header: "Name", Value: func(p person) string { return p.Name }},
	{Header: "City", Value: func(p person) string { return p.City }},
}

func TestWriteCSV_QuotesEveryField(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, personColumns, []person{{"Priya Nair", "Kochi"}, {`Ravi "RK" Kumar`, ""}})
	if err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	want := "\"Name\",\"City\"\n\"Priya Nair\",\"Kochi\"\n\"Ravi \"\"RK\"\" Kumar\",\"\"\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteCSV() =\n%q\nwant\n%q", got, want)
	}
}

func TestWriteCSV_EmbeddedCommaParsesBack(t *testing.T) {
	records := []person{{"Mehta, Arjun", "Pune"}, {"Nair, Priya", "Kochi, Kerala"}}
	data, err := Encode(personColumns, records)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parsing exported csv: %v", err)
	}
	want := [][]string{
		{"Name", "City"},
		{"Mehta, Arjun", "Pune"},
		{"Nair, Priya", "Kochi, Kerala"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("parsed rows mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSV_NoRecords(t *testing.T) {
	data, err := Encode(personColumns, nil)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if got := string(data); got != "\"Name\",\"City\"\n" {
		t.Errorf("Encode(nil) = %q, want header only", got)
	}
}

func TestWriteCSV_Newline(t *testing.T) {
	data, err := Encode(personColumns, []person{{"line one\nline two", "x"}})
	if err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parsing exported csv: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "line one\nline two" {
		t.Errorf("rows = %q", rows)
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2026, 3, 7, 23, 59, 0, 0, time.UTC)
	if got, want := FileName("hr-applications", now), "hr-applications-export-2026-03-07.csv"; got != want {
		t.Errorf("FileName() = %q, want %q", got, want)
	}
}
