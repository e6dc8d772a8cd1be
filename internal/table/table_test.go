package table

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `Date,WorkoutTime,Set 1,Set 2,Set 3
04/01/2020,0:04:10,10,8,6
04/02/2020,0:05:02,11,9,7
04/03/2020,1:00:00,12,10,8
`

// TestParseTable verifies parsing a complete log end-to-end: header
// detection, typed fields and set ordering.
func TestParseTable(t *testing.T) {
	tbl, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(tbl.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(tbl.Rows))
	}
	if tbl.NumSets != 3 {
		t.Errorf("NumSets = %d, want 3", tbl.NumSets)
	}
	if len(tbl.Header) != 5 {
		t.Errorf("header width = %d, want 5", len(tbl.Header))
	}

	r0 := tbl.Rows[0]
	if r0.RawDate != "04/01/2020" {
		t.Errorf("RawDate = %q", r0.RawDate)
	}
	if y, m, d := r0.Date.Date(); y != 2020 || int(m) != 4 || d != 1 {
		t.Errorf("Date = %v, want 2020-04-01", r0.Date)
	}
	if r0.WorkoutSeconds != 250 {
		t.Errorf("WorkoutSeconds = %d, want 250", r0.WorkoutSeconds)
	}
	if got, want := r0.Sets, []int{10, 8, 6}; len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Errorf("Sets = %v, want %v", got, want)
	}
	if tbl.Rows[2].WorkoutSeconds != 3600 {
		t.Errorf("day 3 seconds = %d, want 3600", tbl.Rows[2].WorkoutSeconds)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if len(tbl.Rows) != 3 {
		t.Errorf("rows = %d, want 3", len(tbl.Rows))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, ErrFileAccess) {
		t.Errorf("err = %v, want ErrFileAccess", err)
	}
}

func TestParseRowWidthMismatch(t *testing.T) {
	in := "Date,WorkoutTime,Set 1,Set 2\n04/01/2020,0:04:10,10\n"
	_, err := Parse(strings.NewReader(in))
	if !errors.Is(err, ErrMalformedTable) {
		t.Errorf("err = %v, want ErrMalformedTable", err)
	}
}

func TestParseMissingColumns(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"no date", "WorkoutTime,Set 1\n0:04:10,10\n"},
		{"no duration", "Date,Set 1\n04/01/2020,10\n"},
		{"no sets", "Date,WorkoutTime\n04/01/2020,0:04:10\n"},
		{"sets out of order", "Date,WorkoutTime,Set 2,Set 1\n04/01/2020,0:04:10,10,8\n"},
		{"sets not contiguous", "Date,WorkoutTime,Set 1,Notes,Set 2\n04/01/2020,0:04:10,10,x,8\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tc.in)); !errors.Is(err, ErrMalformedTable) {
				t.Errorf("err = %v, want ErrMalformedTable", err)
			}
		})
	}
}

func TestParseBadFields(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"bad date", "Date,WorkoutTime,Set 1\n2020-04-01,0:04:10,10\n"},
		{"bad duration", "Date,WorkoutTime,Set 1\n04/01/2020,abc,10\n"},
		{"bad reps", "Date,WorkoutTime,Set 1\n04/01/2020,0:04:10,ten\n"},
		{"negative reps", "Date,WorkoutTime,Set 1\n04/01/2020,0:04:10,-3\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tc.in)); !errors.Is(err, ErrParse) {
				t.Errorf("err = %v, want ErrParse", err)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"0:04:10", 250, true},
		{"1:00:00", 3600, true},
		{"0:00:00", 0, true},
		{"12:59:59", 46799, true},
		{"abc", 0, false},
		{"1:60:00", 0, false},
		{"1:00:60", 0, false},
		{"1:00", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDuration(tc.in)
		if tc.ok {
			if err != nil {
				t.Errorf("ParseDuration(%q) error: %v", tc.in, err)
			} else if got != tc.want {
				t.Errorf("ParseDuration(%q) = %d, want %d", tc.in, got, tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrParse) {
			t.Errorf("ParseDuration(%q) err = %v, want ErrParse", tc.in, err)
		}
	}
}
