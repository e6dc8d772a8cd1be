// Package table loads the exercise-log table from a delimited text file
// into a typed, validated form.
//
// The expected shape is a header row followed by one row per workout day:
// a Date column (MM/DD/YYYY), a WorkoutTime column (H:MM:SS) and a run of
// contiguous "Set N" columns holding non-negative integer rep counts.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Sentinel errors. Callers branch with errors.Is.
var (
	// ErrFileAccess means the input path could not be opened or read.
	ErrFileAccess = errors.New("input file unreadable")
	// ErrMalformedTable means the table structure is wrong: a row does not
	// match the header width, or required columns are missing or misplaced.
	ErrMalformedTable = errors.New("malformed table")
	// ErrParse means a field value could not be parsed (date, duration or
	// rep count).
	ErrParse = errors.New("parse error")
)

const (
	dateColumn     = "Date"
	durationColumn = "WorkoutTime"
	dateLayout     = "01/02/2006"
)

// durationRe matches H:MM:SS with minutes and seconds below 60.
var durationRe = regexp.MustCompile(`^(\d+):([0-5]\d):([0-5]\d)$`)

// Row is one workout day.
type Row struct {
	Date           time.Time
	RawDate        string // original MM/DD/YYYY text, kept for titles
	WorkoutSeconds int
	Sets           []int // rep count per set, 1-indexed by position
}

// Table is the full parsed log: the original header plus one Row per day,
// in file order. Immutable after Load.
type Table struct {
	Header  []string
	Rows    []Row
	NumSets int
}

// Load reads and parses the table at path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileAccess, err)
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return t, nil
}

// Parse reads a CSV exercise log from r and returns the typed table.
func Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedTable)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrMalformedTable, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	t := &Table{Header: header, NumSets: len(cols.sets)}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// encoding/csv reports width mismatches as ErrFieldCount.
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedTable, line, err)
		}
		row, err := parseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// columnIndexes holds the resolved positions of the typed columns.
type columnIndexes struct {
	date     int
	duration int
	sets     []int
}

// resolveColumns locates the Date, WorkoutTime and "Set N" columns in the
// header. Set columns must be contiguous and numbered 1..N in order.
func resolveColumns(header []string) (columnIndexes, error) {
	cols := columnIndexes{date: -1, duration: -1}
	firstSet := -1
	for i, name := range header {
		switch {
		case name == dateColumn:
			cols.date = i
		case name == durationColumn:
			cols.duration = i
		case strings.HasPrefix(strings.ToLower(name), "set"):
			if firstSet >= 0 && i != firstSet+len(cols.sets) {
				return cols, fmt.Errorf("%w: set columns are not contiguous", ErrMalformedTable)
			}
			if firstSet < 0 {
				firstSet = i
			}
			want := fmt.Sprintf("Set %d", len(cols.sets)+1)
			if !strings.EqualFold(name, want) {
				return cols, fmt.Errorf("%w: column %q where %q expected", ErrMalformedTable, name, want)
			}
			cols.sets = append(cols.sets, i)
		}
	}
	if cols.date < 0 {
		return cols, fmt.Errorf("%w: missing %s column", ErrMalformedTable, dateColumn)
	}
	if cols.duration < 0 {
		return cols, fmt.Errorf("%w: missing %s column", ErrMalformedTable, durationColumn)
	}
	if len(cols.sets) == 0 {
		return cols, fmt.Errorf("%w: no Set columns found", ErrMalformedTable)
	}
	return cols, nil
}

func parseRow(rec []string, cols columnIndexes) (Row, error) {
	rawDate := strings.TrimSpace(rec[cols.date])
	date, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		return Row{}, fmt.Errorf("%w: date %q is not MM/DD/YYYY", ErrParse, rawDate)
	}

	seconds, err := ParseDuration(rec[cols.duration])
	if err != nil {
		return Row{}, err
	}

	row := Row{
		Date:           date,
		RawDate:        rawDate,
		WorkoutSeconds: seconds,
		Sets:           make([]int, len(cols.sets)),
	}
	for i, ci := range cols.sets {
		v := strings.TrimSpace(rec[ci])
		reps, err := strconv.Atoi(v)
		if err != nil {
			return Row{}, fmt.Errorf("%w: set %d value %q is not an integer", ErrParse, i+1, v)
		}
		if reps < 0 {
			return Row{}, fmt.Errorf("%w: set %d value %d is negative", ErrParse, i+1, reps)
		}
		row.Sets[i] = reps
	}
	return row, nil
}

// ParseDuration converts an H:MM:SS workout duration into total seconds.
func ParseDuration(s string) (int, error) {
	m := durationRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("%w: duration %q is not H:MM:SS", ErrParse, s)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	return hours*3600 + minutes*60 + seconds, nil
}
